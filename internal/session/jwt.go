package session

import (
	"context"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"relocation_quest/internal/domain"
)

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWTProvider accepts HS256 tokens from the Authorization header or the
// session cookie. The subject claim is the user id.
type JWTProvider struct {
	secret     []byte
	issuer     string
	cookieName string
}

func NewJWTProvider(secret []byte, issuer, cookieName string) *JWTProvider {
	return &JWTProvider{
		secret:     secret,
		issuer:     issuer,
		cookieName: cookieName,
	}
}

func (p *JWTProvider) Authenticate(_ context.Context, r *http.Request) (*domain.SessionUser, error) {
	tokenStr := bearerToken(r)
	if tokenStr == "" && p.cookieName != "" {
		if cookie, err := r.Cookie(p.cookieName); err == nil {
			tokenStr = cookie.Value
		}
	}
	if tokenStr == "" {
		return nil, domain.ErrUnauthorized
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if p.issuer != "" {
		opts = append(opts, jwt.WithIssuer(p.issuer))
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return p.secret, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", domain.ErrUnauthorized)
	}

	return &domain.SessionUser{
		ID:    claims.Subject,
		Email: optionalString(claims.Email),
	}, nil
}
