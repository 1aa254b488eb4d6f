// Package session resolves the signed-in user behind an HTTP request.
package session

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"relocation_quest/internal/config"
	"relocation_quest/internal/domain"
)

const sessionTokenHeader = "X-Session-Token"

type Provider interface {
	// Authenticate returns domain.ErrUnauthorized when the request carries
	// no valid session.
	Authenticate(ctx context.Context, r *http.Request) (*domain.SessionUser, error)
}

// New builds the provider named in cfg. An empty provider name returns a
// nil Provider, meaning authenticated routes are unavailable.
func New(cfg config.AuthConfig) (Provider, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "kratos":
		return NewKratosProvider(cfg.KratosPublicURL, cfg.Timeout), nil
	case "jwt":
		return NewJWTProvider([]byte(cfg.JWTSecret), cfg.JWTIssuer, cfg.CookieName), nil
	default:
		return nil, fmt.Errorf("unknown auth provider %q", cfg.Provider)
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
