package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	kratos "github.com/ory/kratos-client-go"

	"relocation_quest/internal/domain"
)

// KratosProvider validates sessions against the Ory Kratos public API.
type KratosProvider struct {
	client *kratos.APIClient
}

func NewKratosProvider(publicURL string, timeout time.Duration) *KratosProvider {
	configuration := kratos.NewConfiguration()
	configuration.Servers = []kratos.ServerConfiguration{
		{URL: publicURL},
	}
	configuration.HTTPClient = &http.Client{
		Timeout: timeout,
	}

	return &KratosProvider{
		client: kratos.NewAPIClient(configuration),
	}
}

func (p *KratosProvider) Authenticate(ctx context.Context, r *http.Request) (*domain.SessionUser, error) {
	cookie := r.Header.Get("Cookie")
	token := r.Header.Get(sessionTokenHeader)
	if token == "" {
		token = bearerToken(r)
	}
	if cookie == "" && token == "" {
		return nil, domain.ErrUnauthorized
	}

	req := p.client.FrontendAPI.ToSession(ctx)
	if cookie != "" {
		req = req.Cookie(cookie)
	}
	if token != "" {
		req = req.XSessionToken(token)
	}

	session, resp, err := req.Execute()
	if err != nil {
		if resp != nil {
			if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
				return nil, domain.ErrUnauthorized
			}
			return nil, fmt.Errorf("kratos returned status %d: %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("call kratos: %w", err)
	}

	if session.Active != nil && !*session.Active {
		return nil, domain.ErrUnauthorized
	}
	if session.Identity == nil {
		return nil, domain.ErrUnauthorized
	}

	user := &domain.SessionUser{ID: session.Identity.Id}
	if traits, ok := session.Identity.Traits.(map[string]interface{}); ok {
		if email, ok := traits["email"].(string); ok {
			user.Email = optionalString(email)
		}
	}

	return user, nil
}
