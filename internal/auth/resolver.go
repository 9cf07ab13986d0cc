package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userinfoEndpoint = "https://openidconnect.googleapis.com/v1/userinfo"

// Identity is the verified profile returned by the identity provider.
type Identity struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// IdentityResolver exchanges an authorization code for a verified profile.
// The concrete Google implementation is swapped for a stub in tests.
type IdentityResolver interface {
	AuthURL(state string) string
	Resolve(ctx context.Context, code string) (*Identity, error)
}

type GoogleResolver struct {
	cfg *oauth2.Config
}

func NewGoogleResolver(clientID, clientSecret, redirectURL string) *GoogleResolver {
	return &GoogleResolver{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

func (g *GoogleResolver) AuthURL(state string) string {
	return g.cfg.AuthCodeURL(state)
}

func (g *GoogleResolver) Resolve(ctx context.Context, code string) (*Identity, error) {
	token, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange: %w", err)
	}

	resp, err := g.cfg.Client(ctx, token).Get(userinfoEndpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo status %d", resp.StatusCode)
	}

	var id Identity
	if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}
	if id.Email == "" {
		return nil, fmt.Errorf("identity provider returned no email")
	}
	return &id, nil
}
