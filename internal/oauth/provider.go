// Package oauth implements the authorization-code login flow against the
// Kakao identity provider. The provider is treated as opaque: the only
// outputs are a stable external ID and a display nickname.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"

	"moneybook/internal/config"
	apperrors "moneybook/internal/errors"
)

// Profile is the subset of the provider's account data the application uses.
type Profile struct {
	ExternalID string
	Nickname   string
}

// Provider exchanges authorization codes for profiles.
type Provider struct {
	conf       *oauth2.Config
	profileURL string
}

// NewProvider builds a Provider from application configuration. The endpoint
// URLs come from config so tests can point them at a stub server.
func NewProvider(cfg *config.Config) *Provider {
	return &Provider{
		conf: &oauth2.Config{
			ClientID:     cfg.KakaoClientID,
			ClientSecret: cfg.KakaoClientSecret,
			RedirectURL:  cfg.KakaoRedirectURI,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.KakaoAuthURL,
				TokenURL:  cfg.KakaoTokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		profileURL: cfg.KakaoProfileURL,
	}
}

// AuthCodeURL returns the provider consent screen URL for the given state.
func (p *Provider) AuthCodeURL(state string) string {
	return p.conf.AuthCodeURL(state)
}

// kakaoProfile mirrors the provider's /v2/user/me response shape.
type kakaoProfile struct {
	ID         json.Number `json:"id"`
	Properties struct {
		Nickname string `json:"nickname"`
	} `json:"properties"`
}

// ResolveCode exchanges an authorization code for an access token and fetches
// the profile for that token. Exchange or fetch failures surface as
// UPSTREAM_AUTH; the provider's response detail is kept server-side.
func (p *Provider) ResolveCode(ctx context.Context, code string) (*Profile, error) {
	token, err := p.conf.Exchange(ctx, code)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUpstreamAuth, fmt.Errorf("token exchange: %w", err))
	}

	client := p.conf.Client(ctx, token)
	resp, err := client.Get(p.profileURL)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUpstreamAuth, fmt.Errorf("profile fetch: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, apperrors.Wrap(apperrors.ErrUpstreamAuth,
			fmt.Errorf("profile fetch: status %d: %s", resp.StatusCode, body))
	}

	var raw kakaoProfile
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUpstreamAuth, fmt.Errorf("profile decode: %w", err))
	}
	if raw.ID.String() == "" {
		return nil, apperrors.Wrap(apperrors.ErrUpstreamAuth, fmt.Errorf("profile missing account id"))
	}

	return &Profile{
		ExternalID: raw.ID.String(),
		Nickname:   raw.Properties.Nickname,
	}, nil
}
