// Package riot implements the OAuth code exchange against the Riot identity
// provider: one round trip to trade the authorization code for an access
// token, a second to fetch the identity claims.
package riot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/riftbuddy/riftbuddy-api/internal/core/domain"
)

const (
	defaultAuthorizeURL = "https://auth.riotgames.com/authorize"
	defaultTokenURL     = "https://auth.riotgames.com/token"
	defaultUserInfoURL  = "https://auth.riotgames.com/userinfo"
	defaultScope        = "openid email profile"
	defaultHTTPTimeout  = 10 * time.Second
)

// Config captures the OAuth client settings for the Riot provider.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	// Endpoint overrides, used by tests. Defaults point at the live provider.
	AuthorizeURL string
	TokenURL     string
	UserInfoURL  string

	Timeout time.Duration
}

// Client performs the two-step identity exchange.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.AuthorizeURL == "" {
		cfg.AuthorizeURL = defaultAuthorizeURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = defaultTokenURL
	}
	if cfg.UserInfoURL == "" {
		cfg.UserInfoURL = defaultUserInfoURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &Client{cfg: cfg, http: &http.Client{Timeout: timeout}}
}

// AuthorizeURL builds the provider authorize endpoint URL the browser is
// redirected to at login.
func (c *Client) AuthorizeURL(state string) string {
	q := url.Values{}
	q.Set("client_id", c.cfg.ClientID)
	q.Set("redirect_uri", c.cfg.RedirectURI)
	q.Set("response_type", "code")
	q.Set("scope", defaultScope)
	q.Set("state", state)
	return c.cfg.AuthorizeURL + "?" + q.Encode()
}

type tokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	GrantType    string `json:"grant_type"`
	Code         string `json:"code"`
	RedirectURI  string `json:"redirect_uri"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type userInfoResponse struct {
	Sub        string `json:"sub"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

// Exchange trades the authorization code for identity claims. Any provider
// or transport failure surfaces as an error; no partial state is committed.
func (c *Client) Exchange(ctx context.Context, code string) (*domain.Identity, error) {
	token, err := c.exchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return c.fetchUserInfo(ctx, token)
}

func (c *Client) exchangeCode(ctx context.Context, code string) (string, error) {
	body, err := json.Marshal(tokenRequest{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		GrantType:    "authorization_code",
		Code:         code,
		RedirectURI:  c.cfg.RedirectURI,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("riot token exchange: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("riot token exchange: provider returned %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("riot token exchange: decode response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("riot token exchange: empty access token")
	}
	return tr.AccessToken, nil
}

func (c *Client) fetchUserInfo(ctx context.Context, accessToken string) (*domain.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.UserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("riot userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("riot userinfo: provider returned %d", resp.StatusCode)
	}

	var ui userInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&ui); err != nil {
		return nil, fmt.Errorf("riot userinfo: decode response: %w", err)
	}
	if ui.Email == "" {
		return nil, fmt.Errorf("riot userinfo: claims missing email")
	}

	return &domain.Identity{
		Sub:        ui.Sub,
		Email:      ui.Email,
		GivenName:  ui.GivenName,
		FamilyName: ui.FamilyName,
	}, nil
}
