package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	oauth2google "golang.org/x/oauth2/google"

	"github.com/dailyaura/journal-service/internal/config"
)

const userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo?access_token="

// Profile is the subset of the Google userinfo response the service consumes.
type Profile struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Client drives the Google OAuth2 authorization-code flow
type Client struct {
	oauthConfig *oauth2.Config
	httpClient  *http.Client
}

// NewClient initializes a new Google OAuth client
func NewClient(cfg *config.Config) *Client {
	return &Client{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleCallbackURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: oauth2google.Endpoint,
		},
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// AuthCodeURL returns the provider URL to redirect the client to.
func (c *Client) AuthCodeURL(state string) string {
	return c.oauthConfig.AuthCodeURL(state)
}

// Exchange trades the callback code for an access token and fetches the
// user's profile from the userinfo endpoint.
func (c *Client) Exchange(ctx context.Context, code string) (*Profile, error) {
	tok, err := c.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	resp, err := c.httpClient.Get(userInfoURL + tok.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected userinfo status code: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read userinfo response: %w", err)
	}

	profile := &Profile{}
	if err := json.Unmarshal(body, profile); err != nil {
		return nil, fmt.Errorf("failed to parse userinfo response: %w", err)
	}
	return profile, nil
}
