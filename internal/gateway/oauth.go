package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

const (
	googleAuthorizeURL = "https://accounts.google.com/o/oauth2/v2/auth"
	googleUserInfoURL  = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var GoogleScopes = []string{
	"https://www.googleapis.com/auth/drive.readonly",
	"https://www.googleapis.com/auth/userinfo.email",
}

// Credentials is the provider-facing shape of an OAuth token set, before
// encryption. RefreshToken may be empty on refresh responses when the
// provider does not reissue one.
type Credentials struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
	Email        string
}

// GoogleOAuth wraps the authorization-code and refresh-token grants.
type GoogleOAuth struct {
	config *oauth2.Config
}

func NewGoogleOAuth(clientID, clientSecret, redirectURL, tokenURL string) *GoogleOAuth {
	return &GoogleOAuth{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       GoogleScopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  googleAuthorizeURL,
				TokenURL: tokenURL,
			},
		},
	}
}

// AuthCodeURL returns the consent-screen URL. Offline access is requested so
// a refresh token is issued on first consent.
func (g *GoogleOAuth) AuthCodeURL(state string) string {
	return g.config.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// Exchange trades an authorization code for tokens and resolves the account
// email from the userinfo endpoint.
func (g *GoogleOAuth) Exchange(ctx context.Context, code string) (*Credentials, error) {
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	email, err := g.fetchEmail(ctx, token)
	if err != nil {
		return nil, err
	}

	return &Credentials{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry.UTC(),
		Email:        email,
	}, nil
}

// Refresh performs a refresh-token grant. The returned RefreshToken is empty
// unless the provider rotated it.
func (g *GoogleOAuth) Refresh(ctx context.Context, refreshToken string) (*Credentials, error) {
	source := g.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("refresh token: %w", err)
	}

	creds := &Credentials{
		AccessToken: token.AccessToken,
		Expiry:      token.Expiry.UTC(),
	}
	if token.RefreshToken != refreshToken {
		creds.RefreshToken = token.RefreshToken
	}
	return creds, nil
}

func (g *GoogleOAuth) fetchEmail(ctx context.Context, token *oauth2.Token) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserInfoURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := g.config.Client(ctx, token).Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch userinfo: status %d", resp.StatusCode)
	}

	var info struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("decode userinfo: %w", err)
	}
	return info.Email, nil
}
