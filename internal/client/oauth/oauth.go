// Package oauth obtains access tokens from external identity providers
// (Google, Facebook) for exchange with the backend. The browser redirect
// itself stays outside the client: a CallbackProvider prints the
// authorisation URL and reads back the URL the browser landed on.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	GoogleName   = "google"
	FacebookName = "facebook"

	// DefaultRedirectURI is where the provider sends the browser. Nothing
	// needs to listen there; the user copies the resulting URL back.
	DefaultRedirectURI = "http://localhost:3000/auth/callback"

	googleAuthEndpoint   = "https://accounts.google.com/o/oauth2/v2/auth"
	facebookAuthEndpoint = "https://www.facebook.com/v18.0/dialog/oauth"
)

var (
	ErrGoogleNotConfigured   = errors.New("Google Client ID not configured")
	ErrFacebookNotConfigured = errors.New("Facebook App ID not configured")
	ErrNoToken               = errors.New("failed to get access token")
	ErrDenied                = errors.New("authorization denied")
)

// Provider yields a provider access token.
type Provider interface {
	Name() string
	Token(ctx context.Context) (string, error)
}

// StaticProvider returns a token obtained some other way.
type StaticProvider struct {
	ProviderName string
	AccessToken  string
}

func (p StaticProvider) Name() string { return p.ProviderName }

func (p StaticProvider) Token(ctx context.Context) (string, error) {
	if p.AccessToken == "" {
		return "", ErrNoToken
	}
	return p.AccessToken, nil
}

// Prompt shows authURL to the user and returns the callback URL (or bare
// fragment) they paste back.
type Prompt func(ctx context.Context, authURL string) (string, error)

// CallbackProvider runs the implicit grant through a Prompt.
type CallbackProvider struct {
	name    string
	authURL string
	prompt  Prompt
}

func (p *CallbackProvider) Name() string { return p.name }

// AuthURL is the provider page the user must open.
func (p *CallbackProvider) AuthURL() string { return p.authURL }

func (p *CallbackProvider) Token(ctx context.Context) (string, error) {
	callback, err := p.prompt(ctx, p.authURL)
	if err != nil {
		return "", fmt.Errorf("%s oauth: %w", p.name, err)
	}
	token, err := ParseCallback(callback)
	if err != nil {
		return "", fmt.Errorf("%s oauth: %w", p.name, err)
	}
	return token, nil
}

// NewGoogle builds the Google implicit-grant provider.
func NewGoogle(clientID, redirectURI string, prompt Prompt) (*CallbackProvider, error) {
	if clientID == "" {
		return nil, ErrGoogleNotConfigured
	}
	return &CallbackProvider{
		name:    GoogleName,
		authURL: authURL(googleAuthEndpoint, clientID, redirectURI, "openid email profile"),
		prompt:  prompt,
	}, nil
}

// NewFacebook builds the Facebook login-dialog provider.
func NewFacebook(appID, redirectURI string, prompt Prompt) (*CallbackProvider, error) {
	if appID == "" {
		return nil, ErrFacebookNotConfigured
	}
	return &CallbackProvider{
		name:    FacebookName,
		authURL: authURL(facebookAuthEndpoint, appID, redirectURI, "email,public_profile"),
		prompt:  prompt,
	}, nil
}

func authURL(endpoint, clientID, redirectURI, scope string) string {
	if redirectURI == "" {
		redirectURI = DefaultRedirectURI
	}
	q := url.Values{
		"client_id":     {clientID},
		"redirect_uri":  {redirectURI},
		"response_type": {"token"},
		"scope":         {scope},
	}
	return endpoint + "?" + q.Encode()
}

// ParseCallback extracts access_token from a provider redirect. It accepts
// the full URL, just its fragment, or a bare token.
func ParseCallback(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrNoToken
	}

	fragment := raw
	if i := strings.Index(raw, "#"); i >= 0 {
		fragment = raw[i+1:]
	} else if u, err := url.Parse(raw); err == nil && u.RawQuery != "" {
		// some providers report errors in the query instead
		fragment = u.RawQuery
	} else if !strings.Contains(raw, "=") {
		return raw, nil
	}

	values, err := url.ParseQuery(fragment)
	if err != nil {
		return "", fmt.Errorf("invalid callback: %w", err)
	}
	if e := values.Get("error"); e != "" {
		if desc := values.Get("error_description"); desc != "" {
			e = desc
		}
		return "", fmt.Errorf("%w: %s", ErrDenied, e)
	}
	token := values.Get("access_token")
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}
