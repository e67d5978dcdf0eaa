package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/batyok32/shipyuusell-sub001/internal/client/models"
)

// AuthAPI covers /auth/.
type AuthAPI struct {
	d Doer
}

func (a *AuthAPI) Login(ctx context.Context, c models.Credentials) (*models.AuthResponse, error) {
	var fields []string
	if strings.TrimSpace(c.Email) == "" {
		fields = append(fields, "email")
	}
	if c.Password == "" {
		fields = append(fields, "password")
	}
	if len(fields) > 0 {
		return nil, missing(fields...)
	}
	return a.authenticate(ctx, "/auth/login/", c)
}

// Register creates an account. The backend usually withholds tokens until
// the email is verified.
func (a *AuthAPI) Register(ctx context.Context, r models.Registration) (*models.AuthResponse, error) {
	var fields []string
	if strings.TrimSpace(r.Email) == "" {
		fields = append(fields, "email")
	}
	if r.Password == "" {
		fields = append(fields, "password")
	}
	if len(fields) > 0 {
		return nil, missing(fields...)
	}
	return a.authenticate(ctx, "/auth/register/", r)
}

// GoogleLogin exchanges a Google access token for a session.
func (a *AuthAPI) GoogleLogin(ctx context.Context, providerToken string) (*models.AuthResponse, error) {
	if providerToken == "" {
		return nil, missing("access_token")
	}
	return a.authenticate(ctx, "/auth/google/", models.ProviderToken{AccessToken: providerToken})
}

// FacebookLogin exchanges a Facebook access token for a session.
func (a *AuthAPI) FacebookLogin(ctx context.Context, providerToken string) (*models.AuthResponse, error) {
	if providerToken == "" {
		return nil, missing("access_token")
	}
	return a.authenticate(ctx, "/auth/facebook/", models.ProviderToken{AccessToken: providerToken})
}

// VerifyEmail confirms the emailed code. Tokens are included when the
// backend logs the user in on verification.
func (a *AuthAPI) VerifyEmail(ctx context.Context, v models.EmailVerification) (*models.AuthResponse, error) {
	if v.Email == "" || v.Code == "" {
		return nil, missing("email", "code")
	}
	return a.authenticate(ctx, "/auth/verify-email/", v)
}

func (a *AuthAPI) RequestPasswordReset(ctx context.Context, email string) (*models.Message, error) {
	if email == "" {
		return nil, missing("email")
	}
	var out models.Message
	if err := a.d.Do(ctx, http.MethodPost, "/auth/password-reset/request/", models.EmailRequest{Email: email}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) ConfirmPasswordReset(ctx context.Context, c models.PasswordResetConfirm) (*models.Message, error) {
	if c.UID == "" || c.Token == "" || c.NewPassword == "" {
		return nil, missing("uid", "token", "new_password")
	}
	var out models.Message
	if err := a.d.Do(ctx, http.MethodPost, "/auth/password-reset/confirm/", c, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) ResendVerificationCode(ctx context.Context, email string) (*models.Message, error) {
	if email == "" {
		return nil, missing("email")
	}
	var out models.Message
	if err := a.d.Do(ctx, http.MethodPost, "/auth/resend-verification-code/", models.EmailRequest{Email: email}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profile returns the signed-in user.
func (a *AuthAPI) Profile(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := a.d.Do(ctx, http.MethodGet, "/auth/profile/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) authenticate(ctx context.Context, path string, body any) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := a.d.Do(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
