package models

import "time"

// User is the authenticated account as returned by the profile endpoint.
type User struct {
	ID            ID        `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Phone         string    `json:"phone"`
	EmailVerified bool      `json:"email_verified"`
	WarehouseID   string    `json:"warehouse_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// FullName joins first and last name, falling back to the email.
func (u User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	default:
		return u.Email
	}
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the register request body.
type Registration struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// RefreshRequest and RefreshResponse are the token refresh exchange.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

type RefreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// AuthResponse is returned by login, OAuth and email verification. Register
// returns only User and Message; verification may omit the tokens.
type AuthResponse struct {
	Access  string `json:"access,omitempty"`
	Refresh string `json:"refresh,omitempty"`
	User    *User  `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
}

// HasTokens reports whether both tokens were issued.
func (r AuthResponse) HasTokens() bool {
	return r.Access != "" && r.Refresh != ""
}

// ProviderToken is the body for the Google and Facebook login endpoints.
type ProviderToken struct {
	AccessToken string `json:"access_token"`
}

// EmailVerification is the verify-email request body.
type EmailVerification struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// PasswordResetConfirm is the password-reset confirmation body.
type PasswordResetConfirm struct {
	UID         string `json:"uid"`
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// EmailRequest carries a bare email, used by password-reset and resend
// verification requests.
type EmailRequest struct {
	Email string `json:"email"`
}

// Message is the generic {"message": "..."} acknowledgement.
type Message struct {
	Message string `json:"message"`
}
