package store

import (
	"errors"

	"github.com/batyok32/shipyuusell-sub001/internal/client/api"
	"github.com/batyok32/shipyuusell-sub001/internal/client/client"
)

// ErrorMessage turns the error of a failed op into the message stored on
// its slice. It is never empty.
func ErrorMessage(op Op, err error) string {
	if op == OpLogin {
		msg, _ := LoginError(err)
		return msg
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if s := apiErr.String("error"); s != "" {
			return s
		}
	}
	if errors.Is(err, api.ErrValidation) || errors.Is(err, client.ErrSessionExpired) {
		return err.Error()
	}
	return op.fallback()
}

// LoginError interprets a login failure. verificationEmail is set when the
// backend refused the login because the account's email is unverified.
//
// Precedence: the verification side channel, then non_field_errors, email
// and password field errors, then the server's error field, then the
// transport message.
func LoginError(err error) (msg, verificationEmail string) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Body != nil {
		if apiErr.RequiresVerification() && apiErr.Email() != "" {
			msg = apiErr.String("error")
			if msg == "" {
				msg = "Email not verified"
			}
			return msg, apiErr.Email()
		}
		for _, field := range []string{"non_field_errors", "email", "password"} {
			if s := apiErr.Field(field); s != "" {
				return s, ""
			}
		}
		if s := apiErr.String("error"); s != "" {
			return s, ""
		}
	}

	if apiErr != nil {
		return apiErr.Message(), ""
	}
	if err != nil && err.Error() != "" {
		return err.Error(), ""
	}
	return OpLogin.fallback(), ""
}
