package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/batyok32/shipyuusell-sub001/internal/client/api"
	"github.com/batyok32/shipyuusell-sub001/internal/client/client"
)

func apiErr(status int, body map[string]any) error {
	return fmt.Errorf("wrapped: %w", &client.APIError{Status: status, Body: body})
}

func TestLoginError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantMsg   string
		wantEmail string
	}{
		{
			name:      "verification with server message",
			err:       apiErr(403, map[string]any{"requires_verification": true, "email": "a@b.com", "error": "Verify first"}),
			wantMsg:   "Verify first",
			wantEmail: "a@b.com",
		},
		{
			name:      "verification default message",
			err:       apiErr(403, map[string]any{"requires_verification": true, "email": "a@b.com"}),
			wantMsg:   "Email not verified",
			wantEmail: "a@b.com",
		},
		{
			name:    "verification flag without email falls through",
			err:     apiErr(403, map[string]any{"requires_verification": true, "error": "Nope"}),
			wantMsg: "Nope",
		},
		{
			name:    "non_field_errors first",
			err:     apiErr(400, map[string]any{"non_field_errors": []any{"Invalid credentials"}, "error": "x"}),
			wantMsg: "Invalid credentials",
		},
		{
			name:    "email field",
			err:     apiErr(400, map[string]any{"email": []any{"Enter a valid email address."}, "password": []any{"short"}}),
			wantMsg: "Enter a valid email address.",
		},
		{
			name:    "password field",
			err:     apiErr(400, map[string]any{"password": []any{"This field may not be blank."}}),
			wantMsg: "This field may not be blank.",
		},
		{
			name:    "error key",
			err:     apiErr(401, map[string]any{"error": "Account disabled"}),
			wantMsg: "Account disabled",
		},
		{
			name:    "unrecognised body uses api message",
			err:     apiErr(500, map[string]any{"detail": "Server exploded"}),
			wantMsg: "Server exploded",
		},
		{
			name:    "transport failure",
			err:     fmt.Errorf("%w: connection refused", client.ErrUnavailable),
			wantMsg: "server unavailable: connection refused",
		},
		{
			name:    "nil error",
			err:     nil,
			wantMsg: "Login failed. Please check your credentials.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, email := LoginError(tt.err)
			assert.Equal(t, tt.wantMsg, msg)
			assert.Equal(t, tt.wantEmail, email)
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		op   Op
		err  error
		want string
	}{
		{"server error field", OpFetchShipments, apiErr(500, map[string]any{"error": "Boom"}), "Boom"},
		{"detail ignored for non-login", OpFetchShipments, apiErr(404, map[string]any{"detail": "Not found."}), "Failed to fetch shipments"},
		{"transport", OpCalculateQuotes, client.ErrUnavailable, "Failed to calculate quotes"},
		{"timeout", OpCreatePackage, client.ErrTimeout, "Failed to create package"},
		{"validation", OpCalculateQuotes, fmt.Errorf("%w: missing weight", api.ErrValidation), "validation failed: missing weight"},
		{"session expired", OpFetchProfile, client.ErrSessionExpired, client.ErrSessionExpired.Error()},
		{"login delegates", OpLogin, apiErr(400, map[string]any{"non_field_errors": []any{"Invalid credentials"}}), "Invalid credentials"},
		{"unknown op", Op("misc/thing"), errors.New("x"), "Request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorMessage(tt.op, tt.err))
		})
	}
}
