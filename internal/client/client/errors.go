package client

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
)

var (
	ErrUnavailable    = errors.New("server unavailable")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrSessionExpired = errors.New("session expired, please log in again")
	ErrCanceled       = errors.New("request canceled")
	ErrTimeout        = errors.New("request timed out")
)

// APIError is a non-2xx response. Body holds the decoded JSON object when
// the server sent one; Raw always holds the bytes received.
type APIError struct {
	Status int
	Body   map[string]any
	Raw    []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message())
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 and 403 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized &&
		(e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden)
}

// Message picks the most useful human-readable message: the error, detail
// or message keys, then non_field_errors, then the first field error, then
// the HTTP status text.
func (e *APIError) Message() string {
	for _, key := range []string{"error", "detail", "message"} {
		if s, ok := e.Body[key].(string); ok && s != "" {
			return s
		}
	}
	if s := e.Field("non_field_errors"); s != "" {
		return s
	}

	fields := e.FieldErrors()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if msgs := fields[k]; len(msgs) > 0 {
			return k + ": " + msgs[0]
		}
	}

	if text := http.StatusText(e.Status); text != "" {
		return text
	}
	return fmt.Sprintf("status %d", e.Status)
}

// String returns the string value stored under key, if any.
func (e *APIError) String(key string) string {
	s, _ := e.Body[key].(string)
	return s
}

// Field returns the first message reported for a field. DRF reports field
// errors as lists of strings; a bare string is accepted too.
func (e *APIError) Field(name string) string {
	switch v := e.Body[name].(type) {
	case string:
		return v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// FieldErrors returns every list-of-strings entry in the body.
func (e *APIError) FieldErrors() map[string][]string {
	out := map[string][]string{}
	for k, v := range e.Body {
		list, ok := v.([]any)
		if !ok {
			continue
		}
		for _, item := range list {
			if s, ok := item.(string); ok {
				out[k] = append(out[k], s)
			}
		}
	}
	return out
}

// RequiresVerification reports the login side-channel flag set when the
// account's email has not been verified yet.
func (e *APIError) RequiresVerification() bool {
	v, _ := e.Body["requires_verification"].(bool)
	return v
}

// Email returns the email echoed by the server alongside
// requires_verification.
func (e *APIError) Email() string {
	return e.String("email")
}
