// Package api maps each backend operation to one typed call on the HTTP
// client: fixed path, typed request and response. Nothing here retries,
// caches or interprets results; errors from the transport come back
// unchanged. The only local checks are required-field validations, which
// fail with ErrValidation before any request is made.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrValidation reports a request that is missing required fields.
var ErrValidation = errors.New("validation failed")

// Doer is the transport the API groups call. *client.HTTPClient satisfies it.
type Doer interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

// API groups every backend area behind one value.
type API struct {
	Auth      *AuthAPI
	Logistics *LogisticsAPI
	Buying    *BuyingAPI
	Support   *SupportAPI
}

func New(d Doer) *API {
	return &API{
		Auth:      &AuthAPI{d: d},
		Logistics: &LogisticsAPI{d: d},
		Buying:    &BuyingAPI{d: d},
		Support:   &SupportAPI{d: d},
	}
}

func missing(fields ...string) error {
	return fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(fields, ", "))
}

// idPath builds a path with an escaped identifier segment.
func idPath(format, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", missing("id")
	}
	return fmt.Sprintf(format, url.PathEscape(id)), nil
}

// getList fetches a list endpoint. The backend answers either with a bare
// array or with a paginated envelope ({"results": [...]}).
func getList[T any](ctx context.Context, d Doer, path string) ([]T, error) {
	var raw json.RawMessage
	if err := d.Do(ctx, "GET", path, nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[T](raw)
}

func decodeList[T any](raw json.RawMessage) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []T{}, nil
	}

	if raw[0] == '[' {
		out := []T{}
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return out, nil
	}

	var env map[string]json.RawMessage
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode list envelope: %w", err)
	}
	for _, key := range []string{"results", "data"} {
		if items, ok := env[key]; ok {
			return decodeList[T](items)
		}
	}
	return nil, fmt.Errorf("decode list: unexpected object %.64s", raw)
}
