// Package models defines the client-side view of YuuSell entities and the
// request/response shapes exchanged with the REST backend. The server owns
// every entity; values here are disposable caches of its responses.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is an entity identifier. The backend emits integer primary keys but
// callers and fixtures may use strings, so both JSON forms are accepted.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", b, err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes numeric ids as numbers so the backend's integer
// lookups keep working.
func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id ID) String() string { return string(id) }

// Address is the free-form address object stored on shipments and buying
// requests.
type Address struct {
	FullName       string `json:"full_name,omitempty"`
	Company        string `json:"company,omitempty"`
	StreetAddress  string `json:"street_address,omitempty"`
	StreetAddress2 string `json:"street_address_2,omitempty"`
	City           string `json:"city,omitempty"`
	StateProvince  string `json:"state_province,omitempty"`
	PostalCode     string `json:"postal_code,omitempty"`
	Country        string `json:"country,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty"`
}

// Missing returns the names of the required fields that are empty.
func (a Address) Missing() []string {
	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{"full_name", a.FullName},
		{"street_address", a.StreetAddress},
		{"city", a.City},
		{"postal_code", a.PostalCode},
		{"country", a.Country},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// Country is an entry from the countries catalogue.
type Country struct {
	Code            string `json:"code"`
	Name            string `json:"name"`
	Continent       string `json:"continent"`
	CustomsRequired bool   `json:"customs_required"`
}

// TransportMode is an entry from the transport-modes catalogue.
type TransportMode struct {
	ID             ID     `json:"id"`
	Code           string `json:"code"`
	Type           string `json:"type"`
	Name           string `json:"name"`
	TransitDaysMin int    `json:"transit_days_min"`
	TransitDaysMax int    `json:"transit_days_max"`
	IsActive       bool   `json:"is_active"`
}
