package store

import (
	"slices"

	"github.com/batyok32/shipyuusell-sub001/internal/client/models"
)

// AuthState is the session slice. IsAuthenticated always equals
// AccessToken != "".
type AuthState struct {
	User            *models.User
	AccessToken     string
	RefreshToken    string
	IsAuthenticated bool

	// PendingVerification is the email of an account whose login was
	// refused until it verifies its address.
	PendingVerification string

	Loading bool
	Error   string
}

type PackagesState struct {
	Packages []models.Package
	Selected *models.Package
	Loading  bool
	Error    string
}

type ShipmentsState struct {
	Shipments []models.Shipment
	Selected  *models.Shipment
	Tracking  *models.TrackingResult
	Loading   bool
	Error     string
}

// QuotesState holds only the latest calculated batch and the parameters
// that produced it.
type QuotesState struct {
	Quotes           []models.Quote
	Request          *models.QuoteParams
	QuoteRequestID   models.ID
	PickupRequired   bool
	IsLocalShipping  bool
	ShippingCategory models.ShippingCategory
	Loading          bool
	Error            string
}

// State is the whole store.
type State struct {
	Auth      AuthState
	Packages  PackagesState
	Shipments ShipmentsState
	Quotes    QuotesState
}

// InitialState is the startup state for a persisted session. Both tokens may
// be empty.
func InitialState(access, refresh string) State {
	return State{
		Auth: AuthState{
			AccessToken:     access,
			RefreshToken:    refresh,
			IsAuthenticated: access != "",
		},
	}
}

// clone copies the top-level lists and pointers so a snapshot does not
// alias the store. Nested slices inside models are shared and must be
// treated as read-only.
func (s State) clone() State {
	out := s
	out.Auth.User = clonePtr(s.Auth.User)

	out.Packages.Packages = slices.Clone(s.Packages.Packages)
	out.Packages.Selected = clonePtr(s.Packages.Selected)

	out.Shipments.Shipments = slices.Clone(s.Shipments.Shipments)
	out.Shipments.Selected = clonePtr(s.Shipments.Selected)
	out.Shipments.Tracking = clonePtr(s.Shipments.Tracking)

	out.Quotes.Quotes = slices.Clone(s.Quotes.Quotes)
	out.Quotes.Request = clonePtr(s.Quotes.Request)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
