package store

import (
	"slices"

	"github.com/batyok32/shipyuusell-sub001/internal/client/models"
)

// reduce applies a to s. It reports false when the action does not touch
// state (for example a payload of the wrong type).
func reduce(s *State, a Action) bool {
	switch a := a.(type) {
	case Pending:
		return pending(s, a.Op)
	case Rejected:
		return rejected(s, a)
	case Fulfilled:
		switch a.Op.Slice() {
		case SliceAuth:
			return reduceAuth(&s.Auth, a)
		case SlicePackages:
			return reducePackages(&s.Packages, a)
		case SliceShipments:
			return reduceShipments(&s.Shipments, a)
		case SliceQuotes:
			return reduceQuotes(&s.Quotes, a)
		}
		return false

	case Logout:
		s.Auth.User = nil
		s.Auth.AccessToken = ""
		s.Auth.RefreshToken = ""
		s.Auth.IsAuthenticated = false
		s.Auth.PendingVerification = ""
	case SetCredentials:
		s.Auth.AccessToken = a.Access
		s.Auth.RefreshToken = a.Refresh
		s.Auth.IsAuthenticated = a.Access != ""
	case TokenRefreshed:
		s.Auth.AccessToken = a.Access
		if a.Refresh != "" {
			s.Auth.RefreshToken = a.Refresh
		}
		s.Auth.IsAuthenticated = a.Access != ""
	case ClearError:
		errField := errorOf(s, a.Slice)
		if errField == nil {
			return false
		}
		*errField = ""
	case SetSelectedShipment:
		s.Shipments.Selected = clonePtr(a.Shipment)
	case SetSelectedPackage:
		s.Packages.Selected = clonePtr(a.Package)
	case ClearQuotes:
		s.Quotes.Quotes = []models.Quote{}
		s.Quotes.Request = nil
	default:
		return false
	}
	return true
}

// loadingOf and errorOf point at a slice's lifecycle fields.
func loadingOf(s *State, slice string) *bool {
	switch slice {
	case SliceAuth:
		return &s.Auth.Loading
	case SlicePackages:
		return &s.Packages.Loading
	case SliceShipments:
		return &s.Shipments.Loading
	case SliceQuotes:
		return &s.Quotes.Loading
	}
	return nil
}

func errorOf(s *State, slice string) *string {
	switch slice {
	case SliceAuth:
		return &s.Auth.Error
	case SlicePackages:
		return &s.Packages.Error
	case SliceShipments:
		return &s.Shipments.Error
	case SliceQuotes:
		return &s.Quotes.Error
	}
	return nil
}

func pending(s *State, op Op) bool {
	loading, errField := loadingOf(s, op.Slice()), errorOf(s, op.Slice())
	if loading == nil {
		return false
	}
	*loading = true
	*errField = ""
	if op == OpLogin {
		s.Auth.PendingVerification = ""
	}
	return true
}

func rejected(s *State, a Rejected) bool {
	loading, errField := loadingOf(s, a.Op.Slice()), errorOf(s, a.Op.Slice())
	if loading == nil {
		return false
	}
	*loading = false
	*errField = a.Message
	if a.VerificationEmail != "" {
		s.Auth.PendingVerification = a.VerificationEmail
	}
	return true
}

func reduceAuth(st *AuthState, a Fulfilled) bool {
	switch a.Op {
	case OpLogin, OpGoogleLogin, OpFacebookLogin:
		p, ok := a.Payload.(Session)
		if !ok {
			return false
		}
		st.AccessToken = p.Access
		st.RefreshToken = p.Refresh
		st.IsAuthenticated = p.Access != ""
		st.User = clonePtr(p.User)
		st.PendingVerification = ""

	case OpRegister:
		p, ok := a.Payload.(*models.User)
		if !ok {
			return false
		}
		st.User = clonePtr(p)

	case OpVerifyEmail:
		p, ok := a.Payload.(models.AuthResponse)
		if !ok {
			return false
		}
		if p.HasTokens() {
			st.AccessToken = p.Access
			st.RefreshToken = p.Refresh
			st.IsAuthenticated = true
			st.User = clonePtr(p.User)
		} else if st.User != nil {
			u := *st.User
			u.EmailVerified = true
			st.User = &u
		}
		st.PendingVerification = ""

	case OpFetchProfile:
		p, ok := a.Payload.(models.User)
		if !ok {
			return false
		}
		st.User = &p

	default:
		return false
	}
	st.Loading = false
	return true
}

func reducePackages(st *PackagesState, a Fulfilled) bool {
	switch a.Op {
	case OpFetchPackages:
		p, ok := a.Payload.([]models.Package)
		if !ok {
			return false
		}
		st.Packages = slices.Clone(p)
	case OpFetchPackage:
		p, ok := a.Payload.(models.Package)
		if !ok {
			return false
		}
		st.Selected = &p
	case OpCreatePackage:
		p, ok := a.Payload.(models.Package)
		if !ok {
			return false
		}
		st.Packages = slices.Insert(slices.Clone(st.Packages), 0, p)
	default:
		return false
	}
	st.Loading = false
	return true
}

func reduceShipments(st *ShipmentsState, a Fulfilled) bool {
	switch a.Op {
	case OpFetchShipments:
		p, ok := a.Payload.([]models.Shipment)
		if !ok {
			return false
		}
		st.Shipments = slices.Clone(p)
	case OpFetchShipment:
		p, ok := a.Payload.(models.Shipment)
		if !ok {
			return false
		}
		st.Selected = &p
	case OpTrackShipment:
		p, ok := a.Payload.(models.TrackingResult)
		if !ok {
			return false
		}
		st.Tracking = &p
	case OpCreateShipment:
		p, ok := a.Payload.(models.Shipment)
		if !ok {
			return false
		}
		st.Shipments = slices.Insert(slices.Clone(st.Shipments), 0, p)
	default:
		return false
	}
	st.Loading = false
	return true
}

func reduceQuotes(st *QuotesState, a Fulfilled) bool {
	if a.Op != OpCalculateQuotes {
		return false
	}
	p, ok := a.Payload.(QuoteResult)
	if !ok {
		return false
	}
	st.Quotes = slices.Clone(p.Batch.Quotes)
	if st.Quotes == nil {
		st.Quotes = []models.Quote{}
	}
	req := p.Request
	st.Request = &req
	st.QuoteRequestID = p.Batch.QuoteRequestID
	st.PickupRequired = p.Batch.PickupRequired
	st.IsLocalShipping = p.Batch.IsLocalShipping
	st.ShippingCategory = p.Batch.ShippingCategory
	st.Loading = false
	return true
}
