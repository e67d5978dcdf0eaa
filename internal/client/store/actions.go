package store

import "github.com/batyok32/shipyuusell-sub001/internal/client/models"

// Action is anything Dispatch accepts.
type Action interface {
	isAction()
}

// Pending, Fulfilled and Rejected are the lifecycle of an async operation.
// Seq is the request generation handed out by the store; zero means
// unsequenced and is always applied.
type Pending struct {
	Op  Op
	Seq uint64
}

// Fulfilled carries the operation result. The payload type depends on Op:
//
//	OpLogin, OpGoogleLogin, OpFacebookLogin  Session
//	OpRegister                               *models.User
//	OpVerifyEmail                            models.AuthResponse
//	OpFetchProfile                           models.User
//	OpFetchPackages                          []models.Package
//	OpFetchPackage, OpCreatePackage          models.Package
//	OpFetchShipments                         []models.Shipment
//	OpFetchShipment, OpCreateShipment        models.Shipment
//	OpTrackShipment                          models.TrackingResult
//	OpCalculateQuotes                        QuoteResult
type Fulfilled struct {
	Op      Op
	Seq     uint64
	Payload any
}

type Rejected struct {
	Op      Op
	Seq     uint64
	Message string

	// VerificationEmail is set when a login was refused because the
	// account's email is not verified yet.
	VerificationEmail string
}

// Session is the payload of a successful login.
type Session struct {
	Access  string
	Refresh string
	User    *models.User
}

// QuoteResult is the payload of a successful quote calculation.
type QuoteResult struct {
	Batch   models.QuoteBatch
	Request models.QuoteParams
}

// Logout drops the session from state. Token storage is cleared by
// Thunks.Logout or, on refresh failure, by the HTTP client.
type Logout struct{}

// SetCredentials installs tokens obtained outside the login flow.
type SetCredentials struct {
	Access  string
	Refresh string
}

// TokenRefreshed mirrors a transparent token refresh into state. An empty
// Refresh keeps the current refresh token.
type TokenRefreshed struct {
	Access  string
	Refresh string
}

// ClearError resets Error on one slice.
type ClearError struct {
	Slice string
}

type SetSelectedShipment struct {
	Shipment *models.Shipment
}

type SetSelectedPackage struct {
	Package *models.Package
}

// ClearQuotes forgets the current batch and its request.
type ClearQuotes struct{}

func (Pending) isAction()             {}
func (Fulfilled) isAction()           {}
func (Rejected) isAction()            {}
func (Logout) isAction()              {}
func (SetCredentials) isAction()      {}
func (TokenRefreshed) isAction()      {}
func (ClearError) isAction()          {}
func (SetSelectedShipment) isAction() {}
func (SetSelectedPackage) isAction()  {}
func (ClearQuotes) isAction()         {}
