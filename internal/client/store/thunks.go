package store

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/batyok32/shipyuusell-sub001/internal/client/api"
	"github.com/batyok32/shipyuusell-sub001/internal/client/client"
	"github.com/batyok32/shipyuusell-sub001/internal/client/models"
	"github.com/batyok32/shipyuusell-sub001/internal/logging"
)

// Thunks runs the asynchronous operations against the backend and records
// their lifecycle in the store. Each method returns the backend result as
// well, so callers can act on it (print a checkout URL, follow up with
// another call) without reading state back.
type Thunks struct {
	store  *Store
	api    *api.API
	tokens client.TokenStore
	log    logging.Logger
}

func NewThunks(s *Store, a *api.API, tokens client.TokenStore, log logging.Logger) *Thunks {
	if log == nil {
		log = logging.Discard()
	}
	return &Thunks{store: s, api: a, tokens: tokens, log: log}
}

func (t *Thunks) Store() *Store { return t.store }

// run drives one operation through pending, then fulfilled or rejected.
// toPayload builds the Fulfilled payload; persist, when set, runs before
// the result is applied and only while the request is still current.
func run[T any](ctx context.Context, t *Thunks, op Op, call func(context.Context) (T, error), toPayload func(T) any, persist func(context.Context, T) error) (T, error) {
	ctx, seq, done := t.store.begin(ctx, op)
	defer done()

	t.store.apply(Pending{Op: op, Seq: seq})

	v, err := call(ctx)
	if err == nil && persist != nil && t.store.current(op, seq) {
		err = persist(ctx, v)
	}
	if err != nil {
		var zero T
		rej := Rejected{Op: op, Seq: seq, Message: ErrorMessage(op, err)}
		if op == OpLogin {
			_, rej.VerificationEmail = LoginError(err)
		}
		if !t.store.apply(rej) && !t.store.current(op, seq) {
			return zero, fmt.Errorf("%s: %w", op, ErrSuperseded)
		}
		t.log.Debug(ctx, "operation failed", "op", string(op), "error", err)
		return zero, err
	}

	if !t.store.apply(Fulfilled{Op: op, Seq: seq, Payload: toPayload(v)}) && !t.store.current(op, seq) {
		return v, fmt.Errorf("%s: %w", op, ErrSuperseded)
	}
	return v, nil
}

func self[T any](v T) any { return v }

func deref[T any](v *T) any { return *v }

// ---- auth ----

func (t *Thunks) Login(ctx context.Context, c models.Credentials) (*models.AuthResponse, error) {
	return t.signIn(ctx, OpLogin, func(ctx context.Context) (*models.AuthResponse, error) {
		return t.api.Auth.Login(ctx, c)
	})
}

// GoogleLogin signs in with a token obtained from Google.
func (t *Thunks) GoogleLogin(ctx context.Context, providerToken string) (*models.AuthResponse, error) {
	return t.signIn(ctx, OpGoogleLogin, func(ctx context.Context) (*models.AuthResponse, error) {
		return t.api.Auth.GoogleLogin(ctx, providerToken)
	})
}

func (t *Thunks) FacebookLogin(ctx context.Context, providerToken string) (*models.AuthResponse, error) {
	return t.signIn(ctx, OpFacebookLogin, func(ctx context.Context) (*models.AuthResponse, error) {
		return t.api.Auth.FacebookLogin(ctx, providerToken)
	})
}

func (t *Thunks) signIn(ctx context.Context, op Op, call func(context.Context) (*models.AuthResponse, error)) (*models.AuthResponse, error) {
	return run(ctx, t, op, call,
		func(r *models.AuthResponse) any {
			return Session{Access: r.Access, Refresh: r.Refresh, User: r.User}
		},
		func(ctx context.Context, r *models.AuthResponse) error {
			if r.Access == "" {
				return fmt.Errorf("backend returned no access token")
			}
			return t.saveTokens(ctx, r.Access, r.Refresh)
		})
}

// Register creates the account and keeps the returned user. It does not
// sign in.
func (t *Thunks) Register(ctx context.Context, r models.Registration) (*models.AuthResponse, error) {
	return run(ctx, t, OpRegister,
		func(ctx context.Context) (*models.AuthResponse, error) { return t.api.Auth.Register(ctx, r) },
		func(r *models.AuthResponse) any { return r.User },
		nil)
}

// VerifyEmail confirms the emailed code. When the backend answers with
// tokens the user is signed in; otherwise the current user is marked
// verified.
func (t *Thunks) VerifyEmail(ctx context.Context, v models.EmailVerification) (*models.AuthResponse, error) {
	return run(ctx, t, OpVerifyEmail,
		func(ctx context.Context) (*models.AuthResponse, error) { return t.api.Auth.VerifyEmail(ctx, v) },
		deref[models.AuthResponse],
		func(ctx context.Context, r *models.AuthResponse) error {
			if !r.HasTokens() {
				return nil
			}
			return t.saveTokens(ctx, r.Access, r.Refresh)
		})
}

func (t *Thunks) FetchProfile(ctx context.Context) (*models.User, error) {
	return run(ctx, t, OpFetchProfile, t.api.Auth.Profile, deref[models.User], nil)
}

// Logout clears the stored tokens and the session state. State is cleared
// even when storage fails.
func (t *Thunks) Logout(ctx context.Context) error {
	var err error
	if t.tokens != nil {
		if err = t.tokens.ClearTokens(ctx); err != nil {
			err = fmt.Errorf("clear tokens: %w", err)
		}
	}
	t.store.Dispatch(Logout{})
	return err
}

// SetCredentials stores tokens obtained elsewhere and marks the session
// authenticated.
func (t *Thunks) SetCredentials(ctx context.Context, access, refresh string) error {
	if err := t.saveTokens(ctx, access, refresh); err != nil {
		return err
	}
	t.store.Dispatch(SetCredentials{Access: access, Refresh: refresh})
	return nil
}

func (t *Thunks) saveTokens(ctx context.Context, access, refresh string) error {
	if t.tokens == nil {
		return nil
	}
	if err := t.tokens.SaveTokens(ctx, access, refresh); err != nil {
		return fmt.Errorf("save tokens: %w", err)
	}
	return nil
}

// ---- packages ----

func (t *Thunks) FetchPackages(ctx context.Context) ([]models.Package, error) {
	return run(ctx, t, OpFetchPackages, t.api.Logistics.ListPackages, self[[]models.Package], nil)
}

func (t *Thunks) FetchPackage(ctx context.Context, id string) (*models.Package, error) {
	return run(ctx, t, OpFetchPackage,
		func(ctx context.Context) (*models.Package, error) { return t.api.Logistics.GetPackage(ctx, id) },
		deref[models.Package], nil)
}

func (t *Thunks) CreatePackage(ctx context.Context, d models.PackageDraft) (*models.Package, error) {
	return run(ctx, t, OpCreatePackage,
		func(ctx context.Context) (*models.Package, error) { return t.api.Logistics.CreatePackage(ctx, d) },
		deref[models.Package], nil)
}

// ---- shipments ----

func (t *Thunks) FetchShipments(ctx context.Context) ([]models.Shipment, error) {
	return run(ctx, t, OpFetchShipments, t.api.Logistics.ListShipments, self[[]models.Shipment], nil)
}

func (t *Thunks) FetchShipment(ctx context.Context, id string) (*models.Shipment, error) {
	return run(ctx, t, OpFetchShipment,
		func(ctx context.Context) (*models.Shipment, error) { return t.api.Logistics.GetShipment(ctx, id) },
		deref[models.Shipment], nil)
}

func (t *Thunks) TrackShipment(ctx context.Context, id string) (*models.TrackingResult, error) {
	return run(ctx, t, OpTrackShipment,
		func(ctx context.Context) (*models.TrackingResult, error) { return t.api.Logistics.TrackShipment(ctx, id) },
		deref[models.TrackingResult], nil)
}

// CreateShipment prepends the created shipment to the list.
func (t *Thunks) CreateShipment(ctx context.Context, d models.ShipmentDraft) (*models.Shipment, error) {
	return run(ctx, t, OpCreateShipment,
		func(ctx context.Context) (*models.Shipment, error) { return t.api.Logistics.CreateShipment(ctx, d) },
		deref[models.Shipment], nil)
}

// ProceedWithQuote books the selected quote of a quote request. It settles
// as a shipment create, so the new shipment is prepended the same way.
func (t *Thunks) ProceedWithQuote(ctx context.Context, r models.ProceedRequest) (*models.ProceedResult, error) {
	return run(ctx, t, OpCreateShipment,
		func(ctx context.Context) (*models.ProceedResult, error) { return t.api.Logistics.ProceedWithQuote(ctx, r) },
		func(res *models.ProceedResult) any { return res.Created() },
		nil)
}

// ---- quotes ----

// CalculateQuotes replaces the current quote batch. The submitted params
// are kept alongside so a later step can build the shipment from them.
func (t *Thunks) CalculateQuotes(ctx context.Context, p models.QuoteParams) (*models.QuoteBatch, error) {
	return run(ctx, t, OpCalculateQuotes,
		func(ctx context.Context) (*models.QuoteBatch, error) { return t.api.Logistics.CalculateShipping(ctx, p) },
		func(b *models.QuoteBatch) any { return QuoteResult{Batch: *b, Request: p} },
		nil)
}

// ---- composite ----

// LoadDashboard refreshes the profile, shipments and packages concurrently.
// Each slice records its own outcome; the first error is returned.
func (t *Thunks) LoadDashboard(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { _, err := t.FetchProfile(ctx); return err })
	g.Go(func() error { _, err := t.FetchShipments(ctx); return err })
	g.Go(func() error { _, err := t.FetchPackages(ctx); return err })
	return g.Wait()
}
