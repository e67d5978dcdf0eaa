package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/batyok32/shipyuusell-sub001/internal/client/models"
)

// LogisticsAPI covers /logistics/: shipments, packages, quotes, payment
// sessions and the public catalogues.
type LogisticsAPI struct {
	d Doer
}

func (l *LogisticsAPI) ListShipments(ctx context.Context) ([]models.Shipment, error) {
	return getList[models.Shipment](ctx, l.d, "/logistics/shipments/")
}

func (l *LogisticsAPI) GetShipment(ctx context.Context, id string) (*models.Shipment, error) {
	path, err := idPath("/logistics/shipments/%s/", id)
	if err != nil {
		return nil, err
	}
	var out models.Shipment
	if err := l.d.Do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateShipment requires a destination address; other fields are passed
// through as given.
func (l *LogisticsAPI) CreateShipment(ctx context.Context, draft models.ShipmentDraft) (*models.Shipment, error) {
	if draft.DestinationAddress == nil {
		return nil, missing("destination_address")
	}
	var out models.Shipment
	if err := l.d.Do(ctx, http.MethodPost, "/logistics/shipments/", draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TrackShipment returns tracking for one of the user's shipments.
func (l *LogisticsAPI) TrackShipment(ctx context.Context, id string) (*models.TrackingResult, error) {
	path, err := idPath("/logistics/shipments/%s/track/", id)
	if err != nil {
		return nil, err
	}
	var out models.TrackingResult
	if err := l.d.Do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TrackByNumber is the public lookup; it works without a session.
func (l *LogisticsAPI) TrackByNumber(ctx context.Context, trackingNumber string) (*models.TrackingResult, error) {
	path, err := idPath("/logistics/track/%s/", strings.ToUpper(strings.TrimSpace(trackingNumber)))
	if err != nil {
		return nil, missing("tracking_number")
	}
	var out models.TrackingResult
	if err := l.d.Do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (l *LogisticsAPI) CalculateShipping(ctx context.Context, p models.QuoteParams) (*models.QuoteBatch, error) {
	if m := p.Missing(); len(m) > 0 {
		return nil, missing(m...)
	}
	var out models.QuoteBatch
	if err := l.d.Do(ctx, http.MethodPost, "/logistics/calculate-shipping/", p, &out); err != nil {
		return nil, err
	}
	if out.Quotes == nil {
		out.Quotes = []models.Quote{}
	}
	return &out, nil
}

func (l *LogisticsAPI) CreatePaymentSession(ctx context.Context, r models.PaymentSessionRequest) (*models.PaymentSession, error) {
	if r.ShipmentID == "" {
		return nil, missing("shipment_id")
	}
	var out models.PaymentSession
	if err := l.d.Do(ctx, http.MethodPost, "/logistics/create-payment-session/", r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (l *LogisticsAPI) Countries(ctx context.Context) ([]models.Country, error) {
	return getList[models.Country](ctx, l.d, "/logistics/countries/")
}

func (l *LogisticsAPI) TransportModes(ctx context.Context) ([]models.TransportMode, error) {
	return getList[models.TransportMode](ctx, l.d, "/logistics/transport-modes/")
}

// WarehouseAddress returns where the user should send inbound parcels.
func (l *LogisticsAPI) WarehouseAddress(ctx context.Context) (*models.WarehouseAddress, error) {
	var out models.WarehouseAddress
	if err := l.d.Do(ctx, http.MethodGet, "/logistics/warehouse/address/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (l *LogisticsAPI) ValidateAddress(ctx context.Context, addr models.Address, replace bool) (*models.AddressValidation, error) {
	if m := addr.Missing(); len(m) > 0 {
		return nil, missing(m...)
	}
	req := models.AddressValidationRequest{Address: addr, ReplaceWithValidationResult: replace}
	var out models.AddressValidation
	if err := l.d.Do(ctx, http.MethodPost, "/logistics/validate-address/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProceedWithQuote turns a calculated quote into a shipment.
func (l *LogisticsAPI) ProceedWithQuote(ctx context.Context, r models.ProceedRequest) (*models.ProceedResult, error) {
	if r.QuoteRequestID == "" {
		return nil, missing("quote_request_id")
	}
	var out models.ProceedResult
	if err := l.d.Do(ctx, http.MethodPost, "/logistics/proceed-with-quote/", r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (l *LogisticsAPI) ListPackages(ctx context.Context) ([]models.Package, error) {
	return getList[models.Package](ctx, l.d, "/logistics/packages/")
}

func (l *LogisticsAPI) GetPackage(ctx context.Context, id string) (*models.Package, error) {
	path, err := idPath("/logistics/packages/%s/", id)
	if err != nil {
		return nil, err
	}
	var out models.Package
	if err := l.d.Do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (l *LogisticsAPI) CreatePackage(ctx context.Context, draft models.PackageDraft) (*models.Package, error) {
	var out models.Package
	if err := l.d.Do(ctx, http.MethodPost, "/logistics/packages/", draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
