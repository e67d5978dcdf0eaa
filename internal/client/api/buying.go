package api

import (
	"context"
	"net/http"

	"github.com/batyok32/shipyuusell-sub001/internal/client/models"
)

// BuyingAPI covers buy-and-ship requests and their agent quotes.
type BuyingAPI struct {
	d Doer
}

func (b *BuyingAPI) ListRequests(ctx context.Context) ([]models.BuyingRequest, error) {
	return getList[models.BuyingRequest](ctx, b.d, "/buying/requests/")
}

func (b *BuyingAPI) GetRequest(ctx context.Context, id string) (*models.BuyingRequest, error) {
	path, err := idPath("/buying/requests/%s/", id)
	if err != nil {
		return nil, err
	}
	var out models.BuyingRequest
	if err := b.d.Do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateRequest needs a product (URL or description) and a shipping
// address.
func (b *BuyingAPI) CreateRequest(ctx context.Context, draft models.BuyingDraft) (*models.BuyingRequest, error) {
	var fields []string
	if draft.ProductURL == "" && draft.ProductDescription == "" {
		fields = append(fields, "product_url or product_description")
	}
	if draft.ShippingAddress == (models.Address{}) {
		fields = append(fields, "shipping_address")
	}
	if len(fields) > 0 {
		return nil, missing(fields...)
	}

	var out models.BuyingRequest
	if err := b.d.Do(ctx, http.MethodPost, "/buying/requests/", draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BuyingAPI) ApproveRequest(ctx context.Context, id string) (*models.BuyingRequest, error) {
	path, err := idPath("/buying/requests/%s/approve/", id)
	if err != nil {
		return nil, err
	}
	var out models.BuyingRequest
	if err := b.d.Do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ShippingOptions tells the agent which shipping modes to quote.
func (b *BuyingAPI) ShippingOptions(ctx context.Context, id string, modes []string) (*models.BuyingRequest, error) {
	path, err := idPath("/buying/requests/%s/shipping-options/", id)
	if err != nil {
		return nil, err
	}
	if len(modes) == 0 {
		return nil, missing("shipping_modes")
	}
	var out models.BuyingRequest
	if err := b.d.Do(ctx, http.MethodPost, path, models.ShippingOptionsRequest{ShippingModes: modes}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RequestQuotes lists the agent quotes of one request.
func (b *BuyingAPI) RequestQuotes(ctx context.Context, id string) ([]models.BuyingQuote, error) {
	path, err := idPath("/buying/requests/%s/quotes/", id)
	if err != nil {
		return nil, err
	}
	return getList[models.BuyingQuote](ctx, b.d, path)
}

// ApproveQuote accepts an agent quote. The reply carries a checkout URL the
// user must open; payment itself happens elsewhere.
func (b *BuyingAPI) ApproveQuote(ctx context.Context, quoteID string) (*models.QuoteApproval, error) {
	path, err := idPath("/buying/quotes/%s/approve/", quoteID)
	if err != nil {
		return nil, err
	}
	var out models.QuoteApproval
	if err := b.d.Do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BuyingAPI) PreviewQuotes(ctx context.Context, r models.PreviewRequest) (*models.PreviewResult, error) {
	var fields []string
	if r.ShippingAddress.Country == "" {
		fields = append(fields, "shipping_address.country")
	}
	if r.Weight <= 0 {
		fields = append(fields, "weight")
	}
	if len(fields) > 0 {
		return nil, missing(fields...)
	}
	var out models.PreviewResult
	if err := b.d.Do(ctx, http.MethodPost, "/buying/preview-quotes/", r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BuyingAPI) Dashboard(ctx context.Context) ([]models.DashboardEntry, error) {
	return getList[models.DashboardEntry](ctx, b.d, "/buying/dashboard/")
}

// AllQuotes lists every agent quote across the user's requests.
func (b *BuyingAPI) AllQuotes(ctx context.Context) ([]models.BuyingQuote, error) {
	return getList[models.BuyingQuote](ctx, b.d, "/buying/quotes/")
}
