package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batyok32/shipyuusell-sub001/internal/client/api"
)

func TestBuying_ListsRequestsWithQuotes(t *testing.T) {
	b := newBackend(t)
	b.handle("GET /buying/dashboard/", reply(200, []map[string]any{{
		"buying_request": map[string]any{
			"id": 1, "reference_number": "BR-1", "product_name": "Trail shoes", "status": "quoted",
		},
		"quotes": []map[string]any{
			{"id": 9, "total_cost": "210.5", "shipping_service_name": "DHL Express", "status": "pending"},
		},
	}}))

	a, out := newTestApp(t, b, "")
	signIn(t, a)
	require.NoError(t, a.Buying(context.Background()))

	got := out.String()
	assert.Contains(t, got, "BR-1")
	assert.Contains(t, got, "Trail shoes")
	assert.Contains(t, got, "quote 9: $210.50 via DHL Express")
}

func TestBuying_Empty(t *testing.T) {
	b := newBackend(t)
	b.handle("GET /buying/dashboard/", reply(200, map[string]any{"results": []any{}}))

	a, out := newTestApp(t, b, "")
	signIn(t, a)
	require.NoError(t, a.Buying(context.Background()))
	assert.Contains(t, out.String(), "Run 'buy' to create one.")
}

func TestBuy_SubmitsRequest(t *testing.T) {
	b := newBackend(t)
	var body map[string]any
	b.handle("POST /buying/requests/", capture(&body, reply(201, map[string]any{
		"id": 4, "reference_number": "BR-4", "status": "pending",
	})))

	input := lines(
		"https://shop.example/p/1",
		"Red shoes", "size 9", "",
		"$150",
		"Ann Lee", "1 Main St", "Austin", "TX", "73301", "",
		"us",
	)
	a, out := newTestApp(t, b, input)
	signIn(t, a)
	require.NoError(t, a.Buy(context.Background()))

	assert.Equal(t, "https://shop.example/p/1", body["product_url"])
	assert.Equal(t, "Red shoes\nsize 9", body["product_description"])
	assert.InDelta(t, 150.0, body["max_budget"], 1e-9)
	addr := body["shipping_address"].(map[string]any)
	assert.Equal(t, "US", addr["country"])
	assert.Equal(t, "TX", addr["state_province"])
	assert.Contains(t, out.String(), "Request BR-4 submitted.")
}

func TestBuy_NeedsProductOrDescription(t *testing.T) {
	input := lines(
		"", "",
		"",
		"Ann Lee", "1 Main St", "Austin", "", "73301", "",
		"US",
	)
	a, out := newTestApp(t, newBackend(t), input)
	signIn(t, a)

	require.ErrorIs(t, a.Buy(context.Background()), api.ErrValidation)
	assert.Contains(t, out.String(), "product_url or product_description")
}

func TestApproveQuote(t *testing.T) {
	b := newBackend(t)
	b.handle("POST /buying/quotes/9/approve/", reply(200, map[string]any{
		"checkout_url": "https://checkout.example/q/9",
		"quote":        map[string]any{"id": 9, "total_cost": "210.5", "status": "approved"},
	}))

	a, out := newTestApp(t, b, "")
	signIn(t, a)
	require.NoError(t, a.ApproveQuote(context.Background(), "9"))

	assert.Contains(t, out.String(), "Quote 9 approved: $210.50.")
	assert.Contains(t, out.String(), "https://checkout.example/q/9")
}

func TestApproveQuote_Expired(t *testing.T) {
	b := newBackend(t)
	b.handle("POST /buying/quotes/9/approve/", reply(400, map[string]any{"error": "Quote has expired"}))

	a, out := newTestApp(t, b, "")
	signIn(t, a)
	require.Error(t, a.ApproveQuote(context.Background(), "9"))
	assert.Contains(t, out.String(), "Error: Quote has expired")
}

func TestContact_SignedInUsesProfile(t *testing.T) {
	b := newBackend(t)
	b.handle("GET /auth/profile/", reply(200, annUser))
	var body map[string]any
	b.handle("POST /contact/", capture(&body, reply(200, map[string]any{
		"success": true, "message": "Thanks, we will be in touch.",
	})))

	a, out := newTestApp(t, b, lines("Damaged parcel", "Box arrived wet.", ""))
	signIn(t, a)
	_, err := a.thunks.FetchProfile(context.Background())
	require.NoError(t, err)

	require.NoError(t, a.Contact(context.Background()))
	assert.Equal(t, "ann@example.com", body["email"])
	assert.Equal(t, "Ann Lee", body["name"])
	assert.Equal(t, "Box arrived wet.", body["message"])
	assert.Contains(t, out.String(), "Thanks, we will be in touch.")
}
