package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_UnmarshalAcceptsNumbersAndStrings(t *testing.T) {
	var v struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 42, "b": "s1", "c": null}`), &v))
	assert.Equal(t, ID("42"), v.A)
	assert.Equal(t, ID("s1"), v.B)
	assert.Equal(t, ID(""), v.C)

	var bad ID
	require.Error(t, json.Unmarshal([]byte(`{}`), &bad))
}

func TestID_MarshalKeepsIntegersNumeric(t *testing.T) {
	b, err := json.Marshal(map[string]ID{"n": "7", "s": "s1", "e": ""})
	require.NoError(t, err)
	assert.JSONEq(t, `{"n": 7, "s": "s1", "e": null}`, string(b))
}

func TestDayRange_Unmarshal(t *testing.T) {
	cases := map[string]DayRange{
		`[3, 7]`: {3, 7},
		`[5]`:    {5, 5},
		`4`:      {4, 4},
		`null`:   {},
	}
	for in, want := range cases {
		var r DayRange
		require.NoError(t, json.Unmarshal([]byte(in), &r), in)
		assert.Equal(t, want, r, in)
	}
	assert.Equal(t, "3-7 days", DayRange{3, 7}.String())
	assert.Equal(t, "2 days", DayRange{2, 2}.String())
}

func TestShipment_DecodesBackendPayload(t *testing.T) {
	payload := `{
		"id": 12,
		"shipment_number": "a1b2",
		"status": "in_transit",
		"source_type": "warehouse",
		"shipping_category": "small_parcel",
		"actual_weight": "5.00",
		"shipping_cost": "41.50",
		"total_cost": 55.25,
		"destination_address": {"full_name": "Ann", "city": "London", "country": "GB"},
		"estimated_delivery": null,
		"is_paid": true,
		"tracking_updates": [
			{"id": 1, "status": "dispatched", "timestamp": "2025-03-01T10:00:00Z"},
			{"id": 2, "status": "in_transit", "timestamp": "2025-03-02T08:30:00.123456Z"}
		],
		"created_at": "2025-02-28T09:00:00Z"
	}`

	var s Shipment
	require.NoError(t, json.Unmarshal([]byte(payload), &s))

	assert.Equal(t, ID("12"), s.ID)
	assert.Equal(t, ShipmentInTransit, s.Status)
	assert.True(t, s.ActualWeight.Equal(decimal.RequireFromString("5")))
	assert.True(t, s.TotalCost.Equal(decimal.RequireFromString("55.25")))
	assert.Equal(t, "London", s.DestinationAddress.City)
	assert.Nil(t, s.EstimatedDelivery)
	assert.True(t, s.IsPaid)
	require.Len(t, s.TrackingUpdates, 2)

	latest, ok := TrackingResult{Shipment: s}.Latest()
	require.True(t, ok)
	assert.Equal(t, "in_transit", latest.Status)
}

func TestShipmentStatus_Predicates(t *testing.T) {
	assert.True(t, ShipmentDelivered.Final())
	assert.True(t, ShipmentCancelled.Final())
	assert.False(t, ShipmentInTransit.Final())
	assert.True(t, ShipmentQuoteApproved.Payable())
	assert.False(t, ShipmentPaymentPending.Payable())
}

func TestQuoteParams_Missing(t *testing.T) {
	assert.Equal(t, []string{"origin_country", "destination_country", "weight"}, QuoteParams{}.Missing())
	assert.Empty(t, QuoteParams{OriginCountry: "US", DestinationCountry: "GB", Weight: 5}.Missing())
}

func TestQuoteParams_DeclaredValueAlwaysSent(t *testing.T) {
	b, err := json.Marshal(QuoteParams{OriginCountry: "US", DestinationCountry: "GB", Weight: 5})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, float64(0), m["declared_value"])
	assert.NotContains(t, m, "dimensions")
}

func TestQuoteBatch_Cheapest(t *testing.T) {
	b := QuoteBatch{Quotes: []Quote{
		{Carrier: "DHL", Total: decimal.NewFromFloat(80)},
		{Carrier: "Sea", Total: decimal.NewFromFloat(35.5)},
		{Carrier: "UPS", Total: decimal.NewFromFloat(60)},
	}}
	q, ok := b.Cheapest()
	require.True(t, ok)
	assert.Equal(t, "Sea", q.Carrier)

	_, ok = QuoteBatch{}.Cheapest()
	assert.False(t, ok)
}

func TestAddress_Missing(t *testing.T) {
	a := Address{FullName: "Ann", City: "London", Country: "GB"}
	assert.Equal(t, []string{"street_address", "postal_code"}, a.Missing())
}

func TestUser_FullName(t *testing.T) {
	assert.Equal(t, "Ann Lee", User{FirstName: "Ann", LastName: "Lee"}.FullName())
	assert.Equal(t, "a@b.com", User{Email: "a@b.com"}.FullName())
}

func TestQuoteApproval_FlattensPaymentSession(t *testing.T) {
	var qa QuoteApproval
	require.NoError(t, json.Unmarshal([]byte(`{
		"checkout_url": "https://pay.example/cs_1",
		"session_id": "cs_1",
		"payment_id": "p-9",
		"quote": {"id": 3, "status": "approved", "total_cost": "120.00", "created_at": "2025-01-01T00:00:00Z"}
	}`), &qa))
	assert.Equal(t, "https://pay.example/cs_1", qa.CheckoutURL)
	assert.Equal(t, BuyingQuoteApproved, qa.Quote.Status)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), qa.Quote.CreatedAt)
}

func TestBuyingStatuses_WireValues(t *testing.T) {
	assert.Equal(t, "quote_approved", string(BuyingStatusQuoteApproved))
	assert.Equal(t, "approved", string(BuyingQuoteApproved))

	var r BuyingRequest
	require.NoError(t, json.Unmarshal([]byte(`{"status":"quote_approved","quotes":[{"status":"approved"}]}`), &r))
	assert.Equal(t, BuyingStatusQuoteApproved, r.Status)
	require.Len(t, r.Quotes, 1)
	assert.Equal(t, BuyingQuoteApproved, r.Quotes[0].Status)
}
