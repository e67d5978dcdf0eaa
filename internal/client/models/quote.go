package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// DayRange is a [min, max] transit estimate in days. A bare number in JSON
// means min == max.
type DayRange [2]int

func (r *DayRange) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*r = DayRange{}
		return nil
	}
	if len(b) > 0 && b[0] == '[' {
		var days []int
		if err := json.Unmarshal(b, &days); err != nil {
			return err
		}
		switch len(days) {
		case 0:
			*r = DayRange{}
		case 1:
			*r = DayRange{days[0], days[0]}
		default:
			*r = DayRange{days[0], days[1]}
		}
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid transit days %s: %w", b, err)
	}
	*r = DayRange{n, n}
	return nil
}

func (r DayRange) String() string {
	if r[0] == r[1] {
		return fmt.Sprintf("%d days", r[0])
	}
	return fmt.Sprintf("%d-%d days", r[0], r[1])
}

// Quote is one shipping option from calculate-shipping. Quotes are never
// persisted client-side; only the latest batch is kept.
type Quote struct {
	TransportMode     string          `json:"transport_mode"`
	TransportModeName string          `json:"transport_mode_name,omitempty"`
	Carrier           string          `json:"carrier"`
	ServiceLevel      string          `json:"service_level,omitempty"`
	BaseRate          decimal.Decimal `json:"base_rate"`
	ServiceFee        decimal.Decimal `json:"service_fee"`
	Insurance         decimal.Decimal `json:"insurance"`
	Total             decimal.Decimal `json:"total"`
	TransitDays       DayRange        `json:"transit_days"`
}

// Dimensions are in centimetres.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Item is a declared content line.
type Item struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Value       float64 `json:"value"`
	Category    string  `json:"category,omitempty"`
}

// QuoteParams is the calculate-shipping request body. DeclaredValue is
// always sent; zero is the backend's default.
type QuoteParams struct {
	OriginCountry      string           `json:"origin_country"`
	DestinationCountry string           `json:"destination_country"`
	Weight             float64          `json:"weight"`
	Dimensions         *Dimensions      `json:"dimensions,omitempty"`
	DeclaredValue      float64          `json:"declared_value"`
	Items              []Item           `json:"items,omitempty"`
	ShippingCategory   ShippingCategory `json:"shipping_category,omitempty"`
	OriginAddress      *Address         `json:"origin_address,omitempty"`
	DestinationAddress *Address         `json:"destination_address,omitempty"`
}

// Missing returns the names of required fields that are unset.
func (p QuoteParams) Missing() []string {
	var missing []string
	if p.OriginCountry == "" {
		missing = append(missing, "origin_country")
	}
	if p.DestinationCountry == "" {
		missing = append(missing, "destination_country")
	}
	if p.Weight <= 0 {
		missing = append(missing, "weight")
	}
	return missing
}

// QuoteBatch is the calculate-shipping response.
type QuoteBatch struct {
	Quotes           []Quote          `json:"quotes"`
	QuoteRequestID   ID               `json:"quote_request_id"`
	PickupRequired   bool             `json:"pickup_required"`
	IsLocalShipping  bool             `json:"is_local_shipping"`
	IsYuuSellHandled bool             `json:"is_yuusell_handled"`
	ShippingCategory ShippingCategory `json:"shipping_category"`
}

// Cheapest returns the lowest-total quote.
func (b QuoteBatch) Cheapest() (Quote, bool) {
	if len(b.Quotes) == 0 {
		return Quote{}, false
	}
	best := b.Quotes[0]
	for _, q := range b.Quotes[1:] {
		if q.Total.LessThan(best.Total) {
			best = q
		}
	}
	return best, true
}
