package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShipmentStatus is the server-driven shipment lifecycle. The client only
// observes it.
type ShipmentStatus string

const (
	ShipmentQuoteRequested   ShipmentStatus = "quote_requested"
	ShipmentQuoteApproved    ShipmentStatus = "quote_approved"
	ShipmentPaymentPending   ShipmentStatus = "payment_pending"
	ShipmentPaymentReceived  ShipmentStatus = "payment_received"
	ShipmentLabelGenerating  ShipmentStatus = "label_generating"
	ShipmentProcessing       ShipmentStatus = "processing"
	ShipmentDispatched       ShipmentStatus = "dispatched"
	ShipmentInTransit        ShipmentStatus = "in_transit"
	ShipmentCustomsClearance ShipmentStatus = "customs_clearance"
	ShipmentOutForDelivery   ShipmentStatus = "out_for_delivery"
	ShipmentDelivered        ShipmentStatus = "delivered"
	ShipmentCancelled        ShipmentStatus = "cancelled"
)

// Final reports whether no further transitions are expected.
func (s ShipmentStatus) Final() bool {
	return s == ShipmentDelivered || s == ShipmentCancelled
}

// Payable reports whether a payment session may be created. The backend
// rejects checkout for any other status.
func (s ShipmentStatus) Payable() bool {
	return s == ShipmentQuoteApproved
}

// SourceType says how goods entered the shipment.
type SourceType string

const (
	SourceShipToWarehouse SourceType = "warehouse"
	SourceBuyAndShip      SourceType = "buy_and_ship"
	SourceVehicle         SourceType = "vehicle"
	SourceDirect          SourceType = "direct"
)

// ShippingCategory selects the pricing model on the backend.
type ShippingCategory string

const (
	CategoryAuto        ShippingCategory = "auto"
	CategorySmallParcel ShippingCategory = "small_parcel"
	CategoryHeavyParcel ShippingCategory = "heavy_parcel"
	CategoryLTLFreight  ShippingCategory = "ltl_freight"
	CategoryFTLFreight  ShippingCategory = "ftl_freight"
	CategoryVehicle     ShippingCategory = "vehicle"
)

// Shipment is a logistics shipment as returned by the shipments endpoints.
type Shipment struct {
	ID                 ID               `json:"id"`
	ShipmentNumber     string           `json:"shipment_number"`
	TrackingNumber     string           `json:"tracking_number"`
	Status             ShipmentStatus   `json:"status"`
	SourceType         SourceType       `json:"source_type"`
	ShippingCategory   ShippingCategory `json:"shipping_category"`
	ServiceLevel       string           `json:"service_level"`
	OriginAddress      Address          `json:"origin_address"`
	DestinationAddress Address          `json:"destination_address"`
	ActualWeight       decimal.Decimal  `json:"actual_weight"`
	ChargeableWeight   decimal.Decimal  `json:"chargeable_weight"`
	ShippingCost       decimal.Decimal  `json:"shipping_cost"`
	InsuranceCost      decimal.Decimal  `json:"insurance_cost"`
	ServiceFee         decimal.Decimal  `json:"service_fee"`
	PickupCost         decimal.Decimal  `json:"pickup_cost"`
	TotalCost          decimal.Decimal  `json:"total_cost"`
	Carrier            string           `json:"carrier"`
	TrackingPageURL    string           `json:"tracking_page_url"`
	EstimatedDelivery  *time.Time       `json:"estimated_delivery"`
	ActualDelivery     *time.Time       `json:"actual_delivery"`
	IsPaid             bool             `json:"is_paid"`
	IsLocalShipping    bool             `json:"is_local_shipping"`
	TrackingUpdates    []TrackingUpdate `json:"tracking_updates"`
	Packages           []Package        `json:"packages,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
}

// ShipmentDraft is the create-shipment request body.
type ShipmentDraft struct {
	SourceType         SourceType       `json:"source_type,omitempty"`
	ShippingCategory   ShippingCategory `json:"shipping_category,omitempty"`
	ServiceLevel       string           `json:"service_level,omitempty"`
	TransportMode      string           `json:"transport_mode,omitempty"`
	ActualWeight       float64          `json:"actual_weight"`
	ChargeableWeight   float64          `json:"chargeable_weight,omitempty"`
	OriginAddress      *Address         `json:"origin_address,omitempty"`
	DestinationAddress *Address         `json:"destination_address"`
	ShippingCost       float64          `json:"shipping_cost,omitempty"`
	TotalCost          float64          `json:"total_cost,omitempty"`
	PackageIDs         []ID             `json:"packages,omitempty"`
}

// TrackingUpdate is one carrier or manual status event.
type TrackingUpdate struct {
	ID                    ID        `json:"id"`
	Status                string    `json:"status"`
	Location              string    `json:"location"`
	Timestamp             time.Time `json:"timestamp"`
	Source                string    `json:"source"`
	CarrierTrackingNumber string    `json:"carrier_tracking_number"`
}

// TrackingResult is returned by both tracking endpoints. Tracking holds the
// carrier's raw payload when one was available. Packages and
// TrackingUpdates are only filled by the public lookup.
type TrackingResult struct {
	Shipment        Shipment         `json:"shipment"`
	Tracking        map[string]any   `json:"tracking"`
	TrackingUpdates []TrackingUpdate `json:"tracking_updates,omitempty"`
	Packages        []Package        `json:"packages,omitempty"`
}

// Latest returns the most recent tracking update, preferring the top-level
// list and falling back to the shipment's own.
func (r TrackingResult) Latest() (TrackingUpdate, bool) {
	updates := r.TrackingUpdates
	if len(updates) == 0 {
		updates = r.Shipment.TrackingUpdates
	}
	if len(updates) == 0 {
		return TrackingUpdate{}, false
	}
	latest := updates[0]
	for _, u := range updates[1:] {
		if u.Timestamp.After(latest.Timestamp) {
			latest = u
		}
	}
	return latest, true
}

// PaymentSessionRequest asks the backend for a hosted checkout URL.
type PaymentSessionRequest struct {
	ShipmentID ID     `json:"shipment_id"`
	SuccessURL string `json:"success_url,omitempty"`
	CancelURL  string `json:"cancel_url,omitempty"`
}

// PaymentSession is a redirect-only checkout handle.
type PaymentSession struct {
	CheckoutURL string `json:"checkout_url"`
	SessionID   string `json:"session_id"`
	PaymentID   string `json:"payment_id"`
}

// ProceedRequest converts a quote request into a shipment.
type ProceedRequest struct {
	QuoteRequestID     ID      `json:"quote_request_id"`
	SelectedQuote      Quote   `json:"selected_quote"`
	OriginAddress      Address `json:"origin_address"`
	DestinationAddress Address `json:"destination_address"`
}

// ProceedResult is returned by proceed-with-quote. AlreadyConverted is set
// when the quote request had already produced a shipment.
type ProceedResult struct {
	Shipment         Shipment `json:"shipment"`
	ShipmentID       ID       `json:"shipment_id"`
	ShipmentNumber   string   `json:"shipment_number"`
	AlreadyConverted bool     `json:"already_converted"`
	Message          string   `json:"message"`
}

// Created returns the shipment, filling its id and number from the
// top-level fields when the backend sent only those.
func (r ProceedResult) Created() Shipment {
	s := r.Shipment
	if s.ID == "" {
		s.ID = r.ShipmentID
	}
	if s.ShipmentNumber == "" {
		s.ShipmentNumber = r.ShipmentNumber
	}
	return s
}

// AddressValidationRequest asks the backend to validate (and optionally
// normalise) an address.
type AddressValidationRequest struct {
	Address                     Address `json:"address"`
	ReplaceWithValidationResult bool    `json:"replace_with_validation_result"`
}

// AddressValidation is the validation verdict. Failures come back as
// errors, so Validated is normally true.
type AddressValidation struct {
	Success          bool    `json:"success"`
	Validated        bool    `json:"validated"`
	ValidatedAddress Address `json:"validated_address"`
}

// WarehouseAddress is the receiving address customers ship parcels to.
// WarehouseID must appear on every inbound parcel.
type WarehouseAddress struct {
	Address
	WarehouseID string `json:"warehouse_id"`
}
