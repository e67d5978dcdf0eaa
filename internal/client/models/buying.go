package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BuyingStatus is the lifecycle of a buy-and-ship request.
type BuyingStatus string

const (
	BuyingPending              BuyingStatus = "pending"
	BuyingQuoted               BuyingStatus = "quoted"
	BuyingStatusQuoteApproved  BuyingStatus = "quote_approved"
	BuyingPaymentPending       BuyingStatus = "payment_pending"
	BuyingPaymentReceived      BuyingStatus = "payment_received"
	BuyingPurchasing           BuyingStatus = "purchasing"
	BuyingPurchased            BuyingStatus = "purchased"
	BuyingInTransitToWarehouse BuyingStatus = "in_transit_to_warehouse"
	BuyingReceivedAtWarehouse  BuyingStatus = "received_at_warehouse"
	BuyingReadyToShip          BuyingStatus = "ready_to_ship"
	BuyingShipped              BuyingStatus = "shipped"
	BuyingInTransit            BuyingStatus = "in_transit"
	BuyingDelivered            BuyingStatus = "delivered"
	BuyingCompleted            BuyingStatus = "completed"
	BuyingCancelled            BuyingStatus = "cancelled"
)

// BuyingQuoteStatus is the approval state of an agent quote.
type BuyingQuoteStatus string

const (
	BuyingQuotePending  BuyingQuoteStatus = "pending"
	BuyingQuoteApproved BuyingQuoteStatus = "approved"
	BuyingQuoteRejected BuyingQuoteStatus = "rejected"
	BuyingQuoteExpired  BuyingQuoteStatus = "expired"
)

// BuyingRequest asks an agent to purchase a product for later shipment.
type BuyingRequest struct {
	ID                 ID              `json:"id"`
	ReferenceNumber    string          `json:"reference_number"`
	ProductName        string          `json:"product_name"`
	ProductURL         string          `json:"product_url"`
	ProductDescription string          `json:"product_description"`
	ProductImage       string          `json:"product_image"`
	MaxBudget          decimal.Decimal `json:"max_budget"`
	ShippingAddress    Address         `json:"shipping_address"`
	Status             BuyingStatus    `json:"status"`
	Quotes             []BuyingQuote   `json:"quotes"`
	CreatedAt          time.Time       `json:"created_at"`
}

// BuyingQuote is an agent-provided purchase plus shipping cost breakdown.
type BuyingQuote struct {
	ID                    ID                `json:"id"`
	BuyingRequest         ID                `json:"buying_request"`
	ProductCost           decimal.Decimal   `json:"product_cost"`
	SalesTax              decimal.Decimal   `json:"sales_tax"`
	BuyingServiceFee      decimal.Decimal   `json:"buying_service_fee"`
	DomesticShippingCost  decimal.Decimal   `json:"domestic_shipping_cost"`
	ShippingCost          decimal.Decimal   `json:"shipping_cost"`
	ShippingServiceName   string            `json:"shipping_service_name"`
	ShippingModeName      string            `json:"shipping_mode_name"`
	EstimatedDeliveryDays int               `json:"estimated_delivery_days"`
	TotalCost             decimal.Decimal   `json:"total_cost"`
	Status                BuyingQuoteStatus `json:"status"`
	CreatedAt             time.Time         `json:"created_at"`
}

// BuyingDraft is the create-buying-request body. Weight and Price are
// optional hints that let the backend attach an approximate quote.
type BuyingDraft struct {
	ProductURL         string      `json:"product_url,omitempty"`
	ProductName        string      `json:"product_name,omitempty"`
	ProductDescription string      `json:"product_description"`
	ProductImage       string      `json:"product_image,omitempty"`
	MaxBudget          float64     `json:"max_budget,omitempty"`
	ShippingAddress    Address     `json:"shipping_address"`
	Weight             float64     `json:"weight,omitempty"`
	Dimensions         *Dimensions `json:"dimensions,omitempty"`
	Price              float64     `json:"price,omitempty"`
	ItemType           string      `json:"item_type,omitempty"`
}

// ShippingOptionsRequest selects the shipping modes an agent should quote.
type ShippingOptionsRequest struct {
	ShippingModes []string `json:"shipping_modes"`
}

// QuoteApproval is returned when approving an agent quote: the approved
// quote plus a redirect-only checkout handle.
type QuoteApproval struct {
	PaymentSession
	Quote BuyingQuote `json:"quote"`
}

// PreviewRequest asks for approximate buy-and-ship quotes before a request
// is created.
type PreviewRequest struct {
	ShippingAddress Address     `json:"shipping_address"`
	Weight          float64     `json:"weight"`
	Dimensions      *Dimensions `json:"dimensions,omitempty"`
	Price           float64     `json:"price"`
	ItemType        string      `json:"item_type,omitempty"`
}

// ApproximateQuote is one preview option.
type ApproximateQuote struct {
	ServiceName string          `json:"service_name"`
	Carrier     string          `json:"carrier"`
	TransitDays string          `json:"transit_days"`
	TotalCost   decimal.Decimal `json:"total_cost"`
}

// PreviewResult wraps the preview options.
type PreviewResult struct {
	Quotes  []ApproximateQuote `json:"approximate_quotes"`
	Message string             `json:"message"`
}

// DashboardEntry pairs a buying request with its quotes.
type DashboardEntry struct {
	BuyingRequest BuyingRequest `json:"buying_request"`
	Quotes        []BuyingQuote `json:"quotes"`
}
