// Package common holds the storage keys shared by the client layers and a
// helper for scrubbing secrets from memory.
package common

// Durable storage keys for the session tokens.
const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
)

// Session-scoped hand-off keys used between CLI flows.
const (
	SelectedQuoteKey      = "selectedQuote"
	ShipmentDataKey       = "shipmentData"
	WarehouseLabelDataKey = "warehouseLabelData"
	VehicleIDKey          = "vehicleId"
)
