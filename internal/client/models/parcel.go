package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PackageStatus is the warehouse-side lifecycle of an inbound package.
type PackageStatus string

const (
	PackagePending   PackageStatus = "pending"
	PackageReceived  PackageStatus = "received"
	PackageInspected PackageStatus = "inspected"
	PackageReady     PackageStatus = "ready"
	PackageInTransit PackageStatus = "in_transit"
	PackageDelivered PackageStatus = "delivered"
	PackageReturned  PackageStatus = "returned"
)

// Photo is a package photo reference.
type Photo struct {
	ID    int    `json:"id"`
	URL   string `json:"url"`
	Field string `json:"field"`
}

// Package is an item received (or expected) at the warehouse.
type Package struct {
	ID              ID              `json:"id"`
	ReferenceNumber string          `json:"reference_number"`
	TrackingNumber  string          `json:"tracking_number"`
	Status          PackageStatus   `json:"status"`
	Weight          decimal.Decimal `json:"weight"`
	Length          decimal.Decimal `json:"length"`
	Width           decimal.Decimal `json:"width"`
	Height          decimal.Decimal `json:"height"`
	DeclaredValue   decimal.Decimal `json:"declared_value"`
	Description     string          `json:"description"`
	StorageLocation string          `json:"storage_location"`
	Photos          []Photo         `json:"photos_list"`
	DeliveryPhotos  []Photo         `json:"delivery_photos_list"`
	ReceivedDate    *time.Time      `json:"received_date"`
	CreatedAt       time.Time       `json:"created_at"`
}

// PackageDraft is the create-package request body.
type PackageDraft struct {
	TrackingNumber string  `json:"tracking_number,omitempty"`
	Description    string  `json:"description,omitempty"`
	Weight         float64 `json:"weight,omitempty"`
	DeclaredValue  float64 `json:"declared_value,omitempty"`
}
