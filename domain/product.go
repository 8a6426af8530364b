package domain

import (
	"errors"
	"time"

	"github.com/BalajiReddy1/FreshTrack/entities"
)

var (
	MessageSuccessAddProduct      = "product added successfully"
	MessageSuccessUpdateProduct   = "product updated successfully"
	MessageSuccessDeleteProduct   = "product deleted successfully"
	MessageSuccessGetProducts     = "products retrieved successfully"
	MessageSuccessGetProduct      = "product retrieved successfully"
	MessageSuccessMarkConsumed    = "product marked as consumed"
	MessageSuccessMarkDiscarded   = "product marked as discarded"
	MessageSuccessGetExpiring     = "expiring products retrieved successfully"
	MessageSuccessGetDashboard    = "dashboard summary retrieved successfully"
	MessageSuccessUpdateView      = "product view updated successfully"

	MessageFailedAddProduct    = "failed to add product"
	MessageFailedUpdateProduct = "failed to update product"
	MessageFailedDeleteProduct = "failed to delete product"
	MessageFailedGetProducts   = "failed to retrieve products"
	MessageFailedGetProduct    = "failed to retrieve product"
	MessageFailedMarkConsumed  = "failed to mark product as consumed"
	MessageFailedMarkDiscarded = "failed to mark product as discarded"
	MessageFailedGetExpiring   = "failed to retrieve expiring products"
	MessageFailedGetDashboard  = "failed to retrieve dashboard summary"
	MessageFailedUpdateView    = "failed to update product view"

	ErrProductNotFound     = errors.New("product not found")
	ErrProductNameRequired = errors.New("product name is required")
	ErrExpiryDateRequired  = errors.New("expiry date is required")
	ErrInvalidDaysAhead    = errors.New("days ahead must not be negative")
)

// MillisPerDay converts between millisecond timestamps and whole days.
const MillisPerDay int64 = 24 * 60 * 60 * 1000

// ExpiryUrgency classifies how close a product is to its expiry date.
// Derived at read time, never stored.
type ExpiryUrgency string

const (
	UrgencySafe     ExpiryUrgency = "SAFE"     // > 7 days
	UrgencyWarning  ExpiryUrgency = "WARNING"  // 3-7 days
	UrgencyCritical ExpiryUrgency = "CRITICAL" // 0-2 days
	UrgencyExpired  ExpiryUrgency = "EXPIRED"  // past expiry
)

// ProductFilter selects which products a list view shows.
type ProductFilter string

const (
	FilterAll          ProductFilter = "ALL"
	FilterExpiringSoon ProductFilter = "EXPIRING_SOON"
	FilterExpired      ProductFilter = "EXPIRED"
	FilterByCategory   ProductFilter = "BY_CATEGORY"
)

// ProductSort orders a product list view.
type ProductSort string

const (
	SortExpiryDateAsc  ProductSort = "EXPIRY_DATE_ASC"
	SortExpiryDateDesc ProductSort = "EXPIRY_DATE_DESC"
	SortNameAsc        ProductSort = "NAME_ASC"
	SortNameDesc       ProductSort = "NAME_DESC"
	SortAddedDateDesc  ProductSort = "ADDED_DATE_DESC"
)

// Product is the domain model for one tracked item. Optional fields use the
// empty string as absent. Timestamps are Unix milliseconds.
type Product struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Barcode             string `json:"barcode,omitempty"`
	Category            string `json:"category"`
	ExpiryDate          int64  `json:"expiry_date"`
	AddedDate           int64  `json:"added_date"`
	Quantity            int    `json:"quantity"`
	Notes               string `json:"notes,omitempty"`
	ImageURI            string `json:"image_uri,omitempty"`
	NotificationEnabled bool   `json:"notification_enabled"`
	IsConsumed          bool   `json:"is_consumed"`
	IsDiscarded         bool   `json:"is_discarded"`
}

// DaysUntilExpiry returns the number of whole days between now and the expiry
// date, truncating toward zero. A gap under 24h in either direction is 0 days.
func (p Product) DaysUntilExpiry(now time.Time) int {
	return int((p.ExpiryDate - now.UnixMilli()) / MillisPerDay)
}

// IsExpired reports whether now is strictly past the expiry date.
func (p Product) IsExpired(now time.Time) bool {
	return now.UnixMilli() > p.ExpiryDate
}

// Urgency buckets DaysUntilExpiry: <0 EXPIRED, 0-2 CRITICAL, 3-7 WARNING,
// >7 SAFE. Evaluated against the instant passed in; never cached.
func (p Product) Urgency(now time.Time) ExpiryUrgency {
	days := p.DaysUntilExpiry(now)
	switch {
	case days < 0:
		return UrgencyExpired
	case days <= 2:
		return UrgencyCritical
	case days <= 7:
		return UrgencyWarning
	default:
		return UrgencySafe
	}
}

// IsActive reports whether the product is neither consumed nor discarded.
func (p Product) IsActive() bool {
	return !p.IsConsumed && !p.IsDiscarded
}

// ProductToDomain maps a stored record to the domain model, field for field.
func ProductToDomain(e entities.Product) Product {
	return Product{
		ID:                  e.ID,
		Name:                e.Name,
		Barcode:             e.Barcode,
		Category:            e.Category,
		ExpiryDate:          e.ExpiryDate,
		AddedDate:           e.AddedDate,
		Quantity:            e.Quantity,
		Notes:               e.Notes,
		ImageURI:            e.ImageURI,
		NotificationEnabled: e.NotificationEnabled,
		IsConsumed:          e.IsConsumed,
		IsDiscarded:         e.IsDiscarded,
	}
}

// ToEntity maps the domain model back to its stored record.
func (p Product) ToEntity() entities.Product {
	return entities.Product{
		ID:                  p.ID,
		Name:                p.Name,
		Barcode:             p.Barcode,
		Category:            p.Category,
		ExpiryDate:          p.ExpiryDate,
		AddedDate:           p.AddedDate,
		Quantity:            p.Quantity,
		Notes:               p.Notes,
		ImageURI:            p.ImageURI,
		NotificationEnabled: p.NotificationEnabled,
		IsConsumed:          p.IsConsumed,
		IsDiscarded:         p.IsDiscarded,
	}
}

type (
	AddProductRequest struct {
		Name                string `json:"name" validate:"required"`
		Barcode             string `json:"barcode" validate:"omitempty"`
		Category            string `json:"category" validate:"required"`
		ExpiryDate          int64  `json:"expiry_date" validate:"required,gt=0"`
		Quantity            int    `json:"quantity" validate:"omitempty,min=1"`
		Notes               string `json:"notes"`
		ImageURI            string `json:"image_uri"`
		NotificationEnabled *bool  `json:"notification_enabled"`
	}

	// UpdateProductRequest uses pointers to tell absent from present: a nil
	// field keeps the stored value, a non-nil one replaces it. An explicit
	// empty string clears an optional field.
	UpdateProductRequest struct {
		Name                *string `json:"name" validate:"omitempty"`
		Barcode             *string `json:"barcode"`
		Category            *string `json:"category"`
		ExpiryDate          *int64  `json:"expiry_date" validate:"omitempty,gt=0"`
		Quantity            *int    `json:"quantity" validate:"omitempty,min=1"`
		Notes               *string `json:"notes"`
		ImageURI            *string `json:"image_uri"`
		NotificationEnabled *bool   `json:"notification_enabled"`
	}

	ProductResponse struct {
		ID                  string        `json:"id"`
		Name                string        `json:"name"`
		Barcode             string        `json:"barcode,omitempty"`
		Category            string        `json:"category"`
		ExpiryDate          int64         `json:"expiry_date"`
		AddedDate           int64         `json:"added_date"`
		Quantity            int           `json:"quantity"`
		Notes               string        `json:"notes,omitempty"`
		ImageURI            string        `json:"image_uri,omitempty"`
		NotificationEnabled bool          `json:"notification_enabled"`
		IsConsumed          bool          `json:"is_consumed"`
		IsDiscarded         bool          `json:"is_discarded"`
		DaysUntilExpiry     int           `json:"days_until_expiry"`
		Urgency             ExpiryUrgency `json:"urgency"`
	}

	// DashboardSummary is the combined snapshot served to a dashboard
	// consumer. Lists may overlap; rendering decides what to suppress.
	DashboardSummary struct {
		TotalActiveProducts int64     `json:"total_active_products"`
		ExpiringToday       []Product `json:"expiring_today"`
		ExpiringThisWeek    []Product `json:"expiring_this_week"`
		ExpiredProducts     []Product `json:"expired_products"`
		CriticalItems       []Product `json:"critical_items"`
	}
)

// NewProductResponse decorates a product with its derived temporal state
// as of now.
func NewProductResponse(p Product, now time.Time) ProductResponse {
	return ProductResponse{
		ID:                  p.ID,
		Name:                p.Name,
		Barcode:             p.Barcode,
		Category:            p.Category,
		ExpiryDate:          p.ExpiryDate,
		AddedDate:           p.AddedDate,
		Quantity:            p.Quantity,
		Notes:               p.Notes,
		ImageURI:            p.ImageURI,
		NotificationEnabled: p.NotificationEnabled,
		IsConsumed:          p.IsConsumed,
		IsDiscarded:         p.IsDiscarded,
		DaysUntilExpiry:     p.DaysUntilExpiry(now),
		Urgency:             p.Urgency(now),
	}
}
