package entities

// Product is the stored record for one tracked perishable item.
// Timestamps are Unix milliseconds so expiry arithmetic stays integral.
type Product struct {
	ID                  string `gorm:"type:uuid;primary_key" json:"id"`
	Name                string `json:"name"`
	Barcode             string `gorm:"index" json:"barcode,omitempty"`
	Category            string `gorm:"index" json:"category"`
	ExpiryDate          int64  `gorm:"index" json:"expiry_date"`
	AddedDate           int64  `json:"added_date"`
	Quantity            int    `json:"quantity"`
	Notes               string `json:"notes,omitempty"`
	ImageURI            string `json:"image_uri,omitempty"`
	NotificationEnabled bool   `json:"notification_enabled"`
	IsConsumed          bool   `json:"is_consumed"`
	IsDiscarded         bool   `json:"is_discarded"`
}
