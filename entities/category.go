package entities

// Category groups products for display. Name is the primary key, so renaming
// is delete+insert; products keep a soft string reference to the old name.
type Category struct {
	Name      string `gorm:"primary_key" json:"name"`
	ColorHex  string `json:"color_hex"` // "#RRGGBB"
	Icon      string `json:"icon"`
	SortOrder int    `json:"sort_order"`
}

// DefaultCategories returns the five categories seeded on first use,
// in display order.
func DefaultCategories() []Category {
	return []Category{
		{Name: "Food", ColorHex: "#4CAF50", Icon: "restaurant", SortOrder: 0},
		{Name: "Medicine", ColorHex: "#F44336", Icon: "medication", SortOrder: 1},
		{Name: "Cosmetics", ColorHex: "#E91E63", Icon: "face", SortOrder: 2},
		{Name: "Beverages", ColorHex: "#2196F3", Icon: "local_drink", SortOrder: 3},
		{Name: "Other", ColorHex: "#9E9E9E", Icon: "category", SortOrder: 4},
	}
}
