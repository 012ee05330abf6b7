package models

// Category groups menu items under a globally unique name.
type Category struct {
	ID    int64      `json:"id"`
	Name  string     `json:"name"`
	Items []MenuItem `json:"items"`
}

// MenuItem is a sellable entry owned by exactly one category. Name is
// unique within that category; price is in minor currency units.
type MenuItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PriceCents  int64  `json:"price_cents"`
	Stock       int    `json:"stock"`
	IsAvailable bool   `json:"is_available"`
	CategoryID  int64  `json:"category_id"`
}

// MenuItemPatch carries a partial update; only non-nil fields are applied.
type MenuItemPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	PriceCents  *int64  `json:"price_cents"`
	Stock       *int    `json:"stock"`
	IsAvailable *bool   `json:"is_available"`
	CategoryID  *int64  `json:"category_id"`
}
