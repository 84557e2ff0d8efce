package models

import (
	"time"
)

// Product is the model for the 'products' table.
// For products with variants, Price is the cheapest variant and Stock the
// sum of all variant stock.
type Product struct {
	ID          int64   `json:"id" db:"id"`
	SellerID    int64   `json:"sellerId" db:"seller_id"`
	Title       string  `json:"title" db:"title"`
	Description string  `json:"description" db:"description"`
	ImageURL    *string `json:"imageUrl,omitempty" db:"image_url"`

	// --- Pricing & Stock ---
	Price         float64  `json:"price" db:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty" db:"original_price"`
	Stock         int      `json:"stock" db:"stock"`
	Rating        float64  `json:"rating" db:"rating"`

	// Option groups the variants were generated from, stored as JSON.
	OptionGroups []OptionGroup `json:"optionGroups,omitempty" db:"option_groups"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Joins (Not in DB table, populated manually)
	Variants []ProductVariant `json:"variants,omitempty" db:"-"`
}

// OptionGroup is the persisted form of an option axis, e.g. Size: [S, M].
type OptionGroup struct {
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

// ProductVariant is the model for the 'product_variants' table.
type ProductVariant struct {
	ID        int64             `json:"id" db:"id"`
	ProductID int64             `json:"productId" db:"product_id"`
	SKU       string            `json:"sku" db:"sku"`
	Name      string            `json:"name" db:"name"`
	Price     float64           `json:"price" db:"price"`
	Stock     int               `json:"stock" db:"stock"`
	Options   map[string]string `json:"options" db:"options"` // Stored as JSON string in DB
	CreatedAt time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time         `json:"updatedAt" db:"updated_at"`
}

// Matches reports whether the variant carries every option in filter.
func (v ProductVariant) Matches(filter map[string]string) bool {
	for k, want := range filter {
		if v.Options[k] != want {
			return false
		}
	}
	return true
}
