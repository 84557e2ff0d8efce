package models

import "time"

// CartItem defines the struct for the 'cart_items' table.
// VariantID is 0 for products sold as a single default SKU.
type CartItem struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	ProductID int64     `json:"productId" db:"product_id"`
	VariantID int64     `json:"variantId" db:"variant_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Joins (populated manually)
	Title       string  `json:"title" db:"-"`
	VariantName string  `json:"variantName,omitempty" db:"-"`
	SKU         string  `json:"sku,omitempty" db:"-"`
	Price       float64 `json:"price" db:"-"`
	LineTotal   float64 `json:"lineTotal" db:"-"`
}
