package models

import "time"

// Video is the model for the 'videos' table.
type Video struct {
	ID           int64     `json:"id" db:"id"`
	SellerID     int64     `json:"sellerId" db:"seller_id"`
	VideoURL     string    `json:"videoUrl" db:"video_url"`
	ThumbnailURL *string   `json:"thumbnailUrl,omitempty" db:"thumbnail_url"`
	Description  string    `json:"description" db:"description"`
	LikesCount   int       `json:"likesCount" db:"likes_count"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`

	// Products linked through 'video_products'
	Products []Product `json:"products,omitempty" db:"-"`

	// Flattened for the feed (populated manually)
	SellerName string `json:"sellerName,omitempty" db:"-"`
}
