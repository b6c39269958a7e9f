package models

import "time"

// FlashSale is a time-bounded discount attached to a product. It is active
// only while EndsAt is in the future.
type FlashSale struct {
	DiscountPercent int       `json:"discount_percent" validate:"required,gte=1,lte=95"`
	EndsAt          time.Time `json:"ends_at" validate:"required"`
}

// Product represents an item in the catalog as stored in the "product"
// collection. Products are immutable after creation.
type Product struct {
	ID          string     `json:"id"`
	Title       string     `json:"title" validate:"required"`
	Description *string    `json:"description,omitempty"`
	Price       float64    `json:"price" validate:"gte=0"`
	Category    string     `json:"category" validate:"required"`
	Images      []string   `json:"images"`
	SellerID    *string    `json:"seller_id,omitempty"`
	FlashSale   *FlashSale `json:"flash_sale,omitempty"`
	InStock     bool       `json:"in_stock"`
}

// CreateProductRequest is the payload for POST /products. The optional
// seller token arrives as a query parameter, not in the body.
type CreateProductRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description *string    `json:"description"`
	Price       float64    `json:"price" validate:"gte=0"`
	Category    string     `json:"category" validate:"required"`
	Images      []string   `json:"images"`
	FlashSale   *FlashSale `json:"flash_sale"`
	InStock     *bool      `json:"in_stock"`
}
