package models

import (
	"github.com/google/uuid"
)

// Category groups products (windows, doors, accessories).
type Category struct {
	BaseModel
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Product describes a window/construction catalog position. Price and name
// are snapshotted onto order items at order-creation time, so later edits
// here never alter historical orders.
type Product struct {
	BaseModel
	CategoryID    *uuid.UUID `gorm:"type:uuid;index" json:"category_id"`
	Category      *Category  `json:"category,omitempty"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	BasePrice     float64    `json:"base_price"`
	OldPrice      *float64   `json:"old_price,omitempty"`
	Discount      int        `json:"discount"` // percentage
	Width         int        `json:"width"`
	Height        int        `json:"height"`
	FrameMaterial string     `json:"frame_material"`
	GlassType     string     `json:"glass_type"`
	ChambersCount int        `json:"chambers_count"`
	ImageURL      string     `json:"image_url"`
	Rating        float64    `json:"rating"`
	ReviewCount   int        `json:"review_count"`
	IsSale        bool       `json:"is_sale"`
	DeliveryTime  string     `json:"delivery_time"`
	Article       int        `json:"article"`
}

// Review is a customer product review; Reply holds the manager's answer.
type Review struct {
	BaseModel
	ProductID  uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	AuthorName string    `json:"author_name"`
	Rating     int       `json:"rating"`
	Text       string    `json:"text"`
	Reply      string    `json:"reply"`
}
