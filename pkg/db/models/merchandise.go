package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/harborline/storefront-backend/pkg/types"
)

// Merchandise is the product/variant data a cart line points at.
type Merchandise struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID       uuid.UUID             `gorm:"column:product_id;type:uuid;not null;index"`
	ProductTitle    string                `gorm:"column:product_title;not null"`
	Title           string                `gorm:"column:title;not null"`
	ImageURL        *string               `gorm:"column:image_url"`
	ImageAlt        *string               `gorm:"column:image_alt"`
	SelectedOptions types.SelectedOptions `gorm:"column:selected_options;type:jsonb;serializer:json"`
	PriceCents      int                   `gorm:"column:price_cents;not null"`
	CompareAtCents  *int                  `gorm:"column:compare_at_cents"`
	Available       bool                  `gorm:"column:available;not null;default:true"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the singular table name.
func (Merchandise) TableName() string { return "merchandise" }
