package models

import (
	"time"

	"github.com/google/uuid"
)

// CartLine is one merchandise entry in a cart with its own quantity and cost.
type CartLine struct {
	ID                        uuid.UUID    `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID                    uuid.UUID    `gorm:"column:cart_id;type:uuid;not null;index"`
	MerchandiseID             uuid.UUID    `gorm:"column:merchandise_id;type:uuid;not null"`
	Merchandise               *Merchandise `gorm:"foreignKey:MerchandiseID"`
	Quantity                  int          `gorm:"column:quantity;not null"`
	AmountPerQuantityCents    int          `gorm:"column:amount_per_quantity_cents;not null"`
	CompareAtPerQuantityCents *int         `gorm:"column:compare_at_per_quantity_cents"`
	TotalAmountCents          int          `gorm:"column:total_amount_cents;not null"`
	CreatedAt                 time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt                 time.Time    `gorm:"column:updated_at;autoUpdateTime"`
}
