package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/harborline/storefront-backend/pkg/enums"
)

// Cart is the authoritative cart snapshot owned by a storefront client.
type Cart struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Status         enums.CartStatus `gorm:"column:status;type:cart_status;not null;default:'active'"`
	Currency       enums.Currency   `gorm:"column:currency;not null;default:'USD'"`
	CheckoutURL    *string          `gorm:"column:checkout_url"`
	DiscountCodes  pq.StringArray   `gorm:"column:discount_codes;type:text[]"`
	TotalQuantity  int              `gorm:"column:total_quantity;not null;default:0"`
	SubtotalCents  int              `gorm:"column:subtotal_cents;not null;default:0"`
	DiscountsCents int              `gorm:"column:discounts_cents;not null;default:0"`
	TotalCents     int              `gorm:"column:total_cents;not null;default:0"`
	Lines          []CartLine       `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
