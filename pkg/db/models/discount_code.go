package models

import (
	"time"

	"github.com/google/uuid"
)

// DiscountCode is a redeemable code; carts keep the raw strings they were given
// and applicability is resolved against this table at view time.
type DiscountCode struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code           string     `gorm:"column:code;not null;unique"`
	Active         bool       `gorm:"column:active;not null;default:true"`
	PercentOff     *int       `gorm:"column:percent_off"`
	AmountOffCents *int       `gorm:"column:amount_off_cents"`
	ExpiresAt      *time.Time `gorm:"column:expires_at"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
}
