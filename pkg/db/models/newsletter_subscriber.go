package models

import (
	"time"

	"github.com/google/uuid"
)

// NewsletterSubscriber records a confirmed provider subscription.
type NewsletterSubscriber struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string    `gorm:"column:email;not null;unique"`
	SubscribedAt time.Time `gorm:"column:subscribed_at;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
