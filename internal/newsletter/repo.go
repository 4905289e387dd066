package newsletter

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/harborline/storefront-backend/pkg/db/models"
)

// Repository persists confirmed newsletter subscribers.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repository to the provided GORM handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Upsert records a subscriber, refreshing the subscription time when the
// address already exists.
func (r *Repository) Upsert(ctx context.Context, subscriber *models.NewsletterSubscriber) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"subscribed_at"}),
		}).
		Create(subscriber).Error
}

// Count returns the subscriber total.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.NewsletterSubscriber{}).Count(&count).Error
	return count, err
}
