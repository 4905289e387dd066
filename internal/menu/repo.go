package menu

import (
	"context"

	"gorm.io/gorm"

	"github.com/harborline/storefront-backend/pkg/db/models"
)

// Repository reads the footer menu tree.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repository to the provided GORM handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every menu item ordered for stable section and entry layout.
func (r *Repository) List(ctx context.Context) ([]models.MenuItem, error) {
	var rows []models.MenuItem
	err := r.db.WithContext(ctx).
		Order("position ASC, created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
