package viewer

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harborline/storefront-backend/pkg/db/models"
)

// Repository reads a product's ordered media collection.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repository to the provided GORM handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByProduct returns the product's media in rail order. Rows whose
// content type is not renderable are filtered out here so every downstream
// index computation sees only real rail entries.
func (r *Repository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductMedia, error) {
	var rows []models.ProductMedia
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("position ASC, created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	filtered := rows[:0]
	for _, row := range rows {
		if row.ContentType.IsValid() {
			filtered = append(filtered, row)
		}
	}
	return filtered, nil
}
