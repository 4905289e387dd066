package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harborline/storefront-backend/pkg/db/models"
	"github.com/harborline/storefront-backend/pkg/enums"
)

// Repository encapsulates cart and cart line persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repository to the provided GORM handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx scopes the repository to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts a new cart.
func (r *Repository) Create(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	if cart.Status == "" {
		cart.Status = enums.CartStatusActive
	}
	if cart.Currency == "" {
		cart.Currency = enums.CurrencyUSD
	}
	if err := r.db.WithContext(ctx).Create(cart).Error; err != nil {
		return nil, err
	}
	return cart, nil
}

// FindByID returns the cart with its lines and merchandise preloaded, in
// insertion order so line positions stay stable across reads.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_lines.created_at ASC, cart_lines.id ASC")
		}).
		Preload("Lines.Merchandise").
		Where("id = ?", id).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// Update saves the cart header row.
func (r *Repository) Update(ctx context.Context, cart *models.Cart) error {
	return r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ?", cart.ID).
		Updates(map[string]any{
			"status":          cart.Status,
			"checkout_url":    cart.CheckoutURL,
			"discount_codes":  cart.DiscountCodes,
			"total_quantity":  cart.TotalQuantity,
			"subtotal_cents":  cart.SubtotalCents,
			"discounts_cents": cart.DiscountsCents,
			"total_cents":     cart.TotalCents,
		}).Error
}

// CreateLine inserts a new cart line.
func (r *Repository) CreateLine(ctx context.Context, line *models.CartLine) error {
	return r.db.WithContext(ctx).Create(line).Error
}

// FindLine returns the line only if it belongs to the given cart.
func (r *Repository) FindLine(ctx context.Context, cartID, lineID uuid.UUID) (*models.CartLine, error) {
	var line models.CartLine
	err := r.db.WithContext(ctx).
		Where("id = ? AND cart_id = ?", lineID, cartID).
		First(&line).Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// UpdateLine saves quantity and totals for a line.
func (r *Repository) UpdateLine(ctx context.Context, line *models.CartLine) error {
	return r.db.WithContext(ctx).
		Model(&models.CartLine{}).
		Where("id = ?", line.ID).
		Updates(map[string]any{
			"quantity":           line.Quantity,
			"total_amount_cents": line.TotalAmountCents,
		}).Error
}

// DeleteLines removes the named lines from the cart.
func (r *Repository) DeleteLines(ctx context.Context, cartID uuid.UUID, lineIDs []uuid.UUID) error {
	if len(lineIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND id IN ?", cartID, lineIDs).
		Delete(&models.CartLine{}).Error
}

// FindMerchandise returns the merchandise row for a line add.
func (r *Repository) FindMerchandise(ctx context.Context, id uuid.UUID) (*models.Merchandise, error) {
	var merch models.Merchandise
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&merch).Error
	if err != nil {
		return nil, err
	}
	return &merch, nil
}

// FindLineByMerchandise returns the existing line for a merchandise id, if any.
func (r *Repository) FindLineByMerchandise(ctx context.Context, cartID, merchandiseID uuid.UUID) (*models.CartLine, error) {
	var line models.CartLine
	err := r.db.WithContext(ctx).
		Where("cart_id = ? AND merchandise_id = ?", cartID, merchandiseID).
		First(&line).Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}
