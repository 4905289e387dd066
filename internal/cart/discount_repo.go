package cart

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/harborline/storefront-backend/pkg/db/models"
)

// DiscountCodeRepository resolves raw code strings against the discount table.
type DiscountCodeRepository struct {
	db *gorm.DB
}

// NewDiscountCodeRepository binds the repository to the provided GORM handle.
func NewDiscountCodeRepository(db *gorm.DB) *DiscountCodeRepository {
	return &DiscountCodeRepository{db: db}
}

// WithTx scopes the repository to the provided transaction.
func (r *DiscountCodeRepository) WithTx(tx *gorm.DB) *DiscountCodeRepository {
	if tx == nil {
		return r
	}
	return &DiscountCodeRepository{db: tx}
}

// FindByCodes returns the discount rows matching the given codes. Codes are
// matched case-insensitively; unknown codes are simply absent from the result.
func (r *DiscountCodeRepository) FindByCodes(ctx context.Context, codes []string) ([]models.DiscountCode, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	normalized := make([]string, 0, len(codes))
	for _, code := range codes {
		normalized = append(normalized, normalizeCode(code))
	}
	var rows []models.DiscountCode
	err := r.db.WithContext(ctx).
		Where("UPPER(code) IN ?", normalized).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Applicable reports whether the discount can reduce a cart total right now.
func Applicable(code models.DiscountCode, now time.Time) bool {
	if !code.Active {
		return false
	}
	if code.ExpiresAt != nil && !code.ExpiresAt.After(now) {
		return false
	}
	return code.PercentOff != nil || code.AmountOffCents != nil
}
