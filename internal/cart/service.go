package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/harborline/storefront-backend/pkg/db/models"
	"github.com/harborline/storefront-backend/pkg/enums"
	pkgerrors "github.com/harborline/storefront-backend/pkg/errors"
	"github.com/harborline/storefront-backend/pkg/logger"
)

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	DB           *gorm.DB
	Repo         *Repository
	DiscountRepo *DiscountCodeRepository
	Logger       *logger.Logger
}

// Service exposes authoritative cart operations. Each mutation recomputes
// header totals inside the same transaction so readers never observe a cart
// whose totals disagree with its lines.
type Service interface {
	CreateCart(ctx context.Context) (*models.Cart, error)
	GetCart(ctx context.Context, cartID uuid.UUID) (*models.Cart, error)
	LinesAdd(ctx context.Context, cartID uuid.UUID, inputs []LineAddInput) (*models.Cart, error)
	LinesUpdate(ctx context.Context, cartID uuid.UUID, inputs []LineUpdateInput) (*models.Cart, error)
	LinesRemove(ctx context.Context, cartID uuid.UUID, lineIDs []uuid.UUID) (*models.Cart, error)
	DiscountCodesUpdate(ctx context.Context, cartID uuid.UUID, codes []string) (*models.Cart, error)
}

type service struct {
	db           *gorm.DB
	repo         *Repository
	discountRepo *DiscountCodeRepository
	logg         *logger.Logger
}

// NewService builds a cart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db handle is required")
	}
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	if params.DiscountRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount repo is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &service{
		db:           params.DB,
		repo:         params.Repo,
		discountRepo: params.DiscountRepo,
		logg:         params.Logger,
	}, nil
}

// CreateCart inserts an empty active cart.
func (s *service) CreateCart(ctx context.Context) (*models.Cart, error) {
	cart, err := s.repo.Create(ctx, &models.Cart{DiscountCodes: pq.StringArray{}})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create cart")
	}
	return cart, nil
}

// GetCart loads the cart with lines and merchandise.
func (s *service) GetCart(ctx context.Context, cartID uuid.UUID) (*models.Cart, error) {
	if cartID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart id is required")
	}
	cart, err := s.repo.FindByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	return cart, nil
}

// LinesAdd appends merchandise to the cart. Adding merchandise already in the
// cart folds into the existing line rather than duplicating it.
func (s *service) LinesAdd(ctx context.Context, cartID uuid.UUID, inputs []LineAddInput) (*models.Cart, error) {
	if len(inputs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one line is required")
	}
	for _, input := range inputs {
		if input.MerchandiseID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "merchandise id is required")
		}
		if input.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
		}
	}
	return s.mutate(ctx, cartID, func(tx *gorm.DB, cart *models.Cart) error {
		repo := s.repo.WithTx(tx)
		for _, input := range inputs {
			merch, err := repo.FindMerchandise(ctx, input.MerchandiseID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("merchandise %s not found", input.MerchandiseID))
				}
				return err
			}
			if !merch.Available {
				return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("merchandise %s is unavailable", input.MerchandiseID))
			}

			existing, err := repo.FindLineByMerchandise(ctx, cart.ID, merch.ID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if existing != nil && err == nil {
				existing.Quantity += input.Quantity
				existing.TotalAmountCents = existing.Quantity * existing.AmountPerQuantityCents
				if err := repo.UpdateLine(ctx, existing); err != nil {
					return err
				}
				continue
			}

			line := &models.CartLine{
				ID:                     input.LineID,
				CartID:                 cart.ID,
				MerchandiseID:          merch.ID,
				Quantity:               input.Quantity,
				AmountPerQuantityCents: merch.PriceCents,
				TotalAmountCents:       input.Quantity * merch.PriceCents,
			}
			if merch.CompareAtCents != nil {
				compareAt := *merch.CompareAtCents
				line.CompareAtPerQuantityCents = &compareAt
			}
			if line.ID == uuid.Nil {
				line.ID = uuid.New()
			}
			if err := repo.CreateLine(ctx, line); err != nil {
				return err
			}
		}
		return nil
	})
}

// LinesUpdate retargets existing lines to new quantities. Quantity zero is
// rejected; removal travels through LinesRemove.
func (s *service) LinesUpdate(ctx context.Context, cartID uuid.UUID, inputs []LineUpdateInput) (*models.Cart, error) {
	if len(inputs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one line is required")
	}
	for _, input := range inputs {
		if input.LineID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line id is required")
		}
		if input.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
		}
	}
	return s.mutate(ctx, cartID, func(tx *gorm.DB, cart *models.Cart) error {
		repo := s.repo.WithTx(tx)
		for _, input := range inputs {
			line, err := repo.FindLine(ctx, cart.ID, input.LineID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("line %s not found", input.LineID))
				}
				return err
			}
			line.Quantity = input.Quantity
			line.TotalAmountCents = line.Quantity * line.AmountPerQuantityCents
			if err := repo.UpdateLine(ctx, line); err != nil {
				return err
			}
		}
		return nil
	})
}

// LinesRemove drops the named lines from the cart. Removing a line that is
// already gone is not an error; the outcome is the same.
func (s *service) LinesRemove(ctx context.Context, cartID uuid.UUID, lineIDs []uuid.UUID) (*models.Cart, error) {
	if len(lineIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one line id is required")
	}
	for _, id := range lineIDs {
		if id == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line id is required")
		}
	}
	return s.mutate(ctx, cartID, func(tx *gorm.DB, cart *models.Cart) error {
		return s.repo.WithTx(tx).DeleteLines(ctx, cart.ID, lineIDs)
	})
}

// DiscountCodesUpdate replaces the cart's code list wholesale. The caller
// sends the full desired list; removing a code means resubmitting without it.
func (s *service) DiscountCodesUpdate(ctx context.Context, cartID uuid.UUID, codes []string) (*models.Cart, error) {
	deduped := make([]string, 0, len(codes))
	seen := make(map[string]bool, len(codes))
	for _, code := range codes {
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		deduped = append(deduped, code)
	}
	return s.mutate(ctx, cartID, func(tx *gorm.DB, cart *models.Cart) error {
		cart.DiscountCodes = pq.StringArray(deduped)
		return nil
	})
}

// mutate loads the cart, applies fn, recomputes totals, and persists the
// header, all inside one transaction. The returned cart is that
// transaction's snapshot, so callers never observe a concurrent mutation's
// totals.
func (s *service) mutate(ctx context.Context, cartID uuid.UUID, fn func(tx *gorm.DB, cart *models.Cart) error) (*models.Cart, error) {
	if cartID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart id is required")
	}

	var out *models.Cart
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		cart, err := repo.FindByID(ctx, cartID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
			}
			return err
		}
		if cart.Status != enums.CartStatusActive {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cart is no longer active")
		}

		if err := fn(tx, cart); err != nil {
			return err
		}

		refreshed, err := repo.FindByID(ctx, cartID)
		if err != nil {
			return err
		}
		refreshed.DiscountCodes = cart.DiscountCodes
		if err := s.recomputeTotals(ctx, tx, refreshed); err != nil {
			return err
		}
		if err := repo.Update(ctx, refreshed); err != nil {
			return err
		}
		out = refreshed
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "cart mutation")
	}
	return out, nil
}

// recomputeTotals derives header totals from the current lines and the
// applicable subset of the cart's discount codes.
func (s *service) recomputeTotals(ctx context.Context, tx *gorm.DB, cart *models.Cart) error {
	subtotal := 0
	quantity := 0
	for _, line := range cart.Lines {
		subtotal += line.TotalAmountCents
		quantity += line.Quantity
	}

	discounts, err := s.discountCents(ctx, tx, cart.DiscountCodes, subtotal)
	if err != nil {
		return err
	}
	if discounts > subtotal {
		discounts = subtotal
	}

	cart.SubtotalCents = subtotal
	cart.DiscountsCents = discounts
	cart.TotalCents = subtotal - discounts
	cart.TotalQuantity = quantity
	return nil
}

func (s *service) discountCents(ctx context.Context, tx *gorm.DB, codes []string, subtotal int) (int, error) {
	if len(codes) == 0 || subtotal == 0 {
		return 0, nil
	}
	rows, err := s.discountRepo.WithTx(tx).FindByCodes(ctx, codes)
	if err != nil {
		return 0, err
	}
	now := time.Now().UTC()
	total := 0
	for _, row := range rows {
		if !Applicable(row, now) {
			continue
		}
		switch {
		case row.PercentOff != nil:
			total += subtotal * *row.PercentOff / 100
		case row.AmountOffCents != nil:
			total += *row.AmountOffCents
		}
	}
	return total, nil
}
