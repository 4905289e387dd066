package cart

import (
	"time"

	"github.com/harborline/storefront-backend/pkg/db/models"
	"github.com/harborline/storefront-backend/pkg/enums"
	"github.com/harborline/storefront-backend/pkg/money"
	"github.com/harborline/storefront-backend/pkg/types"
)

// View is the merged cart shaped for clients.
type View struct {
	ID                  string             `json:"id"`
	Layout              Layout             `json:"layout"`
	TotalQuantity       int                `json:"total_quantity"`
	OptimisticLineCount int                `json:"optimistic_line_count"`
	CheckoutURL         *string            `json:"checkout_url,omitempty"`
	Cost                CostView           `json:"cost"`
	Lines               []LineView         `json:"lines"`
	DiscountCodes       []DiscountCodeView `json:"discount_codes"`
}

// CostView carries the cart's money totals.
type CostView struct {
	Subtotal money.View `json:"subtotal"`
	Discount money.View `json:"discount"`
	Total    money.View `json:"total"`
}

// LineView is one merged line with its quantity adjuster state resolved.
type LineView struct {
	ID                string           `json:"id"`
	Quantity          int              `json:"quantity"`
	PrevQuantity      int              `json:"prev_quantity"`
	NextQuantity      int              `json:"next_quantity"`
	DecrementDisabled bool             `json:"decrement_disabled"`
	IncrementDisabled bool             `json:"increment_disabled"`
	Hidden            bool             `json:"hidden"`
	Pending           bool             `json:"pending"`
	Added             bool             `json:"added"`
	Merchandise       *MerchandiseView `json:"merchandise,omitempty"`
	Price             *money.View      `json:"price,omitempty"`
}

// MerchandiseView is the line's product data.
type MerchandiseView struct {
	ProductID       string                `json:"product_id"`
	ProductTitle    string                `json:"product_title"`
	Title           string                `json:"title"`
	ImageURL        *string               `json:"image_url,omitempty"`
	ImageAlt        *string               `json:"image_alt,omitempty"`
	SelectedOptions types.SelectedOptions `json:"selected_options"`
}

// DiscountCodeView pairs an applied code with its current applicability.
type DiscountCodeView struct {
	Code       string `json:"code"`
	Applicable bool   `json:"applicable"`
}

// BuildView shapes a merged cart for the API. priceType picks which money
// field each line shows; a line whose selected field is absent shows none.
func BuildView(merged MergedCart, discounts []models.DiscountCode, priceType enums.PriceType, now time.Time) View {
	cart := merged.Cart
	view := View{
		ID:                  cart.ID.String(),
		Layout:              merged.Layout(),
		TotalQuantity:       cart.TotalQuantity,
		OptimisticLineCount: merged.OptimisticLineCount,
		CheckoutURL:         cart.CheckoutURL,
		Cost: CostView{
			Subtotal: money.FromCents(cart.SubtotalCents, cart.Currency),
			Discount: money.FromCents(cart.DiscountsCents, cart.Currency),
			Total:    money.FromCents(cart.TotalCents, cart.Currency),
		},
		Lines:         make([]LineView, 0, len(merged.Lines)),
		DiscountCodes: make([]DiscountCodeView, 0, len(cart.DiscountCodes)),
	}

	for _, ml := range merged.Lines {
		view.Lines = append(view.Lines, buildLineView(ml, cart.Currency, priceType))
	}

	byCode := make(map[string]models.DiscountCode, len(discounts))
	for _, row := range discounts {
		byCode[normalizeCode(row.Code)] = row
	}
	for _, code := range cart.DiscountCodes {
		row, known := byCode[normalizeCode(code)]
		view.DiscountCodes = append(view.DiscountCodes, DiscountCodeView{
			Code:       code,
			Applicable: known && Applicable(row, now),
		})
	}

	return view
}

func buildLineView(ml MergedLine, currency enums.Currency, priceType enums.PriceType) LineView {
	lv := LineView{
		ID:                ml.Line.ID.String(),
		Quantity:          ml.Quantity,
		PrevQuantity:      ml.PrevQuantity(),
		NextQuantity:      ml.NextQuantity(),
		DecrementDisabled: ml.DecrementDisabled(),
		IncrementDisabled: ml.IncrementDisabled(),
		Hidden:            ml.Hidden,
		Pending:           ml.Pending,
		Added:             ml.Added,
	}

	if merch := ml.Line.Merchandise; merch != nil {
		lv.Merchandise = &MerchandiseView{
			ProductID:       merch.ProductID.String(),
			ProductTitle:    merch.ProductTitle,
			Title:           merch.Title,
			ImageURL:        merch.ImageURL,
			ImageAlt:        merch.ImageAlt,
			SelectedOptions: merch.SelectedOptions,
		}
	}

	if !ml.Added {
		switch priceType {
		case enums.PriceTypeCompareAtPerQuantity:
			if ml.Line.CompareAtPerQuantityCents != nil {
				lv.Price = money.FromCentsPtr(ml.Line.CompareAtPerQuantityCents, currency)
			}
		default:
			price := money.FromCents(ml.Line.TotalAmountCents, currency)
			lv.Price = &price
		}
	}

	return lv
}
