package money

import (
	"github.com/shopspring/decimal"

	"github.com/harborline/storefront-backend/pkg/enums"
)

// View is the wire shape for an amount: a fixed-point decimal string plus its currency.
type View struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currency_code"`
}

// FromCents converts an integer cents value into a two-decimal View.
func FromCents(cents int, currency enums.Currency) View {
	return View{
		Amount:       decimal.NewFromInt(int64(cents)).Shift(-2).StringFixed(2),
		CurrencyCode: currency.String(),
	}
}

// FromCentsPtr mirrors FromCents for optional amounts; nil in, nil out.
func FromCentsPtr(cents *int, currency enums.Currency) *View {
	if cents == nil {
		return nil
	}
	view := FromCents(*cents, currency)
	return &view
}
