package cart

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/harborline/storefront-backend/internal/optimistic"
	"github.com/harborline/storefront-backend/pkg/db/models"
	"github.com/harborline/storefront-backend/pkg/enums"
)

func TestBuildViewOmitsCheckoutURLWhenAbsent(t *testing.T) {
	cart := cartWithLines(1)
	view := BuildView(Merge(cart, nil), nil, enums.PriceTypeTotal, time.Now())
	if view.CheckoutURL != nil {
		t.Fatal("absent checkout url must be omitted, not defaulted")
	}

	url := "https://checkout.example.com/c/abc"
	cart.CheckoutURL = &url
	view = BuildView(Merge(cart, nil), nil, enums.PriceTypeTotal, time.Now())
	if view.CheckoutURL == nil || *view.CheckoutURL != url {
		t.Fatalf("checkout url = %v, want %s", view.CheckoutURL, url)
	}
}

func TestBuildViewPriceTypeSelection(t *testing.T) {
	compareAt := 1999
	cart := &models.Cart{
		ID:            uuid.New(),
		Currency:      enums.CurrencyUSD,
		TotalQuantity: 2,
		Lines: []models.CartLine{
			{
				ID:                        uuid.New(),
				Quantity:                  2,
				AmountPerQuantityCents:    1500,
				TotalAmountCents:          3000,
				CompareAtPerQuantityCents: &compareAt,
			},
			{
				ID:                     uuid.New(),
				Quantity:               1,
				AmountPerQuantityCents: 500,
				TotalAmountCents:       500,
			},
		},
	}

	view := BuildView(Merge(cart, nil), nil, enums.PriceTypeTotal, time.Now())
	if view.Lines[0].Price == nil || view.Lines[0].Price.Amount != "30.00" {
		t.Fatalf("total price = %+v, want 30.00", view.Lines[0].Price)
	}

	view = BuildView(Merge(cart, nil), nil, enums.PriceTypeCompareAtPerQuantity, time.Now())
	if view.Lines[0].Price == nil || view.Lines[0].Price.Amount != "19.99" {
		t.Fatalf("compare-at price = %+v, want 19.99", view.Lines[0].Price)
	}
	if view.Lines[1].Price != nil {
		t.Fatal("line without compare-at must render no price")
	}
}

func TestBuildViewDiscountApplicability(t *testing.T) {
	percent := 10
	expired := time.Now().Add(-time.Hour)
	cart := cartWithLines(1)
	cart.DiscountCodes = pq.StringArray{"SAVE10", "EXPIRED", "UNKNOWN"}

	rows := []models.DiscountCode{
		{Code: "SAVE10", Active: true, PercentOff: &percent},
		{Code: "EXPIRED", Active: true, PercentOff: &percent, ExpiresAt: &expired},
	}

	view := BuildView(Merge(cart, nil), rows, enums.PriceTypeTotal, time.Now())
	if len(view.DiscountCodes) != 3 {
		t.Fatalf("expected 3 code entries, got %d", len(view.DiscountCodes))
	}
	want := map[string]bool{"SAVE10": true, "EXPIRED": false, "UNKNOWN": false}
	for _, dc := range view.DiscountCodes {
		if dc.Applicable != want[dc.Code] {
			t.Fatalf("code %s applicable = %v, want %v", dc.Code, dc.Applicable, want[dc.Code])
		}
	}
}

func TestBuildViewAddedLineRendersNoPriceOrMerchandise(t *testing.T) {
	cart := &models.Cart{ID: uuid.New(), Currency: enums.CurrencyUSD}
	overlay := optimistic.Overlay{
		uuid.New(): {Action: enums.LinePatchActionUpdate, Quantity: 2},
	}

	view := BuildView(Merge(cart, overlay), nil, enums.PriceTypeTotal, time.Now())
	if len(view.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(view.Lines))
	}
	line := view.Lines[0]
	if line.Price != nil || line.Merchandise != nil {
		t.Fatal("overlay-only line has no confirmed data to price or describe")
	}
	if !line.Added || !line.Pending {
		t.Fatal("overlay-only line should be marked added and pending")
	}
}
