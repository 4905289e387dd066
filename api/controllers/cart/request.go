package cart

import (
	"net/http"

	"github.com/google/uuid"

	cartsvc "github.com/harborline/storefront-backend/internal/cart"
	"github.com/harborline/storefront-backend/pkg/enums"
	pkgerrors "github.com/harborline/storefront-backend/pkg/errors"
)

type lineAddPayload struct {
	MerchandiseID uuid.UUID `json:"merchandise_id" validate:"required"`
	Quantity      int       `json:"quantity" validate:"required,min=1"`
}

type linesAddRequest struct {
	Lines []lineAddPayload `json:"lines" validate:"required,min=1,dive"`
}

type lineUpdatePayload struct {
	LineID   uuid.UUID `json:"line_id" validate:"required"`
	Quantity int       `json:"quantity" validate:"required,min=1"`
}

type linesUpdateRequest struct {
	Lines []lineUpdatePayload `json:"lines" validate:"required,min=1,dive"`
}

type linesRemoveRequest struct {
	LineIDs []uuid.UUID `json:"line_ids" validate:"required,min=1"`
}

type discountCodesRequest struct {
	Codes []string `json:"codes"`
}

func toLineAddInputs(lines []lineAddPayload) []cartsvc.LineAddInput {
	inputs := make([]cartsvc.LineAddInput, 0, len(lines))
	for _, line := range lines {
		inputs = append(inputs, cartsvc.LineAddInput{
			MerchandiseID: line.MerchandiseID,
			Quantity:      line.Quantity,
		})
	}
	return inputs
}

func toLineUpdateInputs(lines []lineUpdatePayload) []cartsvc.LineUpdateInput {
	inputs := make([]cartsvc.LineUpdateInput, 0, len(lines))
	for _, line := range lines {
		inputs = append(inputs, cartsvc.LineUpdateInput{
			LineID:   line.LineID,
			Quantity: line.Quantity,
		})
	}
	return inputs
}

func priceTypeFromQuery(r *http.Request) (enums.PriceType, error) {
	priceType, err := enums.ParsePriceType(r.URL.Query().Get("price_type"))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price type")
	}
	return priceType, nil
}
