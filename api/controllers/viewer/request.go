package viewer

import (
	"github.com/google/uuid"

	viewersvc "github.com/harborline/storefront-backend/internal/viewer"
)

type openRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	MediaID   uuid.UUID `json:"media_id"`
}

type navigateRequest struct {
	Scroll *viewersvc.ScrollContext `json:"scroll"`
}

type selectRequest struct {
	MediaID uuid.UUID                `json:"media_id" validate:"required"`
	Scroll  *viewersvc.ScrollContext `json:"scroll"`
}

type keyRequest struct {
	Key    string                   `json:"key" validate:"required"`
	Scroll *viewersvc.ScrollContext `json:"scroll"`
}
