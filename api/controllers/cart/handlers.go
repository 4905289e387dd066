package cart

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/harborline/storefront-backend/api/middleware"
	"github.com/harborline/storefront-backend/api/responses"
	"github.com/harborline/storefront-backend/api/validators"
	cartsvc "github.com/harborline/storefront-backend/internal/cart"
	"github.com/harborline/storefront-backend/pkg/auth/carttoken"
	"github.com/harborline/storefront-backend/pkg/config"
	"github.com/harborline/storefront-backend/pkg/db/models"
	"github.com/harborline/storefront-backend/pkg/enums"
	pkgerrors "github.com/harborline/storefront-backend/pkg/errors"
	"github.com/harborline/storefront-backend/pkg/logger"
)

const cartTokenHeader = "X-SF-Cart-Token"

// submitter is the cart surface the handlers depend on: optimistic mutation
// submission and merged view reads.
type submitter interface {
	Submit(ctx context.Context, cartID uuid.UUID, sub cartsvc.Submission, priceType enums.PriceType) (cartsvc.View, error)
	View(ctx context.Context, cartID uuid.UUID, priceType enums.PriceType) (cartsvc.View, error)
}

type creator interface {
	CreateCart(ctx context.Context) (*models.Cart, error)
}

// CartCreate provisions a fresh cart and mints the token that binds the
// client to it. The token rides both the response body and the cart token
// header.
func CartCreate(svc creator, sub submitter, cfg config.CartTokenConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || sub == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		priceType, err := priceTypeFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.CreateCart(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token, err := carttoken.Mint(cfg, time.Now(), record.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint cart token"))
			return
		}

		view, err := sub.View(r.Context(), record.ID, priceType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set(cartTokenHeader, token)
		responses.WriteSuccessStatus(w, http.StatusCreated, cartCreateResponse{Token: token, Cart: view})
	}
}

// CartFetch returns the merged cart view, with any in-flight optimistic
// patches layered over the stored lines.
func CartFetch(sub submitter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cartID, priceType, err := cartRequestContext(r, sub)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := sub.View(r.Context(), cartID, priceType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// CartLinesAdd submits new lines for the cart.
func CartLinesAdd(sub submitter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cartID, priceType, err := cartRequestContext(r, sub)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload linesAddRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := sub.Submit(r.Context(), cartID, cartsvc.Submission{
			Action: enums.MutationActionLinesAdd,
			Adds:   toLineAddInputs(payload.Lines),
		}, priceType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// CartLinesUpdate submits quantity changes for existing lines.
func CartLinesUpdate(sub submitter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cartID, priceType, err := cartRequestContext(r, sub)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload linesUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := sub.Submit(r.Context(), cartID, cartsvc.Submission{
			Action:  enums.MutationActionLinesUpdate,
			Updates: toLineUpdateInputs(payload.Lines),
		}, priceType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// CartLinesRemove submits line removals.
func CartLinesRemove(sub submitter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cartID, priceType, err := cartRequestContext(r, sub)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload linesRemoveRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := sub.Submit(r.Context(), cartID, cartsvc.Submission{
			Action:        enums.MutationActionLinesRemove,
			RemoveLineIDs: payload.LineIDs,
		}, priceType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// CartDiscountCodesUpdate replaces the cart's discount codes wholesale. An
// empty list clears them.
func CartDiscountCodesUpdate(sub submitter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cartID, priceType, err := cartRequestContext(r, sub)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload discountCodesRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := sub.Submit(r.Context(), cartID, cartsvc.Submission{
			Action:        enums.MutationActionDiscountCodesUpdate,
			DiscountCodes: payload.Codes,
		}, priceType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

func cartRequestContext(r *http.Request, sub submitter) (uuid.UUID, enums.PriceType, error) {
	if sub == nil {
		return uuid.Nil, "", pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable")
	}
	cartID := middleware.CartIDFromContext(r.Context())
	if cartID == uuid.Nil {
		return uuid.Nil, "", pkgerrors.New(pkgerrors.CodeUnauthorized, "cart context missing")
	}
	priceType, err := priceTypeFromQuery(r)
	if err != nil {
		return uuid.Nil, "", err
	}
	return cartID, priceType, nil
}
