package controllers

import (
	"net/http"

	"github.com/harborline/storefront-backend/api/responses"
	"github.com/harborline/storefront-backend/internal/menu"
	pkgerrors "github.com/harborline/storefront-backend/pkg/errors"
	"github.com/harborline/storefront-backend/pkg/logger"
)

// FooterFetch returns the assembled footer payload: brand block, menu
// sections, newsletter copy, and the legal line.
func FooterFetch(svc menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "menu service unavailable"))
			return
		}

		view, err := svc.Footer(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}
