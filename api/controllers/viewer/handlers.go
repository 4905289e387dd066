package viewer

import (
	"net/http"

	"github.com/harborline/storefront-backend/api/middleware"
	"github.com/harborline/storefront-backend/api/responses"
	"github.com/harborline/storefront-backend/api/validators"
	viewersvc "github.com/harborline/storefront-backend/internal/viewer"
	"github.com/harborline/storefront-backend/pkg/enums"
	pkgerrors "github.com/harborline/storefront-backend/pkg/errors"
	"github.com/harborline/storefront-backend/pkg/logger"
)

type keyResponse struct {
	Handled bool           `json:"handled"`
	View    viewersvc.View `json:"view"`
}

// ViewerOpen opens the zoom viewer on a product, selecting the requested
// media item or the first renderable one.
func ViewerOpen(svc viewersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID, err := requireViewer(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload openRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Open(r.Context(), viewerID, payload.ProductID, payload.MediaID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// ViewerClose dismisses the viewer session.
func ViewerClose(svc viewersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID, err := requireViewer(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Close(r.Context(), viewerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// ViewerNext advances the selection, wrapping from last to first.
func ViewerNext(svc viewersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return navigate(svc, logg, func(r *http.Request, viewerID string, scroll *viewersvc.ScrollContext) (viewersvc.View, error) {
		return svc.Next(r.Context(), viewerID, scroll)
	})
}

// ViewerPrev steps the selection back, wrapping from first to last.
func ViewerPrev(svc viewersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return navigate(svc, logg, func(r *http.Request, viewerID string, scroll *viewersvc.ScrollContext) (viewersvc.View, error) {
		return svc.Prev(r.Context(), viewerID, scroll)
	})
}

// ViewerSelect jumps the selection to a specific media item.
func ViewerSelect(svc viewersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID, err := requireViewer(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload selectRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Select(r.Context(), viewerID, payload.MediaID, payload.Scroll)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// ViewerKey routes a keyboard event to the session. Keys the viewer does not
// own, or keys arriving while the viewer is closed, come back unhandled so
// the client lets them propagate.
func ViewerKey(svc viewersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID, err := requireViewer(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload keyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, handled, err := svc.HandleKey(r.Context(), viewerID, enums.ViewerKey(payload.Key), payload.Scroll)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, keyResponse{Handled: handled, View: view})
	}
}

func navigate(svc viewersvc.Service, logg *logger.Logger, step func(*http.Request, string, *viewersvc.ScrollContext) (viewersvc.View, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID, err := requireViewer(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload navigateRequest
		if r.ContentLength != 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		view, err := step(r, viewerID, payload.Scroll)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

func requireViewer(r *http.Request, svc viewersvc.Service) (string, error) {
	if svc == nil {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "viewer service unavailable")
	}
	viewerID := middleware.ViewerIDFromContext(r.Context())
	if viewerID == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "viewer identity missing")
	}
	return viewerID, nil
}
