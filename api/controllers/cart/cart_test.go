package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/harborline/storefront-backend/api/middleware"
	cartsvc "github.com/harborline/storefront-backend/internal/cart"
	"github.com/harborline/storefront-backend/pkg/config"
	"github.com/harborline/storefront-backend/pkg/db/models"
	"github.com/harborline/storefront-backend/pkg/enums"
	pkgerrors "github.com/harborline/storefront-backend/pkg/errors"
)

type stubSubmitter struct {
	view          cartsvc.View
	err           error
	lastCartID    uuid.UUID
	lastSub       cartsvc.Submission
	lastPriceType enums.PriceType
}

func (s *stubSubmitter) Submit(ctx context.Context, cartID uuid.UUID, sub cartsvc.Submission, priceType enums.PriceType) (cartsvc.View, error) {
	s.lastCartID = cartID
	s.lastSub = sub
	s.lastPriceType = priceType
	return s.view, s.err
}

func (s *stubSubmitter) View(ctx context.Context, cartID uuid.UUID, priceType enums.PriceType) (cartsvc.View, error) {
	s.lastCartID = cartID
	s.lastPriceType = priceType
	return s.view, s.err
}

type stubCreator struct {
	record *models.Cart
	err    error
}

func (s *stubCreator) CreateCart(ctx context.Context) (*models.Cart, error) {
	return s.record, s.err
}

func tokenConfig() config.CartTokenConfig {
	return config.CartTokenConfig{
		Secret:            "test-secret",
		Issuer:            "storefront-test",
		ExpirationMinutes: 60,
	}
}

func withCart(req *http.Request, cartID uuid.UUID) *http.Request {
	return req.WithContext(middleware.WithCartID(req.Context(), cartID))
}

func TestCartCreateMintsToken(t *testing.T) {
	cartID := uuid.New()
	creator := &stubCreator{record: &models.Cart{ID: cartID, Status: enums.CartStatusActive}}
	sub := &stubSubmitter{view: cartsvc.View{ID: cartID.String(), Layout: cartsvc.LayoutEmpty}}
	handler := CartCreate(creator, sub, tokenConfig(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if resp.Header().Get("X-SF-Cart-Token") == "" {
		t.Fatal("expected cart token header on create")
	}

	var envelope struct {
		Data cartCreateResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Token == "" {
		t.Fatal("expected token in response body")
	}
	if envelope.Data.Cart.ID != cartID.String() {
		t.Fatalf("unexpected cart id: %s", envelope.Data.Cart.ID)
	}
}

func TestCartFetchSuccess(t *testing.T) {
	cartID := uuid.New()
	sub := &stubSubmitter{view: cartsvc.View{ID: cartID.String(), Layout: cartsvc.LayoutDetails}}
	handler := CartFetch(sub, nil)

	req := withCart(httptest.NewRequest(http.MethodGet, "/api/v1/cart?price_type=compare_at_per_quantity", nil), cartID)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if sub.lastCartID != cartID {
		t.Fatalf("expected cart id %s, got %s", cartID, sub.lastCartID)
	}
	if sub.lastPriceType != enums.PriceTypeCompareAtPerQuantity {
		t.Fatalf("unexpected price type %s", sub.lastPriceType)
	}
}

func TestCartFetchMissingContext(t *testing.T) {
	handler := CartFetch(&stubSubmitter{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestCartFetchInvalidPriceType(t *testing.T) {
	handler := CartFetch(&stubSubmitter{}, nil)

	req := withCart(httptest.NewRequest(http.MethodGet, "/api/v1/cart?price_type=bogus", nil), uuid.New())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartLinesAddSubmits(t *testing.T) {
	cartID := uuid.New()
	merchandiseID := uuid.New()
	sub := &stubSubmitter{view: cartsvc.View{ID: cartID.String(), Layout: cartsvc.LayoutDetails}}
	handler := CartLinesAdd(sub, nil)

	body := fmt.Sprintf(`{"lines": [{"merchandise_id": "%s", "quantity": 2}]}`, merchandiseID)
	req := withCart(httptest.NewRequest(http.MethodPost, "/api/v1/cart/lines/add", strings.NewReader(body)), cartID)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if sub.lastSub.Action != enums.MutationActionLinesAdd {
		t.Fatalf("unexpected action %s", sub.lastSub.Action)
	}
	if len(sub.lastSub.Adds) != 1 || sub.lastSub.Adds[0].MerchandiseID != merchandiseID {
		t.Fatalf("unexpected adds: %+v", sub.lastSub.Adds)
	}
	if sub.lastSub.Adds[0].Quantity != 2 {
		t.Fatalf("unexpected quantity %d", sub.lastSub.Adds[0].Quantity)
	}
}

func TestCartLinesAddRejectsEmpty(t *testing.T) {
	handler := CartLinesAdd(&stubSubmitter{}, nil)

	req := withCart(httptest.NewRequest(http.MethodPost, "/api/v1/cart/lines/add", strings.NewReader(`{"lines": []}`)), uuid.New())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartLinesUpdateRejectsZeroQuantity(t *testing.T) {
	body := fmt.Sprintf(`{"lines": [{"line_id": "%s", "quantity": 0}]}`, uuid.New())
	handler := CartLinesUpdate(&stubSubmitter{}, nil)

	req := withCart(httptest.NewRequest(http.MethodPost, "/api/v1/cart/lines/update", strings.NewReader(body)), uuid.New())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartLinesRemoveSubmits(t *testing.T) {
	cartID := uuid.New()
	lineID := uuid.New()
	sub := &stubSubmitter{view: cartsvc.View{ID: cartID.String(), Layout: cartsvc.LayoutEmpty}}
	handler := CartLinesRemove(sub, nil)

	body := fmt.Sprintf(`{"line_ids": ["%s"]}`, lineID)
	req := withCart(httptest.NewRequest(http.MethodPost, "/api/v1/cart/lines/remove", strings.NewReader(body)), cartID)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if sub.lastSub.Action != enums.MutationActionLinesRemove {
		t.Fatalf("unexpected action %s", sub.lastSub.Action)
	}
	if len(sub.lastSub.RemoveLineIDs) != 1 || sub.lastSub.RemoveLineIDs[0] != lineID {
		t.Fatalf("unexpected remove ids: %+v", sub.lastSub.RemoveLineIDs)
	}
}

func TestCartDiscountCodesUpdateAllowsClear(t *testing.T) {
	cartID := uuid.New()
	sub := &stubSubmitter{view: cartsvc.View{ID: cartID.String(), Layout: cartsvc.LayoutDetails}}
	handler := CartDiscountCodesUpdate(sub, nil)

	req := withCart(httptest.NewRequest(http.MethodPost, "/api/v1/cart/discount-codes/update", strings.NewReader(`{"codes": []}`)), cartID)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if sub.lastSub.Action != enums.MutationActionDiscountCodesUpdate {
		t.Fatalf("unexpected action %s", sub.lastSub.Action)
	}
	if sub.lastSub.DiscountCodes == nil || len(sub.lastSub.DiscountCodes) != 0 {
		t.Fatalf("expected explicit empty code list, got %+v", sub.lastSub.DiscountCodes)
	}
}

func TestCartSubmitErrorPropagates(t *testing.T) {
	sub := &stubSubmitter{err: pkgerrors.New(pkgerrors.CodeStateConflict, "cart is not active")}
	handler := CartLinesRemove(sub, nil)

	body := fmt.Sprintf(`{"line_ids": ["%s"]}`, uuid.New())
	req := withCart(httptest.NewRequest(http.MethodPost, "/api/v1/cart/lines/remove", strings.NewReader(body)), uuid.New())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}
