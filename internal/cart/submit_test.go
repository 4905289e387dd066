package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/harborline/storefront-backend/internal/optimistic"
	"github.com/harborline/storefront-backend/pkg/db/models"
	"github.com/harborline/storefront-backend/pkg/enums"
	pkgerrors "github.com/harborline/storefront-backend/pkg/errors"
	"github.com/harborline/storefront-backend/pkg/logger"
	"github.com/harborline/storefront-backend/pkg/metrics"
)

type fakeRedis struct {
	hashes map[string]map[string]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{hashes: make(map[string]map[string]string)}
}

func (f *fakeRedis) HSet(_ context.Context, key, field, value string, _ time.Duration) error {
	if f.hashes[key] == nil {
		f.hashes[key] = make(map[string]string)
	}
	f.hashes[key][field] = value
	return nil
}

func (f *fakeRedis) HGetAll(_ context.Context, key string) (map[string]string, error) {
	out := make(map[string]string, len(f.hashes[key]))
	for k, v := range f.hashes[key] {
		out[k] = v
	}
	return out, nil
}

func (f *fakeRedis) HDel(_ context.Context, key string, fields ...string) error {
	for _, field := range fields {
		delete(f.hashes[key], field)
	}
	return nil
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.hashes, key)
	}
	return nil
}

func (f *fakeRedis) OverlayKey(cartID string) string { return "sf:overlay:" + cartID }

type fakeService struct {
	cart        *models.Cart
	err         error
	overlaySeen int
	overlay     *optimistic.Store
}

func (f *fakeService) snapshotDuringMutation(ctx context.Context, cartID uuid.UUID) {
	if f.overlay == nil {
		return
	}
	snap, err := f.overlay.Snapshot(ctx, cartID)
	if err == nil {
		f.overlaySeen = len(snap)
	}
}

func (f *fakeService) CreateCart(context.Context) (*models.Cart, error) { return f.cart, f.err }

func (f *fakeService) GetCart(context.Context, uuid.UUID) (*models.Cart, error) {
	return f.cart, f.err
}

func (f *fakeService) LinesAdd(ctx context.Context, cartID uuid.UUID, _ []LineAddInput) (*models.Cart, error) {
	f.snapshotDuringMutation(ctx, cartID)
	return f.cart, f.err
}

func (f *fakeService) LinesUpdate(ctx context.Context, cartID uuid.UUID, _ []LineUpdateInput) (*models.Cart, error) {
	f.snapshotDuringMutation(ctx, cartID)
	return f.cart, f.err
}

func (f *fakeService) LinesRemove(ctx context.Context, cartID uuid.UUID, _ []uuid.UUID) (*models.Cart, error) {
	f.snapshotDuringMutation(ctx, cartID)
	return f.cart, f.err
}

func (f *fakeService) DiscountCodesUpdate(ctx context.Context, cartID uuid.UUID, _ []string) (*models.Cart, error) {
	f.snapshotDuringMutation(ctx, cartID)
	return f.cart, f.err
}

func newTestSubmitter(t *testing.T, svc *fakeService) (*Submitter, *optimistic.Store, *optimistic.Notifier) {
	t.Helper()
	notifier := optimistic.NewNotifier()
	overlay, err := optimistic.NewStore(newFakeRedis(), time.Minute, notifier)
	if err != nil {
		t.Fatalf("construct overlay store: %v", err)
	}
	svc.overlay = overlay

	submitter, err := NewSubmitter(SubmitterParams{
		Service:      svc,
		Overlay:      overlay,
		Notifier:     notifier,
		DiscountRepo: NewDiscountCodeRepository(setupCartTestDB(t)),
		Metrics:      metrics.NewMutationMetrics(prometheus.NewRegistry()),
		Logger:       logger.New(logger.Options{ServiceName: "submit-test"}),
	})
	if err != nil {
		t.Fatalf("construct submitter: %v", err)
	}
	return submitter, overlay, notifier
}

func settledCart(quantity int) *models.Cart {
	cart := &models.Cart{ID: uuid.New(), Currency: enums.CurrencyUSD, TotalQuantity: quantity}
	if quantity > 0 {
		cart.Lines = []models.CartLine{{ID: uuid.New(), CartID: cart.ID, Quantity: quantity}}
	}
	return cart
}

func TestSubmitAppliesPatchDuringMutationAndClearsAfter(t *testing.T) {
	svc := &fakeService{cart: settledCart(5)}
	submitter, overlay, _ := newTestSubmitter(t, svc)
	ctx := context.Background()
	cartID := svc.cart.ID

	view, err := submitter.Submit(ctx, cartID, Submission{
		Action:  enums.MutationActionLinesUpdate,
		Updates: []LineUpdateInput{{LineID: svc.cart.Lines[0].ID, Quantity: 5}},
	}, enums.PriceTypeTotal)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if svc.overlaySeen != 1 {
		t.Fatalf("mutation observed %d patches in flight, want 1", svc.overlaySeen)
	}
	snap, err := overlay.Snapshot(ctx, cartID)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap) != 0 {
		t.Fatalf("overlay should be empty after settle, has %d patches", len(snap))
	}
	if view.Layout != LayoutDetails {
		t.Fatalf("layout = %s, want details", view.Layout)
	}
}

func TestSubmitClearsPatchWhenMutationFails(t *testing.T) {
	svc := &fakeService{cart: settledCart(1), err: pkgerrors.New(pkgerrors.CodeNotFound, "line not found")}
	submitter, overlay, _ := newTestSubmitter(t, svc)
	ctx := context.Background()
	cartID := svc.cart.ID

	_, err := submitter.Submit(ctx, cartID, Submission{
		Action:        enums.MutationActionLinesRemove,
		RemoveLineIDs: []uuid.UUID{uuid.New()},
	}, enums.PriceTypeTotal)
	if err == nil {
		t.Fatal("expected the mutation error to surface")
	}

	snap, snapErr := overlay.Snapshot(ctx, cartID)
	if snapErr != nil {
		t.Fatalf("snapshot: %v", snapErr)
	}
	if len(snap) != 0 {
		t.Fatalf("failed mutation must still clear its patches, %d remain", len(snap))
	}
}

func TestSubmitAssignsLineIDsForAdds(t *testing.T) {
	svc := &fakeService{cart: settledCart(2)}
	submitter, _, _ := newTestSubmitter(t, svc)

	_, err := submitter.Submit(context.Background(), svc.cart.ID, Submission{
		Action: enums.MutationActionLinesAdd,
		Adds:   []LineAddInput{{MerchandiseID: uuid.New(), Quantity: 2}},
	}, enums.PriceTypeTotal)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if svc.overlaySeen != 1 {
		t.Fatalf("add without line id should still patch a generated line, saw %d", svc.overlaySeen)
	}
}

func TestSubmitNotifiesForDiscountMutations(t *testing.T) {
	svc := &fakeService{cart: settledCart(1)}
	submitter, _, notifier := newTestSubmitter(t, svc)

	notified := 0
	unsubscribe := notifier.Subscribe(func(uuid.UUID) { notified++ })
	defer unsubscribe()

	_, err := submitter.Submit(context.Background(), svc.cart.ID, Submission{
		Action:        enums.MutationActionDiscountCodesUpdate,
		DiscountCodes: []string{"SAVE10"},
	}, enums.PriceTypeTotal)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if notified == 0 {
		t.Fatal("discount settle must notify view-model subscribers")
	}
}

func TestSubmitRejectsUnknownAction(t *testing.T) {
	svc := &fakeService{cart: settledCart(1)}
	submitter, _, _ := newTestSubmitter(t, svc)

	_, err := submitter.Submit(context.Background(), svc.cart.ID, Submission{Action: "cart-teleport"}, enums.PriceTypeTotal)
	if err == nil {
		t.Fatal("expected unknown action to be rejected")
	}
}
