package cart

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/harborline/storefront-backend/internal/optimistic"
	"github.com/harborline/storefront-backend/pkg/db/models"
	"github.com/harborline/storefront-backend/pkg/enums"
)

func cartWithLines(quantities ...int) *models.Cart {
	cart := &models.Cart{ID: uuid.New()}
	for _, q := range quantities {
		cart.Lines = append(cart.Lines, models.CartLine{
			ID:       uuid.New(),
			CartID:   cart.ID,
			Quantity: q,
		})
		cart.TotalQuantity += q
	}
	return cart
}

func TestLayoutBoundaries(t *testing.T) {
	tests := []struct {
		name            string
		totalQuantity   int
		optimisticCount int
		want            Layout
	}{
		{"confirmed contents", 2, 1, LayoutDetails},
		{"empty with pending add", 0, 1, LayoutSuppressed},
		{"empty and idle", 0, 0, LayoutEmpty},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			merged := MergedCart{
				Cart:                &models.Cart{TotalQuantity: tc.totalQuantity},
				OptimisticLineCount: tc.optimisticCount,
			}
			if got := merged.Layout(); got != tc.want {
				t.Fatalf("layout = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestMergeAppliesUpdatePatchQuantity(t *testing.T) {
	cart := cartWithLines(3)
	lineID := cart.Lines[0].ID
	overlay := optimistic.Overlay{
		lineID: {Action: enums.LinePatchActionUpdate, Quantity: 7},
	}

	merged := Merge(cart, overlay)
	if len(merged.Lines) != 1 {
		t.Fatalf("expected 1 merged line, got %d", len(merged.Lines))
	}
	line := merged.Lines[0]
	if line.Quantity != 7 {
		t.Fatalf("displayed quantity = %d, want patch target 7", line.Quantity)
	}
	if !line.Pending {
		t.Fatal("line with live patch should be pending")
	}
	if line.PrevQuantity() != 6 || line.NextQuantity() != 8 {
		t.Fatalf("adjuster targets = %d/%d, want 6/8", line.PrevQuantity(), line.NextQuantity())
	}
}

func TestMergeHidesRemovedLineButKeepsItMounted(t *testing.T) {
	cart := cartWithLines(1, 2)
	removed := cart.Lines[0].ID
	overlay := optimistic.Overlay{
		removed: {Action: enums.LinePatchActionRemove},
	}

	merged := Merge(cart, overlay)
	if len(merged.Lines) != 2 {
		t.Fatalf("removed line must stay in the slice, got %d lines", len(merged.Lines))
	}
	if !merged.Lines[0].Hidden {
		t.Fatal("line with pending remove should be hidden")
	}
	if merged.OptimisticLineCount != 1 {
		t.Fatalf("optimistic line count = %d, want 1", merged.OptimisticLineCount)
	}
}

func TestMergeCountsOverlayOnlyAdds(t *testing.T) {
	cart := &models.Cart{ID: uuid.New()}
	newLine := uuid.New()
	overlay := optimistic.Overlay{
		newLine: {Action: enums.LinePatchActionUpdate, Quantity: 2},
	}

	merged := Merge(cart, overlay)
	if merged.OptimisticLineCount != 1 {
		t.Fatalf("optimistic line count = %d, want 1", merged.OptimisticLineCount)
	}
	if len(merged.Lines) != 1 || !merged.Lines[0].Added {
		t.Fatal("overlay-only patch should surface as an added line")
	}
	if merged.Layout() != LayoutSuppressed {
		t.Fatalf("layout = %s, want suppressed during in-flight add", merged.Layout())
	}
}

func TestMergeOrdersOverlayAddsByAppliedAt(t *testing.T) {
	cart := cartWithLines(1)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	third := uuid.New()
	first := uuid.New()
	second := uuid.New()
	overlay := optimistic.Overlay{
		third:  {Action: enums.LinePatchActionUpdate, Quantity: 3, AppliedAt: base.Add(2 * time.Second)},
		first:  {Action: enums.LinePatchActionUpdate, Quantity: 1, AppliedAt: base},
		second: {Action: enums.LinePatchActionUpdate, Quantity: 2, AppliedAt: base.Add(time.Second)},
	}

	for attempt := 0; attempt < 5; attempt++ {
		merged := Merge(cart, overlay)
		if len(merged.Lines) != 4 {
			t.Fatalf("merged line count = %d, want 4", len(merged.Lines))
		}
		got := []uuid.UUID{merged.Lines[1].Line.ID, merged.Lines[2].Line.ID, merged.Lines[3].Line.ID}
		want := []uuid.UUID{first, second, third}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("attempt %d: added line %d = %s, want %s", attempt, i, got[i], want[i])
			}
		}
	}
}

func TestMergeOrdersSimultaneousAddsByLineID(t *testing.T) {
	cart := &models.Cart{ID: uuid.New()}
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	a := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	b := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	overlay := optimistic.Overlay{
		b: {Action: enums.LinePatchActionUpdate, Quantity: 2, AppliedAt: at},
		a: {Action: enums.LinePatchActionUpdate, Quantity: 1, AppliedAt: at},
	}

	merged := Merge(cart, overlay)
	if len(merged.Lines) != 2 {
		t.Fatalf("merged line count = %d, want 2", len(merged.Lines))
	}
	if merged.Lines[0].Line.ID != a || merged.Lines[1].Line.ID != b {
		t.Fatalf("equal timestamps should fall back to id order, got %s then %s",
			merged.Lines[0].Line.ID, merged.Lines[1].Line.ID)
	}
}

func TestDecrementDisabledExactly(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		pending  bool
		want     bool
	}{
		{"quantity one idle", 1, false, true},
		{"quantity two idle", 2, false, false},
		{"quantity two pending", 2, true, true},
		{"quantity zero idle", 0, false, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			line := MergedLine{Quantity: tc.quantity, Pending: tc.pending}
			if got := line.DecrementDisabled(); got != tc.want {
				t.Fatalf("decrement disabled = %v, want %v", got, tc.want)
			}
			if line.IncrementDisabled() != tc.pending {
				t.Fatalf("increment disabled should track pending only")
			}
		})
	}
}

func TestPrevQuantityFloorsAtZero(t *testing.T) {
	line := MergedLine{Quantity: 0}
	if line.PrevQuantity() != 0 {
		t.Fatalf("prev quantity = %d, want 0", line.PrevQuantity())
	}
}
