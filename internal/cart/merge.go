package cart

import (
	"sort"

	"github.com/google/uuid"

	"github.com/harborline/storefront-backend/internal/optimistic"
	"github.com/harborline/storefront-backend/pkg/db/models"
	"github.com/harborline/storefront-backend/pkg/enums"
)

// Layout names the top-level cart rendering branch.
type Layout string

const (
	// LayoutDetails renders the full line item view.
	LayoutDetails Layout = "details"
	// LayoutEmpty renders the empty-cart view.
	LayoutEmpty Layout = "empty"
	// LayoutSuppressed renders neither branch: the authoritative cart is
	// empty but an optimistic add is in flight, so showing the empty state
	// would flicker and showing details would claim unconfirmed contents.
	LayoutSuppressed Layout = "suppressed"
)

// MergedLine is one cart line with the optimistic overlay applied.
type MergedLine struct {
	Line models.CartLine
	// Quantity is the displayed quantity: the patch target if an update is
	// pending, the authoritative quantity otherwise.
	Quantity int
	// Hidden marks a line with a pending remove. The line stays in the
	// slice so its submission state survives until the mutation settles.
	Hidden bool
	// Pending reports a mutation in flight for this line.
	Pending bool
	// Added marks a line that exists only in the overlay so far.
	Added bool
}

// PrevQuantity is the decrement target, floored at zero.
func (l MergedLine) PrevQuantity() int {
	if l.Quantity <= 0 {
		return 0
	}
	return l.Quantity - 1
}

// NextQuantity is the increment target.
func (l MergedLine) NextQuantity() int { return l.Quantity + 1 }

// DecrementDisabled reports whether the decrement control is inert: the
// displayed quantity has reached the floor or a mutation is already pending.
func (l MergedLine) DecrementDisabled() bool { return l.Quantity <= 1 || l.Pending }

// IncrementDisabled reports whether the increment control is inert.
func (l MergedLine) IncrementDisabled() bool { return l.Pending }

// MergedCart is the authoritative snapshot combined with the overlay.
type MergedCart struct {
	Cart  *models.Cart
	Lines []MergedLine
	// OptimisticLineCount counts lines visible after the overlay is
	// applied, including overlay-only adds and excluding pending removes.
	OptimisticLineCount int
}

// Merge applies the overlay to an authoritative cart snapshot. Patch keys
// that match no authoritative line become overlay-only added lines.
func Merge(cart *models.Cart, overlay optimistic.Overlay) MergedCart {
	merged := MergedCart{Cart: cart}
	seen := make(map[uuid.UUID]bool, len(cart.Lines))

	for _, line := range cart.Lines {
		seen[line.ID] = true
		ml := MergedLine{Line: line, Quantity: line.Quantity}
		if patch, ok := overlay[line.ID]; ok {
			ml.Pending = true
			switch patch.Action {
			case enums.LinePatchActionRemove:
				ml.Hidden = true
			default:
				ml.Quantity = patch.Quantity
			}
		}
		merged.Lines = append(merged.Lines, ml)
		if !ml.Hidden {
			merged.OptimisticLineCount++
		}
	}

	// Overlay-only adds render after the authoritative lines, in the order
	// the patches were applied. Map iteration order must not leak into the
	// view.
	added := make([]uuid.UUID, 0, len(overlay))
	for lineID, patch := range overlay {
		if seen[lineID] || patch.Action == enums.LinePatchActionRemove {
			continue
		}
		added = append(added, lineID)
	}
	sort.Slice(added, func(i, j int) bool {
		a, b := overlay[added[i]], overlay[added[j]]
		if !a.AppliedAt.Equal(b.AppliedAt) {
			return a.AppliedAt.Before(b.AppliedAt)
		}
		return added[i].String() < added[j].String()
	})
	for _, lineID := range added {
		merged.Lines = append(merged.Lines, MergedLine{
			Line:     models.CartLine{ID: lineID, CartID: cart.ID},
			Quantity: overlay[lineID].Quantity,
			Pending:  true,
			Added:    true,
		})
		merged.OptimisticLineCount++
	}

	return merged
}

// Layout picks the rendering branch. The empty state is gated on the
// optimistic line count, not the quantity sum.
func (m MergedCart) Layout() Layout {
	if m.Cart.TotalQuantity > 0 {
		return LayoutDetails
	}
	if m.OptimisticLineCount > 0 {
		return LayoutSuppressed
	}
	return LayoutEmpty
}
