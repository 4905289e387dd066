package optimistic

import (
	"time"

	"github.com/google/uuid"

	"github.com/harborline/storefront-backend/pkg/enums"
)

// LinePatch captures a client's intent for one cart line while the backing
// mutation is still in flight. At most one patch exists per line; a newer
// submission for the same line replaces the previous patch outright.
type LinePatch struct {
	Action    enums.LinePatchAction `json:"action"`
	Quantity  int                   `json:"quantity,omitempty"`
	AppliedAt time.Time             `json:"applied_at"`
}

// Overlay is the full patch set for a cart, keyed by line id.
type Overlay map[uuid.UUID]LinePatch

// Has reports whether a patch exists for the given line.
func (o Overlay) Has(lineID uuid.UUID) bool {
	_, ok := o[lineID]
	return ok
}
