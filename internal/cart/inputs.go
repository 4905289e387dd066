package cart

import "github.com/google/uuid"

// LineAddInput describes one merchandise entry to add. LineID is assigned by
// the caller before submission so the optimistic overlay can reference the
// line ahead of the database write.
type LineAddInput struct {
	LineID        uuid.UUID
	MerchandiseID uuid.UUID
	Quantity      int
}

// LineUpdateInput retargets one existing line to a new quantity.
type LineUpdateInput struct {
	LineID   uuid.UUID
	Quantity int
}
