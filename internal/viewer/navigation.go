package viewer

import "github.com/google/uuid"

// NextIndex advances with wraparound: the last item wraps to the first.
func NextIndex(current, length int) int {
	if length <= 0 {
		return 0
	}
	return (current + 1) % length
}

// PrevIndex retreats with wraparound: the first item wraps to the last.
func PrevIndex(current, length int) int {
	if length <= 0 {
		return 0
	}
	return (current - 1 + length) % length
}

// IndexOf resolves the selected id to its position. An id absent from the
// list resolves to 0 so navigation still lands on a real item.
func IndexOf(ids []uuid.UUID, selected uuid.UUID) int {
	for i, id := range ids {
		if id == selected {
			return i
		}
	}
	return 0
}
