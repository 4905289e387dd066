package viewer

import (
	"testing"

	"github.com/google/uuid"
)

func TestNextPrevWraparound(t *testing.T) {
	tests := []struct {
		name     string
		length   int
		index    int
		wantNext int
		wantPrev int
	}{
		{"middle", 5, 2, 3, 1},
		{"last wraps forward", 5, 4, 0, 3},
		{"first wraps backward", 5, 0, 1, 4},
		{"single item", 1, 0, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NextIndex(tc.index, tc.length); got != tc.wantNext {
				t.Fatalf("next(%d, %d) = %d, want %d", tc.index, tc.length, got, tc.wantNext)
			}
			if got := PrevIndex(tc.index, tc.length); got != tc.wantPrev {
				t.Fatalf("prev(%d, %d) = %d, want %d", tc.index, tc.length, got, tc.wantPrev)
			}
		})
	}
}

func TestWraparoundIdentityOverFullCycle(t *testing.T) {
	const length = 7
	index := 3
	for i := 0; i < length; i++ {
		index = NextIndex(index, length)
	}
	if index != 3 {
		t.Fatalf("N next steps should return to start, got %d", index)
	}
	for i := 0; i < length; i++ {
		index = PrevIndex(index, length)
	}
	if index != 3 {
		t.Fatalf("N prev steps should return to start, got %d", index)
	}
}

func TestIndexOfAbsentIDFallsBackToZero(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	if got := IndexOf(ids, ids[2]); got != 2 {
		t.Fatalf("index of present id = %d, want 2", got)
	}
	if got := IndexOf(ids, uuid.New()); got != 0 {
		t.Fatalf("absent id should resolve to 0, got %d", got)
	}
	if got := IndexOf(nil, uuid.New()); got != 0 {
		t.Fatalf("empty list should resolve to 0, got %d", got)
	}
}
