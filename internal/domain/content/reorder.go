package content

import "errors"

// ErrReorderConflict means the submitted ID set no longer matches the current
// sibling set (a sibling was added or removed since the client loaded the
// list). The caller should refetch and retry; nothing was written.
var ErrReorderConflict = errors.New("sibling set changed since load")

type Sibling struct {
	ID       string
	Position int
}

type OrderUpdate struct {
	ID       string
	Position int
}

// PlanReorder takes the current siblings (in any order) and the full ordered
// ID list submitted by a drag gesture, and returns the minimal set of
// position updates that renumbers them densely 1..N by array position.
//
// The submitted list must be exactly the current sibling set: same length, no
// duplicates, no unknown IDs, no missing IDs. Anything else is a conflict.
// Submitting the current order twice is a no-op (empty update list).
func PlanReorder(current []Sibling, orderedIDs []string) ([]OrderUpdate, error) {
	if len(orderedIDs) != len(current) {
		return nil, ErrReorderConflict
	}

	positions := make(map[string]int, len(current))
	for _, s := range current {
		positions[s.ID] = s.Position
	}

	seen := make(map[string]bool, len(orderedIDs))
	updates := []OrderUpdate{}
	for i, id := range orderedIDs {
		if seen[id] {
			return nil, ErrReorderConflict
		}
		seen[id] = true

		pos, ok := positions[id]
		if !ok {
			return nil, ErrReorderConflict
		}
		if pos != i+1 {
			updates = append(updates, OrderUpdate{ID: id, Position: i + 1})
		}
	}

	// Equal lengths + no duplicates + every submitted ID known means the
	// sets match; no reverse check needed.
	return updates, nil
}
