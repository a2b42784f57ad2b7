package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func siblings(ids ...string) []Sibling {
	out := make([]Sibling, len(ids))
	for i, id := range ids {
		out[i] = Sibling{ID: id, Position: i + 1}
	}
	return out
}

func TestPlanReorderMovesOnlyChangedRows(t *testing.T) {
	// drag C to the front: every row shifts
	updates, err := PlanReorder(siblings("A", "B", "C"), []string{"C", "A", "B"})
	require.NoError(t, err)
	assert.Equal(t, []OrderUpdate{
		{ID: "C", Position: 1},
		{ID: "A", Position: 2},
		{ID: "B", Position: 3},
	}, updates)
}

func TestPlanReorderSwapNeighbors(t *testing.T) {
	updates, err := PlanReorder(siblings("A", "B", "C", "D"), []string{"A", "C", "B", "D"})
	require.NoError(t, err)
	// A and D already sit where they belong
	assert.Equal(t, []OrderUpdate{
		{ID: "C", Position: 2},
		{ID: "B", Position: 3},
	}, updates)
}

func TestPlanReorderCurrentOrderIsNoop(t *testing.T) {
	updates, err := PlanReorder(siblings("A", "B", "C"), []string{"A", "B", "C"})
	require.NoError(t, err)
	assert.Empty(t, updates)
}

func TestPlanReorderRepairsSparsePositions(t *testing.T) {
	// positions with gaps (legacy data) come out dense
	current := []Sibling{
		{ID: "A", Position: 2},
		{ID: "B", Position: 5},
		{ID: "C", Position: 9},
	}
	updates, err := PlanReorder(current, []string{"A", "B", "C"})
	require.NoError(t, err)
	assert.Equal(t, []OrderUpdate{
		{ID: "A", Position: 1},
		{ID: "B", Position: 2},
		{ID: "C", Position: 3},
	}, updates)
}

func TestPlanReorderConflicts(t *testing.T) {
	tests := []struct {
		name    string
		current []Sibling
		ordered []string
	}{
		{"submitted list too short", siblings("A", "B", "C"), []string{"A", "B"}},
		{"submitted list too long", siblings("A", "B"), []string{"A", "B", "C"}},
		{"unknown id", siblings("A", "B", "C"), []string{"A", "B", "X"}},
		{"duplicate id", siblings("A", "B", "C"), []string{"A", "B", "B"}},
		{"empty submission against non-empty set", siblings("A"), []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updates, err := PlanReorder(tt.current, tt.ordered)
			assert.ErrorIs(t, err, ErrReorderConflict)
			assert.Nil(t, updates)
		})
	}
}

func TestPlanReorderEmptySet(t *testing.T) {
	updates, err := PlanReorder(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, updates)
}
