package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModuleSummaryPercent(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		completed int
		percent   int
		done      bool
	}{
		{"empty module", 0, 0, 0, false},
		{"untouched", 4, 0, 0, false},
		{"halfway", 4, 2, 50, false},
		{"rounds down", 3, 1, 33, false},
		{"complete", 4, 4, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ModuleSummary{Total: tt.total, Completed: tt.completed}
			assert.Equal(t, tt.percent, s.Percent())
			assert.Equal(t, tt.done, s.Done())
		})
	}
}
