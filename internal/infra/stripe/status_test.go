package stripe

import (
	"testing"

	"course-platform/internal/domain/subscriptions"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want subscriptions.Status
	}{
		{"active", subscriptions.StatusActive},
		{"trialing", subscriptions.StatusActive},
		{"past_due", subscriptions.StatusPastDue},
		{"unpaid", subscriptions.StatusPastDue},
		{"canceled", subscriptions.StatusCancelled},
		{"incomplete_expired", subscriptions.StatusCancelled},
		{"incomplete", subscriptions.StatusNone},
		{"paused", subscriptions.StatusNone},
		{"", subscriptions.StatusNone},
		{" active ", subscriptions.StatusActive},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeStatus(tt.raw), "raw %q", tt.raw)
	}
}
