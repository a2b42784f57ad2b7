package stripe

import (
	"strings"

	"course-platform/internal/domain/subscriptions"
)

// NormalizeStatus maps a raw Stripe subscription status onto the four states
// the access evaluator understands. Everything Stripe considers billable
// collapses to active; terminal states collapse to cancelled.
func NormalizeStatus(s string) subscriptions.Status {
	switch strings.TrimSpace(s) {
	case "active", "trialing":
		return subscriptions.StatusActive
	case "past_due", "unpaid":
		return subscriptions.StatusPastDue
	case "canceled", "incomplete_expired":
		return subscriptions.StatusCancelled
	default:
		return subscriptions.StatusNone
	}
}
