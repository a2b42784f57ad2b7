package stripewebhooks

import (
	"time"

	"course-platform/database"
	"course-platform/internal/domain/subscriptions"

	"github.com/stripe/stripe-go/v75"
)

func handleSubscriptionDeleted(sub *stripe.Subscription) error {
	if sub.ID == "" {
		return nil
	}

	row, err := findSubscriptionRow(sub)
	if err != nil {
		return nil
	}

	periodEnd := time.Unix(sub.CurrentPeriodEnd, 0)

	// Access continues until current_period_end (grace period), then the
	// evaluator treats the subscription as gone.
	return database.DB.Model(&subscriptions.Subscription{}).
		Where("id = ?", row.ID).
		Updates(map[string]interface{}{
			"status":             subscriptions.StatusCancelled,
			"current_period_end": periodEnd,
		}).Error
}
