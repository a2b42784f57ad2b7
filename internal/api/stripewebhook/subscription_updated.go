package stripewebhooks

import (
	"fmt"
	"time"

	"course-platform/database"
	"course-platform/internal/domain/plans"
	"course-platform/internal/domain/subscriptions"
	infrastripe "course-platform/internal/infra/stripe"

	"github.com/stripe/stripe-go/v75"
)

func handleSubscriptionUpdated(sub *stripe.Subscription) error {
	if sub.ID == "" || sub.Items == nil || len(sub.Items.Data) == 0 || sub.Items.Data[0].Price == nil {
		return fmt.Errorf("subscription missing id/items/price")
	}

	activePriceID := sub.Items.Data[0].Price.ID
	periodEnd := time.Unix(sub.CurrentPeriodEnd, 0)

	row, err := findSubscriptionRow(sub)
	if err != nil {
		// acknowledge to avoid Stripe retries if the user is gone
		return nil
	}

	updates := map[string]interface{}{
		"status":                 infrastripe.NormalizeStatus(string(sub.Status)),
		"current_period_end":     periodEnd,
		"stripe_subscription_id": sub.ID,
	}

	var plan plans.Plan
	if err := database.DB.Where("stripe_price_id = ?", activePriceID).First(&plan).Error; err == nil {
		updates["plan_id"] = plan.ID
	}

	return database.DB.Model(&subscriptions.Subscription{}).
		Where("id = ?", row.ID).
		Updates(updates).Error
}

// findSubscriptionRow locates the local row for a Stripe subscription:
// metadata.user_id first, then the stored Stripe subscription id.
func findSubscriptionRow(sub *stripe.Subscription) (*subscriptions.Subscription, error) {
	var row subscriptions.Subscription

	if userID := userIDFromMetadata(sub.Metadata); userID != 0 {
		if err := database.DB.Where("user_id = ?", userID).First(&row).Error; err == nil {
			return &row, nil
		}
	}

	if err := database.DB.Where("stripe_subscription_id = ?", sub.ID).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
