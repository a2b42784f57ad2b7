package stripewebhooks

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"course-platform/database"
	"course-platform/internal/domain/plans"
	"course-platform/internal/domain/subscriptions"
	"course-platform/internal/domain/users"
	infrastripe "course-platform/internal/infra/stripe"

	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"github.com/stripe/stripe-go/v75/subscription"
)

func handleCheckoutSessionCompleted(session *stripe.CheckoutSession) error {
	// Fetch full session with expansions
	fullSession, err := checkoutsession.Get(session.ID, &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Expand: []*string{
				stripe.String("subscription"),
				stripe.String("customer"),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to fetch expanded checkout session: %w", err)
	}

	if fullSession.Subscription == nil || fullSession.Subscription.ID == "" {
		return errors.New("checkout session missing subscription")
	}
	subscriptionID := fullSession.Subscription.ID

	subData, err := subscription.Get(subscriptionID, nil)
	if err != nil || subData == nil || subData.Items == nil || len(subData.Items.Data) == 0 || subData.Items.Data[0].Price == nil {
		return fmt.Errorf("failed to fetch subscription items: %w", err)
	}

	// Identify user: metadata.user_id preferred, else ClientReferenceID
	userID := userIDFromMetadata(subData.Metadata)
	if userID == 0 {
		userID = parseUserID(fullSession.ClientReferenceID)
	}
	if userID == 0 {
		return errors.New("missing user_id (metadata.user_id or client_reference_id)")
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	// Map Stripe price -> Plan
	priceID := subData.Items.Data[0].Price.ID
	var plan plans.Plan
	if err := database.DB.Where("stripe_price_id = ?", priceID).First(&plan).Error; err != nil {
		return fmt.Errorf("plan not found for stripe price_id=%s: %w", priceID, err)
	}

	if fullSession.Customer != nil && fullSession.Customer.ID != "" {
		if err := database.DB.Model(&users.User{}).
			Where("id = ?", user.ID).
			Update("stripe_customer_id", fullSession.Customer.ID).Error; err != nil {
			return fmt.Errorf("failed to store stripe customer: %w", err)
		}
	}

	now := time.Now()
	periodEnd := time.Unix(subData.CurrentPeriodEnd, 0)

	return upsertSubscription(user.ID, map[string]interface{}{
		"plan_id":                plan.ID,
		"stripe_subscription_id": subscriptionID,
		"status":                 infrastripe.NormalizeStatus(string(subData.Status)),
		"current_period_end":     periodEnd,
		"started_at":             now,
	})
}

// upsertSubscription writes the user's single subscription row, creating it
// on first checkout.
func upsertSubscription(userID uint, updates map[string]interface{}) error {
	var sub subscriptions.Subscription
	err := database.DB.Where("user_id = ?", userID).First(&sub).Error
	if err != nil {
		sub = subscriptions.Subscription{UserID: userID}
		if err := database.DB.Create(&sub).Error; err != nil {
			return fmt.Errorf("failed to create subscription row: %w", err)
		}
	}

	return database.DB.Model(&subscriptions.Subscription{}).
		Where("id = ?", sub.ID).
		Updates(updates).Error
}

func userIDFromMetadata(md map[string]string) uint {
	if md == nil {
		return 0
	}
	return parseUserID(md["user_id"])
}

func parseUserID(s string) uint {
	if s == "" {
		return 0
	}
	uid, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(uid)
}
