package stripewebhooks

import (
	"course-platform/database"
	"course-platform/internal/domain/billing"
	"course-platform/internal/domain/subscriptions"
	"course-platform/internal/domain/users"

	"github.com/stripe/stripe-go/v75"
)

// handleInvoiceEvent records payment history and flips the subscription to
// past_due on a failed charge (the soft-lock trigger). Stripe moves the
// subscription back to active itself once payment recovers, which arrives
// as customer.subscription.updated.
func handleInvoiceEvent(eventType string, inv *stripe.Invoice) error {
	if inv.ID == "" || inv.Customer == nil || inv.Customer.ID == "" {
		return nil
	}

	var user users.User
	if err := database.DB.Where("stripe_customer_id = ?", inv.Customer.ID).First(&user).Error; err != nil {
		// customer unknown locally; acknowledge
		return nil
	}

	status := "paid"
	if eventType == "invoice.payment_failed" {
		status = "failed"
	}

	var subID *string
	if inv.Subscription != nil && inv.Subscription.ID != "" {
		subID = &inv.Subscription.ID
	}

	var receiptURL *string
	if inv.HostedInvoiceURL != "" {
		receiptURL = &inv.HostedInvoiceURL
	}

	payment := billing.Payment{
		UserID:               user.ID,
		StripeInvoiceID:      inv.ID,
		StripeSubscriptionID: subID,
		AmountUSD:            float64(inv.AmountDue) / 100.0,
		Status:               status,
		ReceiptURL:           receiptURL,
	}

	// Duplicate delivery: invoice already recorded, nothing to do
	var existing billing.Payment
	if err := database.DB.Where("stripe_invoice_id = ?", inv.ID).First(&existing).Error; err == nil {
		return nil
	}

	if err := database.DB.Create(&payment).Error; err != nil {
		return err
	}

	if status == "failed" {
		return database.DB.Model(&subscriptions.Subscription{}).
			Where("user_id = ?", user.ID).
			Update("status", subscriptions.StatusPastDue).Error
	}
	return nil
}
