package billing

import (
	"course-platform/internal/domain/plans"
	"course-platform/internal/domain/users"
	"time"
)

type Payment struct {
	ID                   uint `gorm:"primaryKey"`
	UserID               uint
	User                 users.User
	PlanID               *uint
	Plan                 *plans.Plan
	StripeInvoiceID      string `gorm:"uniqueIndex"`
	StripeSubscriptionID *string
	AmountUSD            float64
	Status               string // "paid" | "failed"
	ReceiptURL           *string
	CreatedAt            time.Time
}
