package subscriptions

import (
	"time"

	"course-platform/internal/domain/plans"
	"course-platform/internal/domain/users"
)

// Status is the evaluation-facing subscription state. It is maintained only
// by the Stripe webhook handlers; everything else reads it.
type Status string

const (
	StatusActive    Status = "active"
	StatusPastDue   Status = "past_due"
	StatusCancelled Status = "cancelled"
	StatusNone      Status = "none"
)

type Subscription struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"not null;uniqueIndex:idx_subscriptions_user_id"`
	User   users.User

	PlanID *uint
	Plan   *plans.Plan

	Status Status `gorm:"type:varchar(20);not null;default:'none'"`

	StripeSubscriptionID *string `gorm:"column:stripe_subscription_id;uniqueIndex:idx_subscriptions_stripe_id"`

	// End of the paid access window. A cancelled subscription keeps access
	// until this moment (grace period).
	CurrentPeriodEnd *time.Time `gorm:"column:current_period_end"`

	StartedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
