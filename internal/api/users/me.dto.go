package users

import "time"

type MeResponse struct {
	User    UserDTO    `json:"user"`
	Billing BillingDTO `json:"billing"`
	Access  AccessDTO  `json:"access"`
}

/* ---------- USER ---------- */

type UserDTO struct {
	ID         uint   `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Lastname   string `json:"lastname"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
}

/* ---------- BILLING ---------- */

type BillingDTO struct {
	Plan         *PlanDTO         `json:"plan"`
	Subscription *SubscriptionDTO `json:"subscription"`
}

type PlanDTO struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Interval      string  `json:"interval"`
	PriceUSD      float64 `json:"price_usd"`
	StripePriceID string  `json:"stripe_price_id"`
}

type SubscriptionDTO struct {
	Status               string     `json:"status"`
	StartsAt             *time.Time `json:"starts_at"`
	CurrentPeriodEnd     *time.Time `json:"current_period_end"`
	StripeSubscriptionID *string    `json:"stripe_subscription_id"`
}

/* ---------- ACCESS ---------- */

type AccessDTO struct {
	// "full" when content is reachable through subscription or override,
	// "free" when only free lessons are.
	State    string     `json:"state"`
	Override bool       `json:"override"`
	SoftLock bool       `json:"soft_lock"`
	GraceEnd *time.Time `json:"grace_end,omitempty"`
}
