package users

import (
	"time"

	"course-platform/internal/domain/subscriptions"
	"course-platform/internal/domain/users"
)

func buildPlanDTO(sub *subscriptions.Subscription) *PlanDTO {
	if sub == nil || sub.Plan == nil {
		return nil
	}
	p := sub.Plan
	return &PlanDTO{
		ID:            p.ID,
		Name:          p.Name,
		Interval:      p.Interval,
		PriceUSD:      p.PriceUSD,
		StripePriceID: p.StripePriceID,
	}
}

func buildSubscriptionDTO(sub *subscriptions.Subscription) *SubscriptionDTO {
	if sub == nil {
		return nil
	}
	return &SubscriptionDTO{
		Status:               string(sub.Status),
		StartsAt:             sub.StartedAt,
		CurrentPeriodEnd:     sub.CurrentPeriodEnd,
		StripeSubscriptionID: sub.StripeSubscriptionID,
	}
}

func buildAccessDTO(now time.Time, user users.User, sub *subscriptions.Subscription) AccessDTO {
	dto := AccessDTO{State: "free", Override: user.AccessOverride}

	if user.AccessOverride {
		dto.State = "full"
		return dto
	}
	if sub == nil {
		return dto
	}

	switch sub.Status {
	case subscriptions.StatusActive:
		dto.State = "full"
	case subscriptions.StatusPastDue:
		dto.State = "full"
		dto.SoftLock = true
	case subscriptions.StatusCancelled:
		if sub.CurrentPeriodEnd != nil && !now.After(*sub.CurrentPeriodEnd) {
			dto.State = "full"
			dto.GraceEnd = sub.CurrentPeriodEnd
		}
	}
	return dto
}
