package access

import (
	"time"

	"course-platform/internal/domain/content"
	"course-platform/internal/domain/subscriptions"
)

// Snapshot is everything Evaluate reads: a consistent view of the lesson,
// its module, and the caller's billing state, loaded by the request handler.
type Snapshot struct {
	Lesson       *content.Lesson
	Module       *content.Module
	Subscription *subscriptions.Subscription // nil when the user has none
	AccessOverride bool
}

// UnlockFunc reports whether a module is unlocked for the current learner.
// The concrete policy (all-open vs sequential) is injected by the caller;
// the evaluator only honors its verdict.
type UnlockFunc func(moduleID string) bool

type effectiveState int

const (
	effectiveNone effectiveState = iota
	effectiveActive
	effectiveGrace
	effectiveSoftLock
)

func effectiveSubscriptionState(now time.Time, sub *subscriptions.Subscription) effectiveState {
	if sub == nil {
		return effectiveNone
	}
	switch sub.Status {
	case subscriptions.StatusActive:
		return effectiveActive
	case subscriptions.StatusPastDue:
		// Payment problem, access continues. The decision carries SoftLock
		// so the UI warns the user.
		return effectiveSoftLock
	case subscriptions.StatusCancelled:
		if sub.CurrentPeriodEnd != nil && !now.After(*sub.CurrentPeriodEnd) {
			return effectiveGrace
		}
		return effectiveNone
	default:
		return effectiveNone
	}
}

// Evaluate decides whether the learner may view a lesson. Pure function over
// the snapshot and the supplied clock; first matching rule wins:
//
//	free lesson > access override > subscription state > module unlock
func Evaluate(now time.Time, snap Snapshot, unlocked UnlockFunc) (Decision, error) {
	if snap.Lesson == nil || snap.Module == nil ||
		!snap.Lesson.Published || !snap.Module.Published {
		return Decision{}, ErrNotFound
	}

	if snap.Lesson.IsFree {
		return Decision{Granted: true, GrantReason: GrantFreeLesson}, nil
	}

	if snap.AccessOverride {
		return Decision{Granted: true, GrantReason: GrantOverride}, nil
	}

	state := effectiveSubscriptionState(now, snap.Subscription)
	if state == effectiveNone {
		return Decision{DenyReason: DenyNoSubscription}, nil
	}

	if unlocked != nil && !unlocked(snap.Module.ID) {
		return Decision{
			DenyReason:          DenyModuleLocked,
			LockedByModuleOrder: snap.Module.Position - 1,
		}, nil
	}

	d := Decision{Granted: true}
	switch state {
	case effectiveGrace:
		d.GrantReason = GrantGracePeriod
		d.GraceEnd = snap.Subscription.CurrentPeriodEnd
	case effectiveSoftLock:
		d.GrantReason = GrantPastDueSoftLock
		d.SoftLock = true
	default:
		d.GrantReason = GrantActiveSubscription
	}
	return d, nil
}
