package access

import (
	"testing"
	"time"

	"course-platform/internal/domain/content"
	"course-platform/internal/domain/subscriptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func publishedLesson(free bool) *content.Lesson {
	return &content.Lesson{ID: "lesson-1", ModuleID: "module-1", Published: true, IsFree: free}
}

func publishedModule(position int) *content.Module {
	return &content.Module{ID: "module-1", Published: true, Position: position}
}

func sub(status subscriptions.Status, periodEnd *time.Time) *subscriptions.Subscription {
	return &subscriptions.Subscription{Status: status, CurrentPeriodEnd: periodEnd}
}

func allUnlocked(string) bool { return true }
func allLocked(string) bool   { return false }

func TestEvaluateFreeLessonBeatsEverything(t *testing.T) {
	// no subscription, module locked, lesson free: still granted
	snap := Snapshot{
		Lesson: publishedLesson(true),
		Module: publishedModule(3),
	}

	d, err := Evaluate(now, snap, allLocked)
	require.NoError(t, err)
	assert.True(t, d.Granted)
	assert.Equal(t, GrantFreeLesson, d.GrantReason)
	assert.False(t, d.SoftLock)
}

func TestEvaluateOverrideBypassesBillingAndLocks(t *testing.T) {
	snap := Snapshot{
		Lesson:         publishedLesson(false),
		Module:         publishedModule(3),
		AccessOverride: true,
	}

	d, err := Evaluate(now, snap, allLocked)
	require.NoError(t, err)
	assert.True(t, d.Granted)
	assert.Equal(t, GrantOverride, d.GrantReason)
}

func TestEvaluateSubscriptionStates(t *testing.T) {
	in1d := now.Add(24 * time.Hour)
	ago1d := now.Add(-24 * time.Hour)

	tests := []struct {
		name        string
		sub         *subscriptions.Subscription
		wantGranted bool
		wantGrant   GrantReason
		wantDeny    DenyReason
		wantSoft    bool
		wantGrace   *time.Time
	}{
		{
			name:        "active subscription",
			sub:         sub(subscriptions.StatusActive, nil),
			wantGranted: true,
			wantGrant:   GrantActiveSubscription,
		},
		{
			name:        "past due grants with soft lock",
			sub:         sub(subscriptions.StatusPastDue, &in1d),
			wantGranted: true,
			wantGrant:   GrantPastDueSoftLock,
			wantSoft:    true,
		},
		{
			name:        "cancelled inside period end keeps grace access",
			sub:         sub(subscriptions.StatusCancelled, &in1d),
			wantGranted: true,
			wantGrant:   GrantGracePeriod,
			wantGrace:   &in1d,
		},
		{
			name:     "cancelled past period end denies",
			sub:      sub(subscriptions.StatusCancelled, &ago1d),
			wantDeny: DenyNoSubscription,
		},
		{
			name:     "no subscription denies",
			sub:      nil,
			wantDeny: DenyNoSubscription,
		},
		{
			name:     "status none denies",
			sub:      sub(subscriptions.StatusNone, &in1d),
			wantDeny: DenyNoSubscription,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := Snapshot{
				Lesson:       publishedLesson(false),
				Module:       publishedModule(1),
				Subscription: tt.sub,
			}

			d, err := Evaluate(now, snap, allUnlocked)
			require.NoError(t, err)
			assert.Equal(t, tt.wantGranted, d.Granted)
			assert.Equal(t, tt.wantGrant, d.GrantReason)
			assert.Equal(t, tt.wantDeny, d.DenyReason)
			assert.Equal(t, tt.wantSoft, d.SoftLock)
			assert.Equal(t, tt.wantGrace, d.GraceEnd)
		})
	}
}

func TestEvaluateGraceBoundaryIsInclusive(t *testing.T) {
	// access runs until current_period_end itself
	end := now
	snap := Snapshot{
		Lesson:       publishedLesson(false),
		Module:       publishedModule(1),
		Subscription: sub(subscriptions.StatusCancelled, &end),
	}

	d, err := Evaluate(now, snap, allUnlocked)
	require.NoError(t, err)
	assert.True(t, d.Granted)
	assert.Equal(t, GrantGracePeriod, d.GrantReason)
}

func TestEvaluateModuleLocked(t *testing.T) {
	snap := Snapshot{
		Lesson:       publishedLesson(false),
		Module:       publishedModule(2),
		Subscription: sub(subscriptions.StatusActive, nil),
	}

	d, err := Evaluate(now, snap, allLocked)
	require.NoError(t, err)
	assert.False(t, d.Granted)
	assert.Equal(t, DenyModuleLocked, d.DenyReason)
	assert.Equal(t, 1, d.LockedByModuleOrder)
}

func TestEvaluateLockCheckSkippedWithoutSubscription(t *testing.T) {
	// missing subscription is reported before lock state
	snap := Snapshot{
		Lesson: publishedLesson(false),
		Module: publishedModule(2),
	}

	d, err := Evaluate(now, snap, allLocked)
	require.NoError(t, err)
	assert.Equal(t, DenyNoSubscription, d.DenyReason)
}

func TestEvaluateUnpublishedIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
	}{
		{
			name: "missing lesson",
			snap: Snapshot{Module: publishedModule(1)},
		},
		{
			name: "unpublished lesson",
			snap: Snapshot{
				Lesson: &content.Lesson{ID: "lesson-1", Published: false, IsFree: true},
				Module: publishedModule(1),
			},
		},
		{
			name: "unpublished module hides its lessons",
			snap: Snapshot{
				Lesson: publishedLesson(true),
				Module: &content.Module{ID: "module-1", Published: false, Position: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.snap.AccessOverride = true // even override never reveals drafts
			_, err := Evaluate(now, tt.snap, allUnlocked)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestEvaluateNilUnlockFuncMeansOpen(t *testing.T) {
	snap := Snapshot{
		Lesson:       publishedLesson(false),
		Module:       publishedModule(5),
		Subscription: sub(subscriptions.StatusActive, nil),
	}

	d, err := Evaluate(now, snap, nil)
	require.NoError(t, err)
	assert.True(t, d.Granted)
}
