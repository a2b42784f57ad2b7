package access

import (
	"errors"
	"time"
)

type GrantReason string

const (
	GrantFreeLesson         GrantReason = "free_lesson"
	GrantActiveSubscription GrantReason = "active_subscription"
	GrantOverride           GrantReason = "override"
	GrantGracePeriod        GrantReason = "grace_period"
	GrantPastDueSoftLock    GrantReason = "past_due_soft_lock"
)

type DenyReason string

const (
	DenyNoSubscription DenyReason = "no_subscription"
	DenyModuleLocked   DenyReason = "module_locked"
)

// ErrNotFound: the lesson (or its module) is absent or unpublished.
// Unpublished content is invisible, not paywalled — callers must 404,
// never render a deny reason.
var ErrNotFound = errors.New("lesson not found")

// Decision is the outcome of an access check. Exactly one of GrantReason /
// DenyReason is set depending on Granted. SoftLock and GraceEnd annotate a
// grant so the UI can render a billing warning banner.
type Decision struct {
	Granted bool `json:"granted"`

	GrantReason GrantReason `json:"grant_reason,omitempty"`
	DenyReason  DenyReason  `json:"deny_reason,omitempty"`

	SoftLock bool       `json:"soft_lock,omitempty"`
	GraceEnd *time.Time `json:"grace_end,omitempty"`

	// For DenyModuleLocked: the position of the module that gates this one.
	LockedByModuleOrder int `json:"locked_by_module_order,omitempty"`
}
