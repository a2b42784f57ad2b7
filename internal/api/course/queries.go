package course

import (
	"errors"

	"course-platform/config"
	"course-platform/database"
	"course-platform/internal/domain/access"
	"course-platform/internal/domain/content"
	"course-platform/internal/domain/progress"
	"course-platform/internal/domain/subscriptions"
	"course-platform/internal/domain/users"

	"gorm.io/gorm"
)

// loadSnapshot assembles the consistent view the access evaluator works on:
// lesson, owning module, the caller's subscription row and override flag.
func loadSnapshot(lessonID string, userID uint) (access.Snapshot, *content.Lesson, error) {
	var lesson content.Lesson
	if err := database.DB.Preload("Assets").First(&lesson, "id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return access.Snapshot{}, nil, access.ErrNotFound
		}
		return access.Snapshot{}, nil, err
	}

	var module content.Module
	if err := database.DB.First(&module, "id = ?", lesson.ModuleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return access.Snapshot{}, nil, access.ErrNotFound
		}
		return access.Snapshot{}, nil, err
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return access.Snapshot{}, nil, err
	}

	snap := access.Snapshot{
		Lesson:         &lesson,
		Module:         &module,
		Subscription:   getSubscription(userID),
		AccessOverride: user.AccessOverride,
	}
	return snap, &lesson, nil
}

func getSubscription(userID uint) *subscriptions.Subscription {
	var sub subscriptions.Subscription
	if err := database.DB.Where("user_id = ?", userID).First(&sub).Error; err != nil {
		return nil
	}
	return &sub
}

// unlockPolicy builds the UnlockFunc for a learner according to
// MODULE_UNLOCK_POLICY. "open" unlocks everything; "sequential" requires all
// published lessons of the preceding published module to be completed.
func unlockPolicy(userID uint) access.UnlockFunc {
	if config.MODULE_UNLOCK_POLICY != "sequential" {
		return func(string) bool { return true }
	}
	return func(moduleID string) bool {
		return moduleUnlockedSequential(userID, moduleID)
	}
}

func moduleUnlockedSequential(userID uint, moduleID string) bool {
	var module content.Module
	if err := database.DB.First(&module, "id = ?", moduleID).Error; err != nil {
		return false
	}
	if module.Position <= 1 {
		return true
	}

	var prev content.Module
	err := database.DB.
		Where("published = ? AND position < ?", true, module.Position).
		Order("position DESC").
		First(&prev).Error
	if err != nil {
		// no published module before this one
		return true
	}

	var total, completed int64
	database.DB.Model(&content.Lesson{}).
		Where("module_id = ? AND published = ?", prev.ID, true).
		Count(&total)
	if total == 0 {
		return true
	}

	database.DB.Model(&progress.LessonProgress{}).
		Joins("JOIN lessons ON lessons.id = lesson_progresses.lesson_id").
		Where("lesson_progresses.user_id = ? AND lessons.module_id = ? AND lessons.published = ?",
			userID, prev.ID, true).
		Count(&completed)

	return completed >= total
}
