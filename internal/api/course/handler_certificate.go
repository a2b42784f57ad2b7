package course

import (
	"net/http"

	"course-platform/database"
	"course-platform/internal/domain/content"
	"course-platform/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// GetCertificate confirms course completion for the learner: every published
// lesson done. Routed behind RequireActiveSubscription; free-preview users
// never reach it.
func GetCertificate(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	var lessons []content.Lesson
	err := database.DB.
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("lessons.published = ? AND modules.published = ?", true, true).
		Find(&lessons).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load course"})
		return
	}

	completedIDs := completedLessonIDs(userID)

	total := len(lessons)
	completed := 0
	for _, l := range lessons {
		if completedIDs[l.ID] {
			completed++
		}
	}

	if total == 0 || completed < total {
		c.JSON(http.StatusConflict, gin.H{
			"error":             "Course not completed yet",
			"total_lessons":     total,
			"completed_lessons": completed,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":              user.Name + " " + user.Lastname,
		"email":             user.Email,
		"total_lessons":     total,
		"completed_lessons": completed,
		"completed":         true,
	})
}
