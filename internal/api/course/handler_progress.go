package course

import (
	"net/http"
	"time"

	"course-platform/database"
	"course-platform/internal/domain/access"
	"course-platform/internal/domain/content"
	"course-platform/internal/domain/progress"

	"github.com/gin-gonic/gin"
)

// CompleteLesson marks a lesson done for the learner. Requires the same
// access the lesson itself requires; idempotent on repeat calls.
func CompleteLesson(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)
	lessonID := c.Param("id")

	snap, _, err := loadSnapshot(lessonID, userID)
	if err != nil {
		respondAccessError(c, err)
		return
	}

	decision, err := access.Evaluate(time.Now(), snap, unlockPolicy(userID))
	if err != nil {
		respondAccessError(c, err)
		return
	}
	if !decision.Granted {
		respondDenied(c, decision)
		return
	}

	row := progress.LessonProgress{
		UserID:      userID,
		LessonID:    lessonID,
		CompletedAt: time.Now(),
	}
	err = database.DB.
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		FirstOrCreate(&row).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save progress"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"completed": true})
}

func UncompleteLesson(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	err := database.DB.
		Where("user_id = ? AND lesson_id = ?", userID, c.Param("id")).
		Delete(&progress.LessonProgress{}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save progress"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"completed": false})
}

// GetProgress returns per-module completion summaries over published content.
func GetProgress(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var modules []content.Module
	err := database.DB.
		Where("published = ?", true).
		Order("position ASC").
		Find(&modules).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load progress"})
		return
	}

	completedIDs := completedLessonIDs(userID)

	summaries := make([]progress.ModuleSummary, 0, len(modules))
	totalLessons := 0
	totalCompleted := 0

	for _, m := range modules {
		var lessons []content.Lesson
		if err := database.DB.
			Where("module_id = ? AND published = ?", m.ID, true).
			Find(&lessons).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load progress"})
			return
		}

		s := progress.ModuleSummary{
			ModuleID: m.ID,
			Title:    m.Title,
			Position: m.Position,
			Total:    len(lessons),
		}
		for _, l := range lessons {
			if completedIDs[l.ID] {
				s.Completed++
			}
		}

		totalLessons += s.Total
		totalCompleted += s.Completed
		summaries = append(summaries, s)
	}

	overall := 0
	if totalLessons > 0 {
		overall = totalCompleted * 100 / totalLessons
	}

	c.JSON(http.StatusOK, gin.H{
		"modules":           summaries,
		"total_lessons":     totalLessons,
		"completed_lessons": totalCompleted,
		"overall_percent":   overall,
	})
}
