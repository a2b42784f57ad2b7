package course

import (
	"errors"
	"net/http"
	"time"

	"course-platform/config"
	"course-platform/database"
	"course-platform/internal/domain/access"
	"course-platform/internal/domain/content"
	"course-platform/internal/domain/progress"
	"course-platform/internal/infra/mux"
	"course-platform/internal/infra/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type lessonListItem struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Position      int    `json:"position"`
	IsFree        bool   `json:"is_free"`
	VideoDuration *int   `json:"video_duration,omitempty"`
	Completed     bool   `json:"completed"`
}

type moduleListItem struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Position    int              `json:"position"`
	Locked      bool             `json:"locked"`
	Lessons     []lessonListItem `json:"lessons"`
}

// ListModules returns the published course outline for the signed-in learner,
// with per-lesson completion and per-module lock state. The outline itself is
// visible to every signed-in user; the paywall applies to lesson content.
func ListModules(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var modules []content.Module
	err := database.DB.
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Where("published = ?", true).Order("lessons.position ASC")
		}).
		Where("published = ?", true).
		Order("position ASC").
		Find(&modules).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load modules"})
		return
	}

	completedIDs := completedLessonIDs(userID)
	unlocked := unlockPolicy(userID)

	out := make([]moduleListItem, 0, len(modules))
	for _, m := range modules {
		item := moduleListItem{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Position:    m.Position,
			Locked:      !unlocked(m.ID),
			Lessons:     make([]lessonListItem, 0, len(m.Lessons)),
		}
		for _, l := range m.Lessons {
			item.Lessons = append(item.Lessons, lessonListItem{
				ID:            l.ID,
				Title:         l.Title,
				Position:      l.Position,
				IsFree:        l.IsFree,
				VideoDuration: l.VideoDuration,
				Completed:     completedIDs[l.ID],
			})
		}
		out = append(out, item)
	}

	c.JSON(http.StatusOK, out)
}

func GetModule(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var module content.Module
	err := database.DB.
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Where("published = ?", true).Order("lessons.position ASC")
		}).
		Where("published = ?", true).
		First(&module, "id = ?", c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Module not found"})
		return
	}

	completedIDs := completedLessonIDs(userID)
	unlocked := unlockPolicy(userID)

	item := moduleListItem{
		ID:          module.ID,
		Title:       module.Title,
		Description: module.Description,
		Position:    module.Position,
		Locked:      !unlocked(module.ID),
		Lessons:     make([]lessonListItem, 0, len(module.Lessons)),
	}
	for _, l := range module.Lessons {
		item.Lessons = append(item.Lessons, lessonListItem{
			ID:            l.ID,
			Title:         l.Title,
			Position:      l.Position,
			IsFree:        l.IsFree,
			VideoDuration: l.VideoDuration,
			Completed:     completedIDs[l.ID],
		})
	}

	c.JSON(http.StatusOK, item)
}

// GetLesson runs the access evaluation and, when granted, returns the lesson
// body, attachments and a signed playback token for the video.
func GetLesson(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	snap, lesson, err := loadSnapshot(c.Param("id"), userID)
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

	resp := gin.H{
		"id":           lesson.ID,
		"module_id":    lesson.ModuleID,
		"title":        lesson.Title,
		"content":      lesson.Content,
		"position":     lesson.Position,
		"is_free":      lesson.IsFree,
		"video_status": lesson.VideoStatus,
		"assets":       lesson.Assets,
		"access":       decision,
	}
	if lesson.VideoDuration != nil {
		resp["video_duration"] = *lesson.VideoDuration
	}

	if lesson.VideoStatus == content.VideoReady && lesson.MuxPlaybackID != nil {
		token, err := mux.SignPlaybackToken(
			*lesson.MuxPlaybackID,
			config.MUX_SIGNING_KEY_ID,
			config.MUX_SIGNING_PRIVATE_KEY,
			time.Now(),
			6*time.Hour,
		)
		if err == nil {
			resp["playback_id"] = *lesson.MuxPlaybackID
			resp["playback_token"] = token
		}
	}

	c.JSON(http.StatusOK, resp)
}

// DownloadAsset hands out a presigned URL for a lesson attachment, gated by
// the same evaluation as the lesson itself.
func DownloadAsset(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var asset content.Asset
	if err := database.DB.First(&asset, "id = ?", c.Param("assetId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		return
	}

	snap, _, err := loadSnapshot(asset.LessonID, userID)
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

	url, err := storage.PresignDownload(c.Request.Context(), asset.ObjectKey, asset.Filename, 15*time.Minute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to presign download"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"download_url": url})
}

func respondAccessError(c *gin.Context, err error) {
	if errors.Is(err, access.ErrNotFound) {
		// Unpublished and missing content look the same from outside
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load lesson"})
}

func respondDenied(c *gin.Context, decision access.Decision) {
	switch decision.DenyReason {
	case access.DenyModuleLocked:
		c.JSON(http.StatusForbidden, gin.H{
			"error":  "Module is locked",
			"access": decision,
		})
	default:
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error":  "Subscription required",
			"access": decision,
		})
	}
}

func completedLessonIDs(userID uint) map[string]bool {
	var rows []progress.LessonProgress
	database.DB.Where("user_id = ?", userID).Find(&rows)

	ids := make(map[string]bool, len(rows))
	for _, r := range rows {
		ids[r.LessonID] = true
	}
	return ids
}
