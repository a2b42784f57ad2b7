package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"course-platform/config"
	"course-platform/database"
	"course-platform/internal/domain/content"
	"course-platform/internal/infra/mux"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type lessonInput struct {
	Title   string          `json:"title" binding:"required"`
	Content json.RawMessage `json:"content"`
}

// CreateLesson appends a new (unpublished) lesson at the end of the module.
func CreateLesson(c *gin.Context) {
	moduleID := c.Param("id")

	var input lessonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	var lesson content.Lesson
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var module content.Module
		if err := tx.First(&module, "id = ?", moduleID).Error; err != nil {
			return err
		}

		var maxPos int
		if err := tx.Model(&content.Lesson{}).
			Where("module_id = ?", moduleID).
			Select("COALESCE(MAX(position), 0)").
			Scan(&maxPos).Error; err != nil {
			return err
		}

		lesson = content.Lesson{
			ModuleID:    moduleID,
			Title:       input.Title,
			Content:     datatypes.JSON(input.Content),
			Position:    maxPos + 1,
			VideoStatus: content.VideoNone,
		}
		return tx.Create(&lesson).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Module not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lesson"})
		return
	}
	c.JSON(http.StatusCreated, lesson)
}

func GetLessonAdmin(c *gin.Context) {
	var lesson content.Lesson
	err := database.DB.Preload("Assets").First(&lesson, "id = ?", c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}
	c.JSON(http.StatusOK, lesson)
}

func UpdateLesson(c *gin.Context) {
	var lesson content.Lesson
	if err := database.DB.First(&lesson, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	var input lessonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	lesson.Title = input.Title
	if input.Content != nil {
		lesson.Content = datatypes.JSON(input.Content)
	}

	if err := database.DB.Save(&lesson).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lesson"})
		return
	}
	c.JSON(http.StatusOK, lesson)
}

func SetLessonPublished(c *gin.Context) {
	var input publishInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "published is required"})
		return
	}

	res := database.DB.Model(&content.Lesson{}).
		Where("id = ?", c.Param("id")).
		Update("published", *input.Published)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lesson"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"published": *input.Published})
}

type freeInput struct {
	IsFree *bool `json:"is_free" binding:"required"`
}

// SetLessonFree flags a lesson as a free preview. Free lessons bypass every
// subscription and locking check for signed-in users.
func SetLessonFree(c *gin.Context) {
	var input freeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "is_free is required"})
		return
	}

	res := database.DB.Model(&content.Lesson{}).
		Where("id = ?", c.Param("id")).
		Update("is_free", *input.IsFree)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lesson"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_free": *input.IsFree})
}

// CreateLessonUpload requests a Mux direct upload URL for the lesson video.
// The lesson id rides along as passthrough so the webhook can find it.
func CreateLessonUpload(c *gin.Context) {
	lessonID := c.Param("id")

	var lesson content.Lesson
	if err := database.DB.First(&lesson, "id = ?", lessonID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	client := mux.NewClient(config.MUX_TOKEN_ID, config.MUX_TOKEN_SECRET)

	// Replacing a video: drop the old Mux asset first
	if lesson.MuxAssetID != nil && *lesson.MuxAssetID != "" {
		if err := client.DeleteAsset(c.Request.Context(), *lesson.MuxAssetID); err != nil {
			fmt.Println("❌ Failed to delete old Mux asset:", err)
		}
	}

	passthrough := fmt.Sprintf(`{"lesson_id":%q}`, lesson.ID)
	upload, err := client.CreateDirectUpload(c.Request.Context(), passthrough, config.CORS_ORIGIN)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create upload", "details": err.Error()})
		return
	}

	err = database.DB.Model(&content.Lesson{}).
		Where("id = ?", lesson.ID).
		Updates(map[string]interface{}{
			"mux_asset_id":    nil,
			"mux_playback_id": nil,
			"video_status":    content.VideoProcessing,
			"video_duration":  nil,
		}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lesson"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"upload_id":  upload.ID,
		"upload_url": upload.URL,
	})
}

// DeleteLesson removes the lesson, its Mux asset and closes the position gap.
func DeleteLesson(c *gin.Context) {
	lessonID := c.Param("id")

	var muxAssetID string
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var lesson content.Lesson
		if err := tx.First(&lesson, "id = ?", lessonID).Error; err != nil {
			return err
		}
		if lesson.MuxAssetID != nil {
			muxAssetID = *lesson.MuxAssetID
		}

		if err := tx.Select("Assets").Delete(&lesson).Error; err != nil {
			return err
		}

		return tx.Model(&content.Lesson{}).
			Where("module_id = ? AND position > ?", lesson.ModuleID, lesson.Position).
			Update("position", gorm.Expr("position - 1")).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete lesson"})
		return
	}

	if muxAssetID != "" {
		// Best effort; an orphaned Mux asset costs storage, not correctness
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		client := mux.NewClient(config.MUX_TOKEN_ID, config.MUX_TOKEN_SECRET)
		if err := client.DeleteAsset(ctx, muxAssetID); err != nil {
			fmt.Println("❌ Failed to delete Mux asset:", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
