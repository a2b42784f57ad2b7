package content

import (
	"fmt"
	"net/http"
	"time"

	"course-platform/database"
	"course-platform/internal/domain/content"
	"course-platform/internal/infra/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type assetInput struct {
	Filename string `json:"filename" binding:"required"`
	MimeType string `json:"mime_type" binding:"required"`
	Size     int64  `json:"size"`
}

// CreateAssetUpload registers an asset row for a lesson and returns a
// presigned PUT URL the admin frontend uploads the bytes to.
func CreateAssetUpload(c *gin.Context) {
	lessonID := c.Param("id")

	var lesson content.Lesson
	if err := database.DB.First(&lesson, "id = ?", lessonID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	var input assetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "filename and mime_type are required"})
		return
	}

	if !content.IsAllowedAssetType(input.MimeType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File type not allowed"})
		return
	}

	objectKey := fmt.Sprintf("assets/%s/%s-%s", lesson.ID, uuid.NewString(), input.Filename)

	uploadURL, err := storage.PresignUpload(c.Request.Context(), objectKey, input.MimeType, 15*time.Minute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to presign upload", "details": err.Error()})
		return
	}

	asset := content.Asset{
		LessonID:  lesson.ID,
		Filename:  input.Filename,
		ObjectKey: objectKey,
		Size:      input.Size,
		MimeType:  input.MimeType,
	}
	if err := database.DB.Create(&asset).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create asset"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"asset":      asset,
		"upload_url": uploadURL,
	})
}

func DeleteAsset(c *gin.Context) {
	res := database.DB.Delete(&content.Asset{}, "id = ?", c.Param("assetId"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete asset"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
