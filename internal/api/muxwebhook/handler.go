package muxwebhooks

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"course-platform/config"
	"course-platform/database"
	"course-platform/internal/domain/content"
	"course-platform/internal/infra/mux"

	"github.com/gin-gonic/gin"
)

type muxEvent struct {
	Type string `json:"type"`
	Data struct {
		ID          string  `json:"id"`
		AssetID     string  `json:"asset_id"`
		Duration    float64 `json:"duration"`
		Passthrough string  `json:"passthrough"`
		PlaybackIDs []struct {
			ID     string `json:"id"`
			Policy string `json:"policy"`
		} `json:"playback_ids"`
	} `json:"data"`
}

type passthroughData struct {
	LessonID string `json:"lesson_id"`
}

// MuxWebhook drives the lesson video state machine:
// none -> processing (upload.asset_created) -> ready | errored.
func MuxWebhook(c *gin.Context) {
	payload, err := readBody(c, 65536)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	if config.MUX_WEBHOOK_SECRET != "" {
		err := mux.VerifyWebhookSignature(
			payload,
			c.GetHeader("Mux-Signature"),
			config.MUX_WEBHOOK_SECRET,
			time.Now(),
			5*time.Minute,
		)
		if err != nil {
			fmt.Println("❌ Mux signature verification failed:", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Signature verification failed"})
			return
		}
	}

	var event muxEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse event"})
		return
	}

	lessonID := lessonIDFromPassthrough(event.Data.Passthrough)
	if lessonID == "" {
		// Asset not created through this app; acknowledge
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	switch event.Type {
	case "video.upload.asset_created":
		err = updateLessonVideo(lessonID, map[string]interface{}{
			"mux_asset_id":    event.Data.AssetID,
			"mux_playback_id": nil,
			"video_status":    content.VideoProcessing,
		})

	case "video.asset.ready":
		playbackID := signedPlaybackID(event)
		if playbackID == "" {
			fmt.Println("❌ No signed playback ID for asset:", event.Data.ID)
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
			return
		}
		err = updateLessonVideo(lessonID, map[string]interface{}{
			"mux_asset_id":    event.Data.ID,
			"mux_playback_id": playbackID,
			"video_status":    content.VideoReady,
			"video_duration":  int(event.Data.Duration + 0.5),
		})

	case "video.asset.errored":
		err = updateLessonVideo(lessonID, map[string]interface{}{
			"mux_asset_id":    nil,
			"mux_playback_id": nil,
			"video_status":    content.VideoErrored,
			"video_duration":  nil,
		})

	default:
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

func updateLessonVideo(lessonID string, updates map[string]interface{}) error {
	return database.DB.Model(&content.Lesson{}).
		Where("id = ?", lessonID).
		Updates(updates).Error
}

func lessonIDFromPassthrough(passthrough string) string {
	if passthrough == "" {
		return ""
	}
	var data passthroughData
	if err := json.Unmarshal([]byte(passthrough), &data); err != nil {
		return ""
	}
	return data.LessonID
}

func signedPlaybackID(event muxEvent) string {
	for _, p := range event.Data.PlaybackIDs {
		if p.Policy == "signed" {
			return p.ID
		}
	}
	return ""
}

func readBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
