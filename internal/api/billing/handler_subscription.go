package billing

import (
	"net/http"

	"course-platform/database"
	"course-platform/internal/domain/subscriptions"

	"github.com/gin-gonic/gin"
)

// GET /billing/subscription
func GetSubscription(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var sub subscriptions.Subscription
	if err := database.DB.Preload("Plan").Where("user_id = ?", userID).First(&sub).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"status": string(subscriptions.StatusNone)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":             string(sub.Status),
		"plan":               sub.Plan,
		"current_period_end": sub.CurrentPeriodEnd,
		"started_at":         sub.StartedAt,
	})
}
