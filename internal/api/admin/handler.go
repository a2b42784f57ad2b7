package admin

import (
	"net/http"

	"course-platform/database"
	"course-platform/internal/domain/billing"
	"course-platform/internal/domain/content"
	"course-platform/internal/domain/subscriptions"
	"course-platform/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats aggregates the numbers the admin landing page shows.
func GetDashboardStats(c *gin.Context) {
	var totalUsers int64
	var verifiedUsers int64
	var activeSubs int64
	var pastDueSubs int64
	var overrides int64
	var publishedModules int64
	var publishedLessons int64
	var totalRevenue float64

	database.DB.Model(&users.User{}).Count(&totalUsers)
	database.DB.Model(&users.User{}).Where("is_verified = ?", true).Count(&verifiedUsers)
	database.DB.Model(&users.User{}).Where("access_override = ?", true).Count(&overrides)
	database.DB.Model(&subscriptions.Subscription{}).
		Where("status = ?", subscriptions.StatusActive).Count(&activeSubs)
	database.DB.Model(&subscriptions.Subscription{}).
		Where("status = ?", subscriptions.StatusPastDue).Count(&pastDueSubs)
	database.DB.Model(&content.Module{}).Where("published = ?", true).Count(&publishedModules)
	database.DB.Model(&content.Lesson{}).Where("published = ?", true).Count(&publishedLessons)
	database.DB.Model(&billing.Payment{}).
		Where("status = ?", "paid").
		Select("COALESCE(SUM(amount_usd), 0)").
		Scan(&totalRevenue)

	c.JSON(http.StatusOK, gin.H{
		"total_users":           totalUsers,
		"verified_users":        verifiedUsers,
		"active_subscriptions":  activeSubs,
		"past_due":              pastDueSubs,
		"access_overrides":      overrides,
		"published_modules":     publishedModules,
		"published_lessons":     publishedLessons,
		"total_revenue_usd":     totalRevenue,
	})
}

type adminUserRow struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Lastname       string `json:"lastname"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	IsVerified     bool   `json:"is_verified"`
	AccessOverride bool   `json:"access_override"`
	SubStatus      string `json:"subscription_status"`
}

func ListAllUsers(c *gin.Context) {
	var allUsers []users.User
	if err := database.DB.Order("created_at DESC").Find(&allUsers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	var subs []subscriptions.Subscription
	database.DB.Find(&subs)
	statusByUser := make(map[uint]string, len(subs))
	for _, s := range subs {
		statusByUser[s.UserID] = string(s.Status)
	}

	rows := make([]adminUserRow, 0, len(allUsers))
	for _, u := range allUsers {
		status, ok := statusByUser[u.ID]
		if !ok {
			status = string(subscriptions.StatusNone)
		}
		rows = append(rows, adminUserRow{
			ID:             u.ID,
			Name:           u.Name,
			Lastname:       u.Lastname,
			Email:          u.Email,
			Role:           u.Role,
			IsVerified:     u.IsVerified,
			AccessOverride: u.AccessOverride,
			SubStatus:      status,
		})
	}

	c.JSON(http.StatusOK, rows)
}

func GetUserDetails(c *gin.Context) {
	var user users.User
	if err := database.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var sub *subscriptions.Subscription
	var row subscriptions.Subscription
	if err := database.DB.Preload("Plan").Where("user_id = ?", user.ID).First(&row).Error; err == nil {
		sub = &row
	}

	var payments []billing.Payment
	database.DB.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&payments)

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":              user.ID,
			"name":            user.Name,
			"lastname":        user.Lastname,
			"email":           user.Email,
			"role":            user.Role,
			"is_verified":     user.IsVerified,
			"access_override": user.AccessOverride,
			"auth_provider":   user.AuthProvider,
			"created_at":      user.CreatedAt,
		},
		"subscription": sub,
		"payments":     payments,
	})
}

type overrideInput struct {
	AccessOverride *bool `json:"access_override" binding:"required"`
}

// SetAccessOverride grants or revokes complimentary full access for a user.
func SetAccessOverride(c *gin.Context) {
	var input overrideInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "access_override is required"})
		return
	}

	res := database.DB.Model(&users.User{}).
		Where("id = ?", c.Param("id")).
		Update("access_override", *input.AccessOverride)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_override": *input.AccessOverride})
}

type videoRow struct {
	LessonID    string              `json:"lesson_id"`
	Title       string              `json:"title"`
	ModuleID    string              `json:"module_id"`
	VideoStatus content.VideoStatus `json:"video_status"`
	Duration    *int                `json:"video_duration,omitempty"`
}

// ListVideoStatus reports the video pipeline state of every lesson, so stuck
// "processing" uploads are easy to spot.
func ListVideoStatus(c *gin.Context) {
	var lessons []content.Lesson
	if err := database.DB.Order("module_id, position").Find(&lessons).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load lessons"})
		return
	}

	rows := make([]videoRow, 0, len(lessons))
	for _, l := range lessons {
		rows = append(rows, videoRow{
			LessonID:    l.ID,
			Title:       l.Title,
			ModuleID:    l.ModuleID,
			VideoStatus: l.VideoStatus,
			Duration:    l.VideoDuration,
		})
	}
	c.JSON(http.StatusOK, rows)
}

func ListAllPayments(c *gin.Context) {
	var payments []billing.Payment
	err := database.DB.
		Preload("User").
		Preload("Plan").
		Order("created_at DESC").
		Limit(200).
		Find(&payments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}
	c.JSON(http.StatusOK, payments)
}
