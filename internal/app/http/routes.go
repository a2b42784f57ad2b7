package routes

import (
	adminapi "course-platform/internal/api/admin"
	authapi "course-platform/internal/api/auth"
	"course-platform/internal/api/billing"
	contentapi "course-platform/internal/api/content"
	courseapi "course-platform/internal/api/course"
	muxwebhooks "course-platform/internal/api/muxwebhook"
	"course-platform/internal/api/plans"
	stripewebhooks "course-platform/internal/api/stripewebhook"
	"course-platform/internal/api/users"
	"course-platform/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Webhooks verify their own signatures; no auth, no sanitization
	r.POST("/webhook", stripewebhooks.StripeWebhook)
	r.POST("/webhooks/mux", muxwebhooks.MuxWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.GET("/plans", plans.ListPlans)
	public.GET("/verify", users.VerifyEmail)
	public.POST("/resend-verification", authapi.ResendVerification)
	public.POST("/request-password-reset", authapi.RequestPasswordReset)
	public.POST("/reset-password", authapi.ResetPassword)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", users.GetCurrentUser)
	auth.GET("/payments", billing.GetPaymentHistory)
	auth.GET("/subscription", billing.GetSubscription)
	auth.POST("/create-checkout-session", billing.CreateCheckoutSession)
	auth.POST("/billing-portal", billing.CreateBillingPortal)
	auth.POST("/change-password", authapi.ChangePassword)

	// Course outline is visible to every signed-in user; lesson content goes
	// through the access evaluator inside the handlers.
	auth.GET("/course/modules", courseapi.ListModules)
	auth.GET("/course/modules/:id", courseapi.GetModule)
	auth.GET("/course/lessons/:id", courseapi.GetLesson)
	auth.GET("/course/assets/:assetId/download", courseapi.DownloadAsset)

	auth.POST("/course/lessons/:id/complete", courseapi.CompleteLesson)
	auth.DELETE("/course/lessons/:id/complete", courseapi.UncompleteLesson)
	auth.GET("/course/progress", courseapi.GetProgress)

	// Subscribed users
	subscribed := auth.Group("/")
	subscribed.Use(middleware.RequireActiveSubscription())
	subscribed.GET("/course/certificate", courseapi.GetCertificate)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminapi.GetDashboardStats)
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/user/:id", adminapi.GetUserDetails)
	admin.PUT("/user/:id/access-override", adminapi.SetAccessOverride)
	admin.GET("/payments", adminapi.ListAllPayments)
	admin.GET("/videos", adminapi.ListVideoStatus)
	admin.POST("/sync-plans", plans.SyncPlansFromStripe)

	admin.GET("/modules", contentapi.ListModulesAdmin)
	admin.POST("/modules", contentapi.CreateModule)
	admin.PUT("/modules/:id", contentapi.UpdateModule)
	admin.PUT("/modules/:id/publish", contentapi.SetModulePublished)
	admin.DELETE("/modules/:id", contentapi.DeleteModule)
	admin.PUT("/modules/reorder", contentapi.ReorderModules)

	admin.POST("/modules/:id/lessons", contentapi.CreateLesson)
	admin.PUT("/modules/:id/lessons/reorder", contentapi.ReorderLessons)
	admin.GET("/lessons/:id", contentapi.GetLessonAdmin)
	admin.PUT("/lessons/:id", contentapi.UpdateLesson)
	admin.PUT("/lessons/:id/publish", contentapi.SetLessonPublished)
	admin.PUT("/lessons/:id/free", contentapi.SetLessonFree)
	admin.DELETE("/lessons/:id", contentapi.DeleteLesson)
	admin.POST("/lessons/:id/video-upload", contentapi.CreateLessonUpload)

	admin.POST("/lessons/:id/assets", contentapi.CreateAssetUpload)
	admin.DELETE("/assets/:assetId", contentapi.DeleteAsset)
}
