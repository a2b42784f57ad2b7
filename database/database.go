package database

import (
	"fmt"
	"log"
	"os"

	"course-platform/internal/domain/billing"
	"course-platform/internal/domain/content"
	"course-platform/internal/domain/plans"
	"course-platform/internal/domain/progress"
	"course-platform/internal/domain/subscriptions"
	"course-platform/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	// ✅ REQUIRED for UUID generation
	if err := DB.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Fatal("❌ Failed to enable pgcrypto extension:", err)
	}

	if err := DB.AutoMigrate(
		// core
		&users.User{},
		&users.VerificationToken{},
		&plans.Plan{},
		&subscriptions.Subscription{},
		&billing.Payment{},

		// course content
		&content.Module{},
		&content.Lesson{},
		&content.Asset{},

		// learner progress
		&progress.LessonProgress{},
	); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}
