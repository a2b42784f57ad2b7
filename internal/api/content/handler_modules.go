package content

import (
	"errors"
	"net/http"

	"course-platform/database"
	"course-platform/internal/domain/content"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type moduleInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// ListModulesAdmin returns every module with lessons, drafts included.
func ListModulesAdmin(c *gin.Context) {
	var modules []content.Module
	err := database.DB.
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.position ASC")
		}).
		Order("position ASC").
		Find(&modules).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load modules"})
		return
	}
	c.JSON(http.StatusOK, modules)
}

// CreateModule appends a new (unpublished) module at the end of the course.
func CreateModule(c *gin.Context) {
	var input moduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	var module content.Module
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var maxPos int
		if err := tx.Model(&content.Module{}).
			Select("COALESCE(MAX(position), 0)").
			Scan(&maxPos).Error; err != nil {
			return err
		}

		module = content.Module{
			Title:       input.Title,
			Description: input.Description,
			Position:    maxPos + 1,
		}
		return tx.Create(&module).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create module"})
		return
	}

	c.JSON(http.StatusCreated, module)
}

func UpdateModule(c *gin.Context) {
	var module content.Module
	if err := database.DB.First(&module, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Module not found"})
		return
	}

	var input moduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	module.Title = input.Title
	module.Description = input.Description

	if err := database.DB.Save(&module).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update module"})
		return
	}
	c.JSON(http.StatusOK, module)
}

type publishInput struct {
	Published *bool `json:"published" binding:"required"`
}

func SetModulePublished(c *gin.Context) {
	var input publishInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "published is required"})
		return
	}

	res := database.DB.Model(&content.Module{}).
		Where("id = ?", c.Param("id")).
		Update("published", *input.Published)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update module"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Module not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"published": *input.Published})
}

// DeleteModule removes a module (lessons cascade) and closes the position gap
// so the remaining modules stay dense.
func DeleteModule(c *gin.Context) {
	moduleID := c.Param("id")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var module content.Module
		if err := tx.First(&module, "id = ?", moduleID).Error; err != nil {
			return err
		}

		if err := tx.Select("Lessons").Delete(&module).Error; err != nil {
			return err
		}

		return tx.Model(&content.Module{}).
			Where("position > ?", module.Position).
			Update("position", gorm.Expr("position - 1")).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Module not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete module"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
