package content

import (
	"errors"
	"net/http"

	"course-platform/database"
	"course-platform/internal/domain/content"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type reorderRequest struct {
	OrderedIDs []string `json:"ordered_ids" binding:"required"`
}

// ReorderModules applies a full new ordering of the course modules in one
// transaction. Concurrent reorders serialize on the row locks; the losing
// request sees the winner's state and either no-ops or conflicts.
func ReorderModules(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ordered_ids is required"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var modules []content.Module
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Order("position ASC").
			Find(&modules).Error; err != nil {
			return err
		}

		siblings := make([]content.Sibling, len(modules))
		for i, m := range modules {
			siblings[i] = content.Sibling{ID: m.ID, Position: m.Position}
		}

		updates, err := content.PlanReorder(siblings, req.OrderedIDs)
		if err != nil {
			return err
		}

		for _, u := range updates {
			if err := tx.Model(&content.Module{}).
				Where("id = ?", u.ID).
				Update("position", u.Position).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		respondReorderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reordered"})
}

// ReorderLessons does the same within one module.
func ReorderLessons(c *gin.Context) {
	moduleID := c.Param("id")

	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ordered_ids is required"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var module content.Module
		if err := tx.First(&module, "id = ?", moduleID).Error; err != nil {
			return err
		}

		var lessons []content.Lesson
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("module_id = ?", moduleID).
			Order("position ASC").
			Find(&lessons).Error; err != nil {
			return err
		}

		siblings := make([]content.Sibling, len(lessons))
		for i, l := range lessons {
			siblings[i] = content.Sibling{ID: l.ID, Position: l.Position}
		}

		updates, err := content.PlanReorder(siblings, req.OrderedIDs)
		if err != nil {
			return err
		}

		for _, u := range updates {
			if err := tx.Model(&content.Lesson{}).
				Where("id = ?", u.ID).
				Update("position", u.Position).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		respondReorderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reordered"})
}

func respondReorderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, content.ErrReorderConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Ordering is out of date, reload and try again"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Module not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder"})
	}
}
