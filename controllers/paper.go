package controllers

import (
	"net/http"

	"conference-management-api/config"
	"conference-management-api/models"

	"github.com/gin-gonic/gin"
)

// GetPapers lists papers. Editors see every paper; authors only the papers
// they are listed on.
func GetPapers(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return
	}

	query := config.DB.Preload("Authors").Where("delete_at IS NULL")
	if !actor.IsEditor() {
		query = query.Where(
			"paper_id IN (?)",
			config.DB.Model(&models.PaperAuthor{}).Select("paper_id").Where("author_id = ?", actor.ID),
		)
	}

	var papers []models.Paper
	if err := query.Order("create_at DESC").Find(&papers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch papers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"papers":  papers,
		"total":   len(papers),
	})
}

// GetPaper returns a single paper with its author list.
func GetPaper(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return
	}

	var paper models.Paper
	if err := config.DB.Preload("Authors").
		Where("paper_id = ? AND delete_at IS NULL", c.Param("id")).
		First(&paper).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Paper not found"})
		return
	}

	if !actor.IsEditor() && !paper.HasAuthor(actor.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"paper":   paper,
	})
}

// GetPaperAssignments lists the review assignments of a paper, editor-only.
// Reviewer identities never leave this endpoint toward authors.
func GetPaperAssignments(c *gin.Context) {
	var paper models.Paper
	if err := config.DB.
		Where("paper_id = ? AND delete_at IS NULL", c.Param("id")).
		First(&paper).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Paper not found"})
		return
	}

	var assignments []models.ReviewAssignment
	if err := config.DB.
		Where("paper_id = ?", paper.PaperID).
		Order("assignment_id ASC").
		Find(&assignments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assignments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"assignments": assignments,
		"total":       len(assignments),
	})
}
