package controllers

import (
	"net/http"

	"conference-management-api/models"
	"conference-management-api/services"

	"github.com/gin-gonic/gin"
)

type decisionRequest struct {
	Outcome string `json:"outcome" binding:"required"`
}

// currentActor resolves the authenticated actor placed in the context by the
// auth middleware.
func currentActor(c *gin.Context) (models.Actor, bool) {
	idValue, ok := c.Get("userID")
	if !ok {
		return models.Actor{}, false
	}
	roleValue, ok := c.Get("role")
	if !ok {
		return models.Actor{}, false
	}
	id, ok := idValue.(string)
	if !ok {
		return models.Actor{}, false
	}
	role, ok := roleValue.(models.Role)
	if !ok {
		return models.Actor{}, false
	}
	return models.Actor{ID: id, Role: role}, true
}

// statusForError maps a service error to the transport status code.
func statusForError(err error) int {
	switch services.KindOf(err) {
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindForbidden:
		return http.StatusForbidden
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindConflict:
		return http.StatusConflict
	case services.KindStorage:
		return http.StatusInternalServerError
	}
	return http.StatusServiceUnavailable
}

func respondServiceError(c *gin.Context, err error) {
	c.JSON(statusForError(err), gin.H{"error": err.Error()})
}

// RecordDecision records the final accept/reject decision for a paper and
// notifies its authors.
func RecordDecision(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return
	}

	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	service := services.NewDecisionService(nil, nil)
	result, err := service.RecordDecision(c.Request.Context(), &services.RecordDecisionInput{
		PaperID:   c.Param("id"),
		Outcome:   req.Outcome,
		Actor:     actor,
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"decision_id":         result.DecisionID,
		"final":               result.Final,
		"notification_status": result.NotificationStatus,
		"failed_authors":      result.FailedAuthors,
	})
}

// ResendDecisionNotifications re-sends the decision notification to the
// authors whose latest attempt failed.
func ResendDecisionNotifications(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return
	}

	service := services.NewDecisionService(nil, nil)
	result, err := service.ResendFailedNotifications(c.Request.Context(), &services.ResendInput{
		PaperID:   c.Param("id"),
		Actor:     actor,
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"final":               result.Final,
		"notification_status": result.NotificationStatus,
		"failed_authors":      result.FailedAuthors,
	})
}

// GetDecision returns the redacted decision view for editors and listed
// authors.
func GetDecision(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return
	}

	service := services.NewDecisionService(nil, nil)
	view, err := service.GetDecisionView(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"decision": view,
	})
}

// GetDecisionNotifications returns the append-only attempt ledger for the
// paper's decision, editor-only.
func GetDecisionNotifications(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return
	}

	service := services.NewDecisionService(nil, nil)
	attempts, err := service.ListNotificationAttempts(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if attempts == nil {
		attempts = []models.NotificationAttempt{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"attempts": attempts,
		"total":    len(attempts),
	})
}
