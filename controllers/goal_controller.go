package controllers

import (
	"net/http"

	"github.com/DBN92/our-journey-together/services"

	"github.com/gin-gonic/gin"
)

type GoalController struct {
	Settings *services.SettingsService
}

func NewGoalController(settings *services.SettingsService) *GoalController {
	return &GoalController{Settings: settings}
}

func (h *GoalController) GetTargets(c *gin.Context) {
	coupleID, ok := coupleIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "no couple membership"})
		return
	}
	c.JSON(http.StatusOK, h.Settings.GetTargets(c.Request.Context(), coupleID))
}

func (h *GoalController) UpdateTargets(c *gin.Context) {
	coupleID, ok := coupleIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "no couple membership"})
		return
	}

	var input services.GoalTargets
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Settings.SaveTargets(c.Request.Context(), coupleID, input); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
