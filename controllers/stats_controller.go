package controllers

import (
	"net/http"

	"github.com/DBN92/our-journey-together/services"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	Stats    *services.StatsService
	Settings *services.SettingsService
}

func NewStatsController(stats *services.StatsService, settings *services.SettingsService) *StatsController {
	return &StatsController{Stats: stats, Settings: settings}
}

// GetOverview returns the couple's streak, rolling-week counts, dominant
// mood glyph and goal progress in one payload.
func (h *StatsController) GetOverview(c *gin.Context) {
	coupleID, ok := coupleIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "no couple membership"})
		return
	}

	targets := h.Settings.GetTargets(c.Request.Context(), coupleID)
	out, err := h.Stats.Overview(c.Request.Context(), coupleID, targets)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}
