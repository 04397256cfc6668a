package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/DBN92/our-journey-together/services"

	"github.com/gin-gonic/gin"
)

type LogController struct {
	Svc *services.LogService
}

func NewLogController(svc *services.LogService) *LogController {
	return &LogController{Svc: svc}
}

func listParams(c *gin.Context) (rng string, page int) {
	rng = c.DefaultQuery("range", "all")
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	return rng, page
}

type LogMealInput struct {
	Type       string    `json:"type" binding:"required,oneof=healthy balanced free"`
	Healthy    *bool     `json:"healthy"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (h *LogController) LogMeal(c *gin.Context) {
	coupleID, ok := coupleIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "no couple membership"})
		return
	}
	userID, _ := userIDFromCtx(c)

	var input LogMealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := h.Svc.AddMeal(c.Request.Context(), coupleID, userID, input.Type, input.Healthy, input.OccurredAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func (h *LogController) ListMeals(c *gin.Context) {
	coupleID, ok := coupleIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "no couple membership"})
		return
	}

	rng, page := listParams(c)
	meals, err := h.Svc.ListMeals(c.Request.Context(), coupleID, rng, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meals)
}

type LogExerciseInput struct {
	Type            string    `json:"type" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required,gt=0"`
	Intensity       string    `json:"intensity" binding:"omitempty,oneof=light moderate intense"`
	Together        bool      `json:"together"`
	OccurredAt      time.Time `json:"occurred_at"`
}

func (h *LogController) LogExercise(c *gin.Context) {
	coupleID, ok := coupleIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "no couple membership"})
		return
	}
	userID, _ := userIDFromCtx(c)

	var input LogExerciseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ex, err := h.Svc.AddExercise(c.Request.Context(), coupleID, userID,
		input.Type, input.DurationMinutes, input.Intensity, input.Together, input.OccurredAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, ex)
}

func (h *LogController) ListExercises(c *gin.Context) {
	coupleID, ok := coupleIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "no couple membership"})
		return
	}

	rng, page := listParams(c)
	exercises, err := h.Svc.ListExercises(c.Request.Context(), coupleID, rng, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, exercises)
}

type CheckinInput struct {
	Mood       string    `json:"mood" binding:"required"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (h *LogController) LogCheckin(c *gin.Context) {
	coupleID, ok := coupleIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "no couple membership"})
		return
	}
	userID, _ := userIDFromCtx(c)

	var input CheckinInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	checkin, err := h.Svc.AddCheckin(c.Request.Context(), coupleID, userID, input.Mood, input.OccurredAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, checkin)
}

func (h *LogController) ListCheckins(c *gin.Context) {
	coupleID, ok := coupleIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "no couple membership"})
		return
	}

	rng, page := listParams(c)
	moods, err := h.Svc.ListCheckins(c.Request.Context(), coupleID, rng, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, moods)
}
