package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/DBN92/our-journey-together/services"

	"github.com/gin-gonic/gin"
)

type CoachController struct {
	Svc *services.CoachService
}

func NewCoachController(svc *services.CoachService) *CoachController {
	return &CoachController{Svc: svc}
}

// Generate proxies a generation request to the AI gateway and re-emits
// the text deltas to the client as SSE frames, ending with [DONE]. A
// client disconnect cancels the upstream request.
func (h *CoachController) Generate(c *gin.Context) {
	var req services.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}

	started := false
	writeFrame := func(payload any) {
		raw, err := json.Marshal(payload)
		if err != nil {
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", raw)
		flusher.Flush()
	}

	_, err := h.Svc.Stream(c.Request.Context(), req, func(delta, _ string) {
		if !started {
			c.Header("Content-Type", "text/event-stream")
			c.Header("Cache-Control", "no-cache")
			c.Writer.WriteHeader(http.StatusOK)
			started = true
		}
		writeFrame(gin.H{"content": delta})
	})
	if err != nil {
		if started {
			// Headers are gone; the truncated stream (no [DONE]) tells
			// the client the generation failed.
			return
		}
		var coachErr *services.CoachError
		if errors.As(err, &coachErr) {
			c.JSON(coachErr.Status, gin.H{"error": coachErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !started {
		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Writer.WriteHeader(http.StatusOK)
	}
	fmt.Fprint(c.Writer, "data: [DONE]\n\n")
	flusher.Flush()
}
