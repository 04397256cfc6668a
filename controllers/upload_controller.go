package controllers

import (
	"net/http"

	"github.com/DBN92/our-journey-together/services"
	"github.com/DBN92/our-journey-together/utils"

	"github.com/gin-gonic/gin"
)

type UploadController struct {
	Moderation *services.ModerationService // nil when AWS is unconfigured
	Settings   *services.SettingsService
	Log        *utils.Logger
}

func NewUploadController(mod *services.ModerationService, settings *services.SettingsService, log *utils.Logger) *UploadController {
	return &UploadController{Moderation: mod, Settings: settings, Log: log}
}

type UploadImageInput struct {
	Image string `json:"image" binding:"required"` // "data:<mime>;base64,<data>"
}

func (h *UploadController) upload(c *gin.Context, keyPrefix string) (string, bool) {
	var input UploadImageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}

	data, contentType, err := utils.DecodeBase64Image(input.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}

	if h.Moderation != nil {
		flagged, err := h.Moderation.FlaggedLabels(data)
		if err != nil {
			h.Log.Warn("moderation check failed, allowing upload", "error", err)
		} else if len(flagged) > 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "image rejected", "labels": flagged})
			return "", false
		}
	}

	url, err := utils.UploadImageToS3(data, contentType, keyPrefix)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return "", false
	}
	return url, true
}

func (h *UploadController) UploadAvatar(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	url, ok := h.upload(c, "avatars")
	if !ok {
		return
	}

	if err := services.UpdateUserAvatar(userID, url); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// UploadLogo stores the couple's brand image and records its URL in the
// branding settings row.
func (h *UploadController) UploadLogo(c *gin.Context) {
	coupleID, ok := coupleIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "no couple membership"})
		return
	}

	url, ok := h.upload(c, "branding")
	if !ok {
		return
	}

	if err := h.Settings.SaveBrandingLogoURL(c.Request.Context(), coupleID, url); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
