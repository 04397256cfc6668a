package controllers

import (
	"net/http"

	"github.com/DBN92/our-journey-together/services"

	"github.com/gin-gonic/gin"
)

type CoupleController struct {
	Logs *services.LogService
}

func NewCoupleController(logs *services.LogService) *CoupleController {
	return &CoupleController{Logs: logs}
}

type CreateCoupleInput struct {
	YourName    string `json:"your_name" binding:"required"`
	PartnerName string `json:"partner_name"`
	MainGoal    string `json:"main_goal"`
}

func (cc *CoupleController) CreateCouple(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input CreateCoupleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	couple, err := services.CreateCouple(userID, input.YourName, input.PartnerName, input.MainGoal)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, couple)
}

func (cc *CoupleController) GetProfile(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	couple, err := services.CoupleForUser(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no couple for user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":           couple.ID,
		"your_name":    couple.YourName,
		"partner_name": couple.PartnerName,
		"main_goal":    couple.MainGoal,
		"invite_code":  couple.InviteCode,
	})
}

type InviteInput struct {
	Email string `json:"email" binding:"required,email"`
}

func (cc *CoupleController) InvitePartner(c *gin.Context) {
	coupleID, ok := coupleIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "no couple membership"})
		return
	}

	var input InviteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.InvitePartner(coupleID, input.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "invite sent"})
}

type JoinInput struct {
	Code string `json:"code" binding:"required"`
}

func (cc *CoupleController) JoinCouple(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input JoinInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	couple, err := services.JoinCouple(userID, input.Code)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, couple)
}

// ResetData wipes the couple's logs and messages. Settings survive.
func (cc *CoupleController) ResetData(c *gin.Context) {
	coupleID, ok := coupleIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "no couple membership"})
		return
	}

	if err := cc.Logs.ResetCoupleData(c.Request.Context(), coupleID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
