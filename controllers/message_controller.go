package controllers

import (
	"net/http"
	"strconv"

	"github.com/DBN92/our-journey-together/services"

	"github.com/gin-gonic/gin"
)

type SendMessageInput struct {
	Text string `json:"text" binding:"required,max=500"`
}

func SendMessage(c *gin.Context) {
	coupleID, ok := coupleIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "no couple membership"})
		return
	}
	userID, _ := userIDFromCtx(c)

	var input SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := services.SendPartnerMessage(coupleID, userID, input.Text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func ListMessages(c *gin.Context) {
	coupleID, ok := coupleIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "no couple membership"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	msgs, err := services.ListPartnerMessages(coupleID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, msgs)
}
