package services

import (
	"fmt"

	"github.com/DBN92/our-journey-together/models"

	"gorm.io/gorm"
)

type messageDeps struct {
	db *gorm.DB
	rt *RealtimeHub
	ps *PushService
}

var _messages messageDeps

func InitMessageDeps(db *gorm.DB, rt *RealtimeHub, ps *PushService) {
	_messages = messageDeps{db: db, rt: rt, ps: ps}
}

// SendPartnerMessage persists the message, fans it out on the realtime
// hub and pushes a notification to the partner's devices.
func SendPartnerMessage(coupleID, senderUserID uint, text string) (*models.PartnerMessage, error) {
	if _messages.db == nil {
		return nil, fmt.Errorf("message service not initialized")
	}

	m := &models.PartnerMessage{CoupleID: coupleID, SenderUserID: senderUserID, Text: text}
	if err := _messages.db.Create(m).Error; err != nil {
		return nil, err
	}

	if _messages.rt != nil {
		_messages.rt.BroadcastToCouple(coupleID, senderUserID, map[string]any{
			"kind":    "message.created",
			"message": m,
		})
	}
	if _messages.ps != nil {
		_messages.ps.PushToPartner(coupleID, senderUserID, "Mensagem do seu amor 💌", text, map[string]string{
			"messageId": fmt.Sprintf("%d", m.ID),
		})
	}
	return m, nil
}

func ListPartnerMessages(coupleID uint, limit int) ([]models.PartnerMessage, error) {
	if _messages.db == nil {
		return nil, fmt.Errorf("message service not initialized")
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var msgs []models.PartnerMessage
	err := _messages.db.
		Where("couple_id = ?", coupleID).
		Order("created_at DESC").
		Limit(limit).
		Find(&msgs).Error
	return msgs, err
}
