package models

import "time"

type PartnerMessage struct {
	ID           uint   `gorm:"primaryKey"`
	CoupleID     uint   `gorm:"index;not null"`
	SenderUserID uint   `gorm:"index"`
	Text         string `gorm:"type:text;not null"`
	CreatedAt    time.Time
}
