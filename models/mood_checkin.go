package models

import (
	"time"

	"gorm.io/gorm"
)

type MoodCheckin struct {
	gorm.Model
	CoupleID   uint      `gorm:"index;not null"`
	UserID     uint      `gorm:"index"`
	Mood       string    `gorm:"size:16"` // "Ótimo"|"Bem"|"Ok"|"Baixo"|"Difícil"
	OccurredAt time.Time `gorm:"index;not null"`
}
