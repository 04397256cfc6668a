package models

import (
	"time"

	"gorm.io/gorm"
)

type ExerciseLog struct {
	gorm.Model
	CoupleID        uint      `gorm:"index;not null"`
	UserID          uint      `gorm:"index"`
	Type            string    // "walk", "gym", ...
	DurationMinutes int
	Intensity       string    `gorm:"size:16"` // "light"|"moderate"|"intense"
	Together        bool      // done as a couple
	OccurredAt      time.Time `gorm:"index;not null"`
}
