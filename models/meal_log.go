package models

import (
	"time"

	"gorm.io/gorm"
)

// One logged meal. Healthy is tri-state: nil means the couple logged the
// meal without judging it, and it never counts as a healthy meal.
type MealLog struct {
	gorm.Model
	CoupleID   uint      `gorm:"index;not null"`
	UserID     uint      `gorm:"index"`
	Type       string    `gorm:"size:16"` // "healthy"|"balanced"|"free"
	Healthy    *bool
	OccurredAt time.Time `gorm:"index;not null"`
}
