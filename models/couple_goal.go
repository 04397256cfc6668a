package models

import (
	"gorm.io/gorm"
)

// CoupleGoal is a per-couple key-value record. GoalType "settings" holds
// the serialized weekly targets, "branding" the last uploaded logo URL.
type CoupleGoal struct {
	gorm.Model
	CoupleID    uint   `gorm:"index;not null"`
	GoalType    string `gorm:"size:20;index;not null"` // "settings"|"branding"
	Description string `gorm:"type:text"`              // serialized JSON
	Status      string `gorm:"size:16;default:active"`
}
