package models

import (
	"gorm.io/gorm"
)

// Couple is the tenant unit: every log, message and setting belongs to
// exactly one couple.
type Couple struct {
	gorm.Model
	OwnerUserID uint   `gorm:"index;not null"`
	YourName    string `gorm:"not null"`
	PartnerName string
	MainGoal    string `gorm:"size:32"` // "health"|"weight_loss"|"muscle"|"cardio"
	InviteCode  string `gorm:"size:16;index"`
}

// CoupleMember links a user account to a couple. A user belongs to at
// most one couple.
type CoupleMember struct {
	gorm.Model
	CoupleID uint `gorm:"index;not null"`
	UserID   uint `gorm:"uniqueIndex;not null"`
}
