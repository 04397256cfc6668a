package services

import (
	"errors"
	"fmt"

	"github.com/DBN92/our-journey-together/config"
	"github.com/DBN92/our-journey-together/models"
	"github.com/DBN92/our-journey-together/utils"

	"gorm.io/gorm"
)

const inviteCodeLength = 6

// CreateCouple sets up the tenant for a fresh account: the couple row,
// the owner's membership and an invite code the partner can redeem.
func CreateCouple(ownerUserID uint, yourName, partnerName, mainGoal string) (*models.Couple, error) {
	if _, err := CoupleForUser(ownerUserID); err == nil {
		return nil, errors.New("user already belongs to a couple")
	}

	couple := &models.Couple{
		OwnerUserID: ownerUserID,
		YourName:    yourName,
		PartnerName: partnerName,
		MainGoal:    mainGoal,
		InviteCode:  utils.GenerateInviteCode(inviteCodeLength),
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(couple).Error; err != nil {
			return err
		}
		member := &models.CoupleMember{CoupleID: couple.ID, UserID: ownerUserID}
		return tx.Create(member).Error
	})
	if err != nil {
		return nil, err
	}
	return couple, nil
}

// CoupleForUser resolves the couple a user belongs to: membership first,
// ownership as fallback for rows created before memberships existed.
func CoupleForUser(userID uint) (*models.Couple, error) {
	var member models.CoupleMember
	if err := config.DB.Where("user_id = ?", userID).First(&member).Error; err == nil {
		var couple models.Couple
		if err := config.DB.First(&couple, member.CoupleID).Error; err != nil {
			return nil, err
		}
		return &couple, nil
	}

	var couple models.Couple
	if err := config.DB.Where("owner_user_id = ?", userID).First(&couple).Error; err != nil {
		return nil, errors.New("no couple for user")
	}
	return &couple, nil
}

// InvitePartner mails the couple's join code to the partner.
func InvitePartner(coupleID uint, email string) error {
	var couple models.Couple
	if err := config.DB.First(&couple, coupleID).Error; err != nil {
		return err
	}

	if couple.InviteCode == "" {
		couple.InviteCode = utils.GenerateInviteCode(inviteCodeLength)
		if err := config.DB.Save(&couple).Error; err != nil {
			return err
		}
	}

	return utils.SendInviteEmail(email, couple.YourName, couple.InviteCode)
}

// JoinCouple redeems an invite code for the calling user.
func JoinCouple(userID uint, code string) (*models.Couple, error) {
	var couple models.Couple
	if err := config.DB.Where("invite_code = ?", code).First(&couple).Error; err != nil {
		return nil, errors.New("invalid invite code")
	}

	if _, err := CoupleForUser(userID); err == nil {
		return nil, errors.New("user already belongs to a couple")
	}

	member := &models.CoupleMember{CoupleID: couple.ID, UserID: userID}
	if err := config.DB.Create(member).Error; err != nil {
		return nil, fmt.Errorf("failed to join couple: %w", err)
	}
	return &couple, nil
}
