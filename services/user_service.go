package services

import (
	"errors"

	"github.com/DBN92/our-journey-together/config"
	"github.com/DBN92/our-journey-together/models"
)

func GetUserProfile(userID uint) (map[string]interface{}, error) {
	var user models.User
	result := config.DB.Where("id = ? AND disabled = ?", userID, false).First(&user)
	if result.Error != nil {
		return nil, errors.New("user not found or disabled")
	}

	return map[string]interface{}{
		"id":         user.ID,
		"email":      user.Email,
		"full_name":  user.FullName,
		"avatar_url": user.AvatarURL,
	}, nil
}

func UpdateUserName(userID uint, fullName string) error {
	return config.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("full_name", fullName).Error
}

func UpdateUserAvatar(userID uint, url string) error {
	return config.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("avatar_url", url).Error
}
