package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/DBN92/our-journey-together/models"
	"github.com/DBN92/our-journey-together/utils"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// GoalTargets are the couple's weekly goals: together-workouts, healthy
// meals and mood check-ins.
type GoalTargets struct {
	Workout int `json:"workout"`
	Meals   int `json:"meals"`
	Mood    int `json:"mood"`
}

var DefaultTargets = GoalTargets{Workout: 3, Meals: 14, Mood: 7}

const (
	goalTypeSettings = "settings"
	goalTypeBranding = "branding"

	targetsCacheTTL = time.Hour
)

type SettingsService struct {
	db  *gorm.DB
	rdb *redis.Client
	log *utils.Logger
}

func NewSettingsService(db *gorm.DB, rdb *redis.Client, log *utils.Logger) *SettingsService {
	return &SettingsService{db: db, rdb: rdb, log: log}
}

func targetsCacheKey(coupleID uint) string {
	return fmt.Sprintf("couple:%d:targets", coupleID)
}

// GetTargets never fails: a missing row, corrupt JSON or a non-positive
// stored value degrades to the default for that field.
func (s *SettingsService) GetTargets(ctx context.Context, coupleID uint) GoalTargets {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, targetsCacheKey(coupleID)).Result(); err == nil {
			var t GoalTargets
			if json.Unmarshal([]byte(raw), &t) == nil {
				return sanitizeTargets(t)
			}
		}
	}

	var row models.CoupleGoal
	err := s.db.WithContext(ctx).
		Where("couple_id = ? AND goal_type = ?", coupleID, goalTypeSettings).
		First(&row).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn("failed to load couple targets", "coupleID", coupleID, "error", err)
		}
		return DefaultTargets
	}

	var t GoalTargets
	if err := json.Unmarshal([]byte(row.Description), &t); err != nil {
		s.log.Warn("corrupt targets payload, using defaults", "coupleID", coupleID, "error", err)
		return DefaultTargets
	}
	t = sanitizeTargets(t)

	if s.rdb != nil {
		if raw, err := json.Marshal(t); err == nil {
			_ = s.rdb.Set(ctx, targetsCacheKey(coupleID), raw, targetsCacheTTL).Err()
		}
	}
	return t
}

func (s *SettingsService) SaveTargets(ctx context.Context, coupleID uint, t GoalTargets) error {
	t = sanitizeTargets(t)
	raw, err := json.Marshal(t)
	if err != nil {
		return err
	}
	if err := s.upsertGoalRow(ctx, coupleID, goalTypeSettings, string(raw)); err != nil {
		return err
	}
	if s.rdb != nil {
		_ = s.rdb.Set(ctx, targetsCacheKey(coupleID), raw, targetsCacheTTL).Err()
	}
	return nil
}

// BrandingLogoURL returns the last uploaded logo URL, empty when none was
// ever stored.
func (s *SettingsService) BrandingLogoURL(ctx context.Context, coupleID uint) string {
	var row models.CoupleGoal
	err := s.db.WithContext(ctx).
		Where("couple_id = ? AND goal_type = ?", coupleID, goalTypeBranding).
		First(&row).Error
	if err != nil {
		return ""
	}
	var payload struct {
		LogoURL string `json:"logo_url"`
	}
	if json.Unmarshal([]byte(row.Description), &payload) != nil {
		return ""
	}
	return payload.LogoURL
}

func (s *SettingsService) SaveBrandingLogoURL(ctx context.Context, coupleID uint, url string) error {
	raw, err := json.Marshal(map[string]string{"logo_url": url})
	if err != nil {
		return err
	}
	return s.upsertGoalRow(ctx, coupleID, goalTypeBranding, string(raw))
}

func (s *SettingsService) upsertGoalRow(ctx context.Context, coupleID uint, goalType, description string) error {
	var row models.CoupleGoal
	err := s.db.WithContext(ctx).
		Where("couple_id = ? AND goal_type = ?", coupleID, goalType).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.CoupleGoal{
			CoupleID:    coupleID,
			GoalType:    goalType,
			Description: description,
			Status:      "active",
		}
		return s.db.WithContext(ctx).Create(&row).Error
	}
	if err != nil {
		return err
	}
	row.Description = description
	return s.db.WithContext(ctx).Save(&row).Error
}

func sanitizeTargets(t GoalTargets) GoalTargets {
	if t.Workout <= 0 {
		t.Workout = DefaultTargets.Workout
	}
	if t.Meals <= 0 {
		t.Meals = DefaultTargets.Meals
	}
	if t.Mood <= 0 {
		t.Mood = DefaultTargets.Mood
	}
	return t
}
