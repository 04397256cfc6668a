package services

import (
	"context"
	"fmt"
	"time"

	"github.com/DBN92/our-journey-together/models"

	"gorm.io/gorm"
)

// Log history pages match the client's page size.
const logPageSize = 10

type LogService struct{ db *gorm.DB }

func NewLogService(db *gorm.DB) *LogService { return &LogService{db: db} }

// RangeStart resolves a history range filter to its inclusive lower
// bound. ok is false for "all" (no bound).
func RangeStart(rng string, now time.Time) (time.Time, bool) {
	switch rng {
	case "today":
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), true
	case "7d":
		return now.AddDate(0, 0, -7), true
	case "30d":
		return now.AddDate(0, 0, -30), true
	default:
		return time.Time{}, false
	}
}

func (s *LogService) scoped(ctx context.Context, coupleID uint, rng string, page int) *gorm.DB {
	q := s.db.WithContext(ctx).Where("couple_id = ?", coupleID)
	if from, ok := RangeStart(rng, time.Now()); ok {
		q = q.Where("occurred_at >= ?", from)
	}
	if page < 1 {
		page = 1
	}
	return q.Order("occurred_at DESC").
		Offset((page - 1) * logPageSize).
		Limit(logPageSize)
}

func (s *LogService) AddMeal(ctx context.Context, coupleID, userID uint, mealType string, healthy *bool, occurredAt time.Time) (*models.MealLog, error) {
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}
	m := &models.MealLog{
		CoupleID:   coupleID,
		UserID:     userID,
		Type:       mealType,
		Healthy:    healthy,
		OccurredAt: occurredAt,
	}
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, fmt.Errorf("failed to log meal: %w", err)
	}
	return m, nil
}

func (s *LogService) ListMeals(ctx context.Context, coupleID uint, rng string, page int) ([]models.MealLog, error) {
	var meals []models.MealLog
	err := s.scoped(ctx, coupleID, rng, page).Find(&meals).Error
	return meals, err
}

func (s *LogService) AddExercise(ctx context.Context, coupleID, userID uint, exType string, durationMinutes int, intensity string, together bool, occurredAt time.Time) (*models.ExerciseLog, error) {
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}
	e := &models.ExerciseLog{
		CoupleID:        coupleID,
		UserID:          userID,
		Type:            exType,
		DurationMinutes: durationMinutes,
		Intensity:       intensity,
		Together:        together,
		OccurredAt:      occurredAt,
	}
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return nil, fmt.Errorf("failed to log exercise: %w", err)
	}
	return e, nil
}

func (s *LogService) ListExercises(ctx context.Context, coupleID uint, rng string, page int) ([]models.ExerciseLog, error) {
	var exercises []models.ExerciseLog
	err := s.scoped(ctx, coupleID, rng, page).Find(&exercises).Error
	return exercises, err
}

func (s *LogService) AddCheckin(ctx context.Context, coupleID, userID uint, mood string, occurredAt time.Time) (*models.MoodCheckin, error) {
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}
	m := &models.MoodCheckin{
		CoupleID:   coupleID,
		UserID:     userID,
		Mood:       mood,
		OccurredAt: occurredAt,
	}
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, fmt.Errorf("failed to log check-in: %w", err)
	}
	return m, nil
}

func (s *LogService) ListCheckins(ctx context.Context, coupleID uint, rng string, page int) ([]models.MoodCheckin, error) {
	var moods []models.MoodCheckin
	err := s.scoped(ctx, coupleID, rng, page).Find(&moods).Error
	return moods, err
}

// ResetCoupleData wipes the couple's logs and messages in one
// transaction. Settings and branding rows survive a reset.
func (s *LogService) ResetCoupleData(ctx context.Context, coupleID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{
			&models.MealLog{},
			&models.ExerciseLog{},
			&models.MoodCheckin{},
			&models.PartnerMessage{},
		} {
			if err := tx.Where("couple_id = ?", coupleID).Delete(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
