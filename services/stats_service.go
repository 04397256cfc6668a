package services

import (
	"context"
	"math"
	"time"

	"github.com/DBN92/our-journey-together/models"

	"gorm.io/gorm"
)

// Streak walking stops after this many days even when every day has
// activity.
const streakLookbackDays = 30

const rollingWindow = 7 * 24 * time.Hour

// moodEmojis is the closed label → glyph table. Unknown labels and empty
// windows fall back to moodFallback.
var moodEmojis = map[string]string{
	"Ótimo":   "😊",
	"Bem":     "🙂",
	"Ok":      "😐",
	"Baixo":   "😔",
	"Difícil": "😢",
}

const moodFallback = "😊"

type StatsService struct{ db *gorm.DB }

func NewStatsService(db *gorm.DB) *StatsService { return &StatsService{db: db} }

type WeeklyCounts struct {
	Exercises          int `json:"exercises"`
	TogetherActivities int `json:"together_activities"`
	HealthyMeals       int `json:"healthy_meals"`
	Checkins           int `json:"checkins"`
}

type CategoryProgress struct {
	Actual   int     `json:"actual"`
	Target   int     `json:"target"`
	Percent  float64 `json:"percent"`
	Complete bool    `json:"complete"`
}

type StatsOverview struct {
	Streak       int                         `json:"streak"`
	Weekly       WeeklyCounts                `json:"weekly"`
	DominantMood string                      `json:"dominant_mood"`
	Goals        map[string]CategoryProgress `json:"goals"`
}

// Overview recomputes every derived metric from scratch for one couple.
// Nothing is carried over between calls.
func (s *StatsService) Overview(ctx context.Context, coupleID uint, targets GoalTargets) (*StatsOverview, error) {
	now := time.Now()
	since := now.AddDate(0, 0, -streakLookbackDays)

	var meals []models.MealLog
	if err := s.db.WithContext(ctx).
		Where("couple_id = ? AND occurred_at >= ?", coupleID, since).
		Order("occurred_at DESC").
		Find(&meals).Error; err != nil {
		return nil, err
	}

	var exercises []models.ExerciseLog
	if err := s.db.WithContext(ctx).
		Where("couple_id = ? AND occurred_at >= ?", coupleID, since).
		Order("occurred_at DESC").
		Find(&exercises).Error; err != nil {
		return nil, err
	}

	var moods []models.MoodCheckin
	if err := s.db.WithContext(ctx).
		Where("couple_id = ? AND occurred_at >= ?", coupleID, since).
		Order("occurred_at DESC").
		Find(&moods).Error; err != nil {
		return nil, err
	}

	occurrences := make([]time.Time, 0, len(meals)+len(exercises)+len(moods))
	for _, m := range meals {
		occurrences = append(occurrences, m.OccurredAt)
	}
	for _, e := range exercises {
		occurrences = append(occurrences, e.OccurredAt)
	}
	for _, m := range moods {
		occurrences = append(occurrences, m.OccurredAt)
	}

	weekly := weeklyCounts(meals, exercises, moods, now)

	out := &StatsOverview{
		Streak:       computeStreak(occurrences, now),
		Weekly:       weekly,
		DominantMood: dominantMood(moods, now),
		Goals: map[string]CategoryProgress{
			"workouts":      goalProgress(weekly.TogetherActivities, targets.Workout, DefaultTargets.Workout),
			"healthy_meals": goalProgress(weekly.HealthyMeals, targets.Meals, DefaultTargets.Meals),
			"checkins":      goalProgress(weekly.Checkins, targets.Mood, DefaultTargets.Mood),
		},
	}
	return out, nil
}

// ---------- pure computation ----------

// computeStreak buckets every occurrence by local calendar date and walks
// backward from today. The streak ends at the first day with no activity.
// A zero timestamp never lands in any bucket.
func computeStreak(occurrences []time.Time, now time.Time) int {
	loc := now.Location()
	byDay := make(map[string]int, len(occurrences))
	for _, t := range occurrences {
		if t.IsZero() {
			continue
		}
		byDay[t.In(loc).Format("2006-01-02")]++
	}

	streak := 0
	for i := 0; i < streakLookbackDays; i++ {
		key := now.AddDate(0, 0, -i).Format("2006-01-02")
		if byDay[key] == 0 {
			break
		}
		streak++
	}
	return streak
}

// weeklyCounts counts events inside the trailing 7-day instant window.
// The cutoff is exact instant subtraction, not calendar-aligned.
func weeklyCounts(meals []models.MealLog, exercises []models.ExerciseLog, moods []models.MoodCheckin, now time.Time) WeeklyCounts {
	cutoff := now.Add(-rollingWindow)
	inWindow := func(t time.Time) bool {
		return !t.IsZero() && !t.Before(cutoff)
	}

	var wc WeeklyCounts
	for _, e := range exercises {
		if !inWindow(e.OccurredAt) {
			continue
		}
		wc.Exercises++
		if e.Together {
			wc.TogetherActivities++
		}
	}
	for _, m := range meals {
		// Strict: a meal with an unset healthy flag never counts.
		if inWindow(m.OccurredAt) && m.Healthy != nil && *m.Healthy {
			wc.HealthyMeals++
		}
	}
	for _, m := range moods {
		if inWindow(m.OccurredAt) {
			wc.Checkins++
		}
	}
	return wc
}

// dominantMood picks the most frequent mood label inside the rolling
// window and maps it to its display glyph. Ties go to the label seen
// first in input order; an empty window or unknown label yields the
// fallback glyph.
func dominantMood(moods []models.MoodCheckin, now time.Time) string {
	cutoff := now.Add(-rollingWindow)

	freq := make(map[string]int)
	var top string
	best := 0
	for _, m := range moods {
		if m.OccurredAt.IsZero() || m.OccurredAt.Before(cutoff) {
			continue
		}
		freq[m.Mood]++
		if freq[m.Mood] > best {
			best = freq[m.Mood]
			top = m.Mood
		}
	}

	if emoji, ok := moodEmojis[top]; ok {
		return emoji
	}
	return moodFallback
}

// goalProgress clamps the completion ratio at 100%. Completion is judged
// on the raw counts, not the rounded percentage.
func goalProgress(actual, target, fallback int) CategoryProgress {
	if target <= 0 {
		target = fallback
	}
	ratio := float64(actual) / float64(target)
	if ratio > 1 {
		ratio = 1
	}
	return CategoryProgress{
		Actual:   actual,
		Target:   target,
		Percent:  math.Round(ratio * 100),
		Complete: actual >= target,
	}
}
