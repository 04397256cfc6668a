package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRangeStart(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		loc = time.UTC
	}
	now := time.Date(2026, 3, 15, 14, 30, 0, 0, loc)

	from, ok := RangeStart("today", now)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, loc), from)

	from, ok = RangeStart("7d", now)
	assert.True(t, ok)
	assert.Equal(t, now.AddDate(0, 0, -7), from)

	from, ok = RangeStart("30d", now)
	assert.True(t, ok)
	assert.Equal(t, now.AddDate(0, 0, -30), from)

	_, ok = RangeStart("all", now)
	assert.False(t, ok)

	_, ok = RangeStart("garbage", now)
	assert.False(t, ok)
}
