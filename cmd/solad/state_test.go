package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeekStartIsMonday(t *testing.T) {
	assert.Equal(t, "2024-04-29", weekStart("2024-04-29")) // Monday
	assert.Equal(t, "2024-04-29", weekStart("2024-05-01")) // Wednesday
	assert.Equal(t, "2024-04-29", weekStart("2024-05-05")) // Sunday
	assert.Equal(t, "2024-05-06", weekStart("2024-05-06")) // next Monday
}

func TestNextDayCrossesMonthBoundary(t *testing.T) {
	assert.Equal(t, "2024-05-01", nextDay("2024-04-30"))
	assert.Equal(t, "2024-03-01", nextDay("2024-02-29"))
	assert.Equal(t, "", nextDay("not-a-date"))
}

func TestAwardAttributesXPToDate(t *testing.T) {
	s := newState()
	s.award("2024-05-01", 15)
	s.award("2024-05-01", 10)
	s.award("2024-05-02", 5)

	assert.Equal(t, 30, s.totalXP)
	assert.Equal(t, 25, s.day("2024-05-01").XPEarned)
	assert.Equal(t, 5, s.day("2024-05-02").XPEarned)
}
