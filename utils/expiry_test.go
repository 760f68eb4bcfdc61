package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d, hour, min int) time.Time {
	return time.Date(y, m, d, hour, min, 0, 0, time.UTC)
}

func TestDaysUntilExpiry(t *testing.T) {
	tests := []struct {
		name   string
		ref    time.Time
		expiry time.Time
		want   int
	}{
		{"same day", date(2024, 3, 10, 0, 0), date(2024, 3, 10, 0, 0), 0},
		{"tomorrow", date(2024, 3, 10, 0, 0), date(2024, 3, 11, 0, 0), 1},
		{"yesterday", date(2024, 3, 10, 0, 0), date(2024, 3, 9, 0, 0), -1},
		{"a year out", date(2024, 3, 10, 0, 0), date(2025, 3, 10, 0, 0), 365},
		{"across month boundary", date(2024, 1, 31, 0, 0), date(2024, 2, 2, 0, 0), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysUntilExpiry(tt.ref, tt.expiry))
		})
	}
}

// The answer must not depend on the time-of-day of either argument: a check
// at 23:59 and one at 00:01 see the same number of days.
func TestDaysUntilExpiryIgnoresTimeOfDay(t *testing.T) {
	expiry := date(2024, 3, 12, 0, 0)
	base := DaysUntilExpiry(date(2024, 3, 10, 0, 0), expiry)

	for _, ref := range []time.Time{
		date(2024, 3, 10, 23, 59),
		date(2024, 3, 10, 0, 1),
		date(2024, 3, 10, 12, 30),
	} {
		assert.Equal(t, base, DaysUntilExpiry(ref, expiry), "ref %v", ref)
	}

	for _, exp := range []time.Time{
		date(2024, 3, 12, 23, 59),
		date(2024, 3, 12, 0, 1),
	} {
		assert.Equal(t, base, DaysUntilExpiry(date(2024, 3, 10, 0, 0), exp), "expiry %v", exp)
	}
}

func TestIsExpiringSoon(t *testing.T) {
	tests := []struct {
		days int
		want bool
	}{
		{-1, false},
		{0, true},
		{1, true},
		{3, true},
		{4, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsExpiringSoon(tt.days, DefaultSoonDays), "days=%d", tt.days)
	}
}

func TestClassifyUrgencyBoundaries(t *testing.T) {
	tests := []struct {
		days int
		want Urgency
	}{
		{-2, UrgencyCritical},
		{0, UrgencyCritical},
		{3, UrgencyCritical},
		{4, UrgencyWarning},
		{7, UrgencyWarning},
		{8, UrgencySafe},
	}
	for _, tt := range tests {
		got := ClassifyUrgency(tt.days, DefaultCriticalDays, DefaultWarningDays)
		assert.Equal(t, tt.want, got, "days=%d", tt.days)
	}
}

func TestClassifyUrgencyCustomThresholds(t *testing.T) {
	assert.Equal(t, UrgencyCritical, ClassifyUrgency(5, 5, 10))
	assert.Equal(t, UrgencyWarning, ClassifyUrgency(6, 5, 10))
	assert.Equal(t, UrgencySafe, ClassifyUrgency(11, 5, 10))
}
