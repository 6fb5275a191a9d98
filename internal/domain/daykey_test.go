package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayKeyRoundTrip(t *testing.T) {
	loc := time.Local
	at := time.Date(2026, 8, 29, 23, 45, 0, 0, loc)

	key := DayKey(at, loc)
	assert.Equal(t, "2026-08-29", key)

	parsed, err := ParseDay(key, loc)
	require.NoError(t, err)
	assert.Equal(t, StartOfDay(at, loc), parsed)
}

func TestDaysUntil(t *testing.T) {
	loc := time.Local
	now := time.Date(2026, 8, 29, 0, 0, 0, 0, loc)

	assert.Equal(t, 5, DaysUntil(now.AddDate(0, 0, 5), now))
	// A partial day still counts as a full day owed.
	assert.Equal(t, 1, DaysUntil(now.Add(6*time.Hour), now))
	// Past deadlines clamp to 1 so required pace stays finite.
	assert.Equal(t, 1, DaysUntil(now.AddDate(0, 0, -3), now))
}

func TestSettingsNormalize_ClampsInvalid(t *testing.T) {
	s := Settings{
		DailyCapMin:              -10,
		Alpha:                    1.5,
		RelaxFactor:              0,
		SPIWarnThreshold:         -1,
		DefaultUncertaintyWeight: 9,
	}
	n := s.Normalize()
	def := DefaultSettings()

	assert.Equal(t, def.DailyCapMin, n.DailyCapMin)
	assert.Equal(t, def.Alpha, n.Alpha)
	assert.Equal(t, def.RelaxFactor, n.RelaxFactor)
	assert.Equal(t, def.SPIWarnThreshold, n.SPIWarnThreshold)
	assert.Equal(t, def.DefaultUncertaintyWeight, n.DefaultUncertaintyWeight)
	assert.Equal(t, def.Timezone, n.Timezone)
}

func TestSettingsNormalize_KeepsValid(t *testing.T) {
	s := DefaultSettings()
	s.DailyCapMin = 240
	s.Alpha = 0.5

	n := s.Normalize()
	assert.Equal(t, 240, n.DailyCapMin)
	assert.Equal(t, 0.5, n.Alpha)
}

func TestSettingsLocation_FallsBackToLocal(t *testing.T) {
	s := Settings{Timezone: "Not/AZone"}
	assert.Equal(t, time.Local, s.Location())
}
