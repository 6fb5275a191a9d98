package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWindow(t *testing.T, start, end string) Window {
	t.Helper()
	w, err := ParseWindow(start, end)
	require.NoError(t, err)
	return w
}

func TestParseClock(t *testing.T) {
	min, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9*60+30, min)

	_, err = ParseClock("25:00")
	assert.Error(t, err)
	_, err = ParseClock("bogus")
	assert.Error(t, err)
}

func TestResolveDayWindow_Intersection(t *testing.T) {
	notify := mustWindow(t, "09:00", "21:00")
	avail := mustWindow(t, "18:00", "23:00")

	w, ok := ResolveDayWindow(notify, avail)

	require.True(t, ok)
	assert.Equal(t, mustWindow(t, "18:00", "21:00"), w)
	assert.Equal(t, 180, w.Duration())
}

func TestResolveDayWindow_NoOverlap(t *testing.T) {
	notify := mustWindow(t, "09:00", "12:00")
	avail := mustWindow(t, "13:00", "17:00")

	_, ok := ResolveDayWindow(notify, avail)
	assert.False(t, ok)
}

func TestResolveDayWindow_TouchingEdgesIsEmpty(t *testing.T) {
	a := mustWindow(t, "09:00", "12:00")
	b := mustWindow(t, "12:00", "17:00")
	_, ok := ResolveDayWindow(a, b)
	assert.False(t, ok)
}

func TestWindow_RecommendedStart(t *testing.T) {
	w := mustWindow(t, "18:00", "21:00")
	dayBase := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	// Before the window: start of window.
	start, ok := w.RecommendedStart(dayBase.Add(10*time.Hour), time.UTC)
	require.True(t, ok)
	assert.Equal(t, dayBase.Add(18*time.Hour), start)

	// Inside the window: now.
	now := dayBase.Add(19 * time.Hour)
	start, ok = w.RecommendedStart(now, time.UTC)
	require.True(t, ok)
	assert.Equal(t, now, start)

	// Past the window: no recommendation.
	_, ok = w.RecommendedStart(dayBase.Add(22*time.Hour), time.UTC)
	assert.False(t, ok)
}

func TestWindow_Contains(t *testing.T) {
	w := mustWindow(t, "08:00", "22:00")
	assert.True(t, w.Contains(8*60))
	assert.True(t, w.Contains(21*60+59))
	assert.False(t, w.Contains(22*60))
	assert.False(t, w.Contains(7*60+59))
}
