package domain

import "time"

// Settings are the per-user tunables consumed by the forecasting and
// allocation engine. A single row is persisted; zero or out-of-range values
// are normalized back to the defaults rather than rejected.
type Settings struct {
	DailyCapMin              int     // default daily allocation budget
	Alpha                    float64 // exponential pace smoothing factor
	RelaxFactor              float64 // dynamic-buffer relaxation of required pace
	SPIWarnThreshold         float64 // below this SPI a task degrades to warn
	DefaultUncertaintyWeight int     // weight used when a task has no explicit bounds
	Timezone                 string  // IANA zone name for calendar-day keys

	// Daily windows (HH:MM, local) intersected by the time-window resolver.
	NotifyStart string
	NotifyEnd   string
	WorkStart   string
	WorkEnd     string
}

// DefaultSettings returns the out-of-the-box tunables.
func DefaultSettings() Settings {
	return Settings{
		DailyCapMin:              180,
		Alpha:                    0.3,
		RelaxFactor:              0.9,
		SPIWarnThreshold:         0.9,
		DefaultUncertaintyWeight: 3,
		Timezone:                 "Local",
		NotifyStart:              "09:00",
		NotifyEnd:                "21:00",
		WorkStart:                "08:00",
		WorkEnd:                  "22:00",
	}
}

// Normalize coerces invalid values to the defaults. Forecasts are advisory,
// so bad tunables degrade to safe ones instead of failing.
func (s Settings) Normalize() Settings {
	def := DefaultSettings()
	if s.DailyCapMin <= 0 {
		s.DailyCapMin = def.DailyCapMin
	}
	if !(s.Alpha > 0 && s.Alpha <= 1) {
		s.Alpha = def.Alpha
	}
	if !(s.RelaxFactor > 0 && s.RelaxFactor <= 1) {
		s.RelaxFactor = def.RelaxFactor
	}
	if s.SPIWarnThreshold <= 0 {
		s.SPIWarnThreshold = def.SPIWarnThreshold
	}
	if s.DefaultUncertaintyWeight < 1 || s.DefaultUncertaintyWeight > 5 {
		s.DefaultUncertaintyWeight = def.DefaultUncertaintyWeight
	}
	if s.Timezone == "" {
		s.Timezone = def.Timezone
	}
	if s.NotifyStart == "" || s.NotifyEnd == "" {
		s.NotifyStart, s.NotifyEnd = def.NotifyStart, def.NotifyEnd
	}
	if s.WorkStart == "" || s.WorkEnd == "" {
		s.WorkStart, s.WorkEnd = def.WorkStart, def.WorkEnd
	}
	return s
}

// Location resolves the configured timezone, falling back to the system
// local zone when the name does not resolve.
func (s Settings) Location() *time.Location {
	if s.Timezone == "" || s.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
