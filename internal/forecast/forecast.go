package forecast

import (
	"math"
	"time"

	"github.com/calebmorris/pacer/internal/domain"
)

// epsilon guards divisions by a near-zero pace or required pace.
const epsilon = 1e-9

// Tunables are the per-user knobs of the progress model.
type Tunables struct {
	Alpha            float64 // exponential smoothing factor
	RelaxFactor      float64 // dynamic-buffer relaxation of required pace
	SPIWarnThreshold float64 // SPI below this degrades a task to warn
}

// DefaultTunables returns the model defaults.
func DefaultTunables() Tunables {
	return Tunables{Alpha: 0.3, RelaxFactor: 0.9, SPIWarnThreshold: 0.9}
}

func (t Tunables) normalize() Tunables {
	def := DefaultTunables()
	t.Alpha = domain.FiniteOr(t.Alpha, def.Alpha)
	if t.Alpha <= 0 || t.Alpha > 1 {
		t.Alpha = def.Alpha
	}
	t.RelaxFactor = domain.FiniteOr(t.RelaxFactor, def.RelaxFactor)
	if t.RelaxFactor <= 0 || t.RelaxFactor > 1 {
		t.RelaxFactor = def.RelaxFactor
	}
	t.SPIWarnThreshold = domain.FiniteOr(t.SPIWarnThreshold, def.SPIWarnThreshold)
	if t.SPIWarnThreshold <= 0 {
		t.SPIWarnThreshold = def.SPIWarnThreshold
	}
	return t
}

// Input is everything the progress model needs. Now and the tunables are
// explicit parameters so the computation is a pure function of its inputs.
type Input struct {
	EstimatedMin   int
	StoredTotalMin int
	Logs           map[string]int // day key -> minutes logged that day
	Deadline       *time.Time
	CreatedAt      time.Time
	PlannedStartAt *time.Time
	Now            time.Time
	Location       *time.Location
	Tunables       Tunables
}

// FoldPaceExp is the single-step exponential pace update:
// alpha*today + (1-alpha)*prev. Exposed so the recurrence is testable on
// its own.
func FoldPaceExp(prev, dayMinutes, alpha float64) float64 {
	return alpha*dayMinutes + (1-alpha)*prev
}

// paceExpOverHistory folds the exponential update over every calendar day
// from the earliest log through today, idle days included. Replaying the
// ordered history instead of reading back an ambient "previous value" makes
// the recurrence a pure function of the logs, so recomputing on unchanged
// logs yields an identical result.
func paceExpOverHistory(logs map[string]int, today time.Time, alpha float64, loc *time.Location) float64 {
	var earliest time.Time
	for key := range logs {
		day, err := domain.ParseDay(key, loc)
		if err != nil {
			continue
		}
		if earliest.IsZero() || day.Before(earliest) {
			earliest = day
		}
	}
	if earliest.IsZero() || earliest.After(today) {
		earliest = today
	}

	pace := 0.0
	for day := earliest; !day.After(today); day = day.AddDate(0, 0, 1) {
		min := logs[domain.DayKey(day, loc)]
		if min < 0 {
			min = 0
		}
		pace = FoldPaceExp(pace, float64(min), alpha)
	}
	return pace
}

// Compute runs the full progress/forecast pipeline and returns the derived
// fields to write back onto the task. Deterministic: the steps run in a
// fixed order and the same input always yields the same output.
func Compute(in Input) domain.Forecast {
	tun := in.Tunables.normalize()
	loc := in.Location
	if loc == nil {
		loc = time.Local
	}
	today := domain.StartOfDay(in.Now, loc)

	// Step 1: cumulative actual effort. The larger of the log sum and the
	// stored total wins, tolerating external adjustments.
	logSum := 0
	for _, min := range in.Logs {
		if min > 0 {
			logSum += min
		}
	}
	actual := logSum
	if in.StoredTotalMin > actual {
		actual = in.StoredTotalMin
	}

	// Step 2: trailing 7-day window ending today, with the warm-up rule.
	sum7, workedDays := 0, 0
	for i := 0; i < 7; i++ {
		key := domain.DayKey(today.AddDate(0, 0, -i), loc)
		min := in.Logs[key]
		if min > 0 {
			sum7 += min
			workedDays++
		}
	}
	var pace7d float64
	if workedDays < 3 {
		// Before a pattern is established, zero-log days must not dilute
		// the velocity.
		pace7d = float64(sum7) / math.Max(1, float64(workedDays))
	} else {
		pace7d = float64(sum7) / 7
	}

	// Step 3: exponential pace, replayed over the ordered daily history.
	paceExp := paceExpOverHistory(in.Logs, today, tun.Alpha, loc)

	// Step 4: remaining work.
	remaining := in.EstimatedMin - actual
	if remaining < 0 {
		remaining = 0
	}

	// Step 5: required pace and EAC date.
	var requiredPace float64
	var eacDate *time.Time
	if in.Deadline != nil {
		daysLeft := domain.DaysUntil(*in.Deadline, in.Now)
		if remaining > 0 {
			requiredPace = float64(remaining) / float64(daysLeft)
		}
		switch {
		case remaining == 0:
			d := today
			eacDate = &d
		case pace7d > epsilon:
			d := today.AddDate(0, 0, int(math.Ceil(float64(remaining)/pace7d)))
			eacDate = &d
		}
	}

	// Step 6: schedule performance indices.
	spi7d := spi(pace7d, requiredPace, remaining)
	spiExp := spi(paceExp, requiredPace, remaining)

	// Step 7: dynamic buffer. One-step grace band against flapping between
	// late and ok on noisy single-day data. Display-only: classification
	// below still uses the unrelaxed values.
	requiredPaceAdj, spiAdj := requiredPace, spi7d
	if spi7d < tun.SPIWarnThreshold {
		requiredPaceAdj = requiredPace * tun.RelaxFactor
		spiAdj = spi(pace7d, requiredPaceAdj, remaining)
	}

	// Step 8: progress ratios, for display only.
	var idealProgress float64
	if in.Deadline != nil && !in.CreatedAt.IsZero() && in.Deadline.After(in.CreatedAt) {
		totalDays := in.Deadline.Sub(in.CreatedAt).Hours() / 24
		elapsedDays := in.Now.Sub(in.CreatedAt).Hours() / 24
		idealProgress = clampFloat(elapsedDays/totalDays, 0, 1)
	}
	var actualProgress float64
	if in.EstimatedMin > 0 {
		actualProgress = clampFloat(float64(actual)/float64(in.EstimatedMin), 0, 1)
	}

	// Step 9: risk classification.
	risk := classify(in, remaining, workedDays, spi7d, tun.SPIWarnThreshold, eacDate, loc)

	return domain.Forecast{
		Pace7d:          pace7d,
		PaceExp:         paceExp,
		RequiredPace:    requiredPace,
		RequiredPaceAdj: requiredPaceAdj,
		SPI:             spi7d,
		SPIExp:          spiExp,
		SPIAdj:          spiAdj,
		EACDate:         eacDate,
		Risk:            risk,
		IdealProgress:   idealProgress,
		ActualProgress:  actualProgress,
	}
}

// spi computes pace / requiredPace, pinned to 1 when nothing is owed and 0
// when work remains but no pace is required yet.
func spi(pace, requiredPace float64, remaining int) float64 {
	if requiredPace > epsilon {
		return pace / requiredPace
	}
	if remaining == 0 {
		return 1
	}
	return 0
}

// classify maps the derived metrics to a risk level. Recomputed from
// scratch on every invocation; nothing is carried over between runs.
func classify(in Input, remaining, workedDays int, spi7d, warnThreshold float64, eacDate *time.Time, loc *time.Location) domain.RiskLevel {
	if in.PlannedStartAt != nil && in.Now.Before(*in.PlannedStartAt) {
		return domain.RiskNotStarted
	}
	if remaining == 0 || in.Deadline == nil {
		return domain.RiskOK
	}

	projectedLate := false
	if eacDate == nil {
		// Work remains but the current pace projects no finish at all.
		projectedLate = true
	} else if eacDate.After(domain.StartOfDay(*in.Deadline, loc)) {
		projectedLate = true
	}

	if workedDays < 3 {
		// Warm-up: late is suppressed until a work pattern exists.
		if spi7d < warnThreshold || projectedLate {
			return domain.RiskWarn
		}
		return domain.RiskOK
	}

	switch {
	case projectedLate:
		return domain.RiskLate
	case spi7d < warnThreshold:
		return domain.RiskWarn
	default:
		return domain.RiskOK
	}
}
