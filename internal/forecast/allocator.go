package forecast

import (
	"math"
	"sort"
	"time"

	"github.com/calebmorris/pacer/internal/domain"
)

// topUpStep is the per-round increment of the final fill pass.
const topUpStep = 30

// maxPlanItems caps how many tasks a daily plan may contain.
const maxPlanItems = 3

// Candidate is a task decorated with its forecast, ready for allocation.
// RequiredPerDay is the adjusted required pace when the dynamic buffer
// applied, otherwise the plain required pace. RecoverMin is the guidance
// "for ok" target; nil when guidance was unavailable.
type Candidate struct {
	TaskID         string
	Title          string
	EstimatedMin   int
	ActualTotalMin int
	Deadline       time.Time
	IdealProgress  float64
	ActualProgress float64
	RequiredPerDay float64
	RecoverMin     *int
}

// Allocation is one line of the daily plan: a task and the whole minutes
// assigned to it. Position is 1-based in selection order.
type Allocation struct {
	TaskID      string
	Title       string
	PlannedMin  int
	RequiredMin int
	Position    int
}

// ResolveCap coerces a requested capacity to a sane positive budget.
// Non-positive or non-finite requests fall back to the configured daily
// budget.
func ResolveCap(requested float64, fallbackMin int) int {
	requested = domain.FiniteOr(requested, 0)
	if requested > 0 {
		return int(math.Round(requested))
	}
	if fallbackMin > 0 {
		return fallbackMin
	}
	return domain.DefaultSettings().DailyCapMin
}

// scored carries the per-candidate precomputation through the passes.
type scored struct {
	cand       Candidate
	remaining  int
	days       int
	lag        float64
	score      float64
	minMin     int
	recoverMin int
	allocated  int
}

// Allocate distributes capMin whole minutes across at most three tasks
// using a three-pass greedy procedure: take the required minimum of the
// highest-scored tasks, grow each toward its recovery target, then fill the
// rest toward the nearest deadlines in 30-minute steps. When the first pass
// allocates nothing (no backlog signal), a deadline-ordered fallback still
// proposes something to work on. The running total never exceeds capMin.
func Allocate(candidates []Candidate, capMin int, now time.Time) []Allocation {
	if len(candidates) == 0 || capMin <= 0 {
		return nil
	}

	entries := make([]*scored, 0, len(candidates))
	for _, c := range candidates {
		entries = append(entries, precompute(c, now))
	}

	// Pass 1: sort by score, nearest deadline, then larger required pace;
	// take up to three, each at its required minimum.
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if !a.cand.Deadline.Equal(b.cand.Deadline) {
			return a.cand.Deadline.Before(b.cand.Deadline)
		}
		return a.cand.RequiredPerDay > b.cand.RequiredPerDay
	})

	capLeft := capMin
	var selected []*scored
	for _, e := range entries {
		if len(selected) >= maxPlanItems {
			break
		}
		take := e.minMin
		if take > capLeft {
			take = capLeft
		}
		e.allocated = take
		capLeft -= take
		selected = append(selected, e)
	}

	if totalAllocated(selected) == 0 {
		return fallbackFill(entries, capMin)
	}

	// Pass 2: grow toward recovery targets in pass-1 order.
	for _, e := range selected {
		if capLeft == 0 {
			break
		}
		want := e.recoverMin - e.allocated
		if want <= 0 {
			continue
		}
		add := minInt(want, e.remaining-e.allocated, capLeft)
		if add > 0 {
			e.allocated += add
			capLeft -= add
		}
	}

	// Pass 3: pull-in fill, nearest deadline first, 30 minutes a round,
	// until the capacity is spent or nothing can absorb more.
	byDeadline := make([]*scored, len(selected))
	copy(byDeadline, selected)
	sort.SliceStable(byDeadline, func(i, j int) bool {
		return byDeadline[i].cand.Deadline.Before(byDeadline[j].cand.Deadline)
	})
	for capLeft > 0 {
		progressed := false
		for _, e := range byDeadline {
			add := minInt(topUpStep, e.remaining-e.allocated, capLeft)
			if add > 0 {
				e.allocated += add
				capLeft -= add
				progressed = true
			}
			if capLeft == 0 {
				break
			}
		}
		if !progressed {
			break
		}
	}

	return collect(selected)
}

// precompute derives the score and the per-task minute targets.
func precompute(c Candidate, now time.Time) *scored {
	remaining := c.EstimatedMin - c.ActualTotalMin
	if remaining < 0 {
		remaining = 0
	}
	days := domain.DaysUntil(c.Deadline, now)
	lag := c.IdealProgress - c.ActualProgress

	// Lag weighs most, then deadline proximity, then absolute backlog:
	// "falling behind" surfaces before "large but on track".
	score := 3*math.Max(0, lag) +
		2/float64(days+1) +
		float64(remaining)/float64(days)

	required := domain.NonNegativeOr(c.RequiredPerDay, 0)
	minMin := clampInt(int(math.Round(required)), 0, remaining)

	recoverMin := 0
	if c.RecoverMin != nil {
		recoverMin = *c.RecoverMin
	} else {
		factor := 1.0
		if lag > 0 {
			factor = 2.0
		}
		recoverMin = roundUp5Capped(float64(remaining)/float64(days)*factor, remaining)
	}
	recoverMin = clampInt(recoverMin, minMin, remaining)

	return &scored{
		cand:       c,
		remaining:  remaining,
		days:       days,
		lag:        lag,
		score:      score,
		minMin:     minMin,
		recoverMin: recoverMin,
	}
}

// fallbackFill ranks every candidate by nearest deadline then larger
// required pace and gives each up to round-up-to-5(R/D) minutes, so the
// user always sees something to work on even with no backlog signal.
func fallbackFill(entries []*scored, capMin int) []Allocation {
	ranked := make([]*scored, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if !a.cand.Deadline.Equal(b.cand.Deadline) {
			return a.cand.Deadline.Before(b.cand.Deadline)
		}
		return a.cand.RequiredPerDay > b.cand.RequiredPerDay
	})

	capLeft := capMin
	var selected []*scored
	for _, e := range ranked {
		if len(selected) >= maxPlanItems || capLeft == 0 {
			break
		}
		dose := roundUp5Capped(float64(e.remaining)/float64(e.days), e.remaining)
		e.allocated = minInt(dose, e.remaining, capLeft)
		if e.allocated <= 0 {
			continue
		}
		capLeft -= e.allocated
		selected = append(selected, e)
	}
	return collect(selected)
}

// collect emits the positive allocations in selection order.
func collect(selected []*scored) []Allocation {
	var out []Allocation
	for _, e := range selected {
		if e.allocated <= 0 {
			continue
		}
		out = append(out, Allocation{
			TaskID:      e.cand.TaskID,
			Title:       e.cand.Title,
			PlannedMin:  e.allocated,
			RequiredMin: e.minMin,
			Position:    len(out) + 1,
		})
	}
	return out
}

func totalAllocated(entries []*scored) int {
	sum := 0
	for _, e := range entries {
		sum += e.allocated
	}
	return sum
}

func minInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
