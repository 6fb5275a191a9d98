package forecast

import (
	"math"
	"time"

	"github.com/calebmorris/pacer/internal/domain"
)

// GuidanceInput feeds the "how much to log today" calculator.
type GuidanceInput struct {
	Deadline     *time.Time
	RemainingMin int
	Risk         domain.RiskLevel
	Now          time.Time
	Location     *time.Location
}

// Guidance gives the minutes the user must log today to move the task to a
// better risk tier. All fields are nil when no guidance is possible (no
// deadline or nothing remaining) — that is not an error, there is simply
// nothing owed. Guidance is ephemeral: cheap to recompute and stale the
// moment the user logs minutes, so it is never persisted.
type Guidance struct {
	RequiredPerDay *float64
	ForWarnMin     *int
	ForOkMin       *int
}

// ComputeGuidance derives today's targets from the current risk and the
// remaining work. Escaping late requires outworking the plain required pace
// (factor 2); escaping warn takes a smaller premium (1.5). Targets are
// rounded up to 5-minute steps and capped at the remaining work.
func ComputeGuidance(in GuidanceInput) Guidance {
	if in.Deadline == nil || in.RemainingMin <= 0 {
		return Guidance{}
	}
	loc := in.Location
	if loc == nil {
		loc = time.Local
	}

	daysLeft := domain.DaysUntil(*in.Deadline, domain.StartOfDay(in.Now, loc))
	basePerDay := float64(in.RemainingMin) / float64(daysLeft)

	var forWarn, forOk int
	switch in.Risk {
	case domain.RiskLate:
		forWarn = roundUp5Capped(basePerDay, in.RemainingMin)
		forOk = roundUp5Capped(basePerDay*2, in.RemainingMin)
	case domain.RiskWarn:
		forWarn = 0 // already at or above the warn bar
		forOk = roundUp5Capped(basePerDay*1.5, in.RemainingMin)
	default:
		forWarn = roundUp5Capped(basePerDay, in.RemainingMin)
		forOk = roundUp5Capped(basePerDay, in.RemainingMin)
	}

	return Guidance{
		RequiredPerDay: &basePerDay,
		ForWarnMin:     &forWarn,
		ForOkMin:       &forOk,
	}
}

// roundUp5Capped rounds minutes up to the next multiple of 5, then caps at
// the remaining work. The cap wins: a target past the finish line is
// meaningless. Remaining work is always a multiple of 1, not 5, so the
// multiple-of-5 guarantee holds only below the cap.
func roundUp5Capped(minutes float64, remaining int) int {
	rounded := int(math.Ceil(minutes/5)) * 5
	if rounded < 0 {
		rounded = 0
	}
	if rounded > remaining {
		return remaining
	}
	return rounded
}
