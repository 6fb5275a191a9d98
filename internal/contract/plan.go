package contract

import (
	"time"

	"github.com/calebmorris/pacer/internal/domain"
)

// PlanRequest asks for today's (or a given day's) allocation. CapMin at or
// below zero means "use the configured daily budget". Now is injectable for
// tests; nil means wall-clock time.
type PlanRequest struct {
	CapMin float64
	Day    string
	Now    *time.Time
}

func NewPlanRequest(capMin float64) PlanRequest {
	return PlanRequest{CapMin: capMin}
}

// PlanLine is one rendered row of a daily plan, a plan item joined with the
// task's current risk.
type PlanLine struct {
	TaskID      string
	Title       string
	PlannedMin  int
	RequiredMin int
	Position    int
	Risk        domain.RiskLevel
}

// PlanResponse is the computed plan plus the day's recommended working
// window. Changed is false when recomputation reproduced the stored
// allocation exactly.
type PlanResponse struct {
	GeneratedAt     time.Time
	Day             string
	CapMin          int
	TotalPlannedMin int
	Items           []PlanLine
	Changed         bool

	// Start window for the day: the overlap of the notification window
	// and the working-hours window. Nil when the two do not overlap.
	WindowStart      *time.Time
	WindowEnd        *time.Time
	RecommendedStart *time.Time
}

type PlanErrorCode string

const (
	ErrInvalidDay  PlanErrorCode = "INVALID_DAY"
	ErrInvalidCap  PlanErrorCode = "INVALID_CAP"
	ErrPlanStorage PlanErrorCode = "PLAN_STORAGE"
)

type PlanError struct {
	Code    PlanErrorCode
	Message string
}

func (e *PlanError) Error() string {
	return string(e.Code) + ": " + e.Message
}
