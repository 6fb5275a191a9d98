package contract

import (
	"time"

	"github.com/calebmorris/pacer/internal/domain"
)

// StatusRequest asks for the forecast overview of all tasks.
type StatusRequest struct {
	IncludeArchived bool
	Now             *time.Time
}

// StatusLine is one task's row in the status table: the task plus a few
// fields derived at render time rather than stored.
type StatusLine struct {
	Task         *domain.Task
	RemainingMin int
	// DaysLeft is calendar days until the deadline, minimum 1; zero when
	// the task has no deadline.
	DaysLeft int
}

type StatusResponse struct {
	GeneratedAt time.Time
	Tasks       []StatusLine
}

// GuideRequest asks how many minutes a task needs today.
type GuideRequest struct {
	TaskID string
	Now    *time.Time
}

// GuideResponse carries the guidance targets for one task. The pointer
// fields are nil when the task has no deadline or no remaining work.
type GuideResponse struct {
	Task           *domain.Task
	RequiredPerDay *float64
	ForWarnMin     *int
	ForOkMin       *int
}
