package service

import (
	"context"
	"time"

	"github.com/calebmorris/pacer/internal/contract"
	"github.com/calebmorris/pacer/internal/domain"
)

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	MarkDone(ctx context.Context, id string) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type LogService interface {
	// LogMinutes accumulates minutes onto the task's log for the given day
	// ("" means today), bumps the cumulative total and refreshes the
	// forecast, all in one transaction. Returns the updated task.
	LogMinutes(ctx context.Context, taskID, day string, minutes int) (*domain.Task, error)
	ListByTask(ctx context.Context, taskID string) ([]domain.DayLog, error)
	// ListByDay lists a day's entries. An empty day means today in the
	// configured timezone, matching how LogMinutes keys its writes.
	ListByDay(ctx context.Context, day string) ([]domain.DayLog, error)
}

// RefreshFailure records one task that could not be refreshed in a batch.
type RefreshFailure struct {
	TaskID string
	Err    error
}

// RefreshSummary is the outcome of a batch forecast refresh.
type RefreshSummary struct {
	Refreshed int
	Unchanged int
	Failed    []RefreshFailure
}

type ForecastService interface {
	// RefreshTask recomputes the task's forecast as of now and persists
	// it when it differs from the stored one.
	RefreshTask(ctx context.Context, taskID string, now time.Time) (*domain.Task, error)
	// RefreshAll refreshes every open task as of now. Per-task failures
	// are collected in the summary; one bad task does not block the batch.
	RefreshAll(ctx context.Context, now time.Time) (RefreshSummary, error)
	Status(ctx context.Context, req contract.StatusRequest) (*contract.StatusResponse, error)
	Guide(ctx context.Context, req contract.GuideRequest) (*contract.GuideResponse, error)
}

type PlanService interface {
	// PlanDay refreshes forecasts, allocates the day's budget across the
	// eligible tasks and persists the result. Recomputing an unchanged
	// plan is a no-op; a changed plan is overwritten with a before/after
	// revision appended.
	PlanDay(ctx context.Context, req contract.PlanRequest) (*contract.PlanResponse, error)
	// GetPlan returns the stored plan without recomputing. An empty day
	// means today in the configured timezone, matching how PlanDay keys
	// its writes.
	GetPlan(ctx context.Context, day string) (*domain.DailyPlan, error)
	ListRevisions(ctx context.Context, day string) ([]*domain.PlanRevision, error)
}

type SettingsService interface {
	Get(ctx context.Context) (domain.Settings, error)
	Update(ctx context.Context, s domain.Settings) (domain.Settings, error)
}
