package repository

import (
	"context"

	"github.com/calebmorris/pacer/internal/domain"
)

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Task, error)
	ListOpen(ctx context.Context) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	// UpdateForecast writes only the derived forecast columns.
	UpdateForecast(ctx context.Context, id string, f domain.Forecast) error
	Delete(ctx context.Context, id string) error
}

type DayLogRepo interface {
	// Add accumulates minutes onto the (task, day) row, creating it if
	// missing, and returns the new total for that day.
	Add(ctx context.Context, taskID, day string, minutes int) (int, error)
	ListByTask(ctx context.Context, taskID string) ([]domain.DayLog, error)
	// MapByTask returns the task's logs keyed by day, the shape the
	// forecast model consumes.
	MapByTask(ctx context.Context, taskID string) (map[string]int, error)
	ListByDay(ctx context.Context, day string) ([]domain.DayLog, error)
	SumByTask(ctx context.Context, taskID string) (int, error)
}

type PlanRepo interface {
	Get(ctx context.Context, day string) (*domain.DailyPlan, error)
	// Save upserts the plan and replaces its items.
	Save(ctx context.Context, p *domain.DailyPlan) error
	AddRevision(ctx context.Context, rev *domain.PlanRevision) error
	ListRevisions(ctx context.Context, day string) ([]*domain.PlanRevision, error)
}

type SettingsRepo interface {
	// Get returns the stored settings, or the defaults when none were
	// saved yet.
	Get(ctx context.Context) (domain.Settings, error)
	Upsert(ctx context.Context, s domain.Settings) error
}

// NotFoundError is returned when a requested record does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found: " + e.ID
}
