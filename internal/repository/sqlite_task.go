package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/calebmorris/pacer/internal/db"
	"github.com/calebmorris/pacer/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, title, status, estimated_min, optimistic_min, pessimistic_min,
		uncertainty_weight, deadline, planned_start_at, actual_total_min,
		pace7d, pace_exp, required_pace, required_pace_adj,
		spi, spi_exp, spi_adj, eac_date, risk_level, ideal_progress, actual_progress,
		created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo over a SQLite handle or transaction.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a SQLiteTaskRepo bound to the given handle.
func NewSQLiteTaskRepo(dbtx db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: dbtx}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, taskArgs(t)...)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Entity: "task", ID: id}
	}
	return t, err
}

func (r *SQLiteTaskRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at, id`
	if !includeArchived {
		query = `SELECT ` + taskColumns + ` FROM tasks WHERE status != 'archived' ORDER BY created_at, id`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

func (r *SQLiteTaskRepo) ListOpen(ctx context.Context) ([]*domain.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE status = 'open' ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing open tasks: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET
		title = ?, status = ?, estimated_min = ?, optimistic_min = ?, pessimistic_min = ?,
		uncertainty_weight = ?, deadline = ?, planned_start_at = ?, actual_total_min = ?,
		pace7d = ?, pace_exp = ?, required_pace = ?, required_pace_adj = ?,
		spi = ?, spi_exp = ?, spi_adj = ?, eac_date = ?, risk_level = ?,
		ideal_progress = ?, actual_progress = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Title, string(t.Status), t.EstimatedMin,
		nullableIntToValue(t.OptimisticMin), nullableIntToValue(t.PessimisticMin),
		t.UncertaintyWeight,
		nullableTimeToString(t.Deadline, time.RFC3339),
		nullableTimeToString(t.PlannedStartAt, time.RFC3339),
		t.ActualTotalMin,
		t.Forecast.Pace7d, t.Forecast.PaceExp, t.Forecast.RequiredPace, t.Forecast.RequiredPaceAdj,
		t.Forecast.SPI, t.Forecast.SPIExp, t.Forecast.SPIAdj,
		nullableTimeToString(t.Forecast.EACDate, domain.DayLayout),
		string(t.Forecast.Risk),
		t.Forecast.IdealProgress, t.Forecast.ActualProgress,
		t.UpdatedAt.UTC().Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return requireRow(res, "task", t.ID)
}

func (r *SQLiteTaskRepo) UpdateForecast(ctx context.Context, id string, f domain.Forecast) error {
	query := `UPDATE tasks SET
		pace7d = ?, pace_exp = ?, required_pace = ?, required_pace_adj = ?,
		spi = ?, spi_exp = ?, spi_adj = ?, eac_date = ?, risk_level = ?,
		ideal_progress = ?, actual_progress = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		f.Pace7d, f.PaceExp, f.RequiredPace, f.RequiredPaceAdj,
		f.SPI, f.SPIExp, f.SPIAdj,
		nullableTimeToString(f.EACDate, domain.DayLayout),
		string(f.Risk),
		f.IdealProgress, f.ActualProgress,
		time.Now().UTC().Format(time.RFC3339),
		id,
	)
	if err != nil {
		return fmt.Errorf("updating task forecast: %w", err)
	}
	return requireRow(res, "task", id)
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return requireRow(res, "task", id)
}

// taskArgs flattens a task into the insert parameter order of taskColumns.
func taskArgs(t *domain.Task) []any {
	return []any{
		t.ID,
		t.Title,
		string(t.Status),
		t.EstimatedMin,
		nullableIntToValue(t.OptimisticMin),
		nullableIntToValue(t.PessimisticMin),
		t.UncertaintyWeight,
		nullableTimeToString(t.Deadline, time.RFC3339),
		nullableTimeToString(t.PlannedStartAt, time.RFC3339),
		t.ActualTotalMin,
		t.Forecast.Pace7d,
		t.Forecast.PaceExp,
		t.Forecast.RequiredPace,
		t.Forecast.RequiredPaceAdj,
		t.Forecast.SPI,
		t.Forecast.SPIExp,
		t.Forecast.SPIAdj,
		nullableTimeToString(t.Forecast.EACDate, domain.DayLayout),
		string(t.Forecast.Risk),
		t.Forecast.IdealProgress,
		t.Forecast.ActualProgress,
		t.CreatedAt.UTC().Format(time.RFC3339),
		t.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var status, riskLevel, createdAt, updatedAt string
	var optimistic, pessimistic sql.NullInt64
	var deadline, plannedStart, eacDate sql.NullString

	err := row.Scan(
		&t.ID, &t.Title, &status, &t.EstimatedMin, &optimistic, &pessimistic,
		&t.UncertaintyWeight, &deadline, &plannedStart, &t.ActualTotalMin,
		&t.Forecast.Pace7d, &t.Forecast.PaceExp, &t.Forecast.RequiredPace, &t.Forecast.RequiredPaceAdj,
		&t.Forecast.SPI, &t.Forecast.SPIExp, &t.Forecast.SPIAdj, &eacDate, &riskLevel,
		&t.Forecast.IdealProgress, &t.Forecast.ActualProgress,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Status = domain.TaskStatus(status)
	t.Forecast.Risk = domain.RiskLevel(riskLevel)
	t.OptimisticMin = intPtrFromNull(optimistic)
	t.PessimisticMin = intPtrFromNull(pessimistic)
	t.Deadline = parseNullableTime(deadline, time.RFC3339)
	t.PlannedStartAt = parseNullableTime(plannedStart, time.RFC3339)
	t.Forecast.EACDate = dayDatePtr(eacDate)
	if created, err := time.Parse(time.RFC3339, createdAt); err == nil {
		t.CreatedAt = created
	}
	if updated, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		t.UpdatedAt = updated
	}
	return &t, nil
}

func scanTasks(rows *sql.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// requireRow converts a zero-row write into a NotFoundError.
func requireRow(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return nil
}
