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

// SQLitePlanRepo implements PlanRepo over a SQLite handle or transaction.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a SQLitePlanRepo bound to the given handle.
func NewSQLitePlanRepo(dbtx db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: dbtx}
}

func (r *SQLitePlanRepo) Get(ctx context.Context, day string) (*domain.DailyPlan, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT day, cap_min, total_planned_min, created_at, updated_at
		FROM daily_plans WHERE day = ?`, day)

	var p domain.DailyPlan
	var capMin sql.NullInt64
	var createdAt, updatedAt string
	err := row.Scan(&p.Day, &capMin, &p.TotalPlannedMin, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Entity: "daily plan", ID: day}
	}
	if err != nil {
		return nil, fmt.Errorf("reading daily plan: %w", err)
	}
	p.CapMin = intPtrFromNull(capMin)
	if created, err := time.Parse(time.RFC3339, createdAt); err == nil {
		p.CreatedAt = created
	}
	if updated, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		p.UpdatedAt = updated
	}

	items, err := r.listItems(ctx, day)
	if err != nil {
		return nil, err
	}
	p.Items = items
	return &p, nil
}

func (r *SQLitePlanRepo) Save(ctx context.Context, p *domain.DailyPlan) error {
	query := `INSERT INTO daily_plans (day, cap_min, total_planned_min, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(day) DO UPDATE SET
			cap_min = excluded.cap_min,
			total_planned_min = excluded.total_planned_min,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		p.Day,
		nullableIntToValue(p.CapMin),
		p.TotalPlannedMin,
		p.CreatedAt.UTC().Format(time.RFC3339),
		p.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving daily plan: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM plan_items WHERE plan_day = ?`, p.Day); err != nil {
		return fmt.Errorf("clearing plan items: %w", err)
	}
	for _, it := range p.Items {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO plan_items (plan_day, position, task_id, title, planned_min, required_min)
			VALUES (?, ?, ?, ?, ?, ?)`,
			p.Day, it.Position, it.TaskID, it.Title, it.PlannedMin, it.RequiredMin)
		if err != nil {
			return fmt.Errorf("inserting plan item: %w", err)
		}
	}
	return nil
}

func (r *SQLitePlanRepo) AddRevision(ctx context.Context, rev *domain.PlanRevision) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO plan_revisions (id, plan_day, before_json, after_json, changed_at)
		VALUES (?, ?, ?, ?, ?)`,
		rev.ID, rev.Day, rev.Before, rev.After,
		rev.ChangedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting plan revision: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) ListRevisions(ctx context.Context, day string) ([]*domain.PlanRevision, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, plan_day, before_json, after_json, changed_at
		FROM plan_revisions WHERE plan_day = ? ORDER BY changed_at, id`, day)
	if err != nil {
		return nil, fmt.Errorf("listing plan revisions: %w", err)
	}
	defer rows.Close()

	var revs []*domain.PlanRevision
	for rows.Next() {
		var rev domain.PlanRevision
		var changedAt string
		if err := rows.Scan(&rev.ID, &rev.Day, &rev.Before, &rev.After, &changedAt); err != nil {
			return nil, fmt.Errorf("scanning plan revision row: %w", err)
		}
		if changed, err := time.Parse(time.RFC3339, changedAt); err == nil {
			rev.ChangedAt = changed
		}
		revs = append(revs, &rev)
	}
	return revs, rows.Err()
}

func (r *SQLitePlanRepo) listItems(ctx context.Context, day string) ([]domain.PlanItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT task_id, title, planned_min, required_min, position
		FROM plan_items WHERE plan_day = ? ORDER BY position`, day)
	if err != nil {
		return nil, fmt.Errorf("listing plan items: %w", err)
	}
	defer rows.Close()

	var items []domain.PlanItem
	for rows.Next() {
		var it domain.PlanItem
		if err := rows.Scan(&it.TaskID, &it.Title, &it.PlannedMin, &it.RequiredMin, &it.Position); err != nil {
			return nil, fmt.Errorf("scanning plan item row: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
