package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/calebmorris/pacer/internal/db"
	"github.com/calebmorris/pacer/internal/domain"
)

// SQLiteDayLogRepo implements DayLogRepo over a SQLite handle or transaction.
type SQLiteDayLogRepo struct {
	db db.DBTX
}

// NewSQLiteDayLogRepo creates a SQLiteDayLogRepo bound to the given handle.
func NewSQLiteDayLogRepo(dbtx db.DBTX) *SQLiteDayLogRepo {
	return &SQLiteDayLogRepo{db: dbtx}
}

func (r *SQLiteDayLogRepo) Add(ctx context.Context, taskID, day string, minutes int) (int, error) {
	query := `INSERT INTO day_logs (task_id, day, minutes) VALUES (?, ?, ?)
		ON CONFLICT(task_id, day) DO UPDATE SET minutes = minutes + excluded.minutes`
	if _, err := r.db.ExecContext(ctx, query, taskID, day, minutes); err != nil {
		return 0, fmt.Errorf("adding day log: %w", err)
	}

	var total int
	row := r.db.QueryRowContext(ctx,
		`SELECT minutes FROM day_logs WHERE task_id = ? AND day = ?`, taskID, day)
	if err := row.Scan(&total); err != nil {
		return 0, fmt.Errorf("reading day log total: %w", err)
	}
	return total, nil
}

func (r *SQLiteDayLogRepo) ListByTask(ctx context.Context, taskID string) ([]domain.DayLog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT task_id, day, minutes FROM day_logs WHERE task_id = ? ORDER BY day`, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing day logs: %w", err)
	}
	defer rows.Close()
	return scanDayLogs(rows)
}

func (r *SQLiteDayLogRepo) MapByTask(ctx context.Context, taskID string) (map[string]int, error) {
	logs, err := r.ListByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	m := make(map[string]int, len(logs))
	for _, l := range logs {
		m[l.Day] = l.Minutes
	}
	return m, nil
}

func (r *SQLiteDayLogRepo) ListByDay(ctx context.Context, day string) ([]domain.DayLog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT task_id, day, minutes FROM day_logs WHERE day = ? ORDER BY task_id`, day)
	if err != nil {
		return nil, fmt.Errorf("listing day logs for day: %w", err)
	}
	defer rows.Close()
	return scanDayLogs(rows)
}

func (r *SQLiteDayLogRepo) SumByTask(ctx context.Context, taskID string) (int, error) {
	var total sql.NullInt64
	row := r.db.QueryRowContext(ctx,
		`SELECT SUM(minutes) FROM day_logs WHERE task_id = ?`, taskID)
	if err := row.Scan(&total); err != nil {
		return 0, fmt.Errorf("summing day logs: %w", err)
	}
	return int(total.Int64), nil
}

func scanDayLogs(rows *sql.Rows) ([]domain.DayLog, error) {
	var logs []domain.DayLog
	for rows.Next() {
		var l domain.DayLog
		if err := rows.Scan(&l.TaskID, &l.Day, &l.Minutes); err != nil {
			return nil, fmt.Errorf("scanning day log row: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
