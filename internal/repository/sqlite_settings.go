package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/calebmorris/pacer/internal/db"
	"github.com/calebmorris/pacer/internal/domain"
)

// SQLiteSettingsRepo implements SettingsRepo over a SQLite handle or
// transaction. Settings live in a single row keyed 'default'.
type SQLiteSettingsRepo struct {
	db db.DBTX
}

// NewSQLiteSettingsRepo creates a SQLiteSettingsRepo bound to the given handle.
func NewSQLiteSettingsRepo(dbtx db.DBTX) *SQLiteSettingsRepo {
	return &SQLiteSettingsRepo{db: dbtx}
}

func (r *SQLiteSettingsRepo) Get(ctx context.Context) (domain.Settings, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT daily_cap_min, alpha, relax_factor, spi_warn_threshold,
			default_uncertainty_weight, timezone,
			notify_start, notify_end, work_start, work_end
		FROM settings WHERE id = 'default'`)

	var s domain.Settings
	err := row.Scan(
		&s.DailyCapMin, &s.Alpha, &s.RelaxFactor, &s.SPIWarnThreshold,
		&s.DefaultUncertaintyWeight, &s.Timezone,
		&s.NotifyStart, &s.NotifyEnd, &s.WorkStart, &s.WorkEnd,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return domain.Settings{}, fmt.Errorf("reading settings: %w", err)
	}
	return s.Normalize(), nil
}

func (r *SQLiteSettingsRepo) Upsert(ctx context.Context, s domain.Settings) error {
	s = s.Normalize()
	query := `INSERT INTO settings (id, daily_cap_min, alpha, relax_factor, spi_warn_threshold,
			default_uncertainty_weight, timezone, notify_start, notify_end, work_start, work_end)
		VALUES ('default', ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			daily_cap_min = excluded.daily_cap_min,
			alpha = excluded.alpha,
			relax_factor = excluded.relax_factor,
			spi_warn_threshold = excluded.spi_warn_threshold,
			default_uncertainty_weight = excluded.default_uncertainty_weight,
			timezone = excluded.timezone,
			notify_start = excluded.notify_start,
			notify_end = excluded.notify_end,
			work_start = excluded.work_start,
			work_end = excluded.work_end`
	_, err := r.db.ExecContext(ctx, query,
		s.DailyCapMin, s.Alpha, s.RelaxFactor, s.SPIWarnThreshold,
		s.DefaultUncertaintyWeight, s.Timezone,
		s.NotifyStart, s.NotifyEnd, s.WorkStart, s.WorkEnd,
	)
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}
