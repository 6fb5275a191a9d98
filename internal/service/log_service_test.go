package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebmorris/pacer/internal/domain"
	"github.com/calebmorris/pacer/internal/repository"
	"github.com/calebmorris/pacer/internal/testutil"
)

func TestLogService_LogMinutes_AccumulatesAndRefreshes(t *testing.T) {
	db := testutil.NewTestDB(t)
	tasks := repository.NewSQLiteTaskRepo(db)
	logs := repository.NewSQLiteDayLogRepo(db)
	settings := repository.NewSQLiteSettingsRepo(db)
	svc := NewLogService(logs, settings, testutil.NewTestUoW(db), nil)
	ctx := context.Background()

	deadline := time.Now().AddDate(0, 0, 10)
	task := testutil.NewTestTask("Paced", testutil.WithDeadline(deadline))
	require.NoError(t, tasks.Create(ctx, task))

	updated, err := svc.LogMinutes(ctx, task.ID, "", 30)
	require.NoError(t, err)
	assert.Equal(t, 30, updated.ActualTotalMin)
	assert.Greater(t, updated.Forecast.Pace7d, 0.0)
	assert.Equal(t, domain.RiskOK, updated.Forecast.Risk)

	// Same day again merges rather than duplicating.
	updated, err = svc.LogMinutes(ctx, task.ID, "", 15)
	require.NoError(t, err)
	assert.Equal(t, 45, updated.ActualTotalMin)

	entries, err := svc.ListByTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 45, entries[0].Minutes)

	// The refreshed forecast is persisted, not just returned.
	fetched, err := tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Greater(t, fetched.Forecast.Pace7d, 0.0)
}

func TestLogService_LogMinutes_ExplicitDay(t *testing.T) {
	db := testutil.NewTestDB(t)
	tasks := repository.NewSQLiteTaskRepo(db)
	logs := repository.NewSQLiteDayLogRepo(db)
	settings := repository.NewSQLiteSettingsRepo(db)
	svc := NewLogService(logs, settings, testutil.NewTestUoW(db), nil)
	ctx := context.Background()

	task := testutil.NewTestTask("Backfilled")
	require.NoError(t, tasks.Create(ctx, task))

	yesterday := domain.DayKey(time.Now().AddDate(0, 0, -1), time.Local)
	_, err := svc.LogMinutes(ctx, task.ID, yesterday, 20)
	require.NoError(t, err)

	m, err := logs.MapByTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, m[yesterday])
}

func TestLogService_ListByDay_DefaultDayUsesConfiguredZone(t *testing.T) {
	db := testutil.NewTestDB(t)
	tasks := repository.NewSQLiteTaskRepo(db)
	logs := repository.NewSQLiteDayLogRepo(db)
	settings := repository.NewSQLiteSettingsRepo(db)
	svc := NewLogService(logs, settings, testutil.NewTestUoW(db), nil)
	ctx := context.Background()

	// Writes key the entry by the configured zone's day; a read with an
	// empty day must land on the same key even when the machine zone's
	// calendar day differs.
	cfg := domain.DefaultSettings()
	cfg.Timezone = "Pacific/Kiritimati"
	require.NoError(t, settings.Upsert(ctx, cfg))

	task := testutil.NewTestTask("Zoned")
	require.NoError(t, tasks.Create(ctx, task))
	_, err := svc.LogMinutes(ctx, task.ID, "", 25)
	require.NoError(t, err)

	entries, err := svc.ListByDay(ctx, "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.DayKey(time.Now(), cfg.Location()), entries[0].Day)
	assert.Equal(t, 25, entries[0].Minutes)
}

func TestLogService_LogMinutes_Validation(t *testing.T) {
	db := testutil.NewTestDB(t)
	tasks := repository.NewSQLiteTaskRepo(db)
	logs := repository.NewSQLiteDayLogRepo(db)
	settings := repository.NewSQLiteSettingsRepo(db)
	svc := NewLogService(logs, settings, testutil.NewTestUoW(db), nil)
	ctx := context.Background()

	task := testutil.NewTestTask("Guarded")
	require.NoError(t, tasks.Create(ctx, task))

	_, err := svc.LogMinutes(ctx, task.ID, "", 0)
	assert.Error(t, err)
	_, err = svc.LogMinutes(ctx, task.ID, "", -10)
	assert.Error(t, err)
	_, err = svc.LogMinutes(ctx, task.ID, "29-08-2026", 10)
	assert.Error(t, err)
	_, err = svc.LogMinutes(ctx, "nonexistent", "", 10)
	assert.Error(t, err)
}

func TestLogService_LogMinutes_RejectsClosedTask(t *testing.T) {
	db := testutil.NewTestDB(t)
	tasks := repository.NewSQLiteTaskRepo(db)
	logs := repository.NewSQLiteDayLogRepo(db)
	settings := repository.NewSQLiteSettingsRepo(db)
	svc := NewLogService(logs, settings, testutil.NewTestUoW(db), nil)
	ctx := context.Background()

	task := testutil.NewTestTask("Closed", testutil.WithStatus(domain.TaskDone))
	require.NoError(t, tasks.Create(ctx, task))

	_, err := svc.LogMinutes(ctx, task.ID, "", 10)
	assert.ErrorContains(t, err, "cannot log time")
}

func TestLogService_LogMinutes_RollsBackAsUnit(t *testing.T) {
	db := testutil.NewTestDB(t)
	tasks := repository.NewSQLiteTaskRepo(db)
	logs := repository.NewSQLiteDayLogRepo(db)
	settings := repository.NewSQLiteSettingsRepo(db)
	ctx := context.Background()

	task := testutil.NewTestTask("Atomic")
	require.NoError(t, tasks.Create(ctx, task))

	// Exec 1 is the day-log upsert; exec 2, the task update, fails.
	injected := errors.New("injected failure")
	uow := &testutil.FailOnNthExecUoW{DB: db, FailOn: 2, Err: injected}
	svc := NewLogService(logs, settings, uow, nil)

	_, err := svc.LogMinutes(ctx, task.ID, "", 30)
	require.ErrorIs(t, err, injected)

	// Neither write survived.
	entries, err := logs.ListByTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
	fetched, err := tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, fetched.ActualTotalMin)
}
