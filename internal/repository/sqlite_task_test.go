package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebmorris/pacer/internal/domain"
	"github.com/calebmorris/pacer/internal/testutil"
)

func TestTaskRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTaskRepo(db)
	ctx := context.Background()

	deadline := time.Now().UTC().AddDate(0, 1, 0)
	task := testutil.NewTestTask("Read chapter 4",
		testutil.WithDeadline(deadline),
		testutil.WithBounds(80, 200))
	require.NoError(t, repo.Create(ctx, task))

	fetched, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, fetched.ID)
	assert.Equal(t, "Read chapter 4", fetched.Title)
	assert.Equal(t, domain.TaskOpen, fetched.Status)
	assert.Equal(t, 120, fetched.EstimatedMin)
	require.NotNil(t, fetched.OptimisticMin)
	assert.Equal(t, 80, *fetched.OptimisticMin)
	require.NotNil(t, fetched.PessimisticMin)
	assert.Equal(t, 200, *fetched.PessimisticMin)
	require.NotNil(t, fetched.Deadline)
	assert.Equal(t, deadline.Format(time.RFC3339), fetched.Deadline.Format(time.RFC3339))
	assert.Nil(t, fetched.PlannedStartAt)
}

func TestTaskRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTaskRepo(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "nonexistent")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestTaskRepo_List_ExcludesArchived(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTaskRepo(db)
	ctx := context.Background()

	open := testutil.NewTestTask("Open")
	done := testutil.NewTestTask("Done", testutil.WithStatus(domain.TaskDone))
	archived := testutil.NewTestTask("Archived", testutil.WithStatus(domain.TaskArchived))
	require.NoError(t, repo.Create(ctx, open))
	require.NoError(t, repo.Create(ctx, done))
	require.NoError(t, repo.Create(ctx, archived))

	list, err := repo.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestTaskRepo_ListOpen(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTaskRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestTask("A")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestTask("B", testutil.WithStatus(domain.TaskDone))))

	open, err := repo.ListOpen(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "A", open[0].Title)
}

func TestTaskRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTaskRepo(db)
	ctx := context.Background()

	task := testutil.NewTestTask("Orig")
	require.NoError(t, repo.Create(ctx, task))

	task.Title = "Renamed"
	task.EstimatedMin = 240
	task.ActualTotalMin = 60
	task.Status = domain.TaskDone
	task.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, task))

	fetched, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", fetched.Title)
	assert.Equal(t, 240, fetched.EstimatedMin)
	assert.Equal(t, 60, fetched.ActualTotalMin)
	assert.Equal(t, domain.TaskDone, fetched.Status)
}

func TestTaskRepo_Update_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTaskRepo(db)
	ctx := context.Background()

	task := testutil.NewTestTask("Ghost")
	err := repo.Update(ctx, task)
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestTaskRepo_UpdateForecast(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTaskRepo(db)
	ctx := context.Background()

	task := testutil.NewTestTask("Forecasted")
	require.NoError(t, repo.Create(ctx, task))

	eac := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	f := domain.Forecast{
		Pace7d:          20,
		PaceExp:         18.5,
		RequiredPace:    12,
		RequiredPaceAdj: 12,
		SPI:             1.67,
		SPIExp:          1.54,
		SPIAdj:          1.67,
		EACDate:         &eac,
		Risk:            domain.RiskOK,
		IdealProgress:   0.4,
		ActualProgress:  0.5,
	}
	require.NoError(t, repo.UpdateForecast(ctx, task.ID, f))

	fetched, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.InDelta(t, 20, fetched.Forecast.Pace7d, 1e-9)
	assert.InDelta(t, 18.5, fetched.Forecast.PaceExp, 1e-9)
	assert.Equal(t, domain.RiskOK, fetched.Forecast.Risk)
	require.NotNil(t, fetched.Forecast.EACDate)
	assert.Equal(t, "2026-09-14", fetched.Forecast.EACDate.Format(domain.DayLayout))
}

func TestTaskRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTaskRepo(db)
	ctx := context.Background()

	task := testutil.NewTestTask("Doomed")
	require.NoError(t, repo.Create(ctx, task))
	require.NoError(t, repo.Delete(ctx, task.ID))

	_, err := repo.GetByID(ctx, task.ID)
	assert.Error(t, err)

	var nf *NotFoundError
	assert.ErrorAs(t, repo.Delete(ctx, task.ID), &nf)
}
