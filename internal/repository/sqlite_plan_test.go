package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebmorris/pacer/internal/domain"
	"github.com/calebmorris/pacer/internal/testutil"
)

func planTestTasks(t *testing.T, repo *SQLiteTaskRepo, titles ...string) []*domain.Task {
	t.Helper()
	ctx := context.Background()
	tasks := make([]*domain.Task, 0, len(titles))
	for _, title := range titles {
		task := testutil.NewTestTask(title)
		require.NoError(t, repo.Create(ctx, task))
		tasks = append(tasks, task)
	}
	return tasks
}

func TestPlanRepo_SaveAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	tasks := NewSQLiteTaskRepo(db)
	plans := NewSQLitePlanRepo(db)
	ctx := context.Background()

	created := planTestTasks(t, tasks, "First", "Second")
	cap := 180
	plan := testutil.NewTestPlan("2026-08-29", &cap,
		domain.PlanItem{TaskID: created[0].ID, Title: "First", PlannedMin: 40, RequiredMin: 40},
		domain.PlanItem{TaskID: created[1].ID, Title: "Second", PlannedMin: 20, RequiredMin: 60},
	)
	require.NoError(t, plans.Save(ctx, plan))

	fetched, err := plans.Get(ctx, "2026-08-29")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-29", fetched.Day)
	require.NotNil(t, fetched.CapMin)
	assert.Equal(t, 180, *fetched.CapMin)
	assert.Equal(t, 60, fetched.TotalPlannedMin)
	require.Len(t, fetched.Items, 2)
	assert.Equal(t, created[0].ID, fetched.Items[0].TaskID)
	assert.Equal(t, 1, fetched.Items[0].Position)
	assert.Equal(t, 2, fetched.Items[1].Position)
	assert.True(t, plan.SameAllocation(fetched))
}

func TestPlanRepo_Get_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	plans := NewSQLitePlanRepo(db)

	_, err := plans.Get(context.Background(), "2026-01-01")
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestPlanRepo_SaveReplacesItems(t *testing.T) {
	db := testutil.NewTestDB(t)
	tasks := NewSQLiteTaskRepo(db)
	plans := NewSQLitePlanRepo(db)
	ctx := context.Background()

	created := planTestTasks(t, tasks, "Kept", "Dropped")
	plan := testutil.NewTestPlan("2026-08-29", nil,
		domain.PlanItem{TaskID: created[0].ID, Title: "Kept", PlannedMin: 30},
		domain.PlanItem{TaskID: created[1].ID, Title: "Dropped", PlannedMin: 30},
	)
	require.NoError(t, plans.Save(ctx, plan))

	revised := testutil.NewTestPlan("2026-08-29", nil,
		domain.PlanItem{TaskID: created[0].ID, Title: "Kept", PlannedMin: 90},
	)
	require.NoError(t, plans.Save(ctx, revised))

	fetched, err := plans.Get(ctx, "2026-08-29")
	require.NoError(t, err)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, 90, fetched.Items[0].PlannedMin)
	assert.Equal(t, 90, fetched.TotalPlannedMin)
	assert.Nil(t, fetched.CapMin)
}

func TestPlanRepo_Revisions(t *testing.T) {
	db := testutil.NewTestDB(t)
	plans := NewSQLitePlanRepo(db)
	ctx := context.Background()

	rev := &domain.PlanRevision{
		ID:        uuid.New().String(),
		Day:       "2026-08-29",
		Before:    `{"items":[]}`,
		After:     `{"items":[{"task_id":"t1","planned_min":40}]}`,
		ChangedAt: time.Now().UTC(),
	}
	require.NoError(t, plans.AddRevision(ctx, rev))

	revs, err := plans.ListRevisions(ctx, "2026-08-29")
	require.NoError(t, err)
	require.Len(t, revs, 1)
	assert.Equal(t, rev.ID, revs[0].ID)
	assert.Equal(t, rev.Before, revs[0].Before)
	assert.Equal(t, rev.After, revs[0].After)

	none, err := plans.ListRevisions(ctx, "2026-08-30")
	require.NoError(t, err)
	assert.Empty(t, none)
}
