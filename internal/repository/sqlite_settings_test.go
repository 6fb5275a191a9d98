package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebmorris/pacer/internal/domain"
	"github.com/calebmorris/pacer/internal/testutil"
)

func TestSettingsRepo_GetReturnsDefaultsWhenEmpty(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSettingsRepo(db)

	s, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), s)
}

func TestSettingsRepo_UpsertRoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSettingsRepo(db)
	ctx := context.Background()

	s := domain.DefaultSettings()
	s.DailyCapMin = 240
	s.Alpha = 0.5
	s.Timezone = "Europe/Berlin"
	s.NotifyStart = "10:00"
	require.NoError(t, repo.Upsert(ctx, s))

	fetched, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 240, fetched.DailyCapMin)
	assert.InDelta(t, 0.5, fetched.Alpha, 1e-9)
	assert.Equal(t, "Europe/Berlin", fetched.Timezone)
	assert.Equal(t, "10:00", fetched.NotifyStart)
}

func TestSettingsRepo_UpsertOverwrites(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSettingsRepo(db)
	ctx := context.Background()

	s := domain.DefaultSettings()
	s.DailyCapMin = 240
	require.NoError(t, repo.Upsert(ctx, s))

	s.DailyCapMin = 90
	require.NoError(t, repo.Upsert(ctx, s))

	fetched, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 90, fetched.DailyCapMin)
}

func TestSettingsRepo_NormalizesInvalidValues(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSettingsRepo(db)
	ctx := context.Background()

	s := domain.DefaultSettings()
	s.DailyCapMin = -5
	s.Alpha = 2.0
	require.NoError(t, repo.Upsert(ctx, s))

	fetched, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 180, fetched.DailyCapMin)
	assert.InDelta(t, 0.3, fetched.Alpha, 1e-9)
}
