package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/store"
	"github.com/alexanderramin/punchclock/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileStore_GetMissing(t *testing.T) {
	repo := NewProfileStore(testutil.NewTestStore(t, store.Options{}))
	_, err := repo.Get(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileStore_UpsertRoundTrip(t *testing.T) {
	repo := NewProfileStore(testutil.NewTestStore(t, store.Options{}))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, domain.UserProfile{ID: "u1", Name: "Ada", WeeklyTargetHours: 32}))
	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, 32.0, got.WeeklyTarget())
}
