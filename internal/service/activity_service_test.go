package service

import (
	"context"
	"sync"
	"testing"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityService_Lifecycle(t *testing.T) {
	env := setupEnv(t)
	svc := NewActivityService(env.records, env.profiles)
	ctx := context.Background()

	a, err := svc.Add(ctx, domain.ActivityRecord{Title: "Write report", Description: "Q1 numbers", Tags: []string{"finance"}})
	require.NoError(t, err)
	assert.Equal(t, "user-1", a.UserID)
	assert.Equal(t, "Test User", a.UserName)
	assert.Equal(t, domain.ActivityInProgress, a.Status)

	a, err = svc.Edit(ctx, a.ID, func(r *domain.ActivityRecord) { r.Title = "Write Q1 report" })
	require.NoError(t, err)
	assert.Equal(t, "Write Q1 report", a.Title)

	a, err = svc.Complete(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, a.Completed())

	list, err := svc.List(ctx, domain.Filter{Status: string(domain.ActivityCompleted)})
	require.NoError(t, err)
	require.Len(t, list, 1)

	removed, err := svc.Remove(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = svc.Remove(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestActivityService_EditMissing(t *testing.T) {
	env := setupEnv(t)
	_, err := NewActivityService(env.records, env.profiles).Complete(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, "not_found", ErrorKind(err))
}

func TestActivityService_AddValidates(t *testing.T) {
	env := setupEnv(t)
	_, err := NewActivityService(env.records, env.profiles).Add(context.Background(), domain.ActivityRecord{Title: "No description"})
	var verr *repository.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"description is required"}, verr.Fields)
}

func TestActivityService_ConcurrentEditsKeepBothChanges(t *testing.T) {
	env := setupEnv(t)
	svc := NewActivityService(env.records, env.profiles)
	ctx := context.Background()

	a, err := svc.Add(ctx, domain.ActivityRecord{Title: "Draft", Description: "First pass"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := svc.Edit(ctx, a.ID, func(r *domain.ActivityRecord) { r.Title = "Final" })
		assert.NoError(t, err)
	}()
	go func() {
		defer wg.Done()
		_, err := svc.Complete(ctx, a.ID)
		assert.NoError(t, err)
	}()
	wg.Wait()

	got, err := env.records.GetActivity(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", got.Title)
	assert.True(t, got.Completed())
}
