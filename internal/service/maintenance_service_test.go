package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaintenance_KeysSweepClear(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	require.NoError(t, env.store.Set(ctx, domain.KeyCurrentView, "clock", store.ExpiresIn(time.Minute)))
	require.NoError(t, env.store.Set(ctx, domain.KeyIsTimedIn, false))

	obs := &recordingObserver{}
	svc := NewMaintenanceService(env.store, obs)

	keys, err := svc.Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{domain.KeyCurrentView, domain.KeyIsTimedIn}, keys)

	env.clock.Advance(2 * time.Minute)
	n, err := svc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = svc.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "sweeping twice is harmless")

	require.NoError(t, svc.Clear(ctx))
	keys, err = svc.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	require.Len(t, obs.events, 3)
	assert.Equal(t, 1, obs.events[0].Fields["removed"])
}
