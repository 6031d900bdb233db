package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itzsam-lol/com-app/app/models"
)

func newTestPlanCache(t *testing.T) (*PlanCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewPlanCache(client, time.Minute), mr
}

func TestPlanCacheSetGet(t *testing.T) {
	c, mr := newTestPlanCache(t)
	ctx := context.Background()

	_, ok := c.Get(ctx, "uid-1")
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "uid-1", models.PLAN_PREMIUM))
	plan, ok := c.Get(ctx, "uid-1")
	assert.True(t, ok)
	assert.Equal(t, models.PLAN_PREMIUM, plan)
	assert.True(t, mr.Exists("plan:uid:uid-1"))
	assert.Equal(t, time.Minute, mr.TTL("plan:uid:uid-1"))
}

func TestPlanCacheExpires(t *testing.T) {
	c, mr := newTestPlanCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "uid-2", models.PLAN_ENTERPRISE))
	mr.FastForward(2 * time.Minute)

	_, ok := c.Get(ctx, "uid-2")
	assert.False(t, ok)
}

func TestPlanCacheOnPlanChangedInvalidates(t *testing.T) {
	c, _ := newTestPlanCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "uid-3", models.PLAN_STARTER))
	c.OnPlanChanged(ctx, &models.User{ID: 3, FirebaseUID: "uid-3", Plan: models.PLAN_PREMIUM})

	_, ok := c.Get(ctx, "uid-3")
	assert.False(t, ok)
}

func TestNilPlanCacheIsNoop(t *testing.T) {
	var c *PlanCache
	ctx := context.Background()

	_, ok := c.Get(ctx, "uid")
	assert.False(t, ok)
	assert.NoError(t, c.Set(ctx, "uid", "PREMIUM"))
	assert.NoError(t, c.Invalidate(ctx, "uid"))
	c.OnPlanChanged(ctx, &models.User{FirebaseUID: "uid"})
}

func TestPlanCacheReadErrorMisses(t *testing.T) {
	c, mr := newTestPlanCache(t)
	mr.Close()

	_, ok := c.Get(context.Background(), "uid")
	assert.False(t, ok)
}
