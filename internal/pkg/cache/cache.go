package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/itzsam-lol/com-app/app/models"
	"github.com/itzsam-lol/com-app/internal/pkg/config"
	"github.com/itzsam-lol/com-app/internal/pkg/logging"
)

const planKeyPrefix = "plan:uid:"

// NewClient connects to the Redis compatible cache server. A failed ping is
// logged and the client returned anyway; cache reads then miss.
func NewClient(cfg config.CacheConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		logging.For("cache").WithError(err).Warn("could not connect to cache")
	} else {
		logging.For("cache").WithField("pong", pong).Info("connected to cache")
	}
	return client
}

// PlanCache keeps the current plan per Firebase uid. A nil *PlanCache or a
// cache without client is valid and never hits.
type PlanCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPlanCache creates a plan cache with the given entry lifetime.
func NewPlanCache(client *redis.Client, ttl time.Duration) *PlanCache {
	return &PlanCache{client: client, ttl: ttl}
}

func planKey(uid string) string {
	return planKeyPrefix + uid
}

// Get returns the cached plan for uid.
func (c *PlanCache) Get(ctx context.Context, uid string) (string, bool) {
	if c == nil || c.client == nil {
		return "", false
	}
	val, err := c.client.Get(ctx, planKey(uid)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logging.For("cache").WithError(err).Warn("plan cache read failed")
		}
		return "", false
	}
	return val, true
}

// Set stores the plan for uid.
func (c *PlanCache) Set(ctx context.Context, uid, plan string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Set(ctx, planKey(uid), plan, c.ttl).Err()
}

// Invalidate drops the cached plan for uid.
func (c *PlanCache) Invalidate(ctx context.Context, uid string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, planKey(uid)).Err()
}

// OnPlanChanged invalidates the entry of a user whose plan was just written.
func (c *PlanCache) OnPlanChanged(ctx context.Context, user *models.User) {
	if user == nil {
		return
	}
	if err := c.Invalidate(ctx, user.FirebaseUID); err != nil {
		logging.WithUser("cache", user.ID).WithError(err).Warn("plan cache invalidation failed")
	}
}
