package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ieplsoft/user-management/internal/logger"
	"github.com/ieplsoft/user-management/internal/models"
)

// UserCacheRepository caches sanitized user views in Redis with a TTL.
// Only the view is cached; password hashes never reach the cache.
type UserCacheRepository struct {
	client *redis.Client
	exp    time.Duration
}

// NewUserCacheRepository creates a cache repository with the given TTL.
func NewUserCacheRepository(client *redis.Client, expiration time.Duration) *UserCacheRepository {
	return &UserCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func userKey(id int64) string {
	return fmt.Sprintf("user:%d", id)
}

// Get returns the cached view for a user id, or nil on a cache miss.
func (r *UserCacheRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	key := userKey(id)

	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		logger.Log.Errorw("cache get failed", "key", key, "error", err)
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal([]byte(val), &user); err != nil {
		logger.Log.Errorw("cache entry corrupt", "key", key, "error", err)
		return nil, err
	}

	return &user, nil
}

// Set stores the view for a user with the repository TTL.
func (r *UserCacheRepository) Set(ctx context.Context, user models.User) error {
	key := userKey(user.ID)

	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, data, r.exp).Err()
	if err != nil {
		logger.Log.Errorw("cache set failed", "key", key, "error", err)
	}

	return err
}

// Delete drops the cached view for a user id. Missing keys are not an error.
func (r *UserCacheRepository) Delete(ctx context.Context, id int64) error {
	key := userKey(id)

	err := r.client.Del(ctx, key).Err()
	if err != nil {
		logger.Log.Errorw("cache delete failed", "key", key, "error", err)
	}

	return err
}
