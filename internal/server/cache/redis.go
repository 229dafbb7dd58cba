package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/messenger/internal/common"
	"github.com/dmitrijs2005/messenger/internal/server/models"
	"github.com/go-redis/redis/v8"
)

// RedisUserCache implements UserCache over a Redis client. Entries are JSON
// documents with the configured TTL (24h by default).
type RedisUserCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisUserCache constructs a cache with the given TTL.
func NewRedisUserCache(client *redis.Client, ttl time.Duration) *RedisUserCache {
	return &RedisUserCache{client: client, ttl: ttl}
}

// Set serializes the user and writes it with the configured TTL. The caller
// is expected to pass a sanitized user; the password hash is dropped from
// the payload regardless.
func (c *RedisUserCache) Set(ctx context.Context, user *models.User) error {
	payload, err := MarshalUser(user)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, Key(user.ID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Get returns the cached user, or common.ErrorNotFound on a miss.
func (c *RedisUserCache) Get(ctx context.Context, userID string) (*models.User, error) {
	payload, err := c.client.Get(ctx, Key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}
	entry := &cacheEntry{}
	if err := json.Unmarshal(payload, entry); err != nil {
		return nil, fmt.Errorf("cache unmarshal: %w", err)
	}
	return entry.toUser(), nil
}

// Delete evicts the user's entry.
func (c *RedisUserCache) Delete(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, Key(userID)).Err(); err != nil {
		return fmt.Errorf("cache del: %w", err)
	}
	return nil
}

// cacheEntry is the wire shape of a cached user. The password hash has no
// field here, so it can never end up in the cache.
type cacheEntry struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	Firstname  string    `json:"firstname"`
	Lastname   string    `json:"lastname"`
	FacebookID string    `json:"facebook_id,omitempty"`
	IsVerified bool      `json:"is_verified"`
	Image      string    `json:"image,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (e *cacheEntry) toUser() *models.User {
	return &models.User{
		ID:         e.ID,
		Email:      e.Email,
		Username:   e.Username,
		Firstname:  e.Firstname,
		Lastname:   e.Lastname,
		FacebookID: e.FacebookID,
		IsVerified: e.IsVerified,
		Image:      e.Image,
		CreatedAt:  e.CreatedAt,
	}
}

// MarshalUser renders the cacheable subset of a user as JSON.
func MarshalUser(user *models.User) ([]byte, error) {
	return json.Marshal(cacheEntry{
		ID:         user.ID,
		Email:      user.Email,
		Username:   user.Username,
		Firstname:  user.Firstname,
		Lastname:   user.Lastname,
		FacebookID: user.FacebookID,
		IsVerified: user.IsVerified,
		Image:      user.Image,
		CreatedAt:  user.CreatedAt,
	})
}
