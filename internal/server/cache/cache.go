// Package cache mirrors hot user records in a TTL key-value store. The cache
// is a best-effort accelerator, never the system of record: absence is not an
// error, and write failures are logged by callers rather than failing the
// logical operation.
package cache

import (
	"context"

	"github.com/dmitrijs2005/messenger/internal/server/models"
)

// keyPrefix namespaces user entries in the shared keyspace.
const keyPrefix = "user_data:"

// Key returns the cache key for a user's serialized record.
func Key(userID string) string {
	return keyPrefix + userID
}

// UserCache stores sanitized user records with a fixed TTL.
type UserCache interface {
	// Set writes the user's serializable fields under Key(user.ID),
	// refreshing the TTL.
	Set(ctx context.Context, user *models.User) error

	// Get returns the cached user or common.ErrorNotFound on a miss.
	Get(ctx context.Context, userID string) (*models.User, error)

	// Delete evicts the user's entry. Evicting a missing entry is not an
	// error.
	Delete(ctx context.Context, userID string) error
}
