package follows

import (
	"context"

	"github.com/dmitrijs2005/messenger/internal/server/models"
)

// Repository is the persistence contract for directed follow edges.
// Foreign-key violations (an endpoint that no longer exists) are translated
// to common.ErrUserNotFound; a duplicate edge surfaces as
// *common.UniqueConflictError.
type Repository interface {
	CreateEdge(ctx context.Context, followerID string, followedID string) error
	DeleteEdge(ctx context.Context, followerID string, followedID string) error

	// DeleteAllFor removes every edge touching the given user, in either
	// direction. Used when an account is deleted.
	DeleteAllFor(ctx context.Context, userID string) error

	// ListFollowing returns the users the given user follows. Password
	// hashes are never selected.
	ListFollowing(ctx context.Context, followerID string) ([]*models.User, error)
}
