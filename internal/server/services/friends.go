package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/messenger/internal/common"
	"github.com/dmitrijs2005/messenger/internal/logging"
	"github.com/dmitrijs2005/messenger/internal/server/config"
	"github.com/dmitrijs2005/messenger/internal/server/models"
	"github.com/dmitrijs2005/messenger/internal/server/repositories/repomanager"
)

// Friendship actions accepted by ManageFriendship.
const (
	FriendActionAdd    = "add"
	FriendActionRemove = "remove"
)

// FriendService maintains the directed follow graph.
type FriendService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cfg         *config.Config
	logger      logging.Logger
}

// NewFriendService constructs a FriendService.
func NewFriendService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *FriendService {
	return &FriendService{db: db, repomanager: m, cfg: cfg, logger: logger}
}

// ManageFriendship adds or removes the edge actorID -> targetID. The action
// is validated before any store access. Removing an edge that does not exist
// succeeds; adding one that already does is idempotent unless
// EnforceUniqueEdge is set, in which case the conflict is surfaced. An edge
// endpoint that does not exist yields common.ErrUserNotFound.
func (s *FriendService) ManageFriendship(ctx context.Context, action, actorID, targetID string) (*FriendshipResult, error) {
	if action != FriendActionAdd && action != FriendActionRemove {
		return nil, fmt.Errorf("unknown friendship action %q", action)
	}
	if actorID == targetID && !s.cfg.AllowSelfFollow {
		return nil, common.ErrSelfFollow
	}

	repo := s.repomanager.Follows(s.db)
	if action == FriendActionRemove {
		if err := repo.DeleteEdge(ctx, actorID, targetID); err != nil {
			return nil, err
		}
		return &FriendshipResult{IsFollowed: false}, nil
	}

	if err := repo.CreateEdge(ctx, actorID, targetID); err != nil {
		var conflict *common.UniqueConflictError
		if !errors.As(err, &conflict) {
			return nil, err
		}
		if s.cfg.EnforceUniqueEdge {
			return nil, err
		}
		// The edge is already there, which is the state the caller asked for.
	}
	return &FriendshipResult{IsFollowed: true}, nil
}

// ListFriends returns the sanitized records of the users the given user
// follows, most recent first.
func (s *FriendService) ListFriends(ctx context.Context, userID string) ([]*models.User, error) {
	repo := s.repomanager.Follows(s.db)
	return repo.ListFollowing(ctx, userID)
}
