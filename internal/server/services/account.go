package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/messenger/internal/common"
	"github.com/dmitrijs2005/messenger/internal/cryptox"
	"github.com/dmitrijs2005/messenger/internal/dbx"
	"github.com/dmitrijs2005/messenger/internal/logging"
	"github.com/dmitrijs2005/messenger/internal/server/cache"
	"github.com/dmitrijs2005/messenger/internal/server/media"
	"github.com/dmitrijs2005/messenger/internal/server/models"
	"github.com/dmitrijs2005/messenger/internal/server/repositories/repomanager"
)

// AccountService manages the profile and credentials of an existing account:
// profile updates with avatar uploads, password changes, account deletion,
// and the read-through user cache.
//
// Write ordering per operation is fixed: media upload first (fail fast, no
// partial state), then the store write, then a best-effort cache write that
// is logged on failure but never fails the operation.
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cache       cache.UserCache
	uploader    media.Uploader
	logger      logging.Logger
}

// NewAccountService constructs an AccountService.
func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, c cache.UserCache, u media.Uploader, logger logging.Logger) *AccountService {
	return &AccountService{
		db:          db,
		repomanager: m,
		cache:       c,
		uploader:    u,
		logger:      logger,
	}
}

// GetProfile returns the sanitized user record, served from the cache when
// possible and repopulating it on a miss.
func (s *AccountService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.cache.Get(ctx, userID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		s.logger.Warn(ctx, "cache read failed, falling back to store",
			"user_id", userID, "error", err.Error())
	}

	repo := s.repomanager.Users(s.db)
	user, err = repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}

	sanitized := user.Sanitized()
	if err := s.cache.Set(ctx, sanitized); err != nil {
		s.logger.Warn(ctx, "cache refresh failed",
			"user_id", userID, "error", err.Error())
	}
	return sanitized, nil
}

// UpdateProfile applies a partial profile update. When the patch carries a
// local avatar file it is uploaded first and its public URL replaces the file
// reference; an upload failure aborts the whole operation before any store
// write. On success the cache entry is refreshed with the new record, and the
// returned message reminds the user to re-verify when the email changed.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, patch *models.ProfilePatch) (*Result, error) {
	p := *patch
	if p.FilePath != "" {
		url, err := s.uploader.Upload(ctx, p.FilePath)
		if err != nil {
			return nil, err
		}
		p.Image = &url
		p.FilePath = ""
	}

	repo := s.repomanager.Users(s.db)
	updated, err := repo.Update(ctx, userID, &p)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}

	sanitized := updated.Sanitized()
	if err := s.cache.Set(ctx, sanitized); err != nil {
		s.logger.Warn(ctx, "cache refresh failed",
			"user_id", userID, "error", err.Error())
	}

	res := profileUpdated
	if p.Email != nil {
		res.Message += verifyEmailReminder
	}
	res.User = sanitized
	return &res, nil
}

// ChangePassword verifies the current password against the stored hash and
// replaces it with a hash of the new one. A mismatch, including an account
// with no password at all, yields common.ErrChangePassword.
func (s *AccountService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) (*Result, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}
	if user.PasswordHash == "" || !cryptox.VerifyPassword(currentPassword, user.PasswordHash) {
		return nil, common.ErrChangePassword
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := repo.UpdatePassword(ctx, userID, hash); err != nil {
		return nil, err
	}

	res := passwordChanged
	return &res, nil
}

// DeleteAccount removes the account after the caller re-types the account's
// email as confirmation. The user row and every follow edge touching it go in
// one transaction; only after the commit is the cache entry evicted. A failed
// eviction is logged and tolerated, the entry dies at its TTL.
func (s *AccountService) DeleteAccount(ctx context.Context, user *models.User, confirmEmail string) (*Result, error) {
	if confirmEmail != user.Email {
		return nil, common.ErrDeleteAccount
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Follows(tx).DeleteAllFor(ctx, user.ID); err != nil {
			return err
		}
		return s.repomanager.Users(tx).Delete(ctx, user.ID)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}

	if err := s.cache.Delete(ctx, user.ID); err != nil {
		s.logger.Warn(ctx, "cache eviction failed, entry expires at TTL",
			"user_id", user.ID, "error", err.Error())
	}

	res := accountDeleted
	return &res, nil
}
