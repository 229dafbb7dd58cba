// Package services contains the server-side business logic. This file
// implements AuthService: local registration and login, plus reconciliation
// of federated (OAuth) identities against the local account store.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/messenger/internal/common"
	"github.com/dmitrijs2005/messenger/internal/cryptox"
	"github.com/dmitrijs2005/messenger/internal/logging"
	"github.com/dmitrijs2005/messenger/internal/server/auth"
	"github.com/dmitrijs2005/messenger/internal/server/config"
	"github.com/dmitrijs2005/messenger/internal/server/models"
	"github.com/dmitrijs2005/messenger/internal/server/repositories/repomanager"
)

// FederatedProfile is the normalized identity asserted by an external
// provider after its own token verification succeeded.
type FederatedProfile struct {
	Provider   string
	ProviderID string
	Email      string
	Firstname  string
	Lastname   string
}

// RegisterInput carries the fields of a local signup. Username is optional;
// when empty one is synthesized from the name parts.
type RegisterInput struct {
	Email     string
	Username  string
	Firstname string
	Lastname  string
	Password  string
}

// AuthService handles account creation and both sign-in paths.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	jwtSecret   []byte
	cfg         *config.Config
	logger      logging.Logger
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		jwtSecret:   []byte(cfg.SecretKey),
		cfg:         cfg,
		logger:      logger,
	}
}

// Register creates a local, unverified account with a hashed password.
// A uniqueness violation on email or username surfaces as
// *common.UniqueConflictError.
func (s *AuthService) Register(ctx context.Context, in *RegisterInput) (*Result, error) {
	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	username := in.Username
	if username == "" {
		username = synthesizeUsername(in.Firstname, in.Lastname)
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.Create(ctx, &models.User{
		Email:        in.Email,
		Username:     username,
		Firstname:    in.Firstname,
		Lastname:     in.Lastname,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	res := accountCreated
	res.User = user.Sanitized()
	return &res, nil
}

// Login verifies the email/password pair and, on success, returns the
// sanitized user and a session token. An unknown email yields
// common.ErrUserNotFound; a password mismatch (including accounts with no
// password at all) yields common.ErrBadCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*SignInResult, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, common.ErrorInternal
	}
	if user.PasswordHash == "" || !cryptox.VerifyPassword(password, user.PasswordHash) {
		return nil, common.ErrBadCredentials
	}
	return s.signIn(user, false)
}

// FederatedSignIn resolves an externally asserted identity to a local account,
// creating one on first contact. Accounts created this way are verified
// immediately and carry no password. Every failure on this path is wrapped in
// *common.SocialAuthError so transport can distinguish it from local-auth
// failures.
func (s *AuthService) FederatedSignIn(ctx context.Context, profile *FederatedProfile) (*SignInResult, error) {
	if profile.ProviderID == "" || profile.Email == "" {
		return nil, &common.SocialAuthError{
			Provider: profile.Provider,
			Err:      fmt.Errorf("profile is missing required fields"),
		}
	}

	repo := s.repomanager.Users(s.db)
	user, created, err := repo.FindOrCreateByFacebookID(ctx, profile.ProviderID, &models.User{
		Email:      profile.Email,
		Username:   synthesizeUsername(profile.Firstname, profile.Lastname),
		Firstname:  profile.Firstname,
		Lastname:   profile.Lastname,
		IsVerified: true,
	})
	if err != nil {
		var conflict *common.UniqueConflictError
		if errors.As(err, &conflict) && conflictsOnEmail(conflict) {
			return s.resolveEmailConflict(ctx, profile, conflict)
		}
		return nil, &common.SocialAuthError{Provider: profile.Provider, Err: err}
	}

	if created {
		s.logger.Info(ctx, "account created from federated profile",
			"provider", profile.Provider, "user_id", user.ID)
	}
	return s.signIn(user, created)
}

// resolveEmailConflict applies the configured policy when a first-contact
// federated identity carries an email already owned by a local account.
func (s *AuthService) resolveEmailConflict(ctx context.Context, profile *FederatedProfile, conflict *common.UniqueConflictError) (*SignInResult, error) {
	if s.cfg.FederatedEmailConflictPolicy != config.EmailConflictLink {
		return nil, &common.SocialAuthError{Provider: profile.Provider, Err: conflict}
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.LinkFacebookID(ctx, profile.Email, profile.ProviderID)
	if err != nil {
		return nil, &common.SocialAuthError{Provider: profile.Provider, Err: err}
	}

	s.logger.Info(ctx, "linked federated identity to existing account",
		"provider", profile.Provider, "user_id", user.ID)
	return s.signIn(user, false)
}

func (s *AuthService) signIn(user *models.User, created bool) (*SignInResult, error) {
	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.cfg.AccessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	res := signInOK
	if created {
		res = accountCreated
	}
	res.User = user.Sanitized()
	return &SignInResult{Result: res, AccessToken: token, Created: created}, nil
}

func conflictsOnEmail(e *common.UniqueConflictError) bool {
	for _, f := range e.Fields {
		if f == "email" {
			return true
		}
	}
	return false
}

func synthesizeUsername(firstname, lastname string) string {
	first := strings.ToLower(strings.TrimSpace(firstname))
	last := strings.ToLower(strings.TrimSpace(lastname))
	return first + "_" + last
}
