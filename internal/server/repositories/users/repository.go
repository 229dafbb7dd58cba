package users

import (
	"context"

	"github.com/dmitrijs2005/messenger/internal/server/models"
)

// Repository is the persistence contract for user identity records.
//
// Implementations translate store-level constraint violations into the
// shared taxonomy: uniqueness violations become *common.UniqueConflictError
// and missing rows become common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindOrCreateByFacebookID resolves a federated identity in a single
	// atomic statement keyed on the provider ID. The boolean reports whether
	// a new account was created.
	FindOrCreateByFacebookID(ctx context.Context, facebookID string, defaults *models.User) (*models.User, bool, error)

	// LinkFacebookID attaches a provider ID to the existing account that owns
	// the given email address.
	LinkFacebookID(ctx context.Context, email string, facebookID string) (*models.User, error)

	Update(ctx context.Context, id string, patch *models.ProfilePatch) (*models.User, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	Delete(ctx context.Context, id string) error
}
