// Package users provides a PostgreSQL-backed repository for user identity
// records.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/messenger/internal/common"
	"github.com/dmitrijs2005/messenger/internal/dbx"
	"github.com/dmitrijs2005/messenger/internal/server/models"
	"github.com/dmitrijs2005/messenger/internal/server/repositories/pgerr"
)

// userColumns is the canonical select list. Nullable columns are coalesced
// to empty strings so the model never carries sql.Null* types.
const userColumns = `id, email, username, firstname, lastname,
		COALESCE(password_hash, ''), COALESCE(facebook_id, ''),
		is_verified, COALESCE(image, ''), created_at`

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.Firstname, &u.Lastname,
		&u.PasswordHash, &u.FacebookID, &u.IsVerified, &u.Image, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Create inserts a new user record. Empty password hash, facebook ID, and
// image are stored as NULL.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (email, username, firstname, lastname, password_hash, facebook_id, is_verified, image)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, NULLIF($8, ''))
		RETURNING ` + userColumns

	created, err := scanUser(r.db.QueryRowContext(ctx, query,
		user.Email, user.Username, user.Firstname, user.Lastname,
		user.PasswordHash, user.FacebookID, user.IsVerified, user.Image))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", pgerr.Translate(err))
	}
	return created, nil
}

// FindByID returns the user with the given ID or common.ErrorNotFound.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

// FindByEmail returns the user with the given email or common.ErrorNotFound.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

// FindOrCreateByFacebookID looks up a user by provider ID and creates one
// from defaults when absent, in a single statement. Keying on the provider
// ID (never the email) keeps two distinct provider identities that share an
// email address from being silently merged. A uniqueness violation on a
// different column (e.g. email owned by a local account) surfaces as
// *common.UniqueConflictError for the caller's linking policy to resolve.
func (r *PostgresRepository) FindOrCreateByFacebookID(ctx context.Context, facebookID string, defaults *models.User) (*models.User, bool, error) {
	query := `
		WITH new_user AS (
			INSERT INTO users (email, username, firstname, lastname, facebook_id, is_verified)
			VALUES ($1, $2, $3, $4, $5, true)
			ON CONFLICT (facebook_id) DO NOTHING
			RETURNING id, email, username, firstname, lastname, password_hash, facebook_id, is_verified, image, created_at
		)
		SELECT id, email, username, firstname, lastname,
		       COALESCE(password_hash, ''), COALESCE(facebook_id, ''),
		       is_verified, COALESCE(image, ''), created_at,
		       true AS created
		FROM new_user
		UNION ALL
		SELECT id, email, username, firstname, lastname,
		       COALESCE(password_hash, ''), COALESCE(facebook_id, ''),
		       is_verified, COALESCE(image, ''), created_at,
		       false
		FROM users WHERE facebook_id = $5
		LIMIT 1`

	u := &models.User{}
	var created bool
	err := r.db.QueryRowContext(ctx, query,
		defaults.Email, defaults.Username, defaults.Firstname, defaults.Lastname, facebookID).
		Scan(&u.ID, &u.Email, &u.Username, &u.Firstname, &u.Lastname,
			&u.PasswordHash, &u.FacebookID, &u.IsVerified, &u.Image, &u.CreatedAt, &created)
	if err != nil {
		return nil, false, fmt.Errorf("db error: %w", pgerr.Translate(err))
	}
	return u, created, nil
}

// LinkFacebookID attaches a provider ID to the account owning the given
// email. Returns common.ErrorNotFound when no such account exists.
func (r *PostgresRepository) LinkFacebookID(ctx context.Context, email string, facebookID string) (*models.User, error) {
	query := `
		UPDATE users SET facebook_id = $2, is_verified = true
		WHERE email = $1
		RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email, facebookID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", pgerr.Translate(err))
	}
	return user, nil
}

// Update applies the non-nil patch fields and returns the updated record.
// An empty patch degrades to FindByID.
func (r *PostgresRepository) Update(ctx context.Context, id string, patch *models.ProfilePatch) (*models.User, error) {
	if patch.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	set := make([]string, 0, 5)
	args := make([]any, 0, 6)
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Username != nil {
		add("username", *patch.Username)
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.Firstname != nil {
		add("firstname", *patch.Firstname)
	}
	if patch.Lastname != nil {
		add("lastname", *patch.Lastname)
	}
	if patch.Image != nil {
		add("image", *patch.Image)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(set, ", "), len(args), userColumns)

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", pgerr.Translate(err))
	}
	return user, nil
}

// UpdatePassword replaces the stored password hash.
func (r *PostgresRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// Delete removes the user record. Follow edges go with it via the store's
// ON DELETE CASCADE.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
