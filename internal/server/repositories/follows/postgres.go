// Package follows provides a PostgreSQL-backed repository for the social
// graph's directed follow edges.
package follows

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/messenger/internal/dbx"
	"github.com/dmitrijs2005/messenger/internal/server/models"
	"github.com/dmitrijs2005/messenger/internal/server/repositories/pgerr"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateEdge inserts the edge followerID -> followedID.
func (r *PostgresRepository) CreateEdge(ctx context.Context, followerID string, followedID string) error {
	query := `
		INSERT INTO follows (follower_id, followed_id)
		VALUES ($1, $2)
	`
	if _, err := r.db.ExecContext(ctx, query, followerID, followedID); err != nil {
		return fmt.Errorf("db error: %w", pgerr.Translate(err))
	}
	return nil
}

// DeleteEdge removes the edge followerID -> followedID. Removing an edge
// that does not exist is not an error.
func (r *PostgresRepository) DeleteEdge(ctx context.Context, followerID string, followedID string) error {
	query := `
		DELETE FROM follows
		WHERE follower_id = $1 AND followed_id = $2
	`
	if _, err := r.db.ExecContext(ctx, query, followerID, followedID); err != nil {
		return fmt.Errorf("db error: %w", pgerr.Translate(err))
	}
	return nil
}

// DeleteAllFor removes every edge where the user is follower or followed.
func (r *PostgresRepository) DeleteAllFor(ctx context.Context, userID string) error {
	query := `
		DELETE FROM follows
		WHERE follower_id = $1 OR followed_id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ListFollowing returns the profiles the given user follows, newest first.
func (r *PostgresRepository) ListFollowing(ctx context.Context, followerID string) ([]*models.User, error) {
	query := `
		SELECT u.id, u.email, u.username, u.firstname, u.lastname,
		       COALESCE(u.facebook_id, ''), u.is_verified, COALESCE(u.image, ''), u.created_at
		FROM follows f
		JOIN users u ON u.id = f.followed_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, followerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		u := &models.User{}
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.Firstname, &u.Lastname,
			&u.FacebookID, &u.IsVerified, &u.Image, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
