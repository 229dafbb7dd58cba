package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/dmitrijs2005/messenger/internal/dbx"
	"github.com/dmitrijs2005/messenger/internal/logging"
	"github.com/dmitrijs2005/messenger/internal/server/models"
	followsrepo "github.com/dmitrijs2005/messenger/internal/server/repositories/follows"
	usersrepo "github.com/dmitrijs2005/messenger/internal/server/repositories/users"
)

// --- shared fakes ---

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error
	createIn  *models.User

	byEmailOut *models.User
	byEmailErr error

	byIDOut *models.User
	byIDErr error

	focOut     *models.User
	focCreated bool
	focErr     error
	focID      string
	focIn      *models.User

	linkOut   *models.User
	linkErr   error
	linkEmail string
	linkID    string

	updateOut *models.User
	updateErr error
	updateIn  *models.ProfilePatch

	updatePasswordErr  error
	updatePasswordHash string

	deleteErr error
	deletedID string
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.createIn = u
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeUsersRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}

func (f *fakeUsersRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmailOut, nil
}

func (f *fakeUsersRepo) FindOrCreateByFacebookID(ctx context.Context, facebookID string, defaults *models.User) (*models.User, bool, error) {
	f.focID = facebookID
	f.focIn = defaults
	if f.focErr != nil {
		return nil, false, f.focErr
	}
	return f.focOut, f.focCreated, nil
}

func (f *fakeUsersRepo) LinkFacebookID(ctx context.Context, email string, facebookID string) (*models.User, error) {
	f.linkEmail = email
	f.linkID = facebookID
	if f.linkErr != nil {
		return nil, f.linkErr
	}
	return f.linkOut, nil
}

func (f *fakeUsersRepo) Update(ctx context.Context, id string, patch *models.ProfilePatch) (*models.User, error) {
	f.updateIn = patch
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateOut, nil
}

func (f *fakeUsersRepo) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	f.updatePasswordHash = passwordHash
	return f.updatePasswordErr
}

func (f *fakeUsersRepo) Delete(ctx context.Context, id string) error {
	f.deletedID = id
	return f.deleteErr
}

type fakeFollowsRepo struct {
	createEdgeErr error
	createdFrom   string
	createdTo     string

	deleteEdgeErr error
	deletedFrom   string
	deletedTo     string

	deleteAllErr error
	deleteAllID  string

	listOut []*models.User
	listErr error
}

func (f *fakeFollowsRepo) CreateEdge(ctx context.Context, followerID, followedID string) error {
	f.createdFrom, f.createdTo = followerID, followedID
	return f.createEdgeErr
}

func (f *fakeFollowsRepo) DeleteEdge(ctx context.Context, followerID, followedID string) error {
	f.deletedFrom, f.deletedTo = followerID, followedID
	return f.deleteEdgeErr
}

func (f *fakeFollowsRepo) DeleteAllFor(ctx context.Context, userID string) error {
	f.deleteAllID = userID
	return f.deleteAllErr
}

func (f *fakeFollowsRepo) ListFollowing(ctx context.Context, followerID string) ([]*models.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	f *fakeFollowsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error  { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Follows(db dbx.DBTX) followsrepo.Repository   { return m.f }

type fakeCache struct {
	setErr  error
	setUser *models.User

	getOut *models.User
	getErr error

	delErr error
	delID  string
}

func (c *fakeCache) Set(ctx context.Context, user *models.User) error {
	c.setUser = user
	return c.setErr
}

func (c *fakeCache) Get(ctx context.Context, userID string) (*models.User, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.getOut, nil
}

func (c *fakeCache) Delete(ctx context.Context, userID string) error {
	c.delID = userID
	return c.delErr
}

type fakeUploader struct {
	url  string
	err  error
	path string
}

func (u *fakeUploader) Upload(ctx context.Context, localPath string) (string, error) {
	u.path = localPath
	if u.err != nil {
		return "", u.err
	}
	return u.url, nil
}

func strptr(s string) *string { return &s }

func mustNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
