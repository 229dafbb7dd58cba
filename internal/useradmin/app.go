package useradmin

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/messenger/internal/logging"
	"github.com/dmitrijs2005/messenger/internal/server/config"
	"github.com/dmitrijs2005/messenger/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/messenger/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	db   *sql.DB
	auth *services.AuthService
}

// NewApp opens the database, applies migrations, and wires an AuthService
// for direct account creation.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	return &App{db: db, auth: services.NewAuthService(db, rm, cfg, logger)}, nil
}

// Run prompts for account details on r/w and creates the account.
func (app *App) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	defer app.db.Close()

	reader := bufio.NewReader(r)

	email, err := GetSimpleText(reader, "Email", w)
	if err != nil {
		return err
	}
	username, err := GetSimpleText(reader, "Username (empty to derive from name)", w)
	if err != nil {
		return err
	}
	firstname, err := GetSimpleText(reader, "First name", w)
	if err != nil {
		return err
	}
	lastname, err := GetSimpleText(reader, "Last name", w)
	if err != nil {
		return err
	}
	password, err := GetPassword(w)
	if err != nil {
		return err
	}

	res, err := app.auth.Register(ctx, &services.RegisterInput{
		Email:     email,
		Username:  username,
		Firstname: firstname,
		Lastname:  lastname,
		Password:  string(password),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s (id=%s)\n", res.Message, res.User.ID)
	return nil
}
