// Package cli is the interactive front-end over the directory and session
// services: it prompts for input, renders classified outcomes as toast
// lines, and emits the redirect-to-login signal for unauthenticated calls.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/akozyrev/userdir/internal/config"
	"github.com/akozyrev/userdir/internal/credentials"
	"github.com/akozyrev/userdir/internal/directory"
	"github.com/akozyrev/userdir/internal/kvstore"
	"github.com/akozyrev/userdir/internal/logging"
	"github.com/akozyrev/userdir/internal/migrations"
	"github.com/akozyrev/userdir/internal/models"
	"github.com/akozyrev/userdir/internal/outcome"
	"github.com/akozyrev/userdir/internal/session"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type App struct {
	config   *config.Config
	dir      *directory.Service
	sessions *session.Manager
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger := logging.New(os.Stderr, c.LogLevel)

	driver := "sqlite"
	if c.DatabaseEngine == "postgres" {
		driver = "pgx"
	}
	db, err := sql.Open(driver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := migrations.Run(ctx, db, c.DatabaseEngine); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	var store kvstore.Store
	if c.DatabaseEngine == "postgres" {
		store = kvstore.NewPostgresStore(db)
	} else {
		store = kvstore.NewSQLiteStore(db)
	}

	reader := bufio.NewReader(os.Stdin)
	out := io.Writer(os.Stdout)
	gate := NewTerminalGate(reader, out)

	dir := directory.NewService(store, credentials.ForScheme(c.PasswordScheme), gate, logger)
	sessions := session.NewManager(store, dir, logger)
	dir.AttachSessions(sessions)

	return &App{
		config:   c,
		dir:      dir,
		sessions: sessions,
		log:      logger,
		reader:   reader,
		out:      out,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	runREPL(ctx, a, func() string { return a.status(ctx) }, a.reader, a.out)
}

func (a *App) status(ctx context.Context) string {
	u, _ := a.sessions.Current(ctx)
	if u == nil {
		return "not logged in"
	}
	return u.Username
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	u, _ := a.sessions.Current(ctx)
	return u != nil
}

// toast renders a classified outcome the way the notification surface
// would: one line, category first.
func (a *App) toast(o outcome.Outcome) {
	fmt.Fprintf(a.out, "[%s] %s\n", o.Category, o.Message)
}

func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	u, err := a.sessions.Login(ctx, username, password)
	if err != nil {
		a.toast(outcome.FromError(err, ""))
		return err
	}
	a.toast(outcome.FromError(nil, fmt.Sprintf("Welcome, %s!", u.Username)))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Logout(ctx); err != nil {
		a.toast(outcome.FromError(err, ""))
		return err
	}
	a.toast(outcome.FromError(nil, "Logged out."))
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u, _ := a.sessions.Current(ctx)
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "#%d %s <%s> [%s]\n", u.ID, u.Username, u.Email, u.Permissions)
	return nil
}

func (a *App) List(ctx context.Context) error {
	users := a.dir.ListOthers(ctx)
	if len(users) == 0 {
		fmt.Fprintln(a.out, "No other users.")
		return nil
	}
	fmt.Fprintf(a.out, "%-6s %-20s %-30s %s\n", "ID", "USERNAME", "EMAIL", "PERMISSIONS")
	for _, u := range users {
		fmt.Fprintf(a.out, "%-6d %-20s %-30s %s\n", u.ID, u.Username, u.Email, u.Permissions)
	}
	return nil
}

func (a *App) Add(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	permissions, err := GetSimpleText(a.reader, "Enter permissions", a.out)
	if err != nil {
		return err
	}

	u := models.User{Username: username, Password: password, Email: email, Permissions: permissions}
	if err := a.dir.Create(ctx, &u); err != nil {
		a.toast(outcome.FromError(err, ""))
		return err
	}
	a.toast(outcome.FromError(nil, fmt.Sprintf("User %s created with id %d.", u.Username, u.ID)))
	return nil
}

func (a *App) Edit(ctx context.Context) error {
	id, err := a.readID("Enter user id to edit")
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Leave a field blank to keep its current value.")
	patch := models.UserPatch{}
	if v, err := GetSimpleText(a.reader, "New username", a.out); err != nil {
		return err
	} else if v != "" {
		patch.Username = &v
	}
	if v, err := GetSimpleText(a.reader, "New email", a.out); err != nil {
		return err
	} else if v != "" {
		patch.Email = &v
	}
	if v, err := GetSimpleText(a.reader, "New permissions", a.out); err != nil {
		return err
	} else if v != "" {
		patch.Permissions = &v
	}
	if v, err := GetSimpleText(a.reader, "New password", a.out); err != nil {
		return err
	} else if v != "" {
		patch.Password = &v
	}

	if patch.IsEmpty() {
		a.toast(outcome.Classify(304, "Nothing to change."))
		return nil
	}

	if err := a.dir.Update(ctx, id, patch); err != nil {
		a.toast(outcome.FromError(err, ""))
		return err
	}
	a.toast(outcome.FromError(nil, "User updated."))
	return nil
}

func (a *App) Delete(ctx context.Context) error {
	id, err := a.readID("Enter user id to delete")
	if err != nil {
		return err
	}

	if err := a.dir.Delete(ctx, id); err != nil {
		a.toast(outcome.FromError(err, ""))
		return err
	}
	a.toast(outcome.FromError(nil, "User deleted."))
	return nil
}

func (a *App) readID(prompt string) (int64, error) {
	raw, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		a.toast(outcome.Classify(400, "Not a valid id: "+raw))
		return 0, err
	}
	return id, nil
}
