package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/batyok32/shipyuusell-sub001/internal/client/api"
	"github.com/batyok32/shipyuusell-sub001/internal/client/client"
	"github.com/batyok32/shipyuusell-sub001/internal/client/config"
	"github.com/batyok32/shipyuusell-sub001/internal/client/repositories/handoff"
	"github.com/batyok32/shipyuusell-sub001/internal/client/services"
	"github.com/batyok32/shipyuusell-sub001/internal/client/store"
	"github.com/batyok32/shipyuusell-sub001/internal/filex"
	"github.com/batyok32/shipyuusell-sub001/internal/logging"
)

// errLoginRequired is returned by commands that need a session.
var errLoginRequired = errors.New("login required")

type App struct {
	config  *config.Config
	db      *sql.DB
	http    *client.HTTPClient
	api     *api.API
	store   *store.Store
	thunks  *store.Thunks
	handoff *handoff.Store
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp opens the session database, restores any stored tokens and wires
// the HTTP client, API modules and store together. Prompts read from in and
// everything user-facing is written to out.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out io.Writer) (*App, error) {
	log := logging.New(os.Stderr, c.LogLevel, c.LogFormat)

	if _, err := filex.EnsureParentDir(c.DBPath); err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.DBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DBPath, "err", err)
		return nil, err
	}

	session := services.NewSessionService(db)
	access, refresh, err := session.Tokens(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("load session: %w", err)
	}

	hc := client.New(c.BaseURL(), session,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(log))
	endpoints := api.New(hc)
	st := store.New(store.InitialState(access, refresh), store.WithLogger(log))

	a := &App{
		config:  c,
		db:      db,
		http:    hc,
		api:     endpoints,
		store:   st,
		thunks:  store.NewThunks(st, endpoints, session, log),
		handoff: handoff.New(handoff.DefaultTTL),
		log:     log,
		reader:  bufio.NewReader(in),
		out:     out,
	}
	a.watchSession()
	return a, nil
}

// watchSession mirrors transparent token refreshes and expiries performed
// by the HTTP client into the store.
func (a *App) watchSession() {
	a.http.OnTokenRefreshed(func(access, refresh string) {
		a.store.Dispatch(store.TokenRefreshed{Access: access, Refresh: refresh})
	})
	a.http.OnSessionExpired(func() {
		a.store.Dispatch(store.Logout{})
		a.handoff.Clear()
		fmt.Fprintln(a.out, warnStyle.Render("Your session has expired. Please log in again."))
	})
}

// Run starts the REPL and closes the database when it returns.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.store.State().Auth.IsAuthenticated
}

func (a *App) getStatus() string {
	auth := a.store.State().Auth
	switch {
	case auth.User != nil:
		return fmt.Sprintf("(%s)", auth.User.Email)
	case auth.IsAuthenticated:
		return "(signed in)"
	default:
		return "(guest)"
	}
}

// failed prints msg as an error line and returns err unchanged.
func (a *App) failed(err error, msg string) error {
	fmt.Fprintln(a.out, errorStyle.Render("Error: "+msg))
	return err
}

// requireLogin prints a hint and returns errLoginRequired when there is no
// session.
func (a *App) requireLogin() error {
	if a.isLoggedIn() {
		return nil
	}
	fmt.Fprintln(a.out, "Please log in first (login, google or facebook).")
	return errLoginRequired
}

// describe turns an error from a call that bypasses the store into a user
// message.
func describe(err error, fallback string) string {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message()
	case errors.Is(err, api.ErrValidation), errors.Is(err, client.ErrSessionExpired),
		errors.Is(err, client.ErrUnavailable), errors.Is(err, client.ErrTimeout):
		return err.Error()
	}
	return fallback
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
