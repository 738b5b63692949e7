// Package cli is the interactive shell around the session lifecycle:
// login, logout, session status, profile refresh, and a dry run of the
// route guard against any dashboard path.
package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	_ "modernc.org/sqlite"

	"github.com/desirppc/parcelace/internal/client/api"
	"github.com/desirppc/parcelace/internal/client/config"
	"github.com/desirppc/parcelace/internal/client/credential"
	"github.com/desirppc/parcelace/internal/client/session"
	"github.com/desirppc/parcelace/internal/client/stores"
	"github.com/desirppc/parcelace/internal/logging"
)

type App struct {
	config  *config.Config
	manager *session.Manager
	client  api.Client
	log     logging.Logger
	reader  *bufio.Reader
}

// NewApp wires the whole lifecycle: stores -> credential store -> session
// manager -> API client, with the expiry bus connecting the last two. The
// manager hydrates synchronously, so the shell never starts in the
// Initializing state.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	persistent, err := openPersistentStore(ctx, c)
	if err != nil {
		log.Error(ctx, "error initializing session store", "error", err)
		return nil, err
	}

	// Persistent store first: it is the preferred read source, the
	// memory store is the per-process fallback.
	creds := credential.NewStore(log, persistent, stores.NewMemoryStore())

	bus := session.NewExpiryBus()
	manager := session.NewManager(creds, bus, log,
		session.WithRenewalWarnAfter(c.RenewalWarnAfter),
		session.WithResetHook(func() {
			printlnFn("Session cleared.")
		}),
		session.WithExpiredHook(func() {
			printlnFn("Session expired, please login again.")
		}),
	)

	client := api.NewRestyClient(c.APIBaseURL, manager, bus, log)
	manager.SetRefresher(client)

	manager.Hydrate(ctx)
	go manager.Watch(ctx)

	return &App{
		config:  c,
		manager: manager,
		client:  client,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func openPersistentStore(ctx context.Context, c *config.Config) (stores.Store, error) {
	if c.RedisAddr != "" {
		return stores.NewRedisStore(ctx, stores.RedisConfig{Addr: c.RedisAddr})
	}
	return stores.InitSQLiteStore(ctx, c.StorePath)
}

func (a *App) isLoggedIn() bool {
	return a.manager.State() == session.StateAuthenticated
}

func (a *App) Run(ctx context.Context) {
	defer a.client.Close()
	a.Root(ctx)
}
