package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrijs2005/pgdesk/internal/client/api"
	"github.com/dmitrijs2005/pgdesk/internal/client/config"
	"github.com/dmitrijs2005/pgdesk/internal/client/services"
	"github.com/dmitrijs2005/pgdesk/internal/client/storage"
	"github.com/dmitrijs2005/pgdesk/internal/logging"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	store       io.Closer
	metrics     prometheus.Gatherer
	log         logging.Logger
	reader      *bufio.Reader
	out         io.Writer
}

// openStore is a seam for tests.
var openStore = func(ctx context.Context, c *config.Config, log logging.Logger) (*storage.Store, error) {
	switch c.StorageDriver {
	case config.StorageRedis:
		return storage.OpenRedis(ctx, c.StorageDSN, log)
	default:
		return storage.OpenSQLite(ctx, c.StorageDSN, log)
	}
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	store, err := openStore(ctx, c, log)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	reg := prometheus.NewRegistry()
	httpClient := api.NewHTTPClient(c.BaseURL, c.Timeout,
		api.WithLogger(log),
		api.WithMetrics(api.NewMetrics(reg)),
	)
	as := services.NewAuthService(api.NewAuthClient(httpClient), store, log)

	return &App{
		config:      c,
		authService: as,
		store:       store,
		metrics:     reg,
		log:         log,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	defer a.Close()
	a.Root(ctx)
	return nil
}

func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

func (a *App) state() services.State {
	return a.authService.State()
}
