// Package wire provides dependency injection for the routesim application.
// A Container is built once per process invocation from the effective config.
package wire

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"

	cliadapter "github.com/example/routesim/internal/adapters/cli"
	"github.com/example/routesim/internal/adapters/memory"
	"github.com/example/routesim/internal/adapters/sqlite"
	"github.com/example/routesim/internal/app"
	"github.com/example/routesim/internal/config"
	"github.com/example/routesim/internal/db"
	"github.com/example/routesim/internal/ports/primary"
	"github.com/example/routesim/internal/ports/secondary"
)

// Container holds the wired services for one invocation.
type Container struct {
	cfg        *config.Config
	logger     *slog.Logger
	database   *sql.DB // nil for the memory store
	simulation primary.SimulationService
}

// New wires the store backend selected by cfg and the services on top of it.
// Logs go to logOut.
func New(cfg *config.Config, logOut io.Writer) (*Container, error) {
	logger := NewLogger(cfg.LogLevel, logOut)

	c := &Container{cfg: cfg, logger: logger}

	var stores secondary.RouteStoreProvider
	switch cfg.Store {
	case config.StoreSQLite:
		database, err := db.Open(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.database = database
		stores = sqlite.NewRouteStoreProvider(database)
	case config.StoreMemory, "":
		stores = memory.NewRouteStoreProvider()
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
	logger.Debug("route store selected", "store", cfg.Store)

	c.simulation = app.NewSimulationService(stores, logger)
	return c, nil
}

// SimulationService returns the wired SimulationService.
func (c *Container) SimulationService() primary.SimulationService {
	return c.simulation
}

// SimulationAdapter returns a new SimulationAdapter writing to out.
// Each call creates a new adapter (adapters are stateless translators).
func (c *Container) SimulationAdapter(out io.Writer) *cliadapter.SimulationAdapter {
	return cliadapter.NewSimulationAdapter(c.simulation, out, !c.cfg.NoColor)
}

// Logger returns the process logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}

// Close releases the database, if one was opened.
func (c *Container) Close() error {
	if c.database != nil {
		return c.database.Close()
	}
	return nil
}

// NewLogger builds a text slog logger at the named level.
// Unknown levels fall back to warn.
func NewLogger(level string, out io.Writer) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: lvl}))
}
