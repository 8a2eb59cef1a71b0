// Package factory wires the application together: storage, services, hub
// and gateway, with production or injected dependencies.
package factory

import (
	"io"
	"log/slog"

	"github.com/minerace/minerace-go/internal/dependencies/clock"
	"github.com/minerace/minerace-go/internal/dependencies/random"
	"github.com/minerace/minerace-go/internal/services/registry"
	"github.com/minerace/minerace-go/internal/services/session"
	"github.com/minerace/minerace-go/internal/storage"
	"github.com/minerace/minerace-go/internal/storage/memory"
	redisstorage "github.com/minerace/minerace-go/internal/storage/redis"
	"github.com/minerace/minerace-go/internal/ws"
)

// App contains all wired application components
type App struct {
	Storage     storage.Storage
	Leaderboard storage.Leaderboard

	Clock  clock.Clock
	Random random.Random

	Registry *registry.Controller
	Session  *session.Controller
	Hub      *ws.Hub
	Gateway  *ws.Router
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger; nil means discard
	Logger *slog.Logger
	// Session controls countdown pacing; zero value uses defaults
	Session session.Config
	// Redis, when set, backs the leaderboard with Redis instead of memory
	Redis *redisstorage.Config
}

// New creates an application with all dependencies wired. Room and board
// state is always in memory; only the leaderboard can live on Redis.
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var leaderboard storage.Leaderboard
	if cfg.Redis != nil {
		redisLeaderboard, err := redisstorage.New(*cfg.Redis)
		if err != nil {
			return nil, err
		}
		leaderboard = redisLeaderboard
	} else {
		leaderboard = memory.NewLeaderboard()
	}

	sessionCfg := cfg.Session
	if sessionCfg.CountdownSeconds == 0 && sessionCfg.TickInterval == 0 {
		sessionCfg = session.DefaultConfig()
	}

	return newWithDependencies(memory.New(), leaderboard, clock.New(), random.New(), sessionCfg, logger), nil
}

// newWithDependencies wires an App from the given dependencies
func newWithDependencies(
	store storage.Storage,
	leaderboard storage.Leaderboard,
	clk clock.Clock,
	rnd random.Random,
	sessionCfg session.Config,
	logger *slog.Logger,
) *App {
	hub := ws.NewHub(logger)
	registryController := registry.NewController(store, clk, rnd, logger)
	sessionController := session.NewController(store, registryController, leaderboard, hub, hub, clk, logger, sessionCfg)
	gateway := ws.NewRouter(hub, registryController, sessionController, leaderboard, logger)

	return &App{
		Storage:     store,
		Leaderboard: leaderboard,
		Clock:       clk,
		Random:      rnd,
		Registry:    registryController,
		Session:     sessionController,
		Hub:         hub,
		Gateway:     gateway,
	}
}
