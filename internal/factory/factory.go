package factory

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/pongarena-go/internal/dependencies/clock"
	"github.com/mcoot/pongarena-go/internal/dependencies/random"
	"github.com/mcoot/pongarena-go/internal/push"
	"github.com/mcoot/pongarena-go/internal/services/match"
	"github.com/mcoot/pongarena-go/internal/services/matchmaking"
	"github.com/mcoot/pongarena-go/internal/services/rating"
	"github.com/mcoot/pongarena-go/internal/settlement"
	"github.com/mcoot/pongarena-go/internal/storage"
	"github.com/mcoot/pongarena-go/internal/storage/memory"
	redisstorage "github.com/mcoot/pongarena-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	RatingService *rating.Service
	Queue         *matchmaking.Queue
	Coordinator   *match.Coordinator
	HubManager    *push.HubManager
	Broadcaster   *push.Broadcaster

	sweepInterval time.Duration
	logger        *slog.Logger

	sweepStop chan struct{}
	sweepDone chan struct{}
	sweepOnce sync.Once
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// QueueConfig tunes matchmaking (optional, defaults to matchmaking.DefaultConfig())
	QueueConfig *matchmaking.Config
	// MatchConfig tunes the per-match tick loop (optional, defaults to match.DefaultConfig())
	MatchConfig *match.Config
	// Settlement submits finished match outcomes (optional, defaults to a no-op)
	Settlement settlement.Service
	// QueueSweepInterval is how often expired queue entries are reaped
	// If zero, defaults to 5 seconds
	QueueSweepInterval time.Duration
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	return NewWithDependencies(cfg, store, clk, rnd, logger), nil
}

// NewWithDependencies creates an App with the given dependencies (useful for testing)
func NewWithDependencies(cfg Config, store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	queueCfg := matchmaking.DefaultConfig()
	if cfg.QueueConfig != nil {
		queueCfg = *cfg.QueueConfig
	}
	matchCfg := match.DefaultConfig()
	if cfg.MatchConfig != nil {
		matchCfg = *cfg.MatchConfig
	}
	sweepInterval := cfg.QueueSweepInterval
	if sweepInterval == 0 {
		sweepInterval = 5 * time.Second
	}

	ratingService := rating.New(rating.DefaultConfig())
	queue := matchmaking.New(queueCfg, clk, logger)
	coordinator := match.NewCoordinator(matchCfg, store, ratingService, cfg.Settlement, clk, rnd, logger)
	hubManager := push.NewHubManager(logger)
	broadcaster := push.NewBroadcaster(hubManager, ratingService, logger)

	return &App{
		Storage:       store,
		Clock:         clk,
		Random:        rnd,
		RatingService: ratingService,
		Queue:         queue,
		Coordinator:   coordinator,
		HubManager:    hubManager,
		Broadcaster:   broadcaster,
		sweepInterval: sweepInterval,
		logger:        logger,
		sweepStop:     make(chan struct{}),
		sweepDone:     make(chan struct{}),
	}
}

// StartQueueSweeper starts the background goroutine that re-pairs
// long-waiting ranked entries, expires stale ones, and notifies their
// players. Call StopQueueSweeper to stop it.
func (a *App) StartQueueSweeper() {
	go func() {
		defer close(a.sweepDone)
		ticker := time.NewTicker(a.sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-a.sweepStop:
				return
			case <-ticker.C:
				a.sweepQueue()
			}
		}
	}()
}

// StopQueueSweeper stops the sweeper and waits for it to exit
func (a *App) StopQueueSweeper() {
	a.sweepOnce.Do(func() {
		close(a.sweepStop)
	})
	<-a.sweepDone
}

func (a *App) sweepQueue() {
	now := a.Clock.Now()

	// Waiting radii widen over time, so couples too far apart at enqueue
	// can become compatible while both sit in the pool
	for _, pair := range a.Queue.Rematch(now) {
		m, err := a.Coordinator.StartMatch(pair.A, pair.B, a.Broadcaster.MatchSinks(pair.A.PlayerID, pair.B.PlayerID))
		if err != nil {
			a.logger.Error("failed to start rematched pair",
				slog.String("player", string(pair.A.PlayerID)),
				slog.String("opponent", string(pair.B.PlayerID)),
				slog.String("error", err.Error()),
			)
			continue
		}
		a.Broadcaster.MatchFound(m)
	}

	expired := a.Queue.Expire(now)
	for _, entry := range expired {
		a.Broadcaster.QueueTimeout(entry)
	}
	if len(expired) > 0 {
		a.logger.Info("expired queue entries", slog.Int("count", len(expired)))
	}
}
