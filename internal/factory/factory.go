package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/lexroom/lexroom/internal/dependencies/clock"
	"github.com/lexroom/lexroom/internal/dependencies/random"
	"github.com/lexroom/lexroom/internal/events"
	"github.com/lexroom/lexroom/internal/services/auth"
	"github.com/lexroom/lexroom/internal/services/bot"
	"github.com/lexroom/lexroom/internal/services/room"
	"github.com/lexroom/lexroom/internal/services/rules"
	"github.com/lexroom/lexroom/internal/services/tiles"
	"github.com/lexroom/lexroom/internal/services/words"
	"github.com/lexroom/lexroom/internal/storage"
	"github.com/lexroom/lexroom/internal/storage/memory"
	redisstorage "github.com/lexroom/lexroom/internal/storage/redis"
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
	WordsService   *words.Service
	TilesService   *tiles.Service
	RulesService   *rules.Service
	AuthService    *auth.Service
	RoomController *room.Controller
	BotService     *bot.Service
	HubManager     *events.HubManager
	Broadcaster    *events.Broadcaster
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// RoomConfig holds the eviction policy (optional)
	// If zero value, defaults to room.DefaultConfig()
	RoomConfig room.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

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

	clk := clock.New()
	rnd := random.New()

	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, authCfg, cfg.RoomConfig, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	authCfg auth.Config,
	roomCfg room.Config,
	logger *slog.Logger,
) *App {
	wordsService := words.New(store, logger)
	tilesService := tiles.New(rnd)
	rulesService := rules.New(wordsService)
	hubManager := events.NewHubManager(logger)
	broadcaster := events.NewBroadcaster(hubManager, clk, logger)
	roomController := room.NewController(store, tilesService, rulesService, broadcaster, clk, rnd, logger, roomCfg)
	botService := bot.NewService(roomController, bot.DefaultStrategies(bot.NewGreedyStrategy(rulesService)), logger)
	authService := auth.New(store, clk, rnd, authCfg)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		WordsService:   wordsService,
		TilesService:   tilesService,
		RulesService:   rulesService,
		AuthService:    authService,
		RoomController: roomController,
		BotService:     botService,
		HubManager:     hubManager,
		Broadcaster:    broadcaster,
	}
}
