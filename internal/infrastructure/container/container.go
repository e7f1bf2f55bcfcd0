package container

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rizzedin/rizzedin-backend/internal/config"
	"github.com/rizzedin/rizzedin-backend/internal/delivery/http"
	"github.com/rizzedin/rizzedin-backend/internal/delivery/http/handler"
	"github.com/rizzedin/rizzedin-backend/internal/delivery/http/middleware"
	"github.com/rizzedin/rizzedin-backend/internal/infrastructure/avatar"
	"github.com/rizzedin/rizzedin-backend/internal/infrastructure/cache"
	"github.com/rizzedin/rizzedin-backend/internal/infrastructure/database"
	"github.com/rizzedin/rizzedin-backend/internal/infrastructure/gemini"
	"github.com/rizzedin/rizzedin-backend/internal/infrastructure/redislock"
	"github.com/rizzedin/rizzedin-backend/internal/infrastructure/scraper"
	"github.com/rizzedin/rizzedin-backend/internal/infrastructure/server"
	"github.com/rizzedin/rizzedin-backend/internal/repository/postgres"
	"github.com/rizzedin/rizzedin-backend/internal/usecase/chat"
	"github.com/rizzedin/rizzedin-backend/internal/usecase/feed"
	"github.com/rizzedin/rizzedin-backend/internal/usecase/match"
	"github.com/rizzedin/rizzedin-backend/internal/usecase/persona"
	"github.com/rizzedin/rizzedin-backend/internal/usecase/profile"
	"github.com/rizzedin/rizzedin-backend/internal/usecase/swipe"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Log    *zap.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
	Gemini *gemini.Client
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Container, error) {
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := database.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	geminiClient, err := gemini.NewClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.CallTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gemini client: %w", err)
	}

	scraperClient := scraper.NewClient(cfg.Scraper.BaseURL, cfg.Scraper.APIKey, cfg.Scraper.Timeout)
	avatarClient := avatar.NewClient(cfg.Avatar.BaseURL, cfg.Avatar.Timeout)
	chatLock := redislock.NewChatLock(redisClient)
	redisCache := cache.New(redisClient)

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	swipeRepo := postgres.NewSwipeRepository(db)
	chatRepo := postgres.NewChatRepository(db)
	matchRepo := postgres.NewMatchRepository(db)

	// Use cases
	profileUseCase := profile.NewProfileUseCase(userRepo, scraperClient, log)
	feedUseCase := feed.NewFeedUseCase(userRepo, swipeRepo, redisCache, log)
	swipeUseCase := swipe.NewSwipeUseCase(swipeRepo, userRepo, log)
	chatUseCase := chat.NewChatUseCase(chatRepo, userRepo, matchRepo, geminiClient, chatLock, log)
	matchUseCase := match.NewMatchUseCase(matchRepo, userRepo, log)
	personaUseCase := persona.NewPersonaUseCase(userRepo, scraperClient, geminiClient, avatarClient, log)

	// Handlers
	profileHandler := handler.NewProfileHandler(profileUseCase)
	feedHandler := handler.NewFeedHandler(feedUseCase)
	swipeHandler := handler.NewSwipeHandler(swipeUseCase)
	chatHandler := handler.NewChatHandler(chatUseCase)
	matchHandler := handler.NewMatchHandler(matchUseCase)
	personaHandler := handler.NewPersonaHandler(personaUseCase)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.AccessSecret, userRepo)

	router := http.NewRouter(
		profileHandler,
		feedHandler,
		swipeHandler,
		chatHandler,
		matchHandler,
		personaHandler,
		authMiddleware,
	)

	srv := server.NewServer(&cfg.Server, router.Setup(), log)

	return &Container{
		Config: cfg,
		Log:    log,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
		Gemini: geminiClient,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Gemini != nil {
		c.Gemini.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.Warn("closing redis failed", zap.Error(err))
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
