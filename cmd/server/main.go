package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/socialweb/social-api/internal/api"
	"github.com/socialweb/social-api/internal/api/handler"
	"github.com/socialweb/social-api/internal/api/middleware"
	"github.com/socialweb/social-api/internal/core/ports"
	"github.com/socialweb/social-api/internal/core/service"
	"github.com/socialweb/social-api/internal/infrastructure/db/memory"
	mongodb "github.com/socialweb/social-api/internal/infrastructure/db/mongo"
	"github.com/socialweb/social-api/internal/infrastructure/db/mysql"
	redisdb "github.com/socialweb/social-api/internal/infrastructure/db/redis"
	"github.com/socialweb/social-api/internal/infrastructure/queue"
	"github.com/socialweb/social-api/internal/infrastructure/token"
	"github.com/socialweb/social-api/internal/pkg/config"
	"github.com/socialweb/social-api/pkg/logger"
)

const limiterCleanupInterval = time.Minute

// @title						Social API
// @version					1.0
// @description				Users, friendships, posts and comments.
// @BasePath					/
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
// @description				Type "Bearer" followed by a space and the JWT.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLog.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
		File: logger.FileOptions{
			Path:       cfg.Log.File,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAgeDays,
		},
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

type repositories struct {
	users       ports.UserRepository
	friendships ports.FriendshipRepository
	posts       ports.PostRepository
	comments    ports.CommentRepository
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	checks := map[string]handler.Check{}
	var cleanups []func()
	defer func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}()

	// --- Storage ---
	var repos repositories
	switch cfg.Database.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		repos = repositories{store.Users(), store.Friendships(), store.Posts(), store.Comments()}
		log.Warn().Msg("using in-memory storage; data is lost on restart")
	default:
		db, err := mysql.Connect(ctx, mysql.Config{
			DSN:             cfg.Database.DSN,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		}, log)
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		cleanups = append(cleanups, func() { _ = sqlDB.Close() })
		if cfg.Database.AutoMigrate {
			if err := mysql.AutoMigrate(db); err != nil {
				return err
			}
		}
		repos = repositories{
			mysql.NewUserRepository(db),
			mysql.NewFriendshipRepository(db),
			mysql.NewPostRepository(db),
			mysql.NewCommentRepository(db),
		}
		checks["mysql"] = handler.SQLCheck(sqlDB)
		log.Info().Msg("connected to mysql")
	}

	// --- Feed cache ---
	var feedCache ports.FeedCache
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		cleanups = append(cleanups, func() { _ = rdb.Close() })
		feedCache = redisdb.NewFeedCache(rdb, cfg.Redis.FeedTTL)
		checks["redis"] = handler.RedisCheck(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("feed cache enabled")
	}

	// --- Friendship audit trail ---
	var (
		eventStore ports.FriendshipEventStore
		publisher  ports.FriendshipEventPublisher
	)
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()
	if cfg.Mongo.URI != "" {
		client, mdb, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		cleanups = append(cleanups, func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		})
		repo := mongodb.NewFriendshipEventRepository(mdb)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
		dispatcher := queue.NewDispatcher(cfg.Mongo.AuditWorkers, repo, log)
		dispatcher.Start(workerCtx)
		cleanups = append(cleanups, func() {
			cancelWorkers()
			dispatcher.Wait()
		})
		eventStore, publisher = repo, dispatcher
		checks["mongo"] = handler.MongoCheck(mdb)
		log.Info().Str("database", cfg.Mongo.Database).Msg("friendship audit trail enabled")
	}

	// --- Services ---
	tokens := token.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	limiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimit, cfg.HTTP.AuthRateBurst, log)
	limiter.StartCleanup(ctx, limiterCleanupInterval)

	e := api.NewRouter(api.Dependencies{
		Users:        service.NewUserService(repos.users, log),
		Auth:         service.NewAuthService(repos.users, tokens, log),
		Tokens:       tokens,
		Friendships:  service.NewFriendshipService(repos.friendships, repos.users, eventStore, publisher, log),
		Posts:        service.NewPostService(repos.posts, repos.users, feedCache, log),
		Comments:     service.NewCommentService(repos.comments, repos.posts, repos.users, log),
		HealthChecks: checks,
		CORSOrigins:  cfg.HTTP.CORSOrigins,
		AuthLimiter:  limiter,
		Logger:       log,
	})

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	return nil
}
