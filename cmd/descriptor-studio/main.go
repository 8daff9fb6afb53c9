package main

// @title           Descriptor Studio API
// @version         1.0
// @description     Author, validate and store source descriptors for third-party search APIs.

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Format: "Bearer {token}"

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/custodia-labs/descriptor-studio/docs"
	"github.com/custodia-labs/descriptor-studio/internal/adapters/driven/auth"
	"github.com/custodia-labs/descriptor-studio/internal/adapters/driven/events"
	"github.com/custodia-labs/descriptor-studio/internal/adapters/driven/postgres"
	redisadapter "github.com/custodia-labs/descriptor-studio/internal/adapters/driven/redis"
	"github.com/custodia-labs/descriptor-studio/internal/adapters/driving/http"
	"github.com/custodia-labs/descriptor-studio/internal/config"
	"github.com/custodia-labs/descriptor-studio/internal/core/editor"
	"github.com/custodia-labs/descriptor-studio/internal/core/ports/driven"
	"github.com/custodia-labs/descriptor-studio/internal/core/services"
)

var version = "dev"

func main() {
	// A missing .env is normal outside local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("descriptor-studio exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("descriptor-studio starting", "version", version)
	if cfg.UsingDevSecret() {
		logger.Warn("JWT_SECRET not set, using the development secret")
	}
	if len(cfg.Accounts) == 0 {
		logger.Warn("no accounts configured, set ADMIN_EMAIL and ADMIN_PASSWORD_HASH to sign in")
	}

	// ===== PostgreSQL =====
	db, err := postgres.Connect(ctx, postgres.Config{
		URL:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.ConnMaxIdleTime,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return err
	}
	logger.Info("postgres connected and migrated")

	var encryptor *postgres.SecretEncryptor
	if cfg.SecretKey != "" {
		encryptor, err = postgres.NewSecretEncryptorFromSecret(cfg.SecretKey)
		if err != nil {
			return err
		}
	} else {
		logger.Warn("SECRET_KEY not set, api keys are stored unencrypted")
	}
	sourceStore := postgres.NewSourceStore(db, encryptor)

	deps := map[string]http.Pinger{"postgres": db}

	// ===== Drafts and locks (Redis if available, otherwise PostgreSQL) =====
	var (
		draftStore driven.DraftStore
		lock       driven.DistributedLock
		purger     driven.DraftPurger
	)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return err
		}
		client := redis.NewClient(opts)
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			return err
		}
		redisLock := redisadapter.NewLock(client)
		draftStore = redisadapter.NewDraftStore(client)
		lock = redisLock
		deps["redis"] = redisLock
		logger.Info("redis connected, using it for drafts and locks", "owner_id", redisLock.OwnerID())
	} else {
		pgDrafts := postgres.NewDraftStore(db)
		draftStore = pgDrafts
		purger = pgDrafts
		lock = postgres.NewAdvisoryLock(db)
		logger.Info("redis not configured, using postgres for drafts and locks")
	}

	// ===== Events =====
	var publisher driven.EventPublisher = events.NoopPublisher{}
	if cfg.NATSURL != "" {
		natsPublisher, err := events.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			return err
		}
		publisher = natsPublisher
		logger.Info("nats connected, publishing source events")
	}
	defer publisher.Close()

	// ===== Services =====
	authAdapter := auth.NewAdapter(cfg.JWTSecret)
	authService := services.NewAuthService(cfg.Accounts, authAdapter, cfg.TokenTTL)
	sourceService := services.NewSourceService(sourceStore, publisher, logger)
	editorService := services.NewEditorService(
		draftStore,
		lock,
		sourceService,
		editor.NewController(),
		services.EditorConfig{DraftTTL: cfg.DraftTTL, SubmitLockTTL: cfg.SubmitLockTTL},
		logger,
	)

	if purger != nil && cfg.JanitorEnabled {
		janitor := services.NewDraftJanitor(services.DraftJanitorConfig{
			Purger:       purger,
			Lock:         lock,
			Logger:       logger,
			Interval:     cfg.JanitorInterval,
			LockRequired: true,
		})
		janitor.Start(ctx)
		defer janitor.Stop()
	}

	// ===== HTTP =====
	httpCfg := http.DefaultConfig()
	httpCfg.Port = cfg.Port
	httpCfg.Version = version
	httpCfg.CORSOrigins = cfg.CORSOrigins

	server := http.NewServer(httpCfg, logger, authService, sourceService, editorService, deps)
	return server.Run(ctx)
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: l}))
}
