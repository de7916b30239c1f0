package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arzan03/AskSolve/internal/config"
	"github.com/arzan03/AskSolve/internal/db"
	"github.com/arzan03/AskSolve/internal/logging"
	"github.com/arzan03/AskSolve/internal/mailer"
	"github.com/arzan03/AskSolve/internal/notify"
	"github.com/arzan03/AskSolve/internal/repository"
	"github.com/arzan03/AskSolve/internal/repository/memstore"
	"github.com/arzan03/AskSolve/internal/repository/mongostore"
	"github.com/arzan03/AskSolve/internal/server"
	"github.com/arzan03/AskSolve/internal/services"
	"github.com/arzan03/AskSolve/internal/session"
	"github.com/arzan03/AskSolve/internal/storage"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	users, questions, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	var (
		broker      notify.Broker       = notify.NewMemoryBroker()
		revocations session.Revocations = session.NewMemoryRevocations()
	)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		defer rdb.Close()
		broker = notify.NewRedisBroker(rdb, notify.DefaultChannel, logger)
		revocations = session.NewRedisRevocations(rdb)
		logger.Info("connected to Redis", zap.String("addr", cfg.RedisAddr))
	}

	secret := cfg.JWTSecret
	if secret == "" {
		// memory store only; sessions do not survive a restart anyway
		secret = uuid.NewString()
		logger.Warn("JWT_SECRET not set, using an ephemeral secret")
	}
	idp := services.NewLocalIdentity(users, services.IdentityOptions{
		Admins:      cfg.AdminEmails,
		Secret:      secret,
		TTL:         cfg.SessionTTL,
		Revocations: revocations,
	}, logger)
	questionSvc := services.NewQuestionService(questions, broker, logger)

	var archive *services.ArchiveService
	if cfg.Minio.Endpoint != "" {
		store, err := storage.NewMinioStore(ctx, cfg.Minio, logger)
		if err != nil {
			return err
		}
		archive = services.NewArchiveService(questionSvc, store)
	}

	app := server.New(server.Deps{
		Logger:         logger,
		Identity:       idp,
		Roles:          services.NewRoleResolver(users),
		Questions:      questionSvc,
		Contact:        services.NewContactService(mailer.NewSMTPRelay(cfg.SMTP, logger)),
		Archive:        archive,
		Broker:         broker,
		CORSOrigin:     cfg.CORSOrigin,
		RequestTimeout: cfg.RequestTimeout,
		AccessLog:      true,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("port", cfg.Port))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		return app.ShutdownWithTimeout(10 * time.Second)
	}
}

func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (repository.Users, repository.Questions, func(), error) {
	if cfg.Store == config.StoreMemory {
		logger.Warn("using in-memory store, data is lost on restart")
		s := memstore.New()
		return s.Users(), s.Questions(), func() {}, nil
	}

	client, err := db.ConnectMongoDB(cfg.MongoURI, 2*time.Minute, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	database := client.Database(cfg.MongoDB)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, nil, err
	}
	closeFn := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Warn("disconnect mongodb", zap.Error(err))
		}
	}
	return mongostore.NewUserStore(database), mongostore.NewQuestionStore(database), closeFn, nil
}
