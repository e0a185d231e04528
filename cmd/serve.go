package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	httpctx "github.com/dtroode/profile-server/internal/api/http/context"
	"github.com/dtroode/profile-server/internal/api/http/middleware"
	"github.com/dtroode/profile-server/internal/api/http/router"
	httpserver "github.com/dtroode/profile-server/internal/api/http/server"
	"github.com/dtroode/profile-server/internal/config"
	"github.com/dtroode/profile-server/internal/hasher"
	"github.com/dtroode/profile-server/internal/logger"
	"github.com/dtroode/profile-server/internal/mail"
	"github.com/dtroode/profile-server/internal/model"
	"github.com/dtroode/profile-server/internal/repository/postgres"
	"github.com/dtroode/profile-server/internal/server"
	"github.com/dtroode/profile-server/internal/service"
	"github.com/dtroode/profile-server/internal/session"
	storage "github.com/dtroode/profile-server/internal/storage/minio"
	"github.com/dtroode/profile-server/internal/token"
	"github.com/dtroode/profile-server/internal/upload"
	"github.com/dtroode/profile-server/internal/verification"
	"github.com/dtroode/profile-server/web"
)

const (
	shutdownTimeout = 10 * time.Second
	// room for multipart framing around the largest allowed file
	bodyOverhead = 1 << 20
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewConfig()
			if err != nil {
				log.Fatalf("failed to parse config: %v", err)
			}
			return runServe(cmd.Context(), cfg)
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)
	warnInsecureDefaults(cfg, logger)

	db, err := postgres.NewConection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	sessionStore, closeStore, err := newSessionStore(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize session store", "error", err)
	}
	defer closeStore()

	passwordHasher, err := hasher.NewBcrypt(cfg.Bcrypt.Cost)
	if err != nil {
		logger.Fatal("failed to initialize password hasher", "error", err)
	}

	mailer, err := mail.New(mail.Options{
		Service:  cfg.Mail.Service,
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		User:     cfg.Mail.User,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
	}, logger)
	if err != nil {
		logger.Fatal("failed to initialize mailer", "error", err)
	}

	storageClient, err := storage.New(ctx, storage.Options{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	views, err := web.NewViews()
	if err != nil {
		logger.Fatal("failed to parse views", "error", err)
	}

	userRepo := postgres.NewUserRepository(db)
	authService := service.NewAuth(userRepo, passwordHasher, verification.NewIssuer(mailer), logger)
	profileService := service.NewProfile(userRepo,
		upload.NewReceiver(storageClient, cfg.Uploads.MaxBytes),
		logger,
		service.WithPruneReplaced(cfg.Uploads.PruneReplaced))
	sessions := session.NewManager(sessionStore, token.NewJWT(cfg.Session.Secret), cfg.Session.TTL, logger)

	r := router.New(router.Config{
		Cookie: middleware.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
		},
		RateLimitMax:    cfg.RateLimit.Max,
		RateLimitWindow: cfg.RateLimit.Window,
		BodyLimit:       int(cfg.Uploads.MaxBytes) + bodyOverhead,
	}, authService, profileService, sessions, views, httpctx.NewManager(), logger)

	srv := httpserver.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))
	sl := server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)

	logAppVersion(log.Writer())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting server on", "address", srv.Address())
		if err := srv.Start(sl); err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return sessions.RunJanitor(gctx, cfg.Session.SweepInterval)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("received interruption signal, shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", srv.Address())
			return fmt.Errorf("failed to stop server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("shutdown complete")
	return nil
}

// warnInsecureDefaults flags settings that must be overridden outside development.
func warnInsecureDefaults(cfg *config.Config, logger *logger.Logger) {
	if cfg.UsesDefaultSecret() {
		logger.Warn("SESSION_SECRET is not set, session cookies are signed with the development default")
	}
}

// newSessionStore opens the configured session backend. The returned func
// releases it.
func newSessionStore(ctx context.Context, cfg *config.Config) (model.SessionStore, func(), error) {
	switch cfg.Session.Store {
	case config.SessionStorePostgres:
		sqlDB, err := postgres.NewSQLConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewSessionRepository(sqlDB), func() { _ = sqlDB.Close() }, nil
	case config.SessionStoreMemory:
		return session.NewMemoryStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}
