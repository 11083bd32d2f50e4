package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	delegationApp "github.com/taskpilot-inc/taskpilot/internal/application/delegation"
	oauthApp "github.com/taskpilot-inc/taskpilot/internal/application/oauth"
	principalApp "github.com/taskpilot-inc/taskpilot/internal/application/principal"
	recipientApp "github.com/taskpilot-inc/taskpilot/internal/application/recipient"
	sharingApp "github.com/taskpilot-inc/taskpilot/internal/application/sharing"
	"github.com/taskpilot-inc/taskpilot/internal/infrastructure/auth"
	"github.com/taskpilot-inc/taskpilot/internal/infrastructure/cache"
	"github.com/taskpilot-inc/taskpilot/internal/infrastructure/config"
	"github.com/taskpilot-inc/taskpilot/internal/infrastructure/database"
	"github.com/taskpilot-inc/taskpilot/internal/infrastructure/migration"
	"github.com/taskpilot-inc/taskpilot/internal/infrastructure/notification"
	"github.com/taskpilot-inc/taskpilot/internal/infrastructure/platform"
	"github.com/taskpilot-inc/taskpilot/internal/infrastructure/ratelimit"
	"github.com/taskpilot-inc/taskpilot/internal/infrastructure/repository"
	"github.com/taskpilot-inc/taskpilot/internal/infrastructure/scheduler"
	httpRouter "github.com/taskpilot-inc/taskpilot/internal/interfaces/http"
	"github.com/taskpilot-inc/taskpilot/internal/shared/db"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

var (
	env         string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the TaskPilot HTTP server with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run schema auto-migration on startup (not recommended for production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log := logger.NewLogger()
	log.Infow("starting server", "environment", env, "auto_migrate", autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Errorw("failed to close database", "error", err)
		}
	}()

	if autoMigrate {
		if env == "production" {
			log.Warn("auto-migration is enabled in production")
		}
		if err := database.Get().AutoMigrate(migration.AutoMigrateModels()...); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		log.Info("auto-migration completed")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Errorw("failed to close redis client", "error", err)
		}
	}()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	gdb := database.Get()
	principalRepo := repository.NewPrincipalRepository(gdb, log.Named("principal-repo"))
	recipientRepo := repository.NewRecipientRepository(gdb, log.Named("recipient-repo"))
	authRepo := repository.NewSharedAuthorizationRepository(gdb, log.Named("authorization-repo"))
	requestRepo := repository.NewAuthRequestRepository(gdb, log.Named("auth-request-repo"))

	txManager := db.NewTransactionManager(gdb)
	registry := platform.NewRegistry(&cfg.OAuth)
	stateStore := cache.NewOAuthStateStore(rdb, time.Duration(cfg.Sharing.OAuthStateTTLMinutes)*time.Minute)
	notifier := notification.NewPrincipalNotifier(principalRepo, buildDispatcher(cfg, log))
	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)

	requestTTL := time.Duration(cfg.Sharing.AuthRequestTTLHours) * time.Hour

	services := httpRouter.Services{
		Principal:  principalApp.NewServiceDDD(principalRepo, recipientRepo, authRepo, requestRepo, txManager, log.Named("principal-service")),
		Recipient:  recipientApp.NewServiceDDD(recipientRepo, authRepo, registry, txManager, log.Named("recipient-service")),
		Sharing:    sharingApp.NewServiceDDD(authRepo, recipientRepo, principalRepo, txManager, notifier, log.Named("sharing-service")),
		Delegation: delegationApp.NewServiceDDD(requestRepo, recipientRepo, principalRepo, registry, txManager, notifier, requestTTL, log.Named("delegation-service")),
		OAuth:      oauthApp.NewServiceDDD(stateStore, registry, recipientRepo, log.Named("oauth-service")),
	}

	schedulerManager, err := scheduler.NewSchedulerManager(log.Named("scheduler"))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	sweepInterval := time.Duration(cfg.Sharing.SweepIntervalMinutes) * time.Minute
	if err := schedulerManager.RegisterAuthRequestSweep(services.Delegation.SweepJob(), sweepInterval); err != nil {
		return fmt.Errorf("failed to register auth request sweep: %w", err)
	}
	schedulerManager.Start()
	defer func() {
		if err := schedulerManager.Stop(); err != nil {
			log.Errorw("failed to stop scheduler", "error", err)
		}
	}()

	limiter := ratelimit.NewRedisLimiter(rdb)
	router := httpRouter.NewRouter(services, jwtService, limiter, cfg.Server.AllowedOrigins, log.Named("http"))
	router.SetupRoutes()

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "address", srv.Addr, "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorw("server stopped unexpectedly", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Info("server exited gracefully")
	return nil
}

// buildDispatcher assembles the notification fan-out from the configured
// channels. Without any configured channel notifications are dropped.
func buildDispatcher(cfg *config.Config, log logger.Interface) notification.Dispatcher {
	var channels []notification.Dispatcher
	if cfg.Telegram.BotToken != "" {
		channels = append(channels, notification.NewTelegramDispatcher(cfg.Telegram))
	}
	if cfg.Email.SMTPHost != "" {
		channels = append(channels, notification.NewEmailDispatcher(cfg.Email))
	}
	if len(channels) == 0 {
		log.Warn("no notification channel configured, notifications are disabled")
		return notification.NewNoopDispatcher()
	}
	return notification.NewCompositeDispatcher(log.Named("notification"), channels...)
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
