package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/ukydev/moto-maintenance/internal/auth"
	"github.com/ukydev/moto-maintenance/internal/config"
	"github.com/ukydev/moto-maintenance/internal/db"
	"github.com/ukydev/moto-maintenance/internal/duecheck"
	"github.com/ukydev/moto-maintenance/internal/handlers"
	"github.com/ukydev/moto-maintenance/internal/middleware"
	"github.com/ukydev/moto-maintenance/internal/models"
	"github.com/ukydev/moto-maintenance/internal/notify"
	"github.com/ukydev/moto-maintenance/internal/shell"
)

type rootOptions struct {
	cfg      config.Config
	logLevel string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "motomaint",
		Short:         "Motorcycle maintenance records and due checks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.cfg = config.Load()
			if opts.logLevel != "" {
				opts.cfg.LogLevel = opts.logLevel
			}
			opts.cfg.ConfigureLogger()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	cmd.AddCommand(&cobra.Command{
		Use:   "shell",
		Short: "Start an interactive maintenance session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, opts)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the maintenance HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	})

	return cmd
}

func newEngine(cfg config.Config) (*db.RecordStore, *duecheck.Engine) {
	agg := db.IndependentMax
	if cfg.Aggregation == config.AggregationMostRecent {
		agg = db.MostRecentRecord
	}
	return db.NewRecordStoreWithAggregation(agg), duecheck.NewEngine()
}

// newPublisher connects to MQTT when a broker is configured. A failed
// connection degrades to no publishing.
func newPublisher(cfg config.Config) (notify.Publisher, func()) {
	if cfg.MQTTBroker == "" {
		return notify.NopPublisher{}, func() {}
	}
	pub, disconnect, err := notify.ConnectMQTT(cfg.MQTTBroker, cfg.MQTTClientID, cfg.MQTTTopic)
	if err != nil {
		log.WithError(err).Warn("MQTT unavailable, due reports will not be published")
		return notify.NopPublisher{}, func() {}
	}
	return pub, disconnect
}

func runShell(cmd *cobra.Command, opts *rootOptions) error {
	store, engine := newEngine(opts.cfg)
	publisher, closePublisher := newPublisher(opts.cfg)
	defer closePublisher()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return shell.New(cmd.InOrStdin(), cmd.OutOrStdout(), store, engine, publisher).Run(ctx)
}

func newUserDirectory(cfg config.Config, authService *auth.Service) (*auth.Directory, error) {
	dir := auth.NewDirectory()
	if cfg.Operator.Password == "" {
		return nil, fmt.Errorf("OPERATOR_PASSWORD must be set to serve the API")
	}
	if _, err := dir.AddUser(authService, cfg.Operator.Username, cfg.Operator.Password, models.RoleOperator); err != nil {
		return nil, fmt.Errorf("operator account: %w", err)
	}
	if cfg.Viewer.Username != "" {
		if _, err := dir.AddUser(authService, cfg.Viewer.Username, cfg.Viewer.Password, models.RoleViewer); err != nil {
			return nil, fmt.Errorf("viewer account: %w", err)
		}
	}
	return dir, nil
}

func runServe(cmd *cobra.Command, opts *rootOptions) error {
	cfg := opts.cfg

	authService, err := auth.NewService(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		return err
	}
	dir, err := newUserDirectory(cfg, authService)
	if err != nil {
		return err
	}

	store, engine := newEngine(cfg)
	publisher, closePublisher := newPublisher(cfg)
	defer closePublisher()

	router := handlers.NewRouter(handlers.RouterConfig{
		Auth:            handlers.NewAuthHandler(authService, dir),
		Maintenance:     handlers.NewMaintenanceHandler(store, engine, publisher),
		AuthMiddleware:  middleware.NewAuthMiddleware(authService),
		RateLimiter:     middleware.NewRateLimitMiddleware(),
		RateLimitMax:    cfg.RateLimitMax,
		RateLimitWindow: cfg.RateLimitWindow,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(log.Fields{"port": cfg.Port, "aggregation": cfg.Aggregation}).Info("HTTP server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Info("Shutting down HTTP server")
	return srv.Shutdown(shutdownCtx)
}
