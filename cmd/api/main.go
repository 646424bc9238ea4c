package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medivault/internal/api"
	"medivault/internal/config"
	"medivault/internal/database"
	"medivault/internal/domain"
	"medivault/internal/events"
	"medivault/internal/logging"
	"medivault/internal/metrics"
	"medivault/internal/notify"
	"medivault/internal/repository"
	"medivault/internal/service"
	"medivault/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	logger := logging.Component(baseLogger, "api-main")

	metrics.Register()

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	doctorsCache := initDoctorsCache(cfg, &logger)

	notifier, err := initNotifier(cfg, baseLogger)
	if err != nil {
		return fmt.Errorf("init notifier: %w", err)
	}

	eventBus := events.NewEventBus()
	subscribeAuditLog(eventBus, baseLogger)

	appointmentService := service.NewAppointmentService(db, notifier, eventBus, doctorsCache, baseLogger)
	userService := service.NewUserService(db, doctorsCache, baseLogger)

	httpServer := api.NewHTTPServer(cfg.Server, cfg.Auth, appointmentService, userService, &logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Reminder.Enabled {
		reminderLogger := logging.Component(baseLogger, "reminder")
		reminder := worker.NewReminder(db, notifier, cfg.Reminder.Time, &reminderLogger)
		go reminder.Run(ctx)
	}

	startMetricsServer(ctx, cfg, &logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func initDoctorsCache(cfg *config.Config, logger *zerolog.Logger) domain.DoctorsCache {
	ttl := time.Duration(cfg.Redis.DoctorsTTL) * time.Second
	if !cfg.Redis.Enabled {
		return repository.NewMemoryDoctorsCache(ttl)
	}

	client := repository.NewRedisClient(cfg.Redis)
	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := repository.Ping(pingCtx, client); err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, using in-memory doctors cache")
		return repository.NewMemoryDoctorsCache(ttl)
	}
	return repository.NewRedisDoctorsCache(client, ttl)
}

func initNotifier(cfg *config.Config, logger *zerolog.Logger) (domain.Notifier, error) {
	timeout := time.Duration(cfg.Notify.Timeout) * time.Second
	switch cfg.Notify.Transport {
	case "smtp":
		l := logging.Component(logger, "smtp-notifier")
		return notify.NewSMTPNotifier(cfg.Notify.SMTP, timeout, &l), nil
	case "telegram":
		l := logging.Component(logger, "telegram-notifier")
		return notify.NewTelegramNotifier(cfg.Notify.Telegram.BotToken, cfg.Notify.Telegram.Debug, &l)
	case "none":
		l := logging.Component(logger, "noop-notifier")
		return notify.NewNoopNotifier(&l), nil
	default:
		return nil, fmt.Errorf("unknown notify transport: %q", cfg.Notify.Transport)
	}
}

func subscribeAuditLog(bus *events.EventBus, logger *zerolog.Logger) {
	audit := logging.Component(logger, "audit")
	handler := func(event *events.Event) error {
		audit.Info().
			Str("event_type", event.Type).
			RawJSON("payload", event.Payload).
			Msg("appointment event")
		return nil
	}
	bus.Subscribe(events.EventAppointmentScheduled, handler)
	bus.Subscribe(events.EventAppointmentStatusChanged, handler)
	bus.Subscribe(events.EventAppointmentDeleted, handler)
}

func startMetricsServer(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Monitoring.PrometheusPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Monitoring.PrometheusPort).Msg("metrics server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("metrics server error")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
}
