package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"villamare/internal/app/commands"
	availabilityapp "villamare/internal/app/handlers/availability"
	bookingapp "villamare/internal/app/handlers/booking"
	pricingapp "villamare/internal/app/handlers/pricing"
	"villamare/internal/app/policies"
	"villamare/internal/app/queries"
	domainavailability "villamare/internal/domain/availability"
	domainbooking "villamare/internal/domain/booking"
	domainpricing "villamare/internal/domain/pricing"
	"villamare/internal/infra/broker/kafka"
	"villamare/internal/infra/channel"
	"villamare/internal/infra/config"
	mongodb "villamare/internal/infra/db/mongo"
	ginserver "villamare/internal/infra/http/gin"
	"villamare/internal/infra/notify"
	"villamare/internal/infra/obs"
	"villamare/internal/infra/security"
	"villamare/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	bookings, readiness, err := buildStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("store init failed", "error", err)
		os.Exit(1)
	}

	notifier, closeNotifier := buildNotifier(cfg, logger)
	defer closeNotifier()

	provider := buildChannelProvider(cfg, logger)
	engine := domainpricing.NewEngine(cfg.Pricing)

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, bookingapp.RequestBookingCommand{}.Key(), &bookingapp.RequestBookingHandler{
		Bookings: bookings,
		Notifier: notifier,
		Logger:   logger,
	})
	commands.RegisterHandler(commandBus, bookingapp.UpdateStatusCommand{}.Key(), &bookingapp.UpdateStatusHandler{
		Bookings: bookings,
		Notifier: notifier,
		Logger:   logger,
	})

	calendarHandler := &availabilityapp.GetCalendarHandler{
		Bookings: bookings,
		Channel:  provider,
	}
	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, availabilityapp.GetCalendarQuery{}.Key(), calendarHandler)
	queries.RegisterHandler(queryBus, availabilityapp.CheckAvailabilityQuery{}.Key(), &availabilityapp.CheckAvailabilityHandler{
		Calendar: calendarHandler,
	})
	queries.RegisterHandler(queryBus, pricingapp.QuoteQuery{}.Key(), &pricingapp.QuoteHandler{Engine: engine})
	queries.RegisterHandler(queryBus, bookingapp.ListRequestsQuery{}.Key(), &bookingapp.ListRequestsHandler{Bookings: bookings})
	queries.RegisterHandler(queryBus, bookingapp.GetRequestQuery{}.Key(), &bookingapp.GetRequestHandler{Bookings: bookings})

	handlers := ginserver.Handlers{
		Booking:      ginserver.BookingHandler{Commands: commandBus},
		Availability: ginserver.AvailabilityHandler{Queries: queryBus},
		Pricing:      ginserver.PricingHandler{Queries: queryBus},
		Admin: ginserver.AdminHandler{
			Commands:     commandBus,
			Queries:      queryBus,
			Sessions:     security.NewSessionStore(cfg.SessionTTL),
			PasswordHash: cfg.AdminPasswordHash,
			Logger:       logger,
		},
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{Ready: readiness}, handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "store", cfg.StoreMode, "channel", cfg.ChannelMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

func buildStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (domainbooking.Repository, func() error, error) {
	if cfg.StoreMode == "mongo" {
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, nil, err
		}
		if err := client.Ping(ctx); err != nil {
			return nil, nil, err
		}
		logger.Info("mongo store ready", "db", cfg.MongoDB)
		ready := func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
		return mongodb.NewBookingRepository(client.DB), ready, nil
	}
	logger.Info("in-memory store ready")
	return memory.NewBookingRepository(), func() error { return nil }, nil
}

func buildNotifier(cfg config.Config, logger *slog.Logger) (policies.Notifier, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		return policies.NoopNotifier{}, func() {}
	}
	producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
	if err != nil {
		logger.Warn("kafka unavailable, notifications disabled", "error", err)
		return policies.NoopNotifier{}, func() {}
	}
	logger.Info("kafka notifier ready", "topic", cfg.KafkaTopic)
	notifier := &notify.BrokerNotifier{Producer: producer, Topic: cfg.KafkaTopic}
	return notifier, func() {
		if err := producer.Close(); err != nil {
			logger.Warn("kafka close failed", "error", err)
		}
	}
}

func buildChannelProvider(cfg config.Config, logger *slog.Logger) domainavailability.Provider {
	if cfg.ChannelMode == "http" {
		logger.Info("channel provider ready", "source", cfg.ChannelSource, "endpoint", cfg.ChannelURL)
		return channel.NewHTTPProvider(cfg.ChannelURL, cfg.ChannelSource, cfg.ChannelTimeout)
	}
	return channel.NoopProvider{}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
