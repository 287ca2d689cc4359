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

	"stayable/internal/app/bus"
	"stayable/internal/app/dto"
	availabilityapp "stayable/internal/app/handlers/availability"
	bookingapp "stayable/internal/app/handlers/booking"
	pricingapp "stayable/internal/app/handlers/pricing"
	"stayable/internal/app/policies"
	domainavailability "stayable/internal/domain/availability"
	domainproperty "stayable/internal/domain/property"
	"stayable/internal/domain/shared/daterange"
	"stayable/internal/domain/shared/money"
	"stayable/internal/infra/broker/kafka"
	"stayable/internal/infra/config"
	mongodb "stayable/internal/infra/db/mongo"
	ginserver "stayable/internal/infra/http/gin"
	"stayable/internal/infra/obs"
	"stayable/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration load failed", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	app, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("application build failed", "error", err)
		os.Exit(1)
	}
	defer app.close(logger)

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Storage: cfg.Storage,
		Ready:   app.ready,
	}, app.handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.Storage)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	ready    func(ctx context.Context) error
	closers  []func() error
}

// close releases attached resources in reverse acquisition order.
func (a application) close(logger *slog.Logger) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Warn("shutdown cleanup failed", "error", err)
		}
	}
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (application, error) {
	var app application

	var (
		properties domainproperty.Repository
		rules      domainavailability.Repository
	)
	bookedRepo := memory.NewBookedDatesRepository()
	switch cfg.Storage {
	case "mongo":
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return application{}, err
		}
		app.closers = append(app.closers, func() error {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return client.Disconnect(disconnectCtx)
		})
		properties = mongodb.NewPropertyRepository(client.DB)
		rules = mongodb.NewRuleSetRepository(client.DB)
		app.ready = func(ctx context.Context) error {
			pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
	default:
		propertyRepo := memory.NewPropertyRepository()
		seedDemoProperty(ctx, propertyRepo, cfg.Currency, logger)
		seedDemoBookedDates(ctx, bookedRepo, logger)
		properties = propertyRepo
		rules = memory.NewRuleSetRepository()
	}

	var notifier policies.Notifier = policies.NopNotifier{}
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			app.close(logger)
			return application{}, err
		}
		app.closers = append(app.closers, producer.Close)
		notifier = kafka.EventNotifier{Producer: producer, TopicPrefix: cfg.KafkaTopicPrefix}
	}

	defaults := domainavailability.StayBounds{MinStay: cfg.DefaultMinStay, MaxStay: cfg.DefaultMaxStay}
	now := func() time.Time { return time.Now().UTC() }

	b := bus.NewInMemory()
	registerHandlers(b, properties, rules, bookedRepo, notifier, defaults, now, logger)

	app.handlers = ginserver.Handlers{
		Calendar:  ginserver.CalendarHandler{Bus: b},
		Quote:     ginserver.QuoteHandler{Bus: b},
		Booking:   ginserver.BookingHandler{Bus: b},
		Booked:    ginserver.BookedDatesHandler{Bus: b},
		HostRules: ginserver.HostRulesHandler{Bus: b},
	}
	return app, nil
}

func registerHandlers(
	b *bus.InMemory,
	properties domainproperty.Repository,
	rules domainavailability.Repository,
	booked *memory.BookedDatesRepository,
	notifier policies.Notifier,
	defaults domainavailability.StayBounds,
	now func() time.Time,
	logger *slog.Logger,
) {
	monthHandler := &availabilityapp.GetMonthHandler{Rules: rules, BookedDates: booked, Defaults: defaults, Now: now}
	clickHandler := &availabilityapp.ClickSelectionHandler{Rules: rules, BookedDates: booked, Defaults: defaults, Now: now}
	quoteHandler := &pricingapp.QuoteStayHandler{Properties: properties, Rules: rules}
	validateHandler := &bookingapp.ValidateStayHandler{Properties: properties, Rules: rules, Defaults: defaults, Now: now}
	rulesHandler := &availabilityapp.RulesHandler{Rules: rules, Notifier: notifier, Logger: logger, Now: now}
	markBookedHandler := &availabilityapp.MarkBookedHandler{Recorder: booked}

	bus.Register[availabilityapp.GetMonthQuery, dto.MonthView](b, availabilityapp.GetMonthQuery{}.Key(), monthHandler)
	bus.Register[availabilityapp.ClickSelectionQuery, dto.Selection](b, availabilityapp.ClickSelectionQuery{}.Key(), clickHandler)
	bus.Register[availabilityapp.MarkBookedCommand, dto.BookedDates](b, availabilityapp.MarkBookedCommand{}.Key(), markBookedHandler)
	bus.Register[pricingapp.QuoteStayQuery, dto.Quote](b, pricingapp.QuoteStayQuery{}.Key(), quoteHandler)
	bus.Register[bookingapp.ValidateStayQuery, dto.StayValidation](b, bookingapp.ValidateStayQuery{}.Key(), validateHandler)
	rulesHandler.Register(b)
}

func seedDemoProperty(ctx context.Context, repo *memory.PropertyRepository, currency string, logger *slog.Logger) {
	prop, err := domainproperty.New(domainproperty.CreateParams{
		ID:        "demo",
		Host:      "demo-host",
		Title:     "Seaside cottage",
		MaxGuests: 4,
		BaseRate:  money.Must(10000, currency),
		Now:       time.Now(),
	})
	if err != nil {
		logger.Warn("demo property seed failed", "error", err)
		return
	}
	if err := repo.Save(ctx, prop); err != nil {
		logger.Warn("demo property seed failed", "error", err)
	}
}

func seedDemoBookedDates(ctx context.Context, repo *memory.BookedDatesRepository, logger *slog.Logger) {
	first := daterange.Day(time.Now()).AddDate(0, 0, 14)
	taken := domainavailability.NewDateSet(first, daterange.NextDay(first))
	if err := repo.MarkBooked(ctx, "demo", taken); err != nil {
		logger.Warn("demo booked dates seed failed", "error", err)
	}
}
