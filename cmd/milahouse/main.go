package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"milahouse/internal/app/access"
	"milahouse/internal/app/admin"
	"milahouse/internal/app/commands"
	"milahouse/internal/app/handlers/adminboard"
	availabilityapp "milahouse/internal/app/handlers/availability"
	"milahouse/internal/app/handlers/bookingrequest"
	"milahouse/internal/app/handlers/pages"
	"milahouse/internal/app/middleware"
	"milahouse/internal/app/outbox"
	"milahouse/internal/app/policies"
	"milahouse/internal/app/queries"
	"milahouse/internal/domain/availability"
	"milahouse/internal/domain/booking"
	"milahouse/internal/domain/datecodec"
	"milahouse/internal/domain/rooms"
	"milahouse/internal/infra/broker/kafka"
	"milahouse/internal/infra/config"
	"milahouse/internal/infra/db/mongo"
	ginserver "milahouse/internal/infra/http/gin"
	"milahouse/internal/infra/inbox"
	"milahouse/internal/infra/obs"
	infraoutbox "milahouse/internal/infra/outbox"
	"milahouse/internal/infra/refresh"
	"milahouse/internal/infra/security"
	"milahouse/internal/infra/storage/file"
	"milahouse/internal/infra/storage/memory"
	"milahouse/internal/infra/storage/s3"
	"milahouse/internal/infra/validation"
	"milahouse/internal/ui/widget"
)

func main() {
	if len(os.Args) == 3 && os.Args[1] == "hash-password" {
		hash, err := security.BcryptHasher{}.Hash(os.Args[2])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()
	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	catalog, err := config.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		logger.Error("catalog load failed", "error", err, "path", cfg.CatalogPath)
		os.Exit(1)
	}

	app, err := buildApplication(ctx, cfg, catalog, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer app.close(logger)

	if err := app.refresher.Refresh(ctx); err != nil {
		logger.Warn("initial snapshot refresh failed", "error", err)
	}
	app.start(ctx, logger)

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{Checks: app.checks}, app.handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "snapshot_source", cfg.SnapshotSource, "rooms", len(catalog.Rooms))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers  ginserver.Handlers
	checks    map[string]obs.Check
	refresher *refresh.Refresher
	scheduler *refresh.Scheduler
	relay     *infraoutbox.Relay
	consumer  *kafka.Consumer
	topics    []string
	closers   []func() error
}

func buildApplication(ctx context.Context, cfg config.Config, catalog config.Catalog, logger *slog.Logger) (*application, error) {
	loc, err := catalog.Location()
	if err != nil {
		return nil, err
	}
	cal := datecodec.NewCalendar(datecodec.SystemClock{}, loc)
	engine := availability.NewEngine(cal)
	roomCatalog := catalog.RoomCatalog()
	app := &application{checks: map[string]obs.Check{}}

	store := memory.NewSnapshotStore()
	app.checks["snapshots"] = store.Ready

	feed, err := app.snapshotFeed(ctx, cfg, cal, logger)
	if err != nil {
		return nil, err
	}
	app.refresher = &refresh.Refresher{
		Feed:      feed,
		Store:     store,
		Blackouts: catalog.BlackoutRules(),
		Calendar:  cal,
		Logger:    logger,
	}
	app.scheduler = refresh.NewScheduler(app.refresher, cfg.SnapshotRefresh, loc, logger)

	publisher, err := app.publisher(cfg, logger)
	if err != nil {
		return nil, err
	}
	app.relay = &infraoutbox.Relay{
		Publisher:   publisher,
		TopicPrefix: cfg.KafkaTopicPrefix,
		Source:      cfg.EventSource,
		Interval:    cfg.RetryInterval,
		Backoff:     cfg.RetryBackoff,
		Logger:      logger,
	}

	if len(cfg.KafkaBrokers) > 0 && cfg.InvalidationTopic != "" {
		handler := kafka.Invalidation{Inbox: inbox.NewStore(0), Refresh: app.scheduler.Trigger, Logger: logger}
		consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaGroupID, kafka.NewConfig(cfg.KafkaGroupID), handler, logger)
		if err != nil {
			return nil, fmt.Errorf("kafka consumer: %w", err)
		}
		app.consumer = consumer
		app.topics = []string{cfg.InvalidationTopic}
		app.closers = append(app.closers, consumer.Close)
	}

	queryBus := buildQueries(store, engine, roomCatalog, logger)
	commandBus := buildCommands(store, engine, roomCatalog, app.relay, logger)

	tmpl, err := ginserver.Templates()
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}
	creds := security.Credentials{Username: catalog.Admin.Username, PasswordHash: catalog.Admin.PasswordHash}
	if !creds.Configured() {
		logger.Warn("admin credentials missing, admin pages will refuse every login")
	}

	app.handlers = ginserver.Handlers{
		Pages:        ginserver.PagesHandler{Queries: queryBus, Logger: logger},
		Booking:      ginserver.BookingHandler{Commands: commandBus, Logger: logger},
		Availability: ginserver.AvailabilityHandler{Queries: queryBus, Logger: logger},
		Admin:        ginserver.AdminHandler{Queries: queryBus, Rooms: roomCatalog, Calendar: cal, Logger: logger},
		AdminAuth:    ginserver.BasicAuth{Credentials: creds, Logger: logger}.Handle,
		Templates:    tmpl,
	}
	return app, nil
}

func buildQueries(store policies.BookingSnapshots, engine availability.Engine, catalog rooms.Catalog, logger *slog.Logger) queries.Bus {
	bus := queries.NewInMemoryBus()
	queries.RegisterHandler(bus, availabilityapp.GetDisabledDatesQuery{}.Key(), &availabilityapp.GetDisabledDatesHandler{
		Snapshots: store,
		Engine:    engine,
		Rooms:     catalog,
	})
	queries.RegisterHandler(bus, pages.GetHomeQuery{}.Key(), &pages.GetHomeHandler{
		Snapshots: store,
		Rooms:     catalog,
		Engine:    engine,
		Widgets:   widget.Factory{Months: 2},
		Logger:    logger,
	})
	queries.RegisterHandler(bus, pages.SearchRoomsQuery{}.Key(), &pages.SearchRoomsHandler{
		Snapshots: store,
		Rooms:     catalog,
		Engine:    engine,
		Widgets:   widget.Factory{Months: 2},
		Logger:    logger,
	})
	queries.RegisterHandler(bus, pages.GetRoomModalQuery{}.Key(), &pages.GetRoomModalHandler{
		Snapshots: store,
		Rooms:     catalog,
		Engine:    engine,
		Widgets:   widget.Factory{Months: 2},
		Logger:    logger,
	})
	renderer := admin.Renderer{Calendar: engine.Calendar, Store: booking.Store{Logger: logger}}
	queries.RegisterHandler(bus, adminboard.GetBoardQuery{}.Key(), &adminboard.GetBoardHandler{
		Snapshots: store,
		Renderer:  renderer,
		Rooms:     catalog,
	})
	queries.RegisterHandler(bus, adminboard.ListRoomBookingsQuery{}.Key(), &adminboard.ListRoomBookingsHandler{
		Snapshots: store,
		Rooms:     catalog,
	})
	queries.RegisterHandler(bus, adminboard.GetFormQuery{}.Key(), &adminboard.GetFormHandler{
		Snapshots: store,
		Rooms:     catalog,
		Engine:    engine,
		Widgets:   widget.Factory{Months: 1},
		Logger:    logger,
	})
	return middleware.ChainQueries(
		bus,
		middleware.QueryLogging(logger),
		middleware.QueryAuthorization(access.Policy{}),
		middleware.QueryValidation(validation.New()),
	)
}

func buildCommands(store policies.BookingSnapshots, engine availability.Engine, catalog rooms.Catalog, box outbox.Outbox, logger *slog.Logger) commands.Bus {
	bus := commands.NewInMemoryBus()
	commands.RegisterHandler(bus, bookingrequest.SubmitCommand{}.Key(), &bookingrequest.SubmitHandler{
		Snapshots: store,
		Engine:    engine,
		Rooms:     catalog,
		Outbox:    box,
		Encoder:   outbox.JSONEventEncoder{},
	})
	return middleware.ChainCommands(
		bus,
		middleware.Logging(logger),
		middleware.Authorization(access.Policy{}),
		middleware.Validation(validation.New()),
		middleware.OutboxFlush(box),
	)
}

func (a *application) snapshotFeed(ctx context.Context, cfg config.Config, cal datecodec.Calendar, logger *slog.Logger) (policies.SnapshotFeed, error) {
	switch cfg.SnapshotSource {
	case config.SnapshotMongo:
		client, err := mongo.New(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, fmt.Errorf("mongo: %w", err)
		}
		a.checks["mongo"] = client.Ping
		a.closers = append(a.closers, func() error {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return client.Close(closeCtx)
		})
		return mongo.NewSnapshotFeed(client.DB, cfg.MongoCollection, cal), nil
	case config.SnapshotS3:
		client, err := s3.NewClient(cfg.S3Endpoint, cfg.S3UseSSL, cfg.S3AccessKey, cfg.S3SecretKey)
		if err != nil {
			return nil, err
		}
		a.checks["s3"] = func(ctx context.Context) error { return client.BucketExists(ctx, cfg.S3Bucket) }
		return s3.SnapshotFeed{Objects: client, Bucket: cfg.S3Bucket, Key: cfg.S3Object, Logger: logger}, nil
	default:
		return file.SnapshotFeed{Path: cfg.SnapshotFile, Optional: true}, nil
	}
}

func (a *application) publisher(cfg config.Config, logger *slog.Logger) (policies.Publisher, error) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Warn("KAFKA_BROKERS not set, booking requests are only logged")
		return infraoutbox.LogPublisher{Logger: logger}, nil
	}
	producer, err := kafka.NewProducer(cfg.KafkaBrokers, kafka.NewConfig("milahouse"))
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	a.closers = append(a.closers, producer.Close)
	return producer, nil
}

func (a *application) start(ctx context.Context, logger *slog.Logger) {
	go func() {
		if err := a.scheduler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("snapshot scheduler stopped", "error", err)
		}
	}()
	go func() {
		if err := a.relay.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("outbox relay stopped", "error", err)
		}
	}()
	if a.consumer != nil {
		go func() {
			if err := a.consumer.Run(ctx, a.topics); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("invalidation consumer stopped", "error", err)
			}
		}()
	}
}

func (a *application) close(logger *slog.Logger) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Warn("shutdown step failed", "error", err)
		}
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
