package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/classboard/classboard-api/internal/config"
	"github.com/classboard/classboard-api/internal/graph"
	"github.com/classboard/classboard-api/internal/handler"
	"github.com/classboard/classboard-api/internal/middleware"
	"github.com/classboard/classboard-api/internal/pubsub"
	"github.com/classboard/classboard-api/internal/router"
	"github.com/classboard/classboard-api/internal/service"
	"github.com/classboard/classboard-api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	dataStore := store.New()
	if cfg.SeedOnStart {
		dataStore.Seed()
		logger.Info().Msg("seeded demo dataset")
	}

	bus := pubsub.NewBus(logger)

	relayCtx, stopRelay := context.WithCancel(context.Background())
	defer stopRelay()
	if cfg.RelayEnabled() {
		redisClient, natsConn := connectRelayBackends(cfg, logger)
		if redisClient != nil {
			defer redisClient.Close()
		}
		if natsConn != nil {
			defer natsConn.Close()
		}
		if redisClient != nil || natsConn != nil {
			relay := pubsub.NewRelay(bus, redisClient, natsConn, cfg.EventChannelBase, logger)
			relay.Start(relayCtx)
			logger.Info().Str("channel_base", cfg.EventChannelBase).Msg("event relay started")
		}
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userService := service.NewUserService(dataStore, logger)
	courseService := service.NewCourseService(dataStore, validate, logger)
	assignmentService := service.NewAssignmentService(dataStore, bus, validate, logger)
	submissionService := service.NewSubmissionService(dataStore, bus, validate, logger)
	analyticsService := service.NewAnalyticsService(dataStore, logger)
	subscriptionService := service.NewSubscriptionService(bus, cfg.SubscriptionBuffer, logger)

	schema, err := graph.NewSchema(graph.Resolver{
		Users:       userService,
		Courses:     courseService,
		Assignments: assignmentService,
		Submissions: submissionService,
		Analytics:   analyticsService,
	})
	if err != nil {
		log.Fatalf("failed to build graphql schema: %v", err)
	}

	graphqlHandler := handler.NewGraphQLHandler(schema, logger)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		GraphQL:       graphqlHandler,
		Subscriptions: subscriptionHandler,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

// connectRelayBackends dials whichever relay transports are configured.
// Failures are logged and the backend skipped so a missing broker never
// blocks startup.
func connectRelayBackends(cfg config.Config, logger zerolog.Logger) (*redis.Client, *nats.Conn) {
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		options, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("invalid redis url, relay will skip redis")
		} else {
			redisClient = redis.NewClient(options)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := redisClient.Ping(ctx).Err(); err != nil {
				logger.Warn().Err(err).Msg("redis unreachable, relay will skip redis")
				_ = redisClient.Close()
				redisClient = nil
			}
			cancel()
		}
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		conn, err := nats.Connect(cfg.NATSURL, nats.Name(cfg.AppName))
		if err != nil {
			logger.Warn().Err(err).Msg("nats unreachable, relay will skip nats")
		} else {
			natsConn = conn
		}
	}

	return redisClient, natsConn
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
