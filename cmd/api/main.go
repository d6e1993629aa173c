package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pulseboard/internal/config"
	"pulseboard/internal/platform/postgres"
	"pulseboard/internal/platform/redisx"

	eventsHttp "pulseboard/internal/events/adapters/http/fiber"
	eventsRepoPg "pulseboard/internal/events/adapters/postgres"
	eventsRedis "pulseboard/internal/events/adapters/redis"
	eventsPorts "pulseboard/internal/events/core/ports"
	eventsUsecase "pulseboard/internal/events/core/usecase"

	projectsHttp "pulseboard/internal/projects/adapters/http/fiber"
	projectsRepoPg "pulseboard/internal/projects/adapters/postgres"
	projectsUsecase "pulseboard/internal/projects/core/usecase"

	statsHttp "pulseboard/internal/stats/adapters/http/fiber"
	statsRepoPg "pulseboard/internal/stats/adapters/postgres"
	statsUsecase "pulseboard/internal/stats/core/usecase"

	workerHttp "pulseboard/internal/worker/adapters/http/fiber"
	workerRedis "pulseboard/internal/worker/adapters/redis"
	workerPorts "pulseboard/internal/worker/core/ports"
	workerUsecase "pulseboard/internal/worker/core/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "pulseboard/docs"
)

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Env    string `json:"env" example:"development"`
}

// @title Pulseboard API
// @version 1.0
// @description Event ingestion and stats API.
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
func main() {
	configPath := os.Getenv("PULSEBOARD_CONFIG")

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	// DB connection
	db, err := postgres.Open(context.Background(), cfg.Postgres)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer db.Close()

	// Redis is optional for the API. Without it queued submissions get 503
	// and the worker is always reported inactive.
	var (
		queue    eventsPorts.EventQueuePort
		beatRead workerPorts.HeartbeatReaderPort
	)
	if cfg.Redis.URL != "" {
		rdb, err := redisx.NewClient(cfg.Redis.URL)
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer rdb.Close()

		if err := redisx.Ping(context.Background(), rdb); err != nil {
			log.Printf("redis not reachable at startup, continuing: %v", err)
		}

		queue = eventsRedis.NewQueueProducer(rdb, cfg.Queue.Key)
		beatRead = workerRedis.NewHeartbeatStore(rdb, cfg.Worker.HeartbeatKey)
	} else {
		log.Println("redis.url not set; queued ingestion disabled")
	}

	// Repositories
	eventRepository := eventsRepoPg.NewEventRepository(eventsRepoPg.NewSQLDB(db))
	projectRepository := projectsRepoPg.NewProjectRepository(projectsRepoPg.NewSQLDB(db))
	eventReader := statsRepoPg.NewEventReader(statsRepoPg.NewSQLDB(db))

	// Usecases
	ingestUC := eventsUsecase.NewIngestEventUseCase(eventRepository, queue)
	resolveUC := projectsUsecase.NewResolveProjectUseCase(projectRepository)
	statsUC := statsUsecase.NewGetStatsUseCase(eventReader)
	statusUC := workerUsecase.NewGetStatusUseCase(beatRead)

	// HTTP (Fiber) app + handlers
	app := fiber.New(fiber.Config{
		AppName:      "pulseboard-api",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/api/health", healthHandler(cfg.App.Env))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	apiHandlers := []fiber.Handler{}
	if cfg.HTTP.RateLimit > 0 {
		apiHandlers = append(apiHandlers, limiter.New(limiter.Config{
			Max:        cfg.HTTP.RateLimit,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error":   "rate_limited",
					"message": "Too many requests",
				})
			},
		}))
	}
	apiHandlers = append(apiHandlers, projectsHttp.RequireAPIKey(resolveUC))
	api := app.Group("/api", apiHandlers...)

	// events endpoints
	eventsHandler := eventsHttp.NewEventHandler(ingestUC)
	api.Post("/track", eventsHandler.TrackEvent)
	api.Post("/track/batch", eventsHandler.TrackBatch)

	// project endpoints
	api.Get("/project-info", projectsHttp.NewProjectHandler().GetProjectInfo)

	// stats endpoints
	statsHandler := statsHttp.NewStatsHandler(statsUC)
	api.Get("/stats/events", statsHandler.GetEvents)
	api.Get("/stats/top-events", statsHandler.GetTopEvents)

	// worker endpoints
	api.Get("/worker-status", workerHttp.NewWorkerHandler(statusUC).GetWorkerStatus)

	// Graceful shutdown
	go func() {
		if err := app.Listen(cfg.HTTP.Addr); err != nil {
			log.Printf("fiber stopped: %v", err)
		}
	}()

	log.Printf("server started on %s", cfg.HTTP.Addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("fiber shutdown error: %v", err)
	}

	log.Println("server exiting")
}

// healthHandler godoc
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func healthHandler(env string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(HealthResponse{Status: "ok", Env: env})
	}
}
