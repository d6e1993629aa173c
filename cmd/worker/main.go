package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/quartz"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pulseboard/internal/config"
	"pulseboard/internal/platform/postgres"
	"pulseboard/internal/platform/redisx"

	eventsRepoPg "pulseboard/internal/events/adapters/postgres"
	workerRedis "pulseboard/internal/worker/adapters/redis"
	workerUsecase "pulseboard/internal/worker/core/usecase"
)

// shutdownGrace bounds how long a stop signal waits for the loops to
// return before the process exits anyway.
const shutdownGrace = 3 * time.Second

func main() {
	cfg, err := config.Load(os.Getenv("PULSEBOARD_CONFIG"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.ValidateWorker(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	db, err := postgres.Open(context.Background(), cfg.Postgres)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer db.Close()

	// Two pools: BRPOP holds its connection for the whole block window and
	// must never delay a heartbeat write. The consumer closes popClient
	// itself when ctx is cancelled.
	popClient, err := redisx.NewClient(cfg.Redis.URL)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer popClient.Close()

	beatClient, err := redisx.NewClient(cfg.Redis.URL)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer beatClient.Close()

	eventRepository := eventsRepoPg.NewEventRepository(eventsRepoPg.NewSQLDB(db))
	queue := workerRedis.NewQueueConsumer(popClient, cfg.Queue.Key, cfg.Queue.PopBlock)
	beats := workerRedis.NewHeartbeatStore(beatClient, cfg.Worker.HeartbeatKey)

	opts := []workerUsecase.ConsumerOption{}
	if cfg.Worker.DeadLetterKey != "" {
		opts = append(opts, workerUsecase.WithDeadLetter(workerRedis.NewDeadLetterList(beatClient, cfg.Worker.DeadLetterKey)))
		log.Printf("dead letters go to %s", cfg.Worker.DeadLetterKey)
	}

	worker := workerUsecase.NewWorker(
		workerUsecase.NewConsumer(queue, eventRepository, opts...),
		workerUsecase.NewHeartbeat(beats, quartz.NewReal(), cfg.Worker.HeartbeatInterval, cfg.Worker.HeartbeatTTL),
		workerUsecase.StartupCheck{Name: "postgres", Check: eventRepository.Ping},
		workerUsecase.StartupCheck{Name: "redis", Check: queue.Ping},
	)

	metricsSrv := &http.Server{
		Addr:              cfg.Worker.MetricsAddr,
		Handler:           promhttp.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("metrics server stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	log.Printf("worker started queue=%s", cfg.Queue.Key)

	var runErr error
	select {
	case runErr = <-done:
	case <-ctx.Done():
		log.Println("shutting down...")
		select {
		case runErr = <-done:
		case <-time.After(shutdownGrace):
			log.Println("loops did not stop in time, exiting")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = metricsSrv.Shutdown(shutdownCtx)

	if runErr != nil {
		// a supervisor restarts us
		log.Fatalf("worker failed: %v", runErr)
	}
	log.Println("worker exiting")
}
