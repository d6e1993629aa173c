package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"pulseboard/internal/worker/core/domain"
)

const startupCheckTimeout = 5 * time.Second

// StartupCheck is run once before the worker enters the running state. A
// failing check is fatal.
type StartupCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Worker runs the consume loop and the heartbeat loop side by side. The two
// must use separate queue connections: a blocking pop holds its connection
// for as long as the queue is empty.
type Worker struct {
	consumer  *Consumer
	heartbeat *Heartbeat
	checks    []StartupCheck

	mu    sync.RWMutex
	state domain.State
}

func NewWorker(consumer *Consumer, heartbeat *Heartbeat, checks ...StartupCheck) *Worker {
	return &Worker{
		consumer:  consumer,
		heartbeat: heartbeat,
		checks:    checks,
		state:     domain.StateBooting,
	}
}

func (w *Worker) State() domain.State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

func (w *Worker) setState(s domain.State) {
	w.mu.Lock()
	w.state = s
	w.mu.Unlock()
	log.Printf("worker: state=%s", s)
}

// Run returns nil once ctx is done and both loops have exited. It only
// returns an error when a startup check fails while ctx is still live.
func (w *Worker) Run(ctx context.Context) error {
	for _, c := range w.checks {
		cctx, cancel := context.WithTimeout(ctx, startupCheckTimeout)
		err := c.Check(cctx)
		cancel()
		if err != nil {
			// stopped while booting
			if ctx.Err() != nil {
				w.setState(domain.StateTerminated)
				return nil
			}
			w.setState(domain.StateCrashed)
			return fmt.Errorf("startup check %s: %w", c.Name, err)
		}
	}

	w.setState(domain.StateRunning)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		w.heartbeat.Run(gctx)
		return nil
	})
	g.Go(func() error {
		return w.consumer.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		w.setState(domain.StateStopping)
		return nil
	})

	err := g.Wait()
	w.setState(domain.StateTerminated)
	return err
}
