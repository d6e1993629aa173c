package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	eventsDomain "pulseboard/internal/events/core/domain"
	"pulseboard/internal/worker/core/domain"
)

// fakeQueue hands out items in order, then blocks like an empty queue.
// drained is closed on the first Pop after the items run out, which means
// every item has been handled.
type fakeQueue struct {
	mu      sync.Mutex
	items   [][]byte
	errs    []error
	calls   int
	drained chan struct{}
	once    sync.Once
}

func newFakeQueue(items ...[]byte) *fakeQueue {
	return &fakeQueue{items: items, drained: make(chan struct{})}
}

func (q *fakeQueue) Pop(ctx context.Context) ([]byte, error) {
	q.mu.Lock()
	q.calls++
	if len(q.errs) > 0 {
		err := q.errs[0]
		q.errs = q.errs[1:]
		q.mu.Unlock()
		return nil, err
	}
	if len(q.items) > 0 {
		item := q.items[0]
		q.items = q.items[1:]
		q.mu.Unlock()
		return item, nil
	}
	q.mu.Unlock()

	q.once.Do(func() { close(q.drained) })
	<-ctx.Done()
	return nil, ctx.Err()
}

func (q *fakeQueue) Calls() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.calls
}

type fakeSink struct {
	mu       sync.Mutex
	InsertFn func(ctx context.Context, e *eventsDomain.Event) error
	stored   []eventsDomain.Event
}

func (s *fakeSink) InsertEvent(ctx context.Context, e *eventsDomain.Event) error {
	if s.InsertFn != nil {
		if err := s.InsertFn(ctx, e); err != nil {
			return err
		}
	}
	s.mu.Lock()
	s.stored = append(s.stored, *e)
	s.mu.Unlock()
	return nil
}

func (s *fakeSink) Stored() []eventsDomain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]eventsDomain.Event(nil), s.stored...)
}

type deadLetter struct {
	payload string
	cause   error
}

type fakeDeadLetter struct {
	mu    sync.Mutex
	items []deadLetter
	err   error
}

func (d *fakeDeadLetter) DeadLetter(ctx context.Context, payload []byte, cause error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.items = append(d.items, deadLetter{payload: string(payload), cause: cause})
	return d.err
}

func (d *fakeDeadLetter) Items() []deadLetter {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]deadLetter(nil), d.items...)
}

type fakeHeartbeatWriter struct {
	beats chan time.Time
	errs  chan error
}

func newFakeHeartbeatWriter() *fakeHeartbeatWriter {
	return &fakeHeartbeatWriter{beats: make(chan time.Time, 16), errs: make(chan error, 16)}
}

func (w *fakeHeartbeatWriter) Beat(ctx context.Context, at time.Time, ttl time.Duration) error {
	select {
	case err := <-w.errs:
		return err
	default:
	}
	w.beats <- at
	return nil
}

type fakeHeartbeatReader struct {
	rec domain.HeartbeatRecord
	err error
}

func (r *fakeHeartbeatReader) Read(ctx context.Context) (domain.HeartbeatRecord, error) {
	return r.rec, r.err
}

var errBoom = errors.New("boom")
