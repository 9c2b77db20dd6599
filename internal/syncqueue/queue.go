// Package syncqueue holds document mutations durably until the remote store
// acknowledges them.
package syncqueue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/blaisecz/meal-cycle/internal/domain"
	"github.com/blaisecz/meal-cycle/internal/logger"
	"github.com/blaisecz/meal-cycle/internal/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// DefaultFlushTimeout bounds every flush, including ones started without a deadline.
const DefaultFlushTimeout = 30 * time.Second

// LocalStore persists the ordered operation list on the device.
type LocalStore interface {
	Load(ctx context.Context) ([]domain.PendingOperation, error)
	Save(ctx context.Context, ops []domain.PendingOperation) error
}

// RemoteStore applies a batch of operations atomically.
type RemoteStore interface {
	Commit(ctx context.Context, ops []domain.PendingOperation) error
}

// Queue is an ordered, durable list of pending operations.
type Queue struct {
	local    LocalStore
	remote   RemoteStore
	recorder metrics.Recorder
	timeout  time.Duration

	mu       sync.Mutex
	ops      []domain.PendingOperation
	online   bool
	flushing bool

	wg sync.WaitGroup
}

type Option func(*Queue)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(q *Queue) {
		if r != nil {
			q.recorder = r
		}
	}
}

// WithOnline sets the initial connectivity state. Queues start offline.
func WithOnline(online bool) Option {
	return func(q *Queue) { q.online = online }
}

// WithFlushTimeout bounds each flush.
func WithFlushTimeout(d time.Duration) Option {
	return func(q *Queue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func New(local LocalStore, remote RemoteStore, opts ...Option) *Queue {
	q := &Queue{
		local:    local,
		remote:   remote,
		recorder: metrics.NoopRecorder{},
		timeout:  DefaultFlushTimeout,
		ops:      []domain.PendingOperation{},
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Load restores the persisted list. Corrupt storage is discarded and replaced
// with an empty list; other read errors are returned.
func (q *Queue) Load(ctx context.Context) error {
	loaded, err := q.local.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrCorruptQueue) {
			return fmt.Errorf("load pending operations: %w", err)
		}
		logger.Error("Discarding unreadable pending operation queue", "error", err)
		loaded = []domain.PendingOperation{}
		if err := q.local.Save(ctx, loaded); err != nil {
			logger.Error("Failed to reset pending operation queue", "error", err)
		}
	}

	q.mu.Lock()
	q.ops = append(loaded, q.ops...)
	n := len(q.ops)
	q.mu.Unlock()

	q.recorder.SetQueueDepth(n)
	logger.Info("Pending operation queue loaded", "pending", n)
	return nil
}

// Enqueue validates op, appends it and persists the whole list before
// returning. When online a flush is started in the background.
func (q *Queue) Enqueue(ctx context.Context, op domain.PendingOperation) error {
	if err := op.Validate(); err != nil {
		return err
	}

	q.mu.Lock()
	next := make([]domain.PendingOperation, len(q.ops), len(q.ops)+1)
	copy(next, q.ops)
	next = append(next, op)
	if err := q.local.Save(ctx, next); err != nil {
		q.mu.Unlock()
		return fmt.Errorf("persist pending operation: %w", err)
	}
	q.ops = next
	online := q.online
	q.mu.Unlock()

	q.recorder.SetQueueDepth(len(next))
	logger.Debug("Operation enqueued", "op", op.ID, "kind", op.Kind, "document", op.DocumentID, "pending", len(next))

	if online {
		q.flushAsync()
	}
	return nil
}

// Flush sends every queued operation to the remote store as one batch.
// It is a no-op while offline, while another flush is running, or when the
// queue is empty. On failure the queue is left untouched. The commit never
// runs longer than the queue's flush timeout.
func (q *Queue) Flush(ctx context.Context) error {
	q.mu.Lock()
	if q.flushing || !q.online || len(q.ops) == 0 {
		q.mu.Unlock()
		return nil
	}
	q.flushing = true
	batch := make([]domain.PendingOperation, len(q.ops))
	copy(batch, q.ops)
	q.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, q.timeout)
	defer cancel()

	tracer := otel.Tracer("meal-cycle/syncqueue")
	ctx, span := tracer.Start(ctx, "Queue.Flush")
	span.SetAttributes(attribute.Int("queue.batch_size", len(batch)))
	defer span.End()

	start := time.Now()
	err := q.remote.Commit(ctx, batch)
	elapsed := time.Since(start)

	q.mu.Lock()
	defer q.mu.Unlock()
	q.flushing = false

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		q.recorder.ObserveFlush(metrics.FlushFailure, len(batch), elapsed)
		logger.Warn("Queue flush failed", "batch", len(batch), "error", err)
		return err
	}

	// Operations enqueued while the batch was in flight stay queued.
	remaining := make([]domain.PendingOperation, len(q.ops)-len(batch))
	copy(remaining, q.ops[len(batch):])
	q.ops = remaining
	if err := q.local.Save(ctx, remaining); err != nil {
		// Replaying an acknowledged batch after restart is harmless.
		logger.Error("Failed to persist queue after flush", "error", err)
	}

	q.recorder.ObserveFlush(metrics.FlushSuccess, len(batch), elapsed)
	q.recorder.SetQueueDepth(len(remaining))
	logger.Info("Queue flushed", "batch", len(batch), "remaining", len(remaining), "duration", elapsed)
	return nil
}

// FlushIfPending flushes when at least one operation is queued.
func (q *Queue) FlushIfPending(ctx context.Context) error {
	q.mu.Lock()
	empty := len(q.ops) == 0
	q.mu.Unlock()
	if empty {
		return nil
	}
	return q.Flush(ctx)
}

// SetOnline records a connectivity transition. Going online starts a flush.
func (q *Queue) SetOnline(online bool) {
	q.mu.Lock()
	changed := q.online != online
	q.online = online
	q.mu.Unlock()

	if changed {
		logger.Info("Connectivity changed", "online", online)
	}
	if online {
		q.flushAsync()
	}
}

// Status derives the advertised synchronization state.
func (q *Queue) Status() domain.SyncStatus {
	q.mu.Lock()
	defer q.mu.Unlock()

	status := domain.SyncStatus{Pending: len(q.ops), Online: q.online}
	switch {
	case q.flushing:
		status.State = domain.SyncStateSyncing
	case len(q.ops) > 0:
		status.State = domain.SyncStatePending
	default:
		status.State = domain.SyncStateSynced
	}
	return status
}

// Pending returns a copy of the queued operations in order.
func (q *Queue) Pending() []domain.PendingOperation {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]domain.PendingOperation, len(q.ops))
	copy(out, q.ops)
	return out
}

// Wait blocks until background flushes have returned.
func (q *Queue) Wait() {
	q.wg.Wait()
}

func (q *Queue) flushAsync() {
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		_ = q.Flush(context.Background())
	}()
}
