// Package session wires one owner's cycle service, mutation queue and
// scheduler together and runs their background jobs.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/blaisecz/meal-cycle/internal/domain"
	"github.com/blaisecz/meal-cycle/internal/logger"
	"github.com/blaisecz/meal-cycle/internal/metrics"
	"github.com/blaisecz/meal-cycle/internal/notify"
	"github.com/blaisecz/meal-cycle/internal/repository"
	"github.com/blaisecz/meal-cycle/internal/scheduler"
	"github.com/blaisecz/meal-cycle/internal/service"
	"github.com/blaisecz/meal-cycle/internal/syncqueue"
	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

const (
	probeTimeout   = 3 * time.Second
	hydrateTimeout = 5 * time.Second
	migrateTimeout = 30 * time.Second
)

// LocalStore is the durable queue storage owned by the session.
type LocalStore interface {
	syncqueue.LocalStore
	Close() error
}

type Options struct {
	OwnerID  uuid.UUID
	Profile  domain.CycleProfile
	Local    LocalStore
	Remote   repository.CycleRepository
	Notifier notify.Notifier
	Clock    clockwork.Clock
	Recorder metrics.Recorder

	// Migrate prepares the remote schema. It runs after the first successful
	// connectivity check and is retried on every check until it succeeds.
	Migrate func(ctx context.Context) error

	TickInterval  time.Duration
	FlushInterval time.Duration
	ProbeInterval time.Duration
}

// Session owns exactly one CycleService, Queue and Scheduler.
type Session struct {
	opts   Options
	cron   gocron.Scheduler
	queue  *syncqueue.Queue
	cycles service.CycleService
	sched  *scheduler.Scheduler

	mu         sync.Mutex
	hostOnline bool
	reachable  bool
	migrated   bool
}

func New(opts Options) (*Session, error) {
	if opts.OwnerID == uuid.Nil {
		return nil, errors.New("session: owner id is required")
	}
	if err := opts.Profile.Validate(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	if opts.Local == nil || opts.Remote == nil {
		return nil, errors.New("session: local and remote stores are required")
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.NewConsole(nil, true)
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	if opts.FlushInterval <= 0 {
		opts.FlushInterval = 5 * time.Second
	}
	if opts.ProbeInterval <= 0 {
		opts.ProbeInterval = 10 * time.Second
	}

	cron, err := gocron.NewScheduler(gocron.WithClock(opts.Clock))
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	queue := syncqueue.New(opts.Local, opts.Remote, syncqueue.WithRecorder(opts.Recorder))
	cycles := service.NewCycleService(opts.OwnerID, opts.Profile, opts.Remote, queue, opts.Clock, opts.Recorder)
	sched := scheduler.New(cycles, opts.Notifier, opts.Profile, opts.Clock, opts.Recorder)

	return &Session{
		opts:   opts,
		cron:   cron,
		queue:  queue,
		cycles: cycles,
		sched:  sched,

		hostOnline: true,
		migrated:   opts.Migrate == nil,
	}, nil
}

func (s *Session) Cycles() service.CycleService { return s.cycles }

func (s *Session) Queue() *syncqueue.Queue { return s.queue }

func (s *Session) Scheduler() *scheduler.Scheduler { return s.sched }

func (s *Session) Profile() domain.CycleProfile { return s.opts.Profile.Clone() }

// Status reports the queue's synchronization state.
func (s *Session) Status() domain.SyncStatus { return s.queue.Status() }

// Flush pushes queued operations to the remote store.
func (s *Session) Flush(ctx context.Context) error { return s.queue.Flush(ctx) }

// SetOnline records connectivity reported by the host. The queue stays
// offline while either the host or the remote store check reports offline.
func (s *Session) SetOnline(online bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hostOnline = online
	s.queue.SetOnline(online && s.reachable)
}

// Start restores queued state, hydrates the cycle and starts the tick,
// flush and connectivity probe jobs.
func (s *Session) Start(ctx context.Context) error {
	if err := s.queue.Load(ctx); err != nil {
		return err
	}
	hydrateCtx, cancel := context.WithTimeout(ctx, hydrateTimeout)
	defer cancel()
	if err := s.cycles.Hydrate(hydrateCtx); err != nil {
		return fmt.Errorf("hydrate cycle: %w", err)
	}

	jobs := []struct {
		name     string
		interval time.Duration
		task     func()
		opts     []gocron.JobOption
	}{
		{name: "connectivity-probe", interval: s.opts.ProbeInterval, task: s.probe,
			opts: []gocron.JobOption{gocron.WithStartAt(gocron.WithStartImmediately())}},
		{name: "scheduler-tick", interval: s.opts.TickInterval, task: s.tick},
		{name: "queue-flush", interval: s.opts.FlushInterval, task: s.flush},
	}
	for _, j := range jobs {
		opts := append([]gocron.JobOption{
			gocron.WithName(j.name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		}, j.opts...)
		if _, err := s.cron.NewJob(gocron.DurationJob(j.interval), gocron.NewTask(j.task), opts...); err != nil {
			return fmt.Errorf("failed to create %s job: %w", j.name, err)
		}
	}

	s.cron.Start()
	logger.Info("Session started",
		"owner", s.opts.OwnerID,
		"profile", s.opts.Profile.String(),
		"tick", s.opts.TickInterval,
		"flush", s.opts.FlushInterval)
	return nil
}

// Close stops every job, waits for in-flight flushes and closes the local store.
func (s *Session) Close() error {
	var errs []error
	if err := s.cron.Shutdown(); err != nil {
		errs = append(errs, fmt.Errorf("stop jobs: %w", err))
	}
	s.queue.Wait()
	s.sched.Reset()
	if err := s.opts.Local.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close local store: %w", err))
	}
	logger.Info("Session closed", "owner", s.opts.OwnerID)
	return errors.Join(errs...)
}

func (s *Session) tick() {
	if err := s.sched.Tick(context.Background()); err != nil {
		logger.Warn("Scheduler tick failed", "error", err)
	}
}

func (s *Session) flush() {
	// Bounded by the queue's flush timeout. Failures are logged by the queue
	// and retried on the next run.
	_ = s.queue.FlushIfPending(context.Background())
}

func (s *Session) probe() {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	err := s.opts.Remote.Ping(ctx)
	if err != nil {
		logger.Debug("Remote store unreachable", "error", err)
	} else {
		err = s.migrate()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reachable = err == nil
	s.queue.SetOnline(s.reachable && s.hostOnline)
}

func (s *Session) migrate() error {
	s.mu.Lock()
	done := s.migrated
	s.mu.Unlock()
	if done {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()
	if err := s.opts.Migrate(ctx); err != nil {
		logger.Warn("Remote schema migration failed, staying offline", "error", err)
		return err
	}

	s.mu.Lock()
	s.migrated = true
	s.mu.Unlock()
	logger.Info("Remote schema ready")
	return nil
}
