package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/cricstack/fantasy-core/internal/platform/logging"
	"github.com/cricstack/fantasy-core/internal/usecase"
)

const (
	JobMatches   = "matches"
	JobPlayers   = "players"
	JobSeries    = "series"
	JobCountries = "countries"
	JobBackfill  = "backfill"
)

// Intervals controls the sync cadences. Zero values fall back to defaults.
type Intervals struct {
	Matches time.Duration
	Players time.Duration
}

// Limits caps how many records the cadenced sync jobs ingest per run. Zero
// values use the sync service defaults.
type Limits struct {
	Players int
	Matches int
}

// Scheduler owns the recurring sync and backfill jobs. Each job carries a
// run guard so overlapping triggers never run the same job twice at once.
type Scheduler struct {
	s       gocron.Scheduler
	sync    *usecase.SyncService
	scoring *usecase.ScoringService
	logger  *logging.Logger
	jobs    map[string]*job
}

type job struct {
	name    string
	running atomic.Bool
	run     func(ctx context.Context) error
}

func New(syncSvc *usecase.SyncService, scoringSvc *usecase.ScoringService, limits Limits, logger *logging.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = logging.Default()
	}

	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	sched := &Scheduler{
		s:       s,
		sync:    syncSvc,
		scoring: scoringSvc,
		logger:  logger,
		jobs:    make(map[string]*job),
	}
	sched.register(JobMatches, func(ctx context.Context) error {
		_, runErr := syncSvc.SyncMatches(ctx, limits.Matches)
		return runErr
	})
	sched.register(JobPlayers, func(ctx context.Context) error {
		_, runErr := syncSvc.SyncPlayers(ctx, limits.Players)
		return runErr
	})
	sched.register(JobSeries, func(ctx context.Context) error {
		_, runErr := syncSvc.SyncSeries(ctx)
		return runErr
	})
	sched.register(JobCountries, func(ctx context.Context) error {
		_, runErr := syncSvc.SyncCountries(ctx)
		return runErr
	})
	sched.register(JobBackfill, func(ctx context.Context) error {
		_, runErr := scoringSvc.UpdateFantasyPointsForCompletedMatches(ctx)
		return runErr
	})

	return sched, nil
}

// Start registers the cadenced jobs and begins firing them. Matches sync
// hourly, players every six hours, series daily at 03:00 UTC, countries
// weekly on Sunday at 02:00 UTC, and the backfill scan rides along with the
// matches cadence.
func (s *Scheduler) Start(ctx context.Context, intervals Intervals) error {
	matchesEvery := intervals.Matches
	if matchesEvery <= 0 {
		matchesEvery = time.Hour
	}
	playersEvery := intervals.Players
	if playersEvery <= 0 {
		playersEvery = 6 * time.Hour
	}

	if _, err := s.s.NewJob(
		gocron.DurationJob(matchesEvery),
		gocron.NewTask(func() { s.runGuarded(ctx, JobMatches) }),
	); err != nil {
		return fmt.Errorf("create matches job: %w", err)
	}

	if _, err := s.s.NewJob(
		gocron.DurationJob(matchesEvery),
		gocron.NewTask(func() { s.runGuarded(ctx, JobBackfill) }),
	); err != nil {
		return fmt.Errorf("create backfill job: %w", err)
	}

	if _, err := s.s.NewJob(
		gocron.DurationJob(playersEvery),
		gocron.NewTask(func() { s.runGuarded(ctx, JobPlayers) }),
	); err != nil {
		return fmt.Errorf("create players job: %w", err)
	}

	if _, err := s.s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0))),
		gocron.NewTask(func() { s.runGuarded(ctx, JobSeries) }),
	); err != nil {
		return fmt.Errorf("create series job: %w", err)
	}

	if _, err := s.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Sunday), gocron.NewAtTimes(gocron.NewAtTime(2, 0, 0))),
		gocron.NewTask(func() { s.runGuarded(ctx, JobCountries) }),
	); err != nil {
		return fmt.Errorf("create countries job: %w", err)
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

// RunJob fires the named job once, on demand. It returns an error when the
// job is unknown or already running.
func (s *Scheduler) RunJob(ctx context.Context, name string) error {
	j, ok := s.jobs[name]
	if !ok {
		return fmt.Errorf("%w: unknown job %q", usecase.ErrInvalidInput, name)
	}

	if !j.running.CompareAndSwap(false, true) {
		return fmt.Errorf("job %q is already running", name)
	}
	defer j.running.Store(false)

	return j.run(ctx)
}

func (s *Scheduler) register(name string, run func(ctx context.Context) error) {
	s.jobs[name] = &job{name: name, run: run}
}

func (s *Scheduler) runGuarded(ctx context.Context, name string) {
	j, ok := s.jobs[name]
	if !ok {
		return
	}
	if !j.running.CompareAndSwap(false, true) {
		s.logger.WarnContext(ctx, "skipping overlapping job run", "job", name)
		return
	}
	defer j.running.Store(false)

	started := time.Now()
	if err := j.run(ctx); err != nil {
		s.logger.ErrorContext(ctx, "scheduled job failed", "job", name, "error", err)
		return
	}
	s.logger.InfoContext(ctx, "scheduled job finished", "job", name, "duration", time.Since(started))
}
