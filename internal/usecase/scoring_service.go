package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/cricstack/fantasy-core/internal/domain/fantasy"
	"github.com/cricstack/fantasy-core/internal/domain/match"
	"github.com/cricstack/fantasy-core/internal/domain/performance"
	"github.com/cricstack/fantasy-core/internal/domain/player"
	"github.com/cricstack/fantasy-core/internal/platform/logging"
)

const defaultBackfillWorkers = 4

// BackfillReport summarizes one backfill scan over completed matches.
type BackfillReport struct {
	Scanned int
	Scored  int
	Skipped int
	Failed  int
}

// ScoringService turns raw performances into fantasy point records and keeps
// player running totals in step with them.
type ScoringService struct {
	matchRepo       match.Repository
	performanceRepo performance.Repository
	fantasyRepo     fantasy.Repository
	playerRepo      player.Repository
	rules           fantasy.Rules
	logger          *logging.Logger
	backfillWorkers int
	now             func() time.Time
}

func NewScoringService(
	matchRepo match.Repository,
	performanceRepo performance.Repository,
	fantasyRepo fantasy.Repository,
	playerRepo player.Repository,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoringService{
		matchRepo:       matchRepo,
		performanceRepo: performanceRepo,
		fantasyRepo:     fantasyRepo,
		playerRepo:      playerRepo,
		rules:           fantasy.DefaultRules(),
		logger:          logger,
		backfillWorkers: defaultBackfillWorkers,
		now:             time.Now,
	}
}

// ScorePerformance scores one performance and persists the record, replacing
// any prior record for the same (match, player) pair. Scoring the same input
// twice produces the same stored state.
func (s *ScoringService) ScorePerformance(ctx context.Context, perf performance.Performance) (fantasy.PointsRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ScorePerformance")
	defer span.End()

	if err := perf.Validate(); err != nil {
		return fantasy.PointsRecord{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	record := fantasy.CalculatePoints(perf, s.rules)
	record.CreatedAt = s.now().UTC()

	if err := s.fantasyRepo.Upsert(ctx, record); err != nil {
		return fantasy.PointsRecord{}, fmt.Errorf("%w: upsert points for player %s in match %s: %v",
			ErrStore, perf.PlayerID, perf.MatchID, err)
	}

	if err := s.refreshPlayerTotal(ctx, perf.PlayerID); err != nil {
		s.logger.WarnContext(ctx, "failed to refresh player points total", "player_id", perf.PlayerID, "error", err)
	}

	return record, nil
}

// ScoreMatch scores every stored performance for a completed match. It
// returns the number of records written.
func (s *ScoringService) ScoreMatch(ctx context.Context, matchID string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ScoreMatch")
	defer span.End()

	if matchID == "" {
		return 0, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	m, found, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return 0, fmt.Errorf("%w: load match %s: %v", ErrStore, matchID, err)
	}
	if !found {
		return 0, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}
	if m.Status != match.StatusCompleted {
		return 0, fmt.Errorf("%w: match %s is %s, only completed matches are scored", ErrScoring, matchID, m.Status)
	}

	perfs, err := s.performanceRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return 0, fmt.Errorf("%w: list performances for match %s: %v", ErrStore, matchID, err)
	}

	scored := 0
	for _, perf := range perfs {
		if _, scoreErr := s.ScorePerformance(ctx, perf); scoreErr != nil {
			s.logger.WarnContext(ctx, "skipping unscorable performance",
				"match_id", matchID, "player_id", perf.PlayerID, "error", scoreErr)
			continue
		}
		scored++
	}

	return scored, nil
}

// UpdateFantasyPointsForCompletedMatches scans completed matches and scores
// those that have no points records yet. Matches are processed concurrently
// on a bounded worker pool; one failing match never blocks the rest.
func (s *ScoringService) UpdateFantasyPointsForCompletedMatches(ctx context.Context) (BackfillReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.UpdateFantasyPointsForCompletedMatches")
	defer span.End()

	completed, err := s.matchRepo.ListByStatus(ctx, match.StatusCompleted)
	if err != nil {
		return BackfillReport{}, fmt.Errorf("%w: list completed matches: %v", ErrStore, err)
	}

	pool, err := ants.NewPool(s.backfillWorkers)
	if err != nil {
		return BackfillReport{}, fmt.Errorf("%w: start backfill pool: %v", ErrDependencyUnavailable, err)
	}
	defer pool.Release()

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		report = BackfillReport{Scanned: len(completed)}
	)

	for _, m := range completed {
		if ctxErr := ctx.Err(); ctxErr != nil {
			break
		}

		m := m
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			outcome := s.backfillMatch(ctx, m)

			mu.Lock()
			switch outcome {
			case backfillScored:
				report.Scored++
			case backfillSkipped:
				report.Skipped++
			default:
				report.Failed++
			}
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			report.Failed++
			mu.Unlock()
		}
	}

	wg.Wait()
	s.logger.InfoContext(ctx, "backfill scan finished",
		"scanned", report.Scanned, "scored", report.Scored, "skipped", report.Skipped, "failed", report.Failed)

	return report, ctx.Err()
}

type backfillOutcome int

const (
	backfillScored backfillOutcome = iota
	backfillSkipped
	backfillFailed
)

func (s *ScoringService) backfillMatch(ctx context.Context, m match.Match) backfillOutcome {
	existing, err := s.fantasyRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "backfill: failed to read existing points", "match_id", m.ID, "error", err)
		return backfillFailed
	}
	if len(existing) > 0 {
		return backfillSkipped
	}

	scored, err := s.ScoreMatch(ctx, m.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "backfill: failed to score match", "match_id", m.ID, "error", err)
		return backfillFailed
	}
	if scored == 0 {
		return backfillSkipped
	}
	return backfillScored
}

// refreshPlayerTotal recomputes the player's lifetime total from all stored
// records so repeated rescoring cannot drift the aggregate.
func (s *ScoringService) refreshPlayerTotal(ctx context.Context, playerID string) error {
	p, found, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return fmt.Errorf("load player %s: %w", playerID, err)
	}
	if !found {
		// Performances can reference players the ingest has not seen yet.
		return nil
	}

	records, err := s.fantasyRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return fmt.Errorf("list points for player %s: %w", playerID, err)
	}

	total := 0
	for _, record := range records {
		total += record.TotalPoints
	}

	p.FantasyPointsTotal = total
	p.UpdatedAt = s.now().UTC()
	if err := s.playerRepo.Upsert(ctx, p); err != nil {
		return fmt.Errorf("store player %s: %w", playerID, err)
	}

	return nil
}
