package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cricstack/fantasy-core/internal/domain/match"
	"github.com/cricstack/fantasy-core/internal/domain/performance"
	"github.com/cricstack/fantasy-core/internal/domain/player"
	"github.com/cricstack/fantasy-core/internal/infrastructure/repository/memory"
	"github.com/cricstack/fantasy-core/internal/platform/logging"
)

type scoringFixture struct {
	matches      *memory.MatchRepository
	performances *memory.PerformanceRepository
	points       *memory.FantasyRepository
	players      *memory.PlayerRepository
	svc          *ScoringService
}

func newScoringFixture(t *testing.T) *scoringFixture {
	t.Helper()

	f := &scoringFixture{
		matches:      memory.NewMatchRepository(),
		performances: memory.NewPerformanceRepository(),
		points:       memory.NewFantasyRepository(),
		players:      memory.NewPlayerRepository(),
	}
	f.svc = NewScoringService(f.matches, f.performances, f.points, f.players, logging.NewNop())
	f.svc.now = func() time.Time { return time.Date(2026, 8, 26, 18, 0, 0, 0, time.UTC) }

	return f
}

func (f *scoringFixture) seedCompletedMatch(t *testing.T, matchID string) {
	t.Helper()
	require.NoError(t, f.matches.Upsert(context.Background(), match.Match{
		ID: matchID, ProviderID: matchID, Status: match.StatusCompleted,
		Team1ID: "team_india", Team2ID: "team_australia",
	}))
}

func TestScoringService_ScorePerformanceAllRounder(t *testing.T) {
	t.Parallel()

	f := newScoringFixture(t)
	ctx := context.Background()
	require.NoError(t, f.players.Upsert(ctx, player.Player{ID: "p1", Name: "All Rounder"}))

	perf := performance.Performance{
		PlayerID: "p1",
		MatchID:  "m1",
		Batting:  performance.Batting{Runs: 55, BallsFaced: 40, Fours: 6, Sixes: 1, IsOut: true},
		Fielding: performance.Fielding{Catches: 1},
	}

	record, err := f.svc.ScorePerformance(ctx, perf)
	require.NoError(t, err)
	// 55 runs + 12 fours + 4 sixes + 20 fifty bonus + 10 catch.
	assert.Equal(t, 101, record.TotalPoints)
	assert.Equal(t, 20, record.FiftyBonus)
	assert.Zero(t, record.ThirtyBonus)
	assert.Zero(t, record.Duck)

	got, found, err := f.players.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 101, got.FantasyPointsTotal)
}

func TestScoringService_RescoringDoesNotDriftTotals(t *testing.T) {
	t.Parallel()

	f := newScoringFixture(t)
	ctx := context.Background()
	require.NoError(t, f.players.Upsert(ctx, player.Player{ID: "p1", Name: "Batter"}))

	perf := performance.Performance{
		PlayerID: "p1",
		MatchID:  "m1",
		Batting:  performance.Batting{Runs: 30, BallsFaced: 25},
	}

	for i := 0; i < 3; i++ {
		_, err := f.svc.ScorePerformance(ctx, perf)
		require.NoError(t, err)
	}

	got, found, err := f.players.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.True(t, found)
	// 30 runs + 10 thirty bonus, counted once.
	assert.Equal(t, 40, got.FantasyPointsTotal)

	records, err := f.points.ListByPlayer(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestScoringService_ScoreMatchRequiresCompletedMatch(t *testing.T) {
	t.Parallel()

	f := newScoringFixture(t)
	ctx := context.Background()

	require.NoError(t, f.matches.Upsert(ctx, match.Match{
		ID: "m-live", ProviderID: "m-live", Status: match.StatusLive,
		Team1ID: "t1", Team2ID: "t2",
	}))

	_, err := f.svc.ScoreMatch(ctx, "m-live")
	require.ErrorIs(t, err, ErrScoring)

	_, err = f.svc.ScoreMatch(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestScoringService_ScoreMatchScoresEveryPerformance(t *testing.T) {
	t.Parallel()

	f := newScoringFixture(t)
	ctx := context.Background()
	f.seedCompletedMatch(t, "m1")

	require.NoError(t, f.performances.Upsert(ctx, performance.Performance{
		PlayerID: "p1", MatchID: "m1",
		Batting: performance.Batting{Runs: 0, BallsFaced: 3, IsOut: true},
	}))
	require.NoError(t, f.performances.Upsert(ctx, performance.Performance{
		PlayerID: "p2", MatchID: "m1",
		Bowling: performance.Bowling{Overs: 10, Maidens: 2, Wickets: 5},
	}))

	scored, err := f.svc.ScoreMatch(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 2, scored)

	duck, found, err := f.points.GetByMatchAndPlayer(ctx, "m1", "p1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, -5, duck.TotalPoints)

	bowler, found, err := f.points.GetByMatchAndPlayer(ctx, "m1", "p2")
	require.NoError(t, err)
	require.True(t, found)
	// 125 wickets + 10 maidens + 20 five-wicket bonus.
	assert.Equal(t, 155, bowler.TotalPoints)
	assert.Zero(t, bowler.ThreeWicketBonus)
}

func TestScoringService_BackfillScoresUnscoredCompletedMatches(t *testing.T) {
	t.Parallel()

	f := newScoringFixture(t)
	ctx := context.Background()

	f.seedCompletedMatch(t, "m1")
	f.seedCompletedMatch(t, "m2")
	f.seedCompletedMatch(t, "m3")
	require.NoError(t, f.matches.Upsert(ctx, match.Match{
		ID: "m-live", ProviderID: "m-live", Status: match.StatusLive,
		Team1ID: "t1", Team2ID: "t2",
	}))

	// m1 has performances, m2 is already scored, m3 has nothing to score.
	require.NoError(t, f.performances.Upsert(ctx, performance.Performance{
		PlayerID: "p1", MatchID: "m1",
		Batting: performance.Batting{Runs: 75, BallsFaced: 50},
	}))
	require.NoError(t, f.performances.Upsert(ctx, performance.Performance{
		PlayerID: "p1", MatchID: "m2",
		Batting: performance.Batting{Runs: 10, BallsFaced: 8},
	}))
	_, err := f.svc.ScoreMatch(ctx, "m2")
	require.NoError(t, err)

	report, err := f.svc.UpdateFantasyPointsForCompletedMatches(ctx)
	require.NoError(t, err)
	assert.Equal(t, BackfillReport{Scanned: 3, Scored: 1, Skipped: 2}, report)

	record, found, err := f.points.GetByMatchAndPlayer(ctx, "m1", "p1")
	require.NoError(t, err)
	require.True(t, found)
	// 75 runs + 20 fifty bonus.
	assert.Equal(t, 95, record.TotalPoints)
}

func TestScoringService_RejectsInvalidPerformance(t *testing.T) {
	t.Parallel()

	f := newScoringFixture(t)

	_, err := f.svc.ScorePerformance(context.Background(), performance.Performance{
		PlayerID: "p1",
		MatchID:  "m1",
		Batting:  performance.Batting{Runs: -1},
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}
