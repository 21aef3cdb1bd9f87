package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cricstack/fantasy-core/internal/domain/fantasy"
	"github.com/cricstack/fantasy-core/internal/domain/match"
	"github.com/cricstack/fantasy-core/internal/domain/player"
	"github.com/cricstack/fantasy-core/internal/platform/resilience"
)

const (
	defaultMatchLeaderboardSize   = 20
	defaultOverallLeaderboardSize = 50
	defaultPlayerTrendSize        = 10
)

// MatchLeaderboardEntry ranks one player's scored record within a match.
type MatchLeaderboardEntry struct {
	Rank        int
	PlayerID    string
	PlayerName  string
	TotalPoints int
	Batting     int
	Bowling     int
	Fielding    int
}

// OverallLeaderboardEntry aggregates a player's records across all matches.
type OverallLeaderboardEntry struct {
	Rank          int
	PlayerID      string
	PlayerName    string
	TotalPoints   int
	AveragePoints float64
	HighestPoints int
	Matches       int
}

// PlayerTrendEntry is one scored match in a player's recent history.
type PlayerTrendEntry struct {
	MatchID     string
	MatchName   string
	MatchType   string
	ScheduledAt time.Time
	Team1ID     string
	Team2ID     string
	TotalPoints int
}

// LeaderboardService builds read-side rankings from stored points records.
// All ordering is deterministic: ties break on ascending player id.
type LeaderboardService struct {
	fantasyRepo fantasy.Repository
	playerRepo  player.Repository
	matchRepo   match.Repository
	flight      resilience.SingleFlight
}

func NewLeaderboardService(fantasyRepo fantasy.Repository, playerRepo player.Repository, matchRepo match.Repository) *LeaderboardService {
	return &LeaderboardService{
		fantasyRepo: fantasyRepo,
		playerRepo:  playerRepo,
		matchRepo:   matchRepo,
	}
}

// MatchLeaderboard ranks players within one match by total points descending.
// limit <= 0 uses the default of 20.
func (s *LeaderboardService) MatchLeaderboard(ctx context.Context, matchID string, limit int) ([]MatchLeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.MatchLeaderboard")
	defer span.End()

	if matchID == "" {
		return nil, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if limit <= 0 {
		limit = defaultMatchLeaderboardSize
	}

	if _, found, err := s.matchRepo.GetByID(ctx, matchID); err != nil {
		return nil, fmt.Errorf("%w: load match %s: %v", ErrStore, matchID, err)
	} else if !found {
		return nil, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}

	records, err := s.fantasyRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("%w: list points for match %s: %v", ErrStore, matchID, err)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].TotalPoints != records[j].TotalPoints {
			return records[i].TotalPoints > records[j].TotalPoints
		}
		return records[i].PlayerID < records[j].PlayerID
	})

	if len(records) > limit {
		records = records[:limit]
	}

	entries := make([]MatchLeaderboardEntry, 0, len(records))
	for i, record := range records {
		entries = append(entries, MatchLeaderboardEntry{
			Rank:        i + 1,
			PlayerID:    record.PlayerID,
			PlayerName:  s.playerName(ctx, record.PlayerID),
			TotalPoints: record.TotalPoints,
			Batting:     record.BattingPoints(),
			Bowling:     record.BowlingPoints(),
			Fielding:    record.FieldingPoints(),
		})
	}

	return entries, nil
}

// OverallLeaderboard ranks players by their summed points across all scored
// matches. limit <= 0 uses the default of 50. Concurrent identical requests
// share one full-table aggregation.
func (s *LeaderboardService) OverallLeaderboard(ctx context.Context, limit int) ([]OverallLeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.OverallLeaderboard")
	defer span.End()

	if limit <= 0 {
		limit = defaultOverallLeaderboardSize
	}

	result, err, _ := s.flight.Do(fmt.Sprintf("overall:%d", limit), func() (any, error) {
		return s.buildOverallLeaderboard(ctx, limit)
	})
	if err != nil {
		return nil, err
	}

	entries, ok := result.([]OverallLeaderboardEntry)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected leaderboard result type", ErrStore)
	}

	return entries, nil
}

func (s *LeaderboardService) buildOverallLeaderboard(ctx context.Context, limit int) ([]OverallLeaderboardEntry, error) {
	records, err := s.fantasyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list points records: %v", ErrStore, err)
	}

	byPlayer := make(map[string]*OverallLeaderboardEntry)
	for _, record := range records {
		entry, ok := byPlayer[record.PlayerID]
		if !ok {
			entry = &OverallLeaderboardEntry{PlayerID: record.PlayerID}
			byPlayer[record.PlayerID] = entry
		}
		entry.TotalPoints += record.TotalPoints
		entry.Matches++
		if record.TotalPoints > entry.HighestPoints {
			entry.HighestPoints = record.TotalPoints
		}
	}

	entries := make([]OverallLeaderboardEntry, 0, len(byPlayer))
	for _, entry := range byPlayer {
		entry.AveragePoints = float64(entry.TotalPoints) / float64(entry.Matches)
		entry.PlayerName = s.playerName(ctx, entry.PlayerID)
		entries = append(entries, *entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries, nil
}

// PlayerTrend returns the player's most recent scored matches, newest first.
// limit <= 0 uses the default of 10.
func (s *LeaderboardService) PlayerTrend(ctx context.Context, playerID string, limit int) ([]PlayerTrendEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.PlayerTrend")
	defer span.End()

	if playerID == "" {
		return nil, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if limit <= 0 {
		limit = defaultPlayerTrendSize
	}

	if _, found, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		return nil, fmt.Errorf("%w: load player %s: %v", ErrStore, playerID, err)
	} else if !found {
		return nil, fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}

	records, err := s.fantasyRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("%w: list points for player %s: %v", ErrStore, playerID, err)
	}

	entries := make([]PlayerTrendEntry, 0, len(records))
	for _, record := range records {
		entry := PlayerTrendEntry{
			MatchID:     record.MatchID,
			TotalPoints: record.TotalPoints,
		}
		if m, found, lookupErr := s.matchRepo.GetByID(ctx, record.MatchID); lookupErr == nil && found {
			entry.MatchName = m.Name
			entry.MatchType = m.MatchType
			entry.ScheduledAt = m.ScheduledAt
			entry.Team1ID = m.Team1ID
			entry.Team2ID = m.Team2ID
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].ScheduledAt.Equal(entries[j].ScheduledAt) {
			return entries[i].ScheduledAt.After(entries[j].ScheduledAt)
		}
		return entries[i].MatchID > entries[j].MatchID
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}

func (s *LeaderboardService) playerName(ctx context.Context, playerID string) string {
	if p, found, err := s.playerRepo.GetByID(ctx, playerID); err == nil && found {
		return p.Name
	}
	return ""
}
