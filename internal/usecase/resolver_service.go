package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cricstack/fantasy-core/external/cricketdata"
	"github.com/cricstack/fantasy-core/internal/domain/country"
	"github.com/cricstack/fantasy-core/internal/domain/match"
	"github.com/cricstack/fantasy-core/internal/domain/player"
	"github.com/cricstack/fantasy-core/internal/domain/series"
	"github.com/cricstack/fantasy-core/internal/domain/team"
	"github.com/cricstack/fantasy-core/internal/platform/logging"
)

// ResolverService maps raw provider records onto canonical documents. Every
// upsert is idempotent: syncing the same page twice leaves the store in the
// same state.
type ResolverService struct {
	countryRepo country.Repository
	seriesRepo  series.Repository
	teamRepo    team.Repository
	playerRepo  player.Repository
	matchRepo   match.Repository
	logger      *logging.Logger
	now         func() time.Time
}

func NewResolverService(
	countryRepo country.Repository,
	seriesRepo series.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
	logger *logging.Logger,
) *ResolverService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ResolverService{
		countryRepo: countryRepo,
		seriesRepo:  seriesRepo,
		teamRepo:    teamRepo,
		playerRepo:  playerRepo,
		matchRepo:   matchRepo,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *ResolverService) UpsertCountry(ctx context.Context, raw cricketdata.RawCountry) (country.Country, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResolverService.UpsertCountry")
	defer span.End()

	item := country.Country{
		ID:        strings.TrimSpace(raw.ID),
		Name:      strings.TrimSpace(raw.Name),
		UpdatedAt: s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return country.Country{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.countryRepo.Upsert(ctx, item); err != nil {
		return country.Country{}, fmt.Errorf("%w: upsert country %s: %v", ErrStore, item.ID, err)
	}

	return item, nil
}

func (s *ResolverService) UpsertSeries(ctx context.Context, raw cricketdata.RawSeries) (series.Series, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResolverService.UpsertSeries")
	defer span.End()

	item := series.Series{
		ID:        strings.TrimSpace(raw.ID),
		Name:      strings.TrimSpace(raw.Name),
		StartDate: raw.StartDate,
		EndDate:   raw.EndDate,
		Counts: series.Counts{
			ODI:     raw.ODI,
			T20:     raw.T20,
			Test:    raw.Test,
			Squads:  raw.Squads,
			Matches: raw.Matches,
		},
		UpdatedAt: s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return series.Series{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.seriesRepo.Upsert(ctx, item); err != nil {
		return series.Series{}, fmt.Errorf("%w: upsert series %s: %v", ErrStore, item.ID, err)
	}

	return item, nil
}

// ResolveTeam returns the canonical team for a country or franchise name,
// creating it when absent. The id derives from the name alone, so resolution
// never duplicates a team.
func (s *ResolverService) ResolveTeam(ctx context.Context, name string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResolverService.ResolveTeam")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	candidate := team.Team{
		ID:        team.SlugID(name),
		Name:      name,
		ShortName: team.ShortNameFor(name),
		Country:   name,
		IsActive:  true,
	}

	resolved, err := s.teamRepo.FindOrCreate(ctx, candidate)
	if err != nil {
		return team.Team{}, fmt.Errorf("%w: resolve team %q: %v", ErrStore, name, err)
	}

	return resolved, nil
}

// UpsertPlayer reconciles a raw player against the canonical store. The
// provider id is the identity key; a player without one reuses a locally
// minted document with the same name, or gets a fallback id derived from the
// name plus the resolution time.
func (s *ResolverService) UpsertPlayer(ctx context.Context, raw cricketdata.RawPlayer) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResolverService.UpsertPlayer")
	defer span.End()

	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return player.Player{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}

	providerID := strings.TrimSpace(raw.ID)
	item := player.Player{
		ProviderID:   providerID,
		Name:         name,
		Country:      strings.TrimSpace(raw.Country),
		Role:         strings.TrimSpace(raw.Role),
		BattingStyle: strings.TrimSpace(raw.BattingStyle),
		BowlingStyle: strings.TrimSpace(raw.BowlingStyle),
		Form:         player.FormAverage,
		UpdatedAt:    s.now().UTC(),
	}

	if providerID != "" {
		existing, found, err := s.playerRepo.GetByProviderID(ctx, providerID)
		if err != nil {
			return player.Player{}, fmt.Errorf("%w: look up player %s: %v", ErrStore, providerID, err)
		}
		if found {
			item.ID = existing.ID
			item.TeamID = existing.TeamID
			item.Form = existing.Form
			item.IsInjured = existing.IsInjured
			item.Stats = existing.Stats
			item.FantasyPointsTotal = existing.FantasyPointsTotal
		} else {
			item.ID = providerID
		}
	} else {
		existing, found, err := s.playerRepo.GetByName(ctx, name)
		if err != nil {
			return player.Player{}, fmt.Errorf("%w: look up player %q: %v", ErrStore, name, err)
		}
		if found && existing.ProviderID == "" {
			item.ID = existing.ID
			item.TeamID = existing.TeamID
			item.Form = existing.Form
			item.IsInjured = existing.IsInjured
			item.Stats = existing.Stats
			item.FantasyPointsTotal = existing.FantasyPointsTotal
		} else {
			item.ID = fallbackPlayerID(name, s.now())
		}
	}

	// Team assignment happens at creation; later syncs never move a player
	// whose team is already set.
	if item.TeamID == "" && item.Country != "" {
		resolved, err := s.ResolveTeam(ctx, item.Country)
		if err != nil {
			return player.Player{}, fmt.Errorf("%w: %v", ErrResolution, err)
		}
		item.TeamID = resolved.ID
	}

	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.playerRepo.Upsert(ctx, item); err != nil {
		return player.Player{}, fmt.Errorf("%w: upsert player %s: %v", ErrStore, item.ID, err)
	}

	return item, nil
}

// UpsertMatch reconciles a raw match. Both team names must be present and
// resolvable, otherwise the record is rejected and the caller skips it.
func (s *ResolverService) UpsertMatch(ctx context.Context, raw cricketdata.RawMatch) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResolverService.UpsertMatch")
	defer span.End()

	providerID := strings.TrimSpace(raw.ID)
	if providerID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if len(raw.Teams) < 2 || strings.TrimSpace(raw.Teams[0]) == "" || strings.TrimSpace(raw.Teams[1]) == "" {
		return match.Match{}, fmt.Errorf("%w: match %s requires two team names", ErrInvalidInput, providerID)
	}

	team1, err := s.ResolveTeam(ctx, raw.Teams[0])
	if err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrResolution, err)
	}
	team2, err := s.ResolveTeam(ctx, raw.Teams[1])
	if err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrResolution, err)
	}

	item := match.Match{
		ID:          providerID,
		ProviderID:  providerID,
		Name:        strings.TrimSpace(raw.Name),
		MatchType:   match.NormalizeType(raw.MatchType),
		Status:      match.NormalizeStatus(raw.Status),
		ScheduledAt: parseMatchTime(raw),
		Team1ID:     team1.ID,
		Team2ID:     team2.ID,
		Venue:       strings.TrimSpace(raw.Venue),
		SeriesID:    strings.TrimSpace(raw.SeriesID),
		Flags: match.Flags{
			FantasyEnabled: raw.FantasyEnabled,
			BBBEnabled:     raw.BBBEnabled,
			HasSquad:       raw.HasSquad,
			MatchStarted:   raw.MatchStarted,
			MatchEnded:     raw.MatchEnded,
		},
		UpdatedAt: s.now().UTC(),
	}

	if existing, found, lookupErr := s.matchRepo.GetByProviderID(ctx, providerID); lookupErr == nil && found {
		item.ID = existing.ID
	} else if lookupErr != nil {
		return match.Match{}, fmt.Errorf("%w: look up match %s: %v", ErrStore, providerID, lookupErr)
	}

	if err := item.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.matchRepo.Upsert(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("%w: upsert match %s: %v", ErrStore, item.ID, err)
	}

	return item, nil
}

func fallbackPlayerID(name string, now time.Time) string {
	slug := strings.Join(strings.Fields(strings.ToLower(name)), "_")
	return fmt.Sprintf("cricfeed_%s_%d", slug, now.UTC().Unix())
}

func parseMatchTime(raw cricketdata.RawMatch) time.Time {
	for _, candidate := range []struct {
		layout string
		value  string
	}{
		{time.RFC3339, raw.DateTimeGMT},
		{"2006-01-02T15:04:05", raw.DateTimeGMT},
		{"2006-01-02", raw.Date},
	} {
		if strings.TrimSpace(candidate.value) == "" {
			continue
		}
		if parsed, err := time.Parse(candidate.layout, candidate.value); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}
