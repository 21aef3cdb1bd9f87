package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/cricstack/fantasy-core/internal/domain/match"
)

type matchTableModel struct {
	ID             string    `db:"id"`
	ProviderID     string    `db:"provider_id"`
	Name           string    `db:"name"`
	MatchType      string    `db:"match_type"`
	Status         string    `db:"status"`
	ScheduledAt    time.Time `db:"scheduled_at"`
	Team1ID        string    `db:"team1_id"`
	Team2ID        string    `db:"team2_id"`
	Venue          string    `db:"venue"`
	SeriesID       string    `db:"series_id"`
	FantasyEnabled bool      `db:"fantasy_enabled"`
	BBBEnabled     bool      `db:"bbb_enabled"`
	HasSquad       bool      `db:"has_squad"`
	MatchStarted   bool      `db:"match_started"`
	MatchEnded     bool      `db:"match_ended"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:          m.ID,
		ProviderID:  m.ProviderID,
		Name:        m.Name,
		MatchType:   m.MatchType,
		Status:      m.Status,
		ScheduledAt: m.ScheduledAt,
		Team1ID:     m.Team1ID,
		Team2ID:     m.Team2ID,
		Venue:       m.Venue,
		SeriesID:    m.SeriesID,
		Flags: match.Flags{
			FantasyEnabled: m.FantasyEnabled,
			BBBEnabled:     m.BBBEnabled,
			HasSquad:       m.HasSquad,
			MatchStarted:   m.MatchStarted,
			MatchEnded:     m.MatchEnded,
		},
		UpdatedAt: m.UpdatedAt,
	}
}

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

const matchSelectColumns = `id, provider_id, name, match_type, status, scheduled_at, team1_id, team2_id, venue, series_id, fantasy_enabled, bbb_enabled, has_squad, match_started, match_ended, updated_at`

func (r *MatchRepository) Upsert(ctx context.Context, item match.Match) error {
	if err := item.Validate(); err != nil {
		return err
	}

	const query = `
		INSERT INTO matches (id, provider_id, name, match_type, status, scheduled_at, team1_id, team2_id, venue, series_id, fantasy_enabled, bbb_enabled, has_squad, match_started, match_ended, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET
			provider_id = EXCLUDED.provider_id,
			name = EXCLUDED.name,
			match_type = EXCLUDED.match_type,
			status = EXCLUDED.status,
			scheduled_at = EXCLUDED.scheduled_at,
			team1_id = EXCLUDED.team1_id,
			team2_id = EXCLUDED.team2_id,
			venue = EXCLUDED.venue,
			series_id = EXCLUDED.series_id,
			fantasy_enabled = EXCLUDED.fantasy_enabled,
			bbb_enabled = EXCLUDED.bbb_enabled,
			has_squad = EXCLUDED.has_squad,
			match_started = EXCLUDED.match_started,
			match_ended = EXCLUDED.match_ended,
			updated_at = EXCLUDED.updated_at`

	if _, err := r.db.ExecContext(ctx, query,
		item.ID, item.ProviderID, item.Name, item.MatchType, item.Status,
		item.ScheduledAt, item.Team1ID, item.Team2ID, item.Venue, item.SeriesID,
		item.Flags.FantasyEnabled, item.Flags.BBBEnabled, item.Flags.HasSquad,
		item.Flags.MatchStarted, item.Flags.MatchEnded, item.UpdatedAt,
	); err != nil {
		return fmt.Errorf("upsert match: %w", err)
	}

	return nil
}

func (r *MatchRepository) GetByID(ctx context.Context, id string) (match.Match, bool, error) {
	var row matchTableModel
	err := r.db.GetContext(ctx, &row, `SELECT `+matchSelectColumns+` FROM matches WHERE id = $1`, id)
	if isNotFound(err) {
		return match.Match{}, false, nil
	}
	if err != nil {
		return match.Match{}, false, fmt.Errorf("select match: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *MatchRepository) GetByProviderID(ctx context.Context, providerID string) (match.Match, bool, error) {
	var row matchTableModel
	err := r.db.GetContext(ctx, &row, `SELECT `+matchSelectColumns+` FROM matches WHERE provider_id = $1`, providerID)
	if isNotFound(err) {
		return match.Match{}, false, nil
	}
	if err != nil {
		return match.Match{}, false, fmt.Errorf("select match by provider id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *MatchRepository) ListByStatus(ctx context.Context, status string) ([]match.Match, error) {
	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT `+matchSelectColumns+` FROM matches WHERE status = $1 ORDER BY scheduled_at, id`, status); err != nil {
		return nil, fmt.Errorf("select matches by status: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+matchSelectColumns+` FROM matches ORDER BY scheduled_at, id`); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}
