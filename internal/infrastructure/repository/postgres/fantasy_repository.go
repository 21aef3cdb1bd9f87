package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/cricstack/fantasy-core/internal/domain/fantasy"
)

type pointsTableModel struct {
	MatchID          string    `db:"match_id"`
	PlayerID         string    `db:"player_id"`
	Runs             int       `db:"runs"`
	Fours            int       `db:"fours"`
	Sixes            int       `db:"sixes"`
	ThirtyBonus      int       `db:"thirty_bonus"`
	FiftyBonus       int       `db:"fifty_bonus"`
	HundredBonus     int       `db:"hundred_bonus"`
	Wickets          int       `db:"wickets"`
	Maidens          int       `db:"maidens"`
	ThreeWicketBonus int       `db:"three_wicket_bonus"`
	FiveWicketBonus  int       `db:"five_wicket_bonus"`
	Catches          int       `db:"catches"`
	Stumps           int       `db:"stumps"`
	RunOuts          int       `db:"run_outs"`
	Duck             int       `db:"duck"`
	TotalPoints      int       `db:"total_points"`
	CreatedAt        time.Time `db:"created_at"`
}

func (m pointsTableModel) toDomain() fantasy.PointsRecord {
	return fantasy.PointsRecord(m)
}

type FantasyRepository struct {
	db *sqlx.DB
}

func NewFantasyRepository(db *sqlx.DB) *FantasyRepository {
	return &FantasyRepository{db: db}
}

const pointsSelectColumns = `match_id, player_id, runs, fours, sixes, thirty_bonus, fifty_bonus, hundred_bonus, wickets, maidens, three_wicket_bonus, five_wicket_bonus, catches, stumps, run_outs, duck, total_points, created_at`

func (r *FantasyRepository) Upsert(ctx context.Context, record fantasy.PointsRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	const query = `
		INSERT INTO fantasy_points (match_id, player_id, runs, fours, sixes, thirty_bonus, fifty_bonus, hundred_bonus, wickets, maidens, three_wicket_bonus, five_wicket_bonus, catches, stumps, run_outs, duck, total_points, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (match_id, player_id) DO UPDATE SET
			runs = EXCLUDED.runs,
			fours = EXCLUDED.fours,
			sixes = EXCLUDED.sixes,
			thirty_bonus = EXCLUDED.thirty_bonus,
			fifty_bonus = EXCLUDED.fifty_bonus,
			hundred_bonus = EXCLUDED.hundred_bonus,
			wickets = EXCLUDED.wickets,
			maidens = EXCLUDED.maidens,
			three_wicket_bonus = EXCLUDED.three_wicket_bonus,
			five_wicket_bonus = EXCLUDED.five_wicket_bonus,
			catches = EXCLUDED.catches,
			stumps = EXCLUDED.stumps,
			run_outs = EXCLUDED.run_outs,
			duck = EXCLUDED.duck,
			total_points = EXCLUDED.total_points,
			created_at = EXCLUDED.created_at`

	if _, err := r.db.ExecContext(ctx, query,
		record.MatchID, record.PlayerID, record.Runs, record.Fours, record.Sixes,
		record.ThirtyBonus, record.FiftyBonus, record.HundredBonus,
		record.Wickets, record.Maidens, record.ThreeWicketBonus, record.FiveWicketBonus,
		record.Catches, record.Stumps, record.RunOuts, record.Duck,
		record.TotalPoints, record.CreatedAt,
	); err != nil {
		return fmt.Errorf("upsert points record: %w", err)
	}

	return nil
}

func (r *FantasyRepository) GetByMatchAndPlayer(ctx context.Context, matchID, playerID string) (fantasy.PointsRecord, bool, error) {
	var row pointsTableModel
	err := r.db.GetContext(ctx, &row,
		`SELECT `+pointsSelectColumns+` FROM fantasy_points WHERE match_id = $1 AND player_id = $2`, matchID, playerID)
	if isNotFound(err) {
		return fantasy.PointsRecord{}, false, nil
	}
	if err != nil {
		return fantasy.PointsRecord{}, false, fmt.Errorf("select points record: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *FantasyRepository) ListByMatch(ctx context.Context, matchID string) ([]fantasy.PointsRecord, error) {
	var rows []pointsTableModel
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT `+pointsSelectColumns+` FROM fantasy_points WHERE match_id = $1 ORDER BY player_id`, matchID); err != nil {
		return nil, fmt.Errorf("select points by match: %w", err)
	}

	return pointsRowsToDomain(rows), nil
}

func (r *FantasyRepository) ListByPlayer(ctx context.Context, playerID string) ([]fantasy.PointsRecord, error) {
	var rows []pointsTableModel
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT `+pointsSelectColumns+` FROM fantasy_points WHERE player_id = $1 ORDER BY match_id`, playerID); err != nil {
		return nil, fmt.Errorf("select points by player: %w", err)
	}

	return pointsRowsToDomain(rows), nil
}

func (r *FantasyRepository) List(ctx context.Context) ([]fantasy.PointsRecord, error) {
	var rows []pointsTableModel
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT `+pointsSelectColumns+` FROM fantasy_points ORDER BY match_id, player_id`); err != nil {
		return nil, fmt.Errorf("select points records: %w", err)
	}

	return pointsRowsToDomain(rows), nil
}

func pointsRowsToDomain(rows []pointsTableModel) []fantasy.PointsRecord {
	out := make([]fantasy.PointsRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}
