package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/cricstack/fantasy-core/internal/domain/performance"
)

type performanceTableModel struct {
	MatchID  string `db:"match_id"`
	PlayerID string `db:"player_id"`
	Batting  []byte `db:"batting"`
	Bowling  []byte `db:"bowling"`
	Fielding []byte `db:"fielding"`
}

func (m performanceTableModel) toDomain() (performance.Performance, error) {
	out := performance.Performance{
		MatchID:  m.MatchID,
		PlayerID: m.PlayerID,
	}
	if err := sonic.Unmarshal(m.Batting, &out.Batting); err != nil {
		return performance.Performance{}, fmt.Errorf("decode batting figures: %w", err)
	}
	if err := sonic.Unmarshal(m.Bowling, &out.Bowling); err != nil {
		return performance.Performance{}, fmt.Errorf("decode bowling figures: %w", err)
	}
	if err := sonic.Unmarshal(m.Fielding, &out.Fielding); err != nil {
		return performance.Performance{}, fmt.Errorf("decode fielding figures: %w", err)
	}
	return out, nil
}

type PerformanceRepository struct {
	db *sqlx.DB
}

func NewPerformanceRepository(db *sqlx.DB) *PerformanceRepository {
	return &PerformanceRepository{db: db}
}

func (r *PerformanceRepository) Upsert(ctx context.Context, item performance.Performance) error {
	if err := item.Validate(); err != nil {
		return err
	}

	batting, err := sonic.Marshal(item.Batting)
	if err != nil {
		return fmt.Errorf("encode batting figures: %w", err)
	}
	bowling, err := sonic.Marshal(item.Bowling)
	if err != nil {
		return fmt.Errorf("encode bowling figures: %w", err)
	}
	fielding, err := sonic.Marshal(item.Fielding)
	if err != nil {
		return fmt.Errorf("encode fielding figures: %w", err)
	}

	const query = `
		INSERT INTO performances (match_id, player_id, batting, bowling, fielding)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (match_id, player_id) DO UPDATE SET
			batting = EXCLUDED.batting,
			bowling = EXCLUDED.bowling,
			fielding = EXCLUDED.fielding`

	if _, err := r.db.ExecContext(ctx, query, item.MatchID, item.PlayerID, batting, bowling, fielding); err != nil {
		return fmt.Errorf("upsert performance: %w", err)
	}

	return nil
}

func (r *PerformanceRepository) ListByMatch(ctx context.Context, matchID string) ([]performance.Performance, error) {
	var rows []performanceTableModel
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT match_id, player_id, batting, bowling, fielding FROM performances WHERE match_id = $1 ORDER BY player_id`, matchID); err != nil {
		return nil, fmt.Errorf("select performances by match: %w", err)
	}

	out := make([]performance.Performance, 0, len(rows))
	for _, row := range rows {
		item, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}

	return out, nil
}
