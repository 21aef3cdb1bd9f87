package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/cricstack/fantasy-core/internal/domain/player"
)

type playerTableModel struct {
	ID                 string         `db:"id"`
	ProviderID         sql.NullString `db:"provider_id"`
	Name               string         `db:"name"`
	Country            string         `db:"country"`
	TeamID             string         `db:"team_id"`
	Role               string         `db:"role"`
	BattingStyle       string         `db:"batting_style"`
	BowlingStyle       string         `db:"bowling_style"`
	Form               string         `db:"form"`
	IsInjured          bool           `db:"is_injured"`
	Stats              []byte         `db:"stats"`
	FantasyPointsTotal int            `db:"fantasy_points_total"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

func (m playerTableModel) toDomain() (player.Player, error) {
	out := player.Player{
		ID:                 m.ID,
		ProviderID:         m.ProviderID.String,
		Name:               m.Name,
		Country:            m.Country,
		TeamID:             m.TeamID,
		Role:               m.Role,
		BattingStyle:       m.BattingStyle,
		BowlingStyle:       m.BowlingStyle,
		Form:               m.Form,
		IsInjured:          m.IsInjured,
		FantasyPointsTotal: m.FantasyPointsTotal,
		UpdatedAt:          m.UpdatedAt,
	}
	if len(m.Stats) > 0 {
		if err := sonic.Unmarshal(m.Stats, &out.Stats); err != nil {
			return player.Player{}, fmt.Errorf("decode player stats: %w", err)
		}
	}
	return out, nil
}

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

const playerSelectColumns = `id, provider_id, name, country, team_id, role, batting_style, bowling_style, form, is_injured, stats, fantasy_points_total, updated_at`

func (r *PlayerRepository) Upsert(ctx context.Context, item player.Player) error {
	if err := item.Validate(); err != nil {
		return err
	}

	stats, err := sonic.Marshal(item.Stats)
	if err != nil {
		return fmt.Errorf("encode player stats: %w", err)
	}

	// A NULL provider id keeps locally minted players outside the unique
	// provider_id constraint.
	providerID := sql.NullString{String: item.ProviderID, Valid: item.ProviderID != ""}

	const query = `
		INSERT INTO players (id, provider_id, name, country, team_id, role, batting_style, bowling_style, form, is_injured, stats, fantasy_points_total, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			provider_id = EXCLUDED.provider_id,
			name = EXCLUDED.name,
			country = EXCLUDED.country,
			team_id = EXCLUDED.team_id,
			role = EXCLUDED.role,
			batting_style = EXCLUDED.batting_style,
			bowling_style = EXCLUDED.bowling_style,
			form = EXCLUDED.form,
			is_injured = EXCLUDED.is_injured,
			stats = EXCLUDED.stats,
			fantasy_points_total = EXCLUDED.fantasy_points_total,
			updated_at = EXCLUDED.updated_at`

	if _, err := r.db.ExecContext(ctx, query,
		item.ID, providerID, item.Name, item.Country, item.TeamID,
		item.Role, item.BattingStyle, item.BowlingStyle, item.Form,
		item.IsInjured, stats, item.FantasyPointsTotal, item.UpdatedAt,
	); err != nil {
		return fmt.Errorf("upsert player: %w", err)
	}

	return nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, id string) (player.Player, bool, error) {
	var row playerTableModel
	err := r.db.GetContext(ctx, &row, `SELECT `+playerSelectColumns+` FROM players WHERE id = $1`, id)
	if isNotFound(err) {
		return player.Player{}, false, nil
	}
	if err != nil {
		return player.Player{}, false, fmt.Errorf("select player: %w", err)
	}

	out, err := row.toDomain()
	if err != nil {
		return player.Player{}, false, err
	}
	return out, true, nil
}

func (r *PlayerRepository) GetByProviderID(ctx context.Context, providerID string) (player.Player, bool, error) {
	var row playerTableModel
	err := r.db.GetContext(ctx, &row, `SELECT `+playerSelectColumns+` FROM players WHERE provider_id = $1`, providerID)
	if isNotFound(err) {
		return player.Player{}, false, nil
	}
	if err != nil {
		return player.Player{}, false, fmt.Errorf("select player by provider id: %w", err)
	}

	out, err := row.toDomain()
	if err != nil {
		return player.Player{}, false, err
	}
	return out, true, nil
}

func (r *PlayerRepository) GetByName(ctx context.Context, name string) (player.Player, bool, error) {
	// NULL provider ids sort first so a locally minted document wins over a
	// provider-linked one with the same name.
	var row playerTableModel
	err := r.db.GetContext(ctx, &row,
		`SELECT `+playerSelectColumns+` FROM players WHERE name = $1 ORDER BY (provider_id IS NOT NULL), id LIMIT 1`, name)
	if isNotFound(err) {
		return player.Player{}, false, nil
	}
	if err != nil {
		return player.Player{}, false, fmt.Errorf("select player by name: %w", err)
	}

	out, err := row.toDomain()
	if err != nil {
		return player.Player{}, false, err
	}
	return out, true, nil
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+playerSelectColumns+` FROM players ORDER BY name`); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		item, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}

	return out, nil
}
