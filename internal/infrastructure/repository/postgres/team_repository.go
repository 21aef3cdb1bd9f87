package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/cricstack/fantasy-core/internal/domain/team"
)

type teamTableModel struct {
	ID         string `db:"id"`
	Name       string `db:"name"`
	ShortName  string `db:"short_name"`
	Country    string `db:"country"`
	SquadIDs   []byte `db:"squad_ids"`
	CaptainID  string `db:"captain_id"`
	Ranking    int    `db:"ranking"`
	IsActive   bool   `db:"is_active"`
	ProviderID string `db:"provider_id"`
}

func (m teamTableModel) toDomain() (team.Team, error) {
	out := team.Team{
		ID:         m.ID,
		Name:       m.Name,
		ShortName:  m.ShortName,
		Country:    m.Country,
		CaptainID:  m.CaptainID,
		Ranking:    m.Ranking,
		IsActive:   m.IsActive,
		ProviderID: m.ProviderID,
	}
	if len(m.SquadIDs) > 0 {
		if err := sonic.Unmarshal(m.SquadIDs, &out.SquadIDs); err != nil {
			return team.Team{}, fmt.Errorf("decode team squad ids: %w", err)
		}
	}
	return out, nil
}

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

const teamSelectColumns = `id, name, short_name, country, squad_ids, captain_id, ranking, is_active, provider_id`

func (r *TeamRepository) Upsert(ctx context.Context, item team.Team) error {
	if err := item.Validate(); err != nil {
		return err
	}

	squadIDs, err := sonic.Marshal(item.SquadIDs)
	if err != nil {
		return fmt.Errorf("encode team squad ids: %w", err)
	}

	const query = `
		INSERT INTO teams (id, name, short_name, country, squad_ids, captain_id, ranking, is_active, provider_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			short_name = EXCLUDED.short_name,
			country = EXCLUDED.country,
			squad_ids = EXCLUDED.squad_ids,
			captain_id = EXCLUDED.captain_id,
			ranking = EXCLUDED.ranking,
			is_active = EXCLUDED.is_active,
			provider_id = EXCLUDED.provider_id`

	if _, err := r.db.ExecContext(ctx, query,
		item.ID, item.Name, item.ShortName, item.Country, squadIDs,
		item.CaptainID, item.Ranking, item.IsActive, item.ProviderID,
	); err != nil {
		return fmt.Errorf("upsert team: %w", err)
	}

	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id string) (team.Team, bool, error) {
	var row teamTableModel
	err := r.db.GetContext(ctx, &row, `SELECT `+teamSelectColumns+` FROM teams WHERE id = $1`, id)
	if isNotFound(err) {
		return team.Team{}, false, nil
	}
	if err != nil {
		return team.Team{}, false, fmt.Errorf("select team: %w", err)
	}

	out, err := row.toDomain()
	if err != nil {
		return team.Team{}, false, err
	}
	return out, true, nil
}

func (r *TeamRepository) FindByCountry(ctx context.Context, country string) (team.Team, bool, error) {
	var row teamTableModel
	err := r.db.GetContext(ctx, &row,
		`SELECT `+teamSelectColumns+` FROM teams WHERE LOWER(country) = LOWER($1) ORDER BY id LIMIT 1`, country)
	if isNotFound(err) {
		return team.Team{}, false, nil
	}
	if err != nil {
		return team.Team{}, false, fmt.Errorf("select team by country: %w", err)
	}

	out, err := row.toDomain()
	if err != nil {
		return team.Team{}, false, err
	}
	return out, true, nil
}

// FindOrCreate relies on the primary key: a conflicting concurrent insert is
// a no-op and the winning row is read back, so only one team per id can ever
// exist.
func (r *TeamRepository) FindOrCreate(ctx context.Context, item team.Team) (team.Team, error) {
	if err := item.Validate(); err != nil {
		return team.Team{}, err
	}

	squadIDs, err := sonic.Marshal(item.SquadIDs)
	if err != nil {
		return team.Team{}, fmt.Errorf("encode team squad ids: %w", err)
	}

	const query = `
		INSERT INTO teams (id, name, short_name, country, squad_ids, captain_id, ranking, is_active, provider_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query,
		item.ID, item.Name, item.ShortName, item.Country, squadIDs,
		item.CaptainID, item.Ranking, item.IsActive, item.ProviderID,
	); err != nil {
		return team.Team{}, fmt.Errorf("insert team: %w", err)
	}

	existing, found, err := r.GetByID(ctx, item.ID)
	if err != nil {
		return team.Team{}, err
	}
	if !found {
		return team.Team{}, fmt.Errorf("team %s missing after insert", item.ID)
	}

	return existing, nil
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+teamSelectColumns+` FROM teams ORDER BY name`); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		item, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}

	return out, nil
}
