package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/cricstack/fantasy-core/internal/domain/series"
)

type seriesTableModel struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	StartDate    string    `db:"start_date"`
	EndDate      string    `db:"end_date"`
	ODICount     int       `db:"odi_count"`
	T20Count     int       `db:"t20_count"`
	TestCount    int       `db:"test_count"`
	SquadsCount  int       `db:"squads_count"`
	MatchesCount int       `db:"matches_count"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (m seriesTableModel) toDomain() series.Series {
	return series.Series{
		ID:        m.ID,
		Name:      m.Name,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		Counts: series.Counts{
			ODI:     m.ODICount,
			T20:     m.T20Count,
			Test:    m.TestCount,
			Squads:  m.SquadsCount,
			Matches: m.MatchesCount,
		},
		UpdatedAt: m.UpdatedAt,
	}
}

type SeriesRepository struct {
	db *sqlx.DB
}

func NewSeriesRepository(db *sqlx.DB) *SeriesRepository {
	return &SeriesRepository{db: db}
}

const seriesSelectColumns = `id, name, start_date, end_date, odi_count, t20_count, test_count, squads_count, matches_count, updated_at`

func (r *SeriesRepository) Upsert(ctx context.Context, item series.Series) error {
	if err := item.Validate(); err != nil {
		return err
	}

	const query = `
		INSERT INTO series (id, name, start_date, end_date, odi_count, t20_count, test_count, squads_count, matches_count, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			odi_count = EXCLUDED.odi_count,
			t20_count = EXCLUDED.t20_count,
			test_count = EXCLUDED.test_count,
			squads_count = EXCLUDED.squads_count,
			matches_count = EXCLUDED.matches_count,
			updated_at = EXCLUDED.updated_at`

	if _, err := r.db.ExecContext(ctx, query,
		item.ID, item.Name, item.StartDate, item.EndDate,
		item.Counts.ODI, item.Counts.T20, item.Counts.Test,
		item.Counts.Squads, item.Counts.Matches, item.UpdatedAt,
	); err != nil {
		return fmt.Errorf("upsert series: %w", err)
	}

	return nil
}

func (r *SeriesRepository) GetByID(ctx context.Context, id string) (series.Series, bool, error) {
	var row seriesTableModel
	err := r.db.GetContext(ctx, &row, `SELECT `+seriesSelectColumns+` FROM series WHERE id = $1`, id)
	if isNotFound(err) {
		return series.Series{}, false, nil
	}
	if err != nil {
		return series.Series{}, false, fmt.Errorf("select series: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *SeriesRepository) List(ctx context.Context) ([]series.Series, error) {
	var rows []seriesTableModel
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+seriesSelectColumns+` FROM series ORDER BY name`); err != nil {
		return nil, fmt.Errorf("select series list: %w", err)
	}

	out := make([]series.Series, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}
