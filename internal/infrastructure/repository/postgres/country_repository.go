package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/cricstack/fantasy-core/internal/domain/country"
)

type countryTableModel struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	UpdatedAt time.Time `db:"updated_at"`
}

type CountryRepository struct {
	db *sqlx.DB
}

func NewCountryRepository(db *sqlx.DB) *CountryRepository {
	return &CountryRepository{db: db}
}

func (r *CountryRepository) Upsert(ctx context.Context, item country.Country) error {
	if err := item.Validate(); err != nil {
		return err
	}

	const query = `
		INSERT INTO countries (id, name, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			updated_at = EXCLUDED.updated_at`

	if _, err := r.db.ExecContext(ctx, query, item.ID, item.Name, item.UpdatedAt); err != nil {
		return fmt.Errorf("upsert country: %w", err)
	}

	return nil
}

func (r *CountryRepository) GetByID(ctx context.Context, id string) (country.Country, bool, error) {
	var row countryTableModel
	err := r.db.GetContext(ctx, &row, `SELECT id, name, updated_at FROM countries WHERE id = $1`, id)
	if isNotFound(err) {
		return country.Country{}, false, nil
	}
	if err != nil {
		return country.Country{}, false, fmt.Errorf("select country: %w", err)
	}

	return country.Country(row), true, nil
}

func (r *CountryRepository) List(ctx context.Context) ([]country.Country, error) {
	var rows []countryTableModel
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, name, updated_at FROM countries ORDER BY name`); err != nil {
		return nil, fmt.Errorf("select countries: %w", err)
	}

	out := make([]country.Country, 0, len(rows))
	for _, row := range rows {
		out = append(out, country.Country(row))
	}

	return out, nil
}
