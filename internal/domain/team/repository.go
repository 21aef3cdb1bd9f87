package team

import "context"

// Repository describes team persistence needs from use cases.
//
// FindOrCreate must be atomic: concurrent calls for the same name may not
// produce more than one team document.
type Repository interface {
	Upsert(ctx context.Context, item Team) error
	GetByID(ctx context.Context, id string) (Team, bool, error)
	FindByCountry(ctx context.Context, country string) (Team, bool, error)
	FindOrCreate(ctx context.Context, item Team) (Team, error)
	List(ctx context.Context) ([]Team, error)
}
