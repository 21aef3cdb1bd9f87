package country

import "context"

// Repository describes country persistence needs from use cases.
type Repository interface {
	Upsert(ctx context.Context, item Country) error
	GetByID(ctx context.Context, id string) (Country, bool, error)
	List(ctx context.Context) ([]Country, error)
}
