package series

import "context"

type Repository interface {
	Upsert(ctx context.Context, item Series) error
	GetByID(ctx context.Context, id string) (Series, bool, error)
	List(ctx context.Context) ([]Series, error)
}
