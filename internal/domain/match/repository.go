package match

import "context"

type Repository interface {
	Upsert(ctx context.Context, item Match) error
	GetByID(ctx context.Context, id string) (Match, bool, error)
	GetByProviderID(ctx context.Context, providerID string) (Match, bool, error)
	ListByStatus(ctx context.Context, status string) ([]Match, error)
	List(ctx context.Context) ([]Match, error)
}
