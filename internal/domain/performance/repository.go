package performance

import "context"

type Repository interface {
	Upsert(ctx context.Context, item Performance) error
	ListByMatch(ctx context.Context, matchID string) ([]Performance, error)
}
