package fantasy

import "context"

// Repository persists scored records. Upsert must replace the whole record
// keyed by (MatchID, PlayerID) or leave the prior state untouched on failure.
type Repository interface {
	Upsert(ctx context.Context, record PointsRecord) error
	GetByMatchAndPlayer(ctx context.Context, matchID, playerID string) (PointsRecord, bool, error)
	ListByMatch(ctx context.Context, matchID string) ([]PointsRecord, error)
	ListByPlayer(ctx context.Context, playerID string) ([]PointsRecord, error)
	List(ctx context.Context) ([]PointsRecord, error)
}
