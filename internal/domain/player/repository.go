package player

import "context"

// Repository describes player persistence needs from use cases.
//
// Upsert keys on ProviderID when present so repeated provider syncs update the
// existing document instead of duplicating it. GetByName matches the exact
// display name and prefers a locally minted document over a provider-linked
// one, so id-less feed records reconcile against the same document run after
// run.
type Repository interface {
	Upsert(ctx context.Context, item Player) error
	GetByID(ctx context.Context, id string) (Player, bool, error)
	GetByProviderID(ctx context.Context, providerID string) (Player, bool, error)
	GetByName(ctx context.Context, name string) (Player, bool, error)
	List(ctx context.Context) ([]Player, error)
}
