package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cricstack/fantasy-core/internal/domain/player"
)

type PlayerRepository struct {
	mu         sync.RWMutex
	items      map[string]player.Player
	byProvider map[string]string
}

func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{
		items:      make(map[string]player.Player),
		byProvider: make(map[string]string),
	}
}

func (r *PlayerRepository) Upsert(_ context.Context, item player.Player) error {
	if err := item.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// A provider id always maps to one document; re-syncing updates it in
	// place instead of duplicating.
	if item.ProviderID != "" {
		if existingID, ok := r.byProvider[item.ProviderID]; ok && existingID != item.ID {
			delete(r.items, existingID)
		}
		r.byProvider[item.ProviderID] = item.ID
	}
	r.items[item.ID] = item

	return nil
}

func (r *PlayerRepository) GetByID(_ context.Context, id string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return item, ok, nil
}

func (r *PlayerRepository) GetByProviderID(_ context.Context, providerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byProvider[providerID]
	if !ok {
		return player.Player{}, false, nil
	}
	item, ok := r.items[id]

	return item, ok, nil
}

// GetByName returns a player with the exact name. A document without a
// provider id wins over a provider-linked one; ties break on ascending id.
func (r *PlayerRepository) GetByName(_ context.Context, name string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var best player.Player
	var found bool
	for _, item := range r.items {
		if item.Name != name {
			continue
		}
		if !found || playerNameRank(item, best) {
			best = item
			found = true
		}
	}

	return best, found, nil
}

func playerNameRank(candidate, current player.Player) bool {
	if (candidate.ProviderID == "") != (current.ProviderID == "") {
		return candidate.ProviderID == ""
	}
	return candidate.ID < current.ID
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}
