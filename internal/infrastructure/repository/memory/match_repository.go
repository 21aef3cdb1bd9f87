package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cricstack/fantasy-core/internal/domain/match"
)

type MatchRepository struct {
	mu         sync.RWMutex
	items      map[string]match.Match
	byProvider map[string]string
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{
		items:      make(map[string]match.Match),
		byProvider: make(map[string]string),
	}
}

func (r *MatchRepository) Upsert(_ context.Context, item match.Match) error {
	if err := item.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ProviderID != "" {
		if existingID, ok := r.byProvider[item.ProviderID]; ok && existingID != item.ID {
			delete(r.items, existingID)
		}
		r.byProvider[item.ProviderID] = item.ID
	}
	r.items[item.ID] = item

	return nil
}

func (r *MatchRepository) GetByID(_ context.Context, id string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return item, ok, nil
}

func (r *MatchRepository) GetByProviderID(_ context.Context, providerID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byProvider[providerID]
	if !ok {
		return match.Match{}, false, nil
	}
	item, ok := r.items[id]

	return item, ok, nil
}

func (r *MatchRepository) ListByStatus(_ context.Context, status string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, item := range r.items {
		if item.Status == status {
			out = append(out, item)
		}
	}
	sortMatches(out)

	return out, nil
}

func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sortMatches(out)

	return out, nil
}

func sortMatches(items []match.Match) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].ScheduledAt.Equal(items[j].ScheduledAt) {
			return items[i].ScheduledAt.Before(items[j].ScheduledAt)
		}
		return items[i].ID < items[j].ID
	})
}
