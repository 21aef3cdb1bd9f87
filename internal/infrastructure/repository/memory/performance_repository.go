package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cricstack/fantasy-core/internal/domain/performance"
)

type performanceKey struct {
	matchID  string
	playerID string
}

type PerformanceRepository struct {
	mu    sync.RWMutex
	items map[performanceKey]performance.Performance
}

func NewPerformanceRepository() *PerformanceRepository {
	return &PerformanceRepository{items: make(map[performanceKey]performance.Performance)}
}

func (r *PerformanceRepository) Upsert(_ context.Context, item performance.Performance) error {
	if err := item.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[performanceKey{matchID: item.MatchID, playerID: item.PlayerID}] = item

	return nil
}

func (r *PerformanceRepository) ListByMatch(_ context.Context, matchID string) ([]performance.Performance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]performance.Performance, 0)
	for key, item := range r.items {
		if key.matchID == matchID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })

	return out, nil
}
