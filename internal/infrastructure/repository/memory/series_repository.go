package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cricstack/fantasy-core/internal/domain/series"
)

type SeriesRepository struct {
	mu    sync.RWMutex
	items map[string]series.Series
}

func NewSeriesRepository() *SeriesRepository {
	return &SeriesRepository{items: make(map[string]series.Series)}
}

func (r *SeriesRepository) Upsert(_ context.Context, item series.Series) error {
	if err := item.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item

	return nil
}

func (r *SeriesRepository) GetByID(_ context.Context, id string) (series.Series, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return item, ok, nil
}

func (r *SeriesRepository) List(_ context.Context) ([]series.Series, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]series.Series, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}
