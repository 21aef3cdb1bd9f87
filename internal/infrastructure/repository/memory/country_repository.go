package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cricstack/fantasy-core/internal/domain/country"
)

type CountryRepository struct {
	mu    sync.RWMutex
	items map[string]country.Country
}

func NewCountryRepository() *CountryRepository {
	return &CountryRepository{items: make(map[string]country.Country)}
}

func (r *CountryRepository) Upsert(_ context.Context, item country.Country) error {
	if err := item.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item

	return nil
}

func (r *CountryRepository) GetByID(_ context.Context, id string) (country.Country, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return item, ok, nil
}

func (r *CountryRepository) List(_ context.Context) ([]country.Country, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]country.Country, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}
