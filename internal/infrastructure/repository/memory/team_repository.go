package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/cricstack/fantasy-core/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	items map[string]team.Team
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{items: make(map[string]team.Team)}
}

func (r *TeamRepository) Upsert(_ context.Context, item team.Team) error {
	if err := item.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = cloneTeam(item)

	return nil
}

func (r *TeamRepository) GetByID(_ context.Context, id string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return cloneTeam(item), ok, nil
}

func (r *TeamRepository) FindByCountry(_ context.Context, country string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	country = strings.TrimSpace(country)
	for _, item := range r.items {
		if strings.EqualFold(item.Country, country) {
			return cloneTeam(item), true, nil
		}
	}

	return team.Team{}, false, nil
}

// FindOrCreate inserts under the write lock so two concurrent resolutions of
// the same name cannot both create the team.
func (r *TeamRepository) FindOrCreate(_ context.Context, item team.Team) (team.Team, error) {
	if err := item.Validate(); err != nil {
		return team.Team{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.items[item.ID]; ok {
		return cloneTeam(existing), nil
	}

	r.items[item.ID] = cloneTeam(item)
	return cloneTeam(item), nil
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, cloneTeam(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

func cloneTeam(item team.Team) team.Team {
	out := item
	if item.SquadIDs != nil {
		out.SquadIDs = append([]string(nil), item.SquadIDs...)
	}
	return out
}
