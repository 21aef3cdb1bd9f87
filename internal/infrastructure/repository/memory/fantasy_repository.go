package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cricstack/fantasy-core/internal/domain/fantasy"
)

type pointsKey struct {
	matchID  string
	playerID string
}

type FantasyRepository struct {
	mu    sync.RWMutex
	items map[pointsKey]fantasy.PointsRecord
}

func NewFantasyRepository() *FantasyRepository {
	return &FantasyRepository{items: make(map[pointsKey]fantasy.PointsRecord)}
}

func (r *FantasyRepository) Upsert(_ context.Context, record fantasy.PointsRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[pointsKey{matchID: record.MatchID, playerID: record.PlayerID}] = record

	return nil
}

func (r *FantasyRepository) GetByMatchAndPlayer(_ context.Context, matchID, playerID string) (fantasy.PointsRecord, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.items[pointsKey{matchID: matchID, playerID: playerID}]
	return record, ok, nil
}

func (r *FantasyRepository) ListByMatch(_ context.Context, matchID string) ([]fantasy.PointsRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fantasy.PointsRecord, 0)
	for key, record := range r.items {
		if key.matchID == matchID {
			out = append(out, record)
		}
	}
	sortPointsRecords(out)

	return out, nil
}

func (r *FantasyRepository) ListByPlayer(_ context.Context, playerID string) ([]fantasy.PointsRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fantasy.PointsRecord, 0)
	for key, record := range r.items {
		if key.playerID == playerID {
			out = append(out, record)
		}
	}
	sortPointsRecords(out)

	return out, nil
}

func (r *FantasyRepository) List(_ context.Context) ([]fantasy.PointsRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fantasy.PointsRecord, 0, len(r.items))
	for _, record := range r.items {
		out = append(out, record)
	}
	sortPointsRecords(out)

	return out, nil
}

func sortPointsRecords(records []fantasy.PointsRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].MatchID != records[j].MatchID {
			return records[i].MatchID < records[j].MatchID
		}
		return records[i].PlayerID < records[j].PlayerID
	})
}
