package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cricstack/fantasy-core/external/cricketdata"
	"github.com/cricstack/fantasy-core/internal/platform/logging"
)

type fakeProvider struct {
	countries [][]cricketdata.RawCountry
	series    [][]cricketdata.RawSeries
	players   [][]cricketdata.RawPlayer
	matches   [][]cricketdata.RawMatch

	playersErr error
	searchHits []cricketdata.RawPlayer
	searchErr  error

	playerCalls int
}

func pageAt[T any](pages [][]T, offset int) ([]T, bool) {
	consumed := 0
	for i, page := range pages {
		if offset == consumed {
			return page, i < len(pages)-1
		}
		consumed += len(page)
	}
	return nil, false
}

func (f *fakeProvider) Countries(_ context.Context, offset int) ([]cricketdata.RawCountry, bool, error) {
	page, hasMore := pageAt(f.countries, offset)
	return page, hasMore, nil
}

func (f *fakeProvider) Series(_ context.Context, offset int) ([]cricketdata.RawSeries, bool, error) {
	page, hasMore := pageAt(f.series, offset)
	return page, hasMore, nil
}

func (f *fakeProvider) Players(_ context.Context, offset int) ([]cricketdata.RawPlayer, bool, error) {
	f.playerCalls++
	if f.playersErr != nil {
		return nil, false, f.playersErr
	}
	page, hasMore := pageAt(f.players, offset)
	return page, hasMore, nil
}

func (f *fakeProvider) Matches(_ context.Context, offset int) ([]cricketdata.RawMatch, bool, error) {
	page, hasMore := pageAt(f.matches, offset)
	return page, hasMore, nil
}

func (f *fakeProvider) SearchPlayers(_ context.Context, _ string) ([]cricketdata.RawPlayer, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchHits, nil
}

func newSyncFixture(t *testing.T, provider CricketProvider) (*SyncService, *resolverFixture) {
	t.Helper()
	f := newResolverFixture(t)
	return NewSyncService(provider, f.resolver, logging.NewNop()), f
}

func TestSyncService_SyncPlayersWalksAllPages(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{
		players: [][]cricketdata.RawPlayer{
			{{ID: "p1", Name: "One", Country: "India"}, {ID: "p2", Name: "Two", Country: "India"}},
			{{ID: "p3", Name: "Three", Country: "England"}},
		},
	}
	svc, f := newSyncFixture(t, provider)

	report, err := svc.SyncPlayers(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, SyncReport{Kind: SyncKindPlayers, Fetched: 3, Upserted: 3}, report)

	all, listErr := f.players.List(context.Background())
	require.NoError(t, listErr)
	assert.Len(t, all, 3)
}

func TestSyncService_SyncPlayersHonorsLimit(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{
		players: [][]cricketdata.RawPlayer{
			{{ID: "p1", Name: "One"}, {ID: "p2", Name: "Two"}},
			{{ID: "p3", Name: "Three"}, {ID: "p4", Name: "Four"}},
		},
	}
	svc, _ := newSyncFixture(t, provider)

	report, err := svc.SyncPlayers(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Fetched)
	assert.Equal(t, 2, report.Upserted)
	assert.Equal(t, 1, provider.playerCalls)
}

func TestSyncService_SkipsBadRecordsAndContinues(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{
		matches: [][]cricketdata.RawMatch{{
			{ID: "m1", Teams: []string{"India", "Australia"}, Status: "Result", MatchType: "odi"},
			{ID: "m2", Teams: []string{"India"}}, // unresolvable
			{ID: "m3", Teams: []string{"England", "Pakistan"}, Status: "Live", MatchType: "t20"},
		}},
	}
	svc, f := newSyncFixture(t, provider)

	report, err := svc.SyncMatches(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Fetched)
	assert.Equal(t, 2, report.Upserted)
	assert.Equal(t, 1, report.Skipped)

	all, listErr := f.matches.List(context.Background())
	require.NoError(t, listErr)
	assert.Len(t, all, 2)
}

func TestSyncService_ProviderErrorEndsPass(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{playersErr: errors.New("boom")}
	svc, _ := newSyncFixture(t, provider)

	_, err := svc.SyncPlayers(context.Background(), 0)
	require.ErrorIs(t, err, ErrProvider)
}

func TestSyncService_InitializeContinuesPastFailingStage(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{
		countries:  [][]cricketdata.RawCountry{{{ID: "in", Name: "India"}}},
		playersErr: errors.New("players feed down"),
		matches: [][]cricketdata.RawMatch{{
			{ID: "m1", Teams: []string{"India", "Australia"}, Status: "Fixture", MatchType: "odi"},
		}},
	}
	svc, f := newSyncFixture(t, provider)

	err := svc.Initialize(context.Background())
	require.ErrorIs(t, err, ErrProvider)

	// Stages after the failure still ran.
	matches, listErr := f.matches.List(context.Background())
	require.NoError(t, listErr)
	assert.Len(t, matches, 1)
}

func TestSyncService_ForceSync(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{
		series: [][]cricketdata.RawSeries{{{ID: "sr-1", Name: "The Ashes"}}},
	}
	svc, _ := newSyncFixture(t, provider)

	report, err := svc.ForceSync(context.Background(), " Series ", 0)
	require.NoError(t, err)
	assert.Equal(t, SyncKindSeries, report.Kind)
	assert.Equal(t, 1, report.Upserted)

	_, err = svc.ForceSync(context.Background(), "galaxies", 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSyncService_ForceSyncAllRunsEveryKind(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{
		countries: [][]cricketdata.RawCountry{{{ID: "in", Name: "India"}}},
		series:    [][]cricketdata.RawSeries{{{ID: "sr-1", Name: "Asia Cup 2026"}}},
		players:   [][]cricketdata.RawPlayer{{{ID: "p1", Name: "One", Country: "India"}}},
		matches: [][]cricketdata.RawMatch{{
			{ID: "m1", Teams: []string{"India", "Australia"}, Status: "Fixture", MatchType: "odi"},
		}},
	}
	svc, f := newSyncFixture(t, provider)

	report, err := svc.ForceSync(context.Background(), "all", 0)
	require.NoError(t, err)
	assert.Equal(t, SyncReport{Kind: SyncKindAll, Fetched: 4, Upserted: 4}, report)

	ctx := context.Background()
	countries, listErr := f.countries.List(ctx)
	require.NoError(t, listErr)
	assert.Len(t, countries, 1)
	matches, listErr := f.matches.List(ctx)
	require.NoError(t, listErr)
	assert.Len(t, matches, 1)
}

func TestSyncService_ForceSyncAllContinuesPastFailingKind(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{
		playersErr: errors.New("players feed down"),
		matches: [][]cricketdata.RawMatch{{
			{ID: "m1", Teams: []string{"India", "Australia"}, Status: "Fixture", MatchType: "odi"},
		}},
	}
	svc, f := newSyncFixture(t, provider)

	report, err := svc.ForceSync(context.Background(), "all", 0)
	require.ErrorIs(t, err, ErrProvider)
	assert.Equal(t, 1, report.Upserted)

	// The matches kind still ran after the players failure.
	matches, listErr := f.matches.List(context.Background())
	require.NoError(t, listErr)
	assert.Len(t, matches, 1)
}

func TestSyncService_SearchAndSync(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{
		searchHits: []cricketdata.RawPlayer{
			{ID: "p9", Name: "Steve Smith", Country: "Australia"},
		},
	}
	svc, f := newSyncFixture(t, provider)

	report, err := svc.SearchAndSync(context.Background(), "Smith")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Upserted)

	got, found, lookupErr := f.players.GetByProviderID(context.Background(), "p9")
	require.NoError(t, lookupErr)
	require.True(t, found)
	assert.Equal(t, "Steve Smith", got.Name)

	_, err = svc.SearchAndSync(context.Background(), "  ")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSyncService_CancelledContextStopsPagination(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{
		players: [][]cricketdata.RawPlayer{{{ID: "p1", Name: "One"}}},
	}
	svc, _ := newSyncFixture(t, provider)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.SyncPlayers(ctx, 0)
	require.ErrorIs(t, err, context.Canceled)
}
