package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cricstack/fantasy-core/external/cricketdata"
	"github.com/cricstack/fantasy-core/internal/domain/match"
	"github.com/cricstack/fantasy-core/internal/domain/performance"
	"github.com/cricstack/fantasy-core/internal/domain/player"
	"github.com/cricstack/fantasy-core/internal/infrastructure/repository/memory"
	"github.com/cricstack/fantasy-core/internal/platform/logging"
	"github.com/cricstack/fantasy-core/internal/usecase"
)

type staticProvider struct {
	players []cricketdata.RawPlayer
}

func (p *staticProvider) Countries(context.Context, int) ([]cricketdata.RawCountry, bool, error) {
	return nil, false, nil
}

func (p *staticProvider) Series(context.Context, int) ([]cricketdata.RawSeries, bool, error) {
	return nil, false, nil
}

func (p *staticProvider) Players(context.Context, int) ([]cricketdata.RawPlayer, bool, error) {
	return p.players, false, nil
}

func (p *staticProvider) Matches(context.Context, int) ([]cricketdata.RawMatch, bool, error) {
	return nil, false, nil
}

func (p *staticProvider) SearchPlayers(context.Context, string) ([]cricketdata.RawPlayer, error) {
	return p.players, nil
}

type apiFixture struct {
	matches      *memory.MatchRepository
	players      *memory.PlayerRepository
	performances *memory.PerformanceRepository
	points       *memory.FantasyRepository
	server       http.Handler
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	countries := memory.NewCountryRepository()
	series := memory.NewSeriesRepository()
	teams := memory.NewTeamRepository()
	players := memory.NewPlayerRepository()
	matches := memory.NewMatchRepository()
	performances := memory.NewPerformanceRepository()
	points := memory.NewFantasyRepository()
	logger := logging.NewNop()

	resolver := usecase.NewResolverService(countries, series, teams, players, matches, logger)
	syncSvc := usecase.NewSyncService(&staticProvider{
		players: []cricketdata.RawPlayer{{ID: "p1", Name: "Virat Kohli", Country: "India"}},
	}, resolver, logger)
	scoringSvc := usecase.NewScoringService(matches, performances, points, players, logger)
	leaderboardSvc := usecase.NewLeaderboardService(points, players, matches)

	handler := NewHandler(syncSvc, scoringSvc, leaderboardSvc, performances, logger)

	return &apiFixture{
		matches:      matches,
		players:      players,
		performances: performances,
		points:       points,
		server:       NewRouter(handler, logger, nil),
	}
}

func (f *apiFixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Healthz(t *testing.T) {
	t.Parallel()

	f := newAPIFixture(t)
	rec := f.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_ForceSync(t *testing.T) {
	t.Parallel()

	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/v1/admin/sync", `{"kind":"players"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data usecase.SyncReport `json:"data"`
	}
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, 1, envelope.Data.Upserted)

	_, found, err := f.players.GetByProviderID(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestHandler_ForceSyncRejectsUnknownKind(t *testing.T) {
	t.Parallel()

	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/v1/admin/sync", `{"kind":"galaxies"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_ARGUMENT")
}

func TestHandler_IngestThenScoreThenLeaderboard(t *testing.T) {
	t.Parallel()

	f := newAPIFixture(t)
	ctx := context.Background()

	require.NoError(t, f.matches.Upsert(ctx, match.Match{
		ID: "m1", ProviderID: "m1", Status: match.StatusCompleted,
		Team1ID: "team_india", Team2ID: "team_australia",
	}))
	require.NoError(t, f.players.Upsert(ctx, player.Player{ID: "p1", Name: "Virat Kohli"}))

	rec := f.do(t, http.MethodPost, "/v1/admin/performances",
		`{"playerId":"p1","matchId":"m1","runs":55,"ballsFaced":40,"fours":6,"sixes":1,"isOut":true,"catches":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodPost, "/v1/matches/m1/score", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"scored":1`)

	rec = f.do(t, http.MethodGet, "/v1/matches/m1/leaderboard", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data []usecase.MatchLeaderboardEntry `json:"data"`
	}
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, 101, envelope.Data[0].TotalPoints)
	assert.Equal(t, "Virat Kohli", envelope.Data[0].PlayerName)

	rec = f.do(t, http.MethodGet, "/v1/players/p1/trend", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"m1"`)
}

func TestHandler_ScoreMatchNotFound(t *testing.T) {
	t.Parallel()

	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/v1/matches/ghost/score", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_IngestPerformanceRejectsNegativeFigures(t *testing.T) {
	t.Parallel()

	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/v1/admin/performances",
		`{"playerId":"p1","matchId":"m1","runs":-3}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_OverallLeaderboardLimitValidation(t *testing.T) {
	t.Parallel()

	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/v1/leaderboard?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/v1/leaderboard", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_BackfillEndpoint(t *testing.T) {
	t.Parallel()

	f := newAPIFixture(t)
	ctx := context.Background()

	require.NoError(t, f.matches.Upsert(ctx, match.Match{
		ID: "m1", ProviderID: "m1", Status: match.StatusCompleted,
		Team1ID: "t1", Team2ID: "t2",
	}))
	require.NoError(t, f.performances.Upsert(ctx, performance.Performance{
		PlayerID: "p1", MatchID: "m1",
		Batting: performance.Batting{Runs: 30, BallsFaced: 20},
	}))

	rec := f.do(t, http.MethodPost, "/v1/admin/backfill", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data usecase.BackfillReport `json:"data"`
	}
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, 1, envelope.Data.Scored)
}
