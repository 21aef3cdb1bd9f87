package cricketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cricstack/fantasy-core/internal/platform/logging"
	"github.com/cricstack/fantasy-core/internal/platform/resilience"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(ClientConfig{
		HTTPClient:        srv.Client(),
		BaseURL:           srv.URL,
		Token:             "test-token",
		Timeout:           5 * time.Second,
		RequestsPerSecond: 1000,
		Logger:            logging.NewNop(),
	})
	return client, srv
}

func TestClient_PlayersPagination(t *testing.T) {
	t.Parallel()

	var gotOffsets []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/players", r.URL.Path)
		require.Equal(t, "test-token", r.URL.Query().Get("apikey"))
		gotOffsets = append(gotOffsets, r.URL.Query().Get("offset"))

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("offset") {
		case "":
			_, _ = w.Write([]byte(`{"status":"success","data":[{"id":"p1","name":"Virat Kohli","country":"India"},{"id":"p2","name":"Joe Root","country":"England"}],"info":{"offsetRows":0,"totalRows":3}}`))
		default:
			_, _ = w.Write([]byte(`{"status":"success","data":[{"id":"p3","name":"Kane Williamson","country":"New Zealand"}],"info":{"offsetRows":2,"totalRows":3}}`))
		}
	}))

	page1, hasMore, err := client.Players(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.True(t, hasMore)
	assert.Equal(t, "Virat Kohli", page1[0].Name)

	page2, hasMore, err := client.Players(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.False(t, hasMore)
	assert.Equal(t, []string{"", "2"}, gotOffsets)
}

func TestClient_HasMoreWithoutTotalRows(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","data":[{"id":"c1","name":"India"}],"info":{}}`))
	}))

	data, hasMore, err := client.Countries(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, data, 1)
	// Without row counters the caller must page until an empty page.
	assert.True(t, hasMore)
}

func TestClient_EmptyPageStopsPagination(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","data":[],"info":{"totalRows":0}}`))
	}))

	data, hasMore, err := client.Series(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, data)
	assert.False(t, hasMore)
}

func TestClient_ServerErrorIsTransient(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, _, err := client.Matches(context.Background(), 0)
	require.Error(t, err)
	assert.True(t, IsTransient(err))
}

func TestClient_ClientErrorIsNotTransient(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, _, err := client.Matches(context.Background(), 0)
	require.Error(t, err)
	assert.False(t, IsTransient(err))
}

func TestClient_CircuitBreakerOpensAfterFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(ClientConfig{
		HTTPClient:        srv.Client(),
		BaseURL:           srv.URL,
		RequestsPerSecond: 1000,
		Logger:            logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
		},
	})

	for i := 0; i < 2; i++ {
		_, _, err := client.Countries(context.Background(), 0)
		require.Error(t, err)
	}
	require.EqualValues(t, 2, calls.Load())

	_, _, err := client.Countries(context.Background(), 0)
	require.Error(t, err)
	assert.True(t, IsTransient(err))
	// The open circuit short-circuits before the HTTP call.
	assert.EqualValues(t, 2, calls.Load())
}

func TestClient_SearchPlayers(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Smith", r.URL.Query().Get("search"))
		_, _ = w.Write([]byte(`{"status":"success","data":[{"id":"p9","name":"Steve Smith","country":"Australia","role":"Batsman"}],"info":{"totalRows":1}}`))
	}))

	players, err := client.SearchPlayers(context.Background(), "  Smith  ")
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "Steve Smith", players[0].Name)

	_, err = client.SearchPlayers(context.Background(), "   ")
	require.Error(t, err)
}

func TestClient_NegativeOffsetRejected(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request should not reach the server")
	}))

	_, _, err := client.Players(context.Background(), -1)
	require.Error(t, err)
}
