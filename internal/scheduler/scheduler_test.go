package scheduler

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cricstack/fantasy-core/internal/usecase"
)

func TestScheduler_RunJobUnknownName(t *testing.T) {
	t.Parallel()

	s := &Scheduler{jobs: map[string]*job{}}
	err := s.RunJob(context.Background(), "nope")
	require.ErrorIs(t, err, usecase.ErrInvalidInput)
}

func TestScheduler_RunJobGuardsOverlap(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})

	s := &Scheduler{jobs: map[string]*job{}}
	s.register("slow", func(ctx context.Context) error {
		close(started)
		<-release
		return nil
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		require.NoError(t, s.RunJob(context.Background(), "slow"))
	}()

	<-started
	err := s.RunJob(context.Background(), "slow")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running")

	close(release)
	wg.Wait()

	// Once the first run finishes the guard clears.
	require.NoError(t, s.RunJob(context.Background(), "slow"))
}

func TestScheduler_RunJobSequentialRuns(t *testing.T) {
	t.Parallel()

	runs := 0
	s := &Scheduler{jobs: map[string]*job{}}
	s.register("counter", func(ctx context.Context) error {
		runs++
		return nil
	})

	for i := 0; i < 3; i++ {
		require.NoError(t, s.RunJob(context.Background(), "counter"))
	}
	assert.Equal(t, 3, runs)
}
