package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestSingleFlight_DeduplicatesConcurrentCalls(t *testing.T) {
	var g SingleFlight
	var executions atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	results := make([]any, 10)
	for i := 0; i < 10; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			val, err, _ := g.Do("key", func() (any, error) {
				executions.Add(1)
				<-release
				return "value", nil
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			results[i] = val
		}()
	}

	close(release)
	wg.Wait()

	if got := executions.Load(); got != 1 {
		t.Fatalf("expected exactly one execution, got %d", got)
	}
	for i, val := range results {
		if val != "value" {
			t.Fatalf("caller %d got %v", i, val)
		}
	}
}
