package resilience

import "sync"

// SingleFlight collapses concurrent calls that share a key into a single
// execution; every waiter receives the same result. A later call with the
// same key runs again once the first completes.
type SingleFlight struct {
	mu       sync.Mutex
	inflight map[string]*flightResult
}

type flightResult struct {
	done chan struct{}
	val  any
	err  error
}

// Do runs fn for key unless an identical call is already in flight, in which
// case it waits for that call instead. The bool reports whether the result
// was shared.
func (g *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	g.mu.Lock()
	if existing, ok := g.inflight[key]; ok {
		g.mu.Unlock()
		<-existing.done
		return existing.val, existing.err, true
	}
	if g.inflight == nil {
		g.inflight = make(map[string]*flightResult)
	}
	res := &flightResult{done: make(chan struct{})}
	g.inflight[key] = res
	g.mu.Unlock()

	res.val, res.err = fn()

	g.mu.Lock()
	delete(g.inflight, key)
	g.mu.Unlock()
	close(res.done)

	return res.val, res.err, false
}
