package order

import "sync"

// inflight admits one submission per user at a time.
type inflight struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func newInflight() *inflight {
	return &inflight{active: make(map[string]struct{})}
}

func (g *inflight) acquire(userID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.active[userID]; busy {
		return false
	}
	g.active[userID] = struct{}{}
	return true
}

func (g *inflight) release(userID string) {
	g.mu.Lock()
	delete(g.active, userID)
	g.mu.Unlock()
}
