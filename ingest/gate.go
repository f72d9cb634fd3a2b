package ingest

import "sync"

// Ticket identifies one submitted ingestion.
type Ticket uint64

// Gate enforces last-submitted-wins: only the most recently begun ingestion
// may commit, whatever order the ingestions finish in.
type Gate struct {
	mu     sync.Mutex
	latest Ticket
}

// Begin registers a new submission and supersedes every earlier one.
func (g *Gate) Begin() Ticket {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.latest++
	return g.latest
}

// Commit runs apply only if t is still the latest submission and reports
// whether it did. apply runs under the gate's lock so commits never interleave.
func (g *Gate) Commit(t Ticket, apply func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if t != g.latest {
		return false
	}
	apply()
	return true
}

// Current reports whether t is still the latest submission.
func (g *Gate) Current(t Ticket) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return t == g.latest
}
