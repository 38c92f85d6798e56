package inventory

import (
	"sort"
	"sync"
)

// History is a process-lifetime, append-only record of past sync results.
// It is unbounded; callers only ever read the most recent few entries.
type History struct {
	mu      sync.Mutex
	results []SyncResult
}

func NewHistory() *History {
	return &History{}
}

func (h *History) Record(r SyncResult) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.results = append(h.results, r)
}

// Recent returns up to limit results sorted by timestamp descending. The sort
// is stable, so entries with equal timestamps keep insertion order. A
// non-positive limit defaults to 10.
func (h *History) Recent(limit int) []SyncResult {
	if limit <= 0 {
		limit = 10
	}
	h.mu.Lock()
	out := make([]SyncResult, len(h.results))
	copy(out, h.results)
	h.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
