package search

import (
	"sort"
	"sync"

	"github.com/derekprior/ssgen/internal/schedule"
)

// Result is an accepted schedule with its fitness score.
type Result struct {
	Games []schedule.Game
	Score int
}

// Leaderboard is a bounded best-K collection of results, shared across
// workers. All mutation happens under the mutex as a single critical section
// so the top-K invariant can never be observed mid-update.
type Leaderboard struct {
	mu       sync.Mutex
	capacity int
	results  []Result // descending by score
}

func NewLeaderboard(capacity int) *Leaderboard {
	return &Leaderboard{capacity: capacity}
}

// Insert adds a result, keeping the collection sorted descending by score.
// Growing past capacity evicts the current minimum-score member.
func (l *Leaderboard) Insert(r Result) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := sort.Search(len(l.results), func(i int) bool {
		return l.results[i].Score < r.Score
	})
	l.results = append(l.results, Result{})
	copy(l.results[i+1:], l.results[i:])
	l.results[i] = r

	if len(l.results) > l.capacity {
		l.results = l.results[:l.capacity]
	}
}

// Results returns a copy of the current contents, best first.
func (l *Leaderboard) Results() []Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Result, len(l.results))
	copy(out, l.results)
	return out
}

// Len returns the current number of retained results.
func (l *Leaderboard) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.results)
}
