package search

import (
	"sync"

	"github.com/kailas-cloud/partpilot/internal/domain/part"
	domsearch "github.com/kailas-cloud/partpilot/internal/domain/search"
)

// Tracker holds the displayed search state of one session.
// Every search takes a sequence number; only the latest one may publish its outcome.
type Tracker struct {
	mu    sync.Mutex
	seq   uint64
	query domsearch.Query
	state domsearch.State
}

// NewTracker creates an idle tracker with empty results.
func NewTracker() *Tracker {
	return &Tracker{state: domsearch.State{Results: []part.Part{}}}
}

// State returns a snapshot of the displayed state.
func (t *Tracker) State() domsearch.State {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.state
	s.Results = append([]part.Part(nil), t.state.Results...)
	if s.Results == nil {
		s.Results = []part.Part{}
	}
	return s
}

// Results returns the currently displayed results.
func (t *Tracker) Results() []part.Part {
	return t.State().Results
}

// Query returns the most recently started query, with its vehicle context.
// It is the zero Query before the first search.
func (t *Tracker) Query() domsearch.Query {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.query
}

func (t *Tracker) begin(q domsearch.Query) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.seq++
	t.query = q
	t.state.Seq = t.seq
	t.state.Query = q.Text()
	t.state.Loading = true
	t.state.Error = ""
	return t.seq
}

// finish applies the outcome if seq is still the latest. It reports whether it did.
func (t *Tracker) finish(seq uint64, out domsearch.Outcome, errMsg string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if seq != t.seq {
		return false
	}
	t.state.Loading = false
	t.state.Results = out.Results
	t.state.FromCache = out.FromCache
	t.state.Error = errMsg
	return true
}
