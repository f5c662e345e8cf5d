package search

import (
	"context"
	"errors"
	"net/url"
	"sync"

	"eve-routes/internal/routes"
)

// Status tags the outcome of one search attempt so callers cannot
// mistake a superseded request for a failure.
type Status int

const (
	StatusOK Status = iota
	StatusCancelled
	StatusFailed
)

// Result is the single outcome delivered for one Start call.
type Result struct {
	Status     Status
	Set        *routes.ResultSet
	Err        error
	Generation uint64
}

// Fetcher runs the network call for one query attempt.
type Fetcher func(ctx context.Context, query url.Values) (*routes.ResultSet, error)

// Manager owns the single active request handle. Starting a search
// cancels any prior in-flight request synchronously; a superseded
// request can never surface data or an error, only a silent Cancelled.
type Manager struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	gen    uint64

	fetch       Fetcher
	maxAttempts int
}

// NewManager creates a Manager that issues requests through fetch,
// retrying rate-limited attempts up to maxAttempts times.
func NewManager(fetch Fetcher, maxAttempts int) *Manager {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Manager{fetch: fetch, maxAttempts: maxAttempts}
}

// Start supersedes any active search and issues q. It returns the new
// handle generation and a channel that delivers exactly one Result.
func (m *Manager) Start(ctx context.Context, q Query) (uint64, <-chan Result) {
	m.mu.Lock()
	if m.cancel != nil {
		m.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.gen++
	gen := m.gen
	m.mu.Unlock()

	ch := make(chan Result, 1)
	go m.run(runCtx, gen, q, ch)
	return gen, ch
}

// Active reports whether a request handle is currently held.
func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cancel != nil
}

// Generation returns the current handle generation. A Result whose
// Generation differs is stale.
func (m *Manager) Generation() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen
}

// Cancel aborts the active search, if any, without starting a new one.
// The in-flight attempt resolves as Cancelled.
func (m *Manager) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
		m.gen++
	}
}

func (m *Manager) run(ctx context.Context, gen uint64, q Query, ch chan<- Result) {
	set, err := Retry(ctx, m.maxAttempts, func(c context.Context) (*routes.ResultSet, error) {
		return m.fetch(c, q.Values())
	})

	// Clear the handle only if this attempt is still the active one. A
	// late resolution from a superseded handle must not touch it.
	m.mu.Lock()
	current := m.gen == gen
	if current {
		m.cancel()
		m.cancel = nil
	}
	m.mu.Unlock()

	switch {
	case !current || errors.Is(err, context.Canceled):
		ch <- Result{Status: StatusCancelled, Generation: gen}
	case err != nil:
		ch <- Result{Status: StatusFailed, Err: err, Generation: gen}
	default:
		ch <- Result{Status: StatusOK, Set: set, Generation: gen}
	}
}
