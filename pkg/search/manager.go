package search

import (
	"context"
	"fmt"
	"sync"

	"ai-market-analysis-be/internal/pkg/logger"
)

// maxProviderErrors removes an engine from rotation until reset.
const maxProviderErrors = 3

// Manager coordinates multiple search engines with fallback: engines are
// tried in priority order and hits are deduplicated by URL.
type Manager struct {
	mu        sync.Mutex
	providers []*engineState
	logger    logger.ILogger
}

type engineState struct {
	provider  SearchProvider
	errors    int
	available bool
	lastError string
}

// EngineStatus is the monitoring view of a single engine.
type EngineStatus struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Errors    int    `json:"errors"`
	LastError string `json:"last_error,omitempty"`
}

func NewManager(log logger.ILogger, providers ...SearchProvider) *Manager {
	states := make([]*engineState, 0, len(providers))
	for _, p := range providers {
		states = append(states, &engineState{provider: p, available: true})
	}
	return &Manager{providers: states, logger: log}
}

// Search runs the query against the first healthy engine, falling back down
// the chain on failure or on an empty result set.
func (m *Manager) Search(ctx context.Context, query string, opts Options) ([]Result, error) {
	var lastErr error

	for _, s := range m.engines() {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		results, err := s.provider.Search(ctx, query, opts)
		if err != nil {
			lastErr = err
			m.registerFailure(s, err)
			m.logger.Warn("SearchManager", "Engine failed, trying next", map[string]interface{}{
				"engine": s.provider.Name(),
				"error":  err.Error(),
			})
			continue
		}

		m.registerSuccess(s)
		if len(results) == 0 {
			continue
		}
		return dedupeByURL(results), nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("all search engines failed: %w", lastErr)
	}
	return []Result{}, nil
}

// MultiSearch queries every healthy engine and merges the deduplicated union.
// Individual engine failures are tolerated as long as at least one engine
// answered; when every engine fails the last error is propagated.
func (m *Manager) MultiSearch(ctx context.Context, query string, opts Options) ([]Result, error) {
	var merged []Result
	var lastErr error
	answered := false

	for _, s := range m.engines() {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		results, err := s.provider.Search(ctx, query, opts)
		if err != nil {
			lastErr = err
			m.registerFailure(s, err)
			continue
		}
		m.registerSuccess(s)
		answered = true
		merged = append(merged, results...)
	}

	if !answered && lastErr != nil {
		return nil, fmt.Errorf("all search engines failed: %w", lastErr)
	}
	return dedupeByURL(merged), nil
}

func (m *Manager) engines() []*engineState {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*engineState, 0, len(m.providers))
	for _, s := range m.providers {
		if s.available {
			out = append(out, s)
		}
	}
	return out
}

func (m *Manager) registerSuccess(s *engineState) {
	m.mu.Lock()
	s.errors = 0
	s.available = true
	s.lastError = ""
	m.mu.Unlock()
}

func (m *Manager) registerFailure(s *engineState, err error) {
	m.mu.Lock()
	s.errors++
	s.lastError = err.Error()
	if s.errors >= maxProviderErrors {
		s.available = false
	}
	m.mu.Unlock()
}

// Status reports every configured engine for the monitoring surface.
func (m *Manager) Status() []EngineStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]EngineStatus, 0, len(m.providers))
	for _, s := range m.providers {
		out = append(out, EngineStatus{
			Name:      s.provider.Name(),
			Available: s.available,
			Errors:    s.errors,
			LastError: s.lastError,
		})
	}
	return out
}

// ResetErrors re-enables every engine. Name narrows the reset to one.
func (m *Manager) ResetErrors(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.providers {
		if name != "" && s.provider.Name() != name {
			continue
		}
		s.errors = 0
		s.available = true
		s.lastError = ""
	}
}

func dedupeByURL(in []Result) []Result {
	seen := make(map[string]struct{}, len(in))
	out := make([]Result, 0, len(in))
	for _, r := range in {
		if _, ok := seen[r.URL]; ok {
			continue
		}
		seen[r.URL] = struct{}{}
		out = append(out, r)
	}
	return out
}
