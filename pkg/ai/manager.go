package ai

import (
	"context"
	"fmt"
	"sync"

	"ai-market-analysis-be/internal/pkg/logger"
	"ai-market-analysis-be/pkg/llm"
)

// maxConsecutiveErrors disables a provider until it succeeds again or is reset.
const maxConsecutiveErrors = 3

// Manager runs a prioritized chain of LLM providers with automatic fallback.
// A provider that fails maxConsecutiveErrors times in a row is skipped until
// a manual reset or a successful call through it.
type Manager struct {
	mu        sync.Mutex
	providers []*providerState
	logger    logger.ILogger
}

type providerState struct {
	provider          llm.LLMProvider
	consecutiveErrors int
	available         bool
	lastError         string
}

// ProviderStatus is the monitoring view of a single provider.
type ProviderStatus struct {
	Name              string `json:"name"`
	Available         bool   `json:"available"`
	ConsecutiveErrors int    `json:"consecutive_errors"`
	LastError         string `json:"last_error,omitempty"`
}

func NewManager(log logger.ILogger, providers ...llm.LLMProvider) *Manager {
	states := make([]*providerState, 0, len(providers))
	for _, p := range providers {
		states = append(states, &providerState{provider: p, available: true})
	}
	return &Manager{providers: states, logger: log}
}

func (m *Manager) registerSuccess(s *providerState) {
	m.mu.Lock()
	s.consecutiveErrors = 0
	s.available = true
	s.lastError = ""
	m.mu.Unlock()
}

func (m *Manager) registerFailure(s *providerState, err error) {
	m.mu.Lock()
	s.consecutiveErrors++
	s.lastError = err.Error()
	if s.consecutiveErrors >= maxConsecutiveErrors {
		s.available = false
	}
	disabled := !s.available
	m.mu.Unlock()

	if disabled {
		m.logger.Warn("AIManager", "Provider disabled after repeated failures", map[string]interface{}{
			"provider": s.provider.Name(),
			"error":    err.Error(),
		})
	}
}

func (m *Manager) candidates() []*providerState {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*providerState, 0, len(m.providers))
	for _, s := range m.providers {
		if s.available {
			out = append(out, s)
		}
	}
	return out
}

// Generate tries each available provider in priority order until one answers.
func (m *Manager) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return m.run(ctx, func(p llm.LLMProvider) (string, error) {
		return p.Generate(ctx, prompt, opts...)
	})
}

// Chat is the history-aware variant of Generate with the same fallback rules.
func (m *Manager) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return m.run(ctx, func(p llm.LLMProvider) (string, error) {
		return p.Chat(ctx, history, opts...)
	})
}

func (m *Manager) run(ctx context.Context, call func(llm.LLMProvider) (string, error)) (string, error) {
	candidates := m.candidates()
	if len(candidates) == 0 {
		return "", fmt.Errorf("no AI providers available")
	}

	var lastErr error
	for _, s := range candidates {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		result, err := call(s.provider)
		if err != nil {
			lastErr = err
			m.registerFailure(s, err)
			m.logger.Warn("AIManager", "Provider failed, trying next in fallback order", map[string]interface{}{
				"provider": s.provider.Name(),
				"error":    err.Error(),
			})
			continue
		}

		m.registerSuccess(s)
		return result, nil
	}

	return "", fmt.Errorf("all AI providers failed: %w", lastErr)
}

// Status reports every configured provider for the monitoring surface.
func (m *Manager) Status() []ProviderStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]ProviderStatus, 0, len(m.providers))
	for _, s := range m.providers {
		out = append(out, ProviderStatus{
			Name:              s.provider.Name(),
			Available:         s.available,
			ConsecutiveErrors: s.consecutiveErrors,
			LastError:         s.lastError,
		})
	}
	return out
}

// ResetErrors re-enables every provider. Name narrows the reset to one.
func (m *Manager) ResetErrors(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.providers {
		if name != "" && s.provider.Name() != name {
			continue
		}
		s.consecutiveErrors = 0
		s.available = true
		s.lastError = ""
	}
}
