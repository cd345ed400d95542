package ai

import (
	"context"
	"errors"
	"testing"

	"ai-market-analysis-be/internal/pkg/logger"
	"ai-market-analysis-be/pkg/llm"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
func (nopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}

type fakeProvider struct {
	name   string
	answer string
	err    error
	calls  int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, nil, options...)
}

func TestGenerateFallsBackInPriorityOrder(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: errors.New("rate limited")}
	secondary := &fakeProvider{name: "secondary", answer: "resposta"}
	m := NewManager(nopLogger{}, primary, secondary)

	got, err := m.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "resposta" {
		t.Errorf("Generate() = %q, want %q", got, "resposta")
	}
	if primary.calls != 1 || secondary.calls != 1 {
		t.Errorf("calls = (%d, %d), want (1, 1)", primary.calls, secondary.calls)
	}
}

func TestGenerateErrorsWhenAllProvidersFail(t *testing.T) {
	p := &fakeProvider{name: "only", err: errors.New("down")}
	m := NewManager(nopLogger{}, p)

	if _, err := m.Generate(context.Background(), "prompt"); err == nil {
		t.Fatal("Generate() error = nil, want failure")
	}
}

func TestProviderDisabledAfterConsecutiveErrors(t *testing.T) {
	failing := &fakeProvider{name: "flaky", err: errors.New("boom")}
	healthy := &fakeProvider{name: "backup", answer: "ok"}
	m := NewManager(nopLogger{}, failing, healthy)

	for i := 0; i < maxConsecutiveErrors; i++ {
		if _, err := m.Generate(context.Background(), "prompt"); err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
	}
	if failing.calls != maxConsecutiveErrors {
		t.Fatalf("failing.calls = %d, want %d", failing.calls, maxConsecutiveErrors)
	}

	// the disabled provider is skipped from now on
	if _, err := m.Generate(context.Background(), "prompt"); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if failing.calls != maxConsecutiveErrors {
		t.Errorf("failing.calls = %d after disable, want %d", failing.calls, maxConsecutiveErrors)
	}

	status := m.Status()
	if status[0].Available {
		t.Error("flaky provider still reported available")
	}
	if status[0].ConsecutiveErrors != maxConsecutiveErrors {
		t.Errorf("ConsecutiveErrors = %d, want %d", status[0].ConsecutiveErrors, maxConsecutiveErrors)
	}
}

func TestResetErrorsReenablesProvider(t *testing.T) {
	failing := &fakeProvider{name: "flaky", err: errors.New("boom")}
	healthy := &fakeProvider{name: "backup", answer: "ok"}
	m := NewManager(nopLogger{}, failing, healthy)

	for i := 0; i < maxConsecutiveErrors; i++ {
		m.Generate(context.Background(), "prompt")
	}

	failing.err = nil
	failing.answer = "recuperado"
	m.ResetErrors("flaky")

	got, err := m.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "recuperado" {
		t.Errorf("Generate() = %q, want reset provider to answer first", got)
	}

	status := m.Status()
	if !status[0].Available || status[0].ConsecutiveErrors != 0 {
		t.Errorf("status after reset = %+v", status[0])
	}
}

func TestSuccessResetsErrorCounter(t *testing.T) {
	p := &fakeProvider{name: "p", err: errors.New("boom")}
	backup := &fakeProvider{name: "b", answer: "ok"}
	m := NewManager(nopLogger{}, p, backup)

	m.Generate(context.Background(), "prompt")
	m.Generate(context.Background(), "prompt")

	p.err = nil
	p.answer = "ok"
	m.Generate(context.Background(), "prompt")

	status := m.Status()
	if status[0].ConsecutiveErrors != 0 {
		t.Errorf("ConsecutiveErrors = %d after success, want 0", status[0].ConsecutiveErrors)
	}
	if status[0].LastError != "" {
		t.Errorf("LastError = %q after success, want empty", status[0].LastError)
	}
}

func TestChatUsesSameFallbackAsGenerate(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: errors.New("down")}
	secondary := &fakeProvider{name: "secondary", answer: "oi"}
	m := NewManager(nopLogger{}, primary, secondary)

	got, err := m.Chat(context.Background(), []llm.Message{{Role: "user", Content: "olá"}})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if got != "oi" {
		t.Errorf("Chat() = %q, want %q", got, "oi")
	}
}
