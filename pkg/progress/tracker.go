package progress

import (
	"fmt"
	"sync"
	"time"
)

// DefaultSteps is the fixed analysis pipeline shown to the client.
// Percentage is derived from the index into this list.
var DefaultSteps = []string{
	"Validando dados de entrada e preparando análise",
	"Executando pesquisa web massiva",
	"Extraindo conteúdo de fontes preferenciais",
	"Analisando com modelo de IA primário",
	"Criando avatar ultra-detalhado",
	"Gerando drivers mentais customizados",
	"Desenvolvendo provas visuais instantâneas",
	"Construindo sistema anti-objeção",
	"Arquitetando pré-pitch completo",
	"Mapeando concorrência e posicionamento",
	"Calculando métricas e projeções",
	"Predizendo futuro do mercado",
	"Consolidando análise final",
}

const maxDetailedLogs = 50

// initialEstimate is reported before the first step completes.
const initialEstimate = 5 * time.Minute

// Snapshot is the transient polling view of a tracker. It is replaced
// wholesale on each poll and never persisted.
type Snapshot struct {
	SessionID          string  `json:"session_id"`
	CurrentStep        int     `json:"current_step"`
	TotalSteps         int     `json:"total_steps"`
	Percentage         float64 `json:"percentage"`
	CurrentMessage     string  `json:"current_message"`
	DetailedMessage    string  `json:"detailed_message"`
	ElapsedSeconds     float64 `json:"elapsed_time"`
	EstimatedRemaining string  `json:"estimated_time"`
	Completed          bool    `json:"completed"`
	Failed             bool    `json:"failed"`
}

// LogEntry is one line of the bounded per-session progress log.
type LogEntry struct {
	Step      int       `json:"step"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Tracker follows a single session through the pipeline. All state lives
// behind the mutex; there is no package-level registry of trackers.
//
// Terminal transitions (Complete, Fail) are idempotent: the first call wins
// and later calls are no-ops, so a poll loop observing a terminal snapshot
// can stop exactly once.
type Tracker struct {
	mu sync.Mutex

	sessionID   string
	steps       []string
	currentStep int
	message     string
	details     string
	startTime   time.Time
	lastUpdate  time.Time
	logs        []LogEntry

	completed bool
	failed    bool
	errMsg    string
}

func NewTracker(sessionID string) *Tracker {
	now := time.Now()
	return &Tracker{
		sessionID:  sessionID,
		steps:      DefaultSteps,
		message:    "Iniciando análise...",
		startTime:  now,
		lastUpdate: now,
	}
}

// Update advances the tracker to the given step. Out-of-range steps are
// clamped; updates after a terminal transition are dropped.
func (t *Tracker) Update(step int, message, details string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.completed || t.failed {
		return
	}

	if step < 0 {
		step = 0
	}
	if step > len(t.steps) {
		step = len(t.steps)
	}

	t.currentStep = step
	t.message = message
	t.details = details
	t.lastUpdate = time.Now()

	t.logs = append(t.logs, LogEntry{
		Step:      step,
		Message:   message,
		Details:   details,
		Timestamp: t.lastUpdate,
	})
	if len(t.logs) > maxDetailedLogs {
		t.logs = t.logs[len(t.logs)-maxDetailedLogs:]
	}
}

// StepName returns the declared name for a step index, or "" out of range.
func (t *Tracker) StepName(step int) string {
	if step < 1 || step > len(t.steps) {
		return ""
	}
	return t.steps[step-1]
}

// Complete marks the tracker terminal-successful. Idempotent.
func (t *Tracker) Complete() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.completed || t.failed {
		return false
	}
	t.completed = true
	t.currentStep = len(t.steps)
	t.message = "Análise concluída"
	t.lastUpdate = time.Now()
	return true
}

// Fail marks the tracker terminal-failed with a client-visible message.
// Idempotent; a tracker that already completed cannot fail afterwards.
func (t *Tracker) Fail(errMsg string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.completed || t.failed {
		return false
	}
	t.failed = true
	t.errMsg = errMsg
	t.message = fmt.Sprintf("Erro: %s", errMsg)
	t.lastUpdate = time.Now()
	return true
}

// Terminal reports whether the tracker reached a terminal state.
func (t *Tracker) Terminal() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.completed || t.failed
}

// Snapshot renders the current polling view.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	elapsed := time.Since(t.startTime)

	var remaining time.Duration
	switch {
	case t.completed || t.failed:
		remaining = 0
	case t.currentStep > 0:
		estimatedTotal := time.Duration(float64(elapsed) / float64(t.currentStep) * float64(len(t.steps)))
		remaining = estimatedTotal - elapsed
		if remaining < 0 {
			remaining = 0
		}
	default:
		remaining = initialEstimate
	}

	percentage := float64(t.currentStep) / float64(len(t.steps)) * 100
	if t.completed {
		percentage = 100
	}
	if t.failed {
		percentage = 0
	}

	return Snapshot{
		SessionID:          t.sessionID,
		CurrentStep:        t.currentStep,
		TotalSteps:         len(t.steps),
		Percentage:         percentage,
		CurrentMessage:     t.message,
		DetailedMessage:    firstNonEmpty(t.details, t.message),
		ElapsedSeconds:     elapsed.Seconds(),
		EstimatedRemaining: formatETA(remaining),
		Completed:          t.completed,
		Failed:             t.failed,
	}
}

// Logs returns a copy of the bounded detailed log.
func (t *Tracker) Logs() []LogEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]LogEntry, len(t.logs))
	copy(out, t.logs)
	return out
}

func (t *Tracker) Error() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.errMsg
}

func formatETA(d time.Duration) string {
	if d <= 0 {
		return "0m"
	}
	minutes := int(d.Minutes())
	if minutes < 1 {
		return "<1m"
	}
	return fmt.Sprintf("%dm", minutes)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
