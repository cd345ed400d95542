package progress

import (
	"testing"
	"time"
)

func TestTrackerUpdateClamping(t *testing.T) {
	tests := []struct {
		name     string
		step     int
		wantStep int
	}{
		{name: "negative clamps to zero", step: -3, wantStep: 0},
		{name: "in range", step: 5, wantStep: 5},
		{name: "beyond total clamps to total", step: 99, wantStep: len(DefaultSteps)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker("s1")
			tr.Update(tt.step, "msg", "")

			snap := tr.Snapshot()
			if snap.CurrentStep != tt.wantStep {
				t.Errorf("CurrentStep = %d, want %d", snap.CurrentStep, tt.wantStep)
			}
		})
	}
}

func TestTrackerCompleteIsIdempotent(t *testing.T) {
	tr := NewTracker("s1")
	tr.Update(4, "working", "")

	if !tr.Complete() {
		t.Fatal("first Complete() = false, want true")
	}
	if tr.Complete() {
		t.Error("second Complete() = true, want false")
	}
	if tr.Fail("late failure") {
		t.Error("Fail() after Complete() = true, want false")
	}

	snap := tr.Snapshot()
	if !snap.Completed {
		t.Error("snapshot not marked completed")
	}
	if snap.Failed {
		t.Error("snapshot marked failed after completion")
	}
	if snap.Percentage != 100 {
		t.Errorf("Percentage = %v, want 100", snap.Percentage)
	}
}

func TestTrackerFailIsIdempotent(t *testing.T) {
	tr := NewTracker("s1")

	if !tr.Fail("provider down") {
		t.Fatal("first Fail() = false, want true")
	}
	if tr.Fail("second error") {
		t.Error("second Fail() = true, want false")
	}
	if tr.Complete() {
		t.Error("Complete() after Fail() = true, want false")
	}

	if got := tr.Error(); got != "provider down" {
		t.Errorf("Error() = %q, want first failure message", got)
	}

	snap := tr.Snapshot()
	if !snap.Failed {
		t.Error("snapshot not marked failed")
	}
	if snap.Percentage != 0 {
		t.Errorf("Percentage = %v, want 0 after failure", snap.Percentage)
	}
}

func TestTrackerUpdateDroppedAfterTerminal(t *testing.T) {
	tr := NewTracker("s1")
	tr.Update(3, "step three", "")
	tr.Complete()

	tr.Update(5, "should be dropped", "")

	snap := tr.Snapshot()
	if snap.CurrentStep != len(DefaultSteps) {
		t.Errorf("CurrentStep = %d, want %d (terminal pins to last step)", snap.CurrentStep, len(DefaultSteps))
	}
	if snap.CurrentMessage == "should be dropped" {
		t.Error("update after terminal transition was applied")
	}
}

func TestTrackerLogBound(t *testing.T) {
	tr := NewTracker("s1")
	for i := 0; i < maxDetailedLogs*2; i++ {
		tr.Update(1, "msg", "detail")
	}

	logs := tr.Logs()
	if len(logs) != maxDetailedLogs {
		t.Errorf("len(Logs()) = %d, want %d", len(logs), maxDetailedLogs)
	}
}

func TestTrackerStepName(t *testing.T) {
	tr := NewTracker("s1")

	if got := tr.StepName(1); got != DefaultSteps[0] {
		t.Errorf("StepName(1) = %q, want %q", got, DefaultSteps[0])
	}
	if got := tr.StepName(len(DefaultSteps)); got != DefaultSteps[len(DefaultSteps)-1] {
		t.Errorf("StepName(last) = %q", got)
	}
	if got := tr.StepName(0); got != "" {
		t.Errorf("StepName(0) = %q, want empty", got)
	}
	if got := tr.StepName(len(DefaultSteps) + 1); got != "" {
		t.Errorf("StepName(out of range) = %q, want empty", got)
	}
}

func TestTrackerInitialSnapshot(t *testing.T) {
	tr := NewTracker("s1")
	snap := tr.Snapshot()

	if snap.CurrentStep != 0 {
		t.Errorf("CurrentStep = %d, want 0", snap.CurrentStep)
	}
	if snap.TotalSteps != len(DefaultSteps) {
		t.Errorf("TotalSteps = %d, want %d", snap.TotalSteps, len(DefaultSteps))
	}
	if snap.EstimatedRemaining != "5m" {
		t.Errorf("EstimatedRemaining = %q, want initial estimate 5m", snap.EstimatedRemaining)
	}
	if snap.Completed || snap.Failed {
		t.Error("fresh tracker already terminal")
	}
}

func TestFormatETA(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{name: "zero", d: 0, want: "0m"},
		{name: "under a minute", d: 30 * time.Second, want: "<1m"},
		{name: "minutes", d: 200 * time.Second, want: "3m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatETA(tt.d); got != tt.want {
				t.Errorf("formatETA = %q, want %q", got, tt.want)
			}
		})
	}
}
