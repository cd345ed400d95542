package dto

import "ai-market-analysis-be/pkg/progress"

// ProgressResponse is the polling view of a running analysis. The snapshot
// is transient tracker state; Logs is the bounded detailed history.
type ProgressResponse struct {
	progress.Snapshot
	Logs []progress.LogEntry `json:"detailed_logs,omitempty"`
}
