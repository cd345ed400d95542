package events

import "time"

const (
	TypeSessionStarted   = "SESSION_STARTED"
	TypeSessionPaused    = "SESSION_PAUSED"
	TypeSessionResumed   = "SESSION_RESUMED"
	TypeSessionCompleted = "SESSION_COMPLETED"
	TypeSessionFailed    = "SESSION_FAILED"
	TypeSessionDeleted   = "SESSION_DELETED"
)

// NewSessionEvent builds a lifecycle event for an analysis session.
func NewSessionEvent(eventType, sessionID string, extra map[string]interface{}) Event {
	data := map[string]interface{}{
		"session_id": sessionID,
	}
	for k, v := range extra {
		data[k] = v
	}
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
