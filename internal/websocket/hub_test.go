package websocket

import (
	"bytes"
	"encoding/json"
	"testing"

	"ai-market-analysis-be/internal/pkg/logger"

	"github.com/google/uuid"
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

func envelope(t *testing.T, origin string, sessionID uuid.UUID, message string) []byte {
	t.Helper()
	data, err := json.Marshal(map[string]interface{}{
		"origin":     origin,
		"session_id": sessionID.String(),
		"message":    json.RawMessage(message),
	})
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestRelaySkipsOwnMessages(t *testing.T) {
	h := NewHub(nil, nopLogger{})
	sid := uuid.New()
	client := &Client{Hub: h, SessionID: sid, Send: make(chan []byte, 1)}
	h.clients[sid] = []*Client{client}

	h.relay(envelope(t, h.instanceID, sid, `{"type":"progress"}`))

	select {
	case msg := <-client.Send:
		t.Fatalf("own message relayed back to local watcher: %s", msg)
	default:
	}
}

func TestRelayDeliversMessagesFromOtherInstances(t *testing.T) {
	h := NewHub(nil, nopLogger{})
	sid := uuid.New()
	client := &Client{Hub: h, SessionID: sid, Send: make(chan []byte, 1)}
	h.clients[sid] = []*Client{client}

	payload := `{"type":"progress"}`
	h.relay(envelope(t, "other-instance", sid, payload))

	select {
	case msg := <-client.Send:
		if !bytes.Equal(msg, []byte(payload)) {
			t.Errorf("relayed message = %s, want %s", msg, payload)
		}
	default:
		t.Fatal("message from another instance was not delivered")
	}
}

func TestRelayDropsMalformedEnvelope(t *testing.T) {
	h := NewHub(nil, nopLogger{})
	sid := uuid.New()
	client := &Client{Hub: h, SessionID: sid, Send: make(chan []byte, 1)}
	h.clients[sid] = []*Client{client}

	h.relay([]byte(`{broken`))

	select {
	case msg := <-client.Send:
		t.Fatalf("malformed envelope delivered: %s", msg)
	default:
	}
}
