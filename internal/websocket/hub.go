package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"ai-market-analysis-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const progressChannel = "analysis_progress"

// Hub fans live progress updates out to the browsers watching a session.
// Polling /api/progress stays the source of truth; the socket only cuts the
// latency between step transitions. Redis pub/sub relays updates across
// instances when the pipeline runs on a different node than the watcher.
type Hub struct {
	// watchers per session id (multiple tabs per session allowed)
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	rdb *redis.Client

	// instanceID distinguishes this hub's own Redis messages from those of
	// other instances; own messages were already delivered locally.
	instanceID string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Watcher registered", map[string]interface{}{"session_id": client.SessionID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.SessionID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.SessionID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.SessionID]) == 0 {
					delete(h.clients, client.SessionID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// PushProgress delivers a progress payload to every watcher of the session,
// locally and through Redis for watchers connected to other instances.
func (h *Hub) PushProgress(sessionID uuid.UUID, kind string, payload interface{}) {
	data, err := json.Marshal(map[string]interface{}{
		"type": kind,
		"data": payload,
	})
	if err != nil {
		h.logger.Error("Hub", "Failed to marshal progress payload", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return
	}

	h.sendLocal(sessionID, data)

	if h.rdb != nil {
		envelope, _ := json.Marshal(map[string]interface{}{
			"origin":     h.instanceID,
			"session_id": sessionID.String(),
			"message":    json.RawMessage(data),
		})
		h.rdb.Publish(context.Background(), progressChannel, envelope)
	}
}

func (h *Hub) sendLocal(sessionID uuid.UUID, data []byte) {
	h.mu.RLock()
	clients := h.clients[sessionID]
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			// Slow watcher; unregister closes its Send channel.
			h.logger.Warn("Hub", "Watcher buffer full, dropping connection", map[string]interface{}{
				"session_id": sessionID,
			})
			h.unregister <- client
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, progressChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.relay([]byte(msg.Payload))
	}
}

// relay delivers a Redis envelope to local watchers unless this instance
// published it itself.
func (h *Hub) relay(payload []byte) {
	var envelope struct {
		Origin    string          `json:"origin"`
		SessionID string          `json:"session_id"`
		Message   json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		h.logger.Warn("Hub", "Bad progress envelope from Redis", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	if envelope.Origin == h.instanceID {
		return
	}

	sid, err := uuid.Parse(envelope.SessionID)
	if err != nil {
		return
	}

	h.sendLocal(sid, envelope.Message)
}
