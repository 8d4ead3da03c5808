package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"mindmate-backend/internal/middleware"
	"mindmate-backend/internal/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub fans redis update channels out to websocket clients. Connections are
// grouped by storage identity (a signed-in email or the guest key), one
// pub/sub subscription per identity regardless of how many tabs are open.
type Hub struct {
	mu          sync.RWMutex
	connections map[string][]*websocket.Conn
	redisClient *redis.Client
	jwtAuth     *middleware.JWTAuth
	cancelFuncs map[string]context.CancelFunc
}

func NewHub(redisClient *redis.Client, jwtAuth *middleware.JWTAuth) *Hub {
	return &Hub{
		connections: make(map[string][]*websocket.Conn),
		redisClient: redisClient,
		jwtAuth:     jwtAuth,
		cancelFuncs: make(map[string]context.CancelFunc),
	}
}

// HandleWebSocket upgrades the connection. A token query param binds the
// socket to the signed-in identity; without one the socket follows the guest
// channel, matching the storage namespacing.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GuestIdentity
	if tokenStr := r.URL.Query().Get("token"); tokenStr != "" {
		_, email, err := h.jwtAuth.Verify(tokenStr)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		identity = email
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	h.registerConnection(identity, conn)

	// Keep connection alive and handle disconnect
	go func() {
		defer h.unregisterConnection(identity, conn)
		for {
			_, _, err := conn.ReadMessage()
			if err != nil {
				break
			}
		}
	}()
}

func (h *Hub) registerConnection(identity string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.connections[identity] = append(h.connections[identity], conn)

	// Start pub/sub subscription if this is the first connection for this identity
	if len(h.connections[identity]) == 1 {
		ctx, cancel := context.WithCancel(context.Background())
		h.cancelFuncs[identity] = cancel
		go h.subscribeToPubSub(ctx, identity)
	}

	log.Printf("WebSocket connected: %s (total: %d)", identity, len(h.connections[identity]))
}

func (h *Hub) unregisterConnection(identity string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn.Close()

	conns := h.connections[identity]
	for i, c := range conns {
		if c == conn {
			h.connections[identity] = append(conns[:i], conns[i+1:]...)
			break
		}
	}

	// If no more connections, cancel pub/sub
	if len(h.connections[identity]) == 0 {
		delete(h.connections, identity)
		if cancel, ok := h.cancelFuncs[identity]; ok {
			cancel()
			delete(h.cancelFuncs, identity)
		}
	}

	log.Printf("WebSocket disconnected: %s", identity)
}

func (h *Hub) subscribeToPubSub(ctx context.Context, identity string) {
	pubsub := h.redisClient.Subscribe(ctx, services.UpdateChannel(identity))
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.broadcast(identity, []byte(msg.Payload))
		}
	}
}

func (h *Hub) broadcast(identity string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, conn := range h.connections[identity] {
		conn.WriteMessage(websocket.TextMessage, data)
	}
}

// Send pushes a message directly to an identity's sockets, bypassing pub/sub.
func (h *Hub) Send(identity string, msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	h.broadcast(identity, data)
}
