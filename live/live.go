package live

import (
	"context"
	"log"
	"net/http"
	"sync"

	"sabor/access"
	"sabor/middleware"
	"sabor/models"
	"sabor/mq"
	"sabor/rdx"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS is handled at the HTTP layer
	},
}

// Hub fans dashboard events out to connected admin websocket clients.
type Hub struct {
	gate  *access.Gate
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

func NewHub(gate *access.Gate) *Hub {
	return &Hub{gate: gate, conns: make(map[*websocket.Conn]bool)}
}

// HandleWS upgrades an admin dashboard connection. Browsers cannot set an
// Authorization header on websockets, so the token travels as a query param.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, err := middleware.ValidateJWT(r.URL.Query().Get("token"))
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	session := &models.Session{Kind: claims.Kind, CredentialID: claims.CredentialID}
	if !h.gate.IsAdmin(r.Context(), session) && !h.gate.IsOwnerSession(session) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "WebSocket upgrade failed", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	h.conns[conn] = true
	h.mu.Unlock()

	// Keep the connection open until the client disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	conn.Close()
}

// Broadcast writes a payload to every connected client, dropping the ones
// that fail.
func (h *Hub) Broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

// ListenEvents relays the Redis dashboard channel into the hub. Runs until
// the context is cancelled; call in a goroutine from main.
func (h *Hub) ListenEvents(ctx context.Context) {
	if rdx.Conn == nil {
		return
	}
	sub := rdx.Conn.Subscribe(ctx, mq.Channel)
	defer sub.Close()

	log.Printf("live: relaying %s", mq.Channel)
	for msg := range sub.Channel() {
		h.Broadcast([]byte(msg.Payload))
	}
}
