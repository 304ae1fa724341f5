package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/avvvet/cardgame-services/internal/comm"
	"github.com/avvvet/cardgame-services/internal/socketsvc/ws"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"
)

const healthMessage = "card game service is running"

var socketsOpen = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "cardgame_sockets_open",
	Help: "Number of websocket connections currently open.",
})

// MessageHandler processes one inbound message for a client.
type MessageHandler interface {
	HandleMessage(c *ws.Client, msg *comm.WSMessage)
}

type Handler struct {
	upgrader websocket.Upgrader
	ws       *ws.Ws
	router   MessageHandler
}

func NewHandler(s *ws.Ws, router MessageHandler, allowedOrigins []string) *Handler {
	h := &Handler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		ws:     s,
		router: router,
	}
	return h
}

// originChecker accepts requests without an Origin header (non-browser
// clients) and browser requests from an allowed origin. "*" allows any.
func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[strings.TrimRight(strings.ToLower(o), "/")] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || set["*"] {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return set[strings.ToLower(u.Scheme+"://"+u.Host)]
	}
}

// HandleWebSocket upgrades the request and serves the connection until it closes.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client
		log.Errorf("Failed to upgrade to WebSocket: %v", err)
		return
	}

	socketId := uuid.New().String()
	client := ws.NewClient(socketId, conn)
	h.ws.StoreConnection(client)
	socketsOpen.Inc()

	log.Infof("New WebSocket connection established: %s", socketId)

	go client.WritePump()
	go h.handleConnection(conn, client)
}

func (h *Handler) handleConnection(conn *websocket.Conn, client *ws.Client) {
	// Ensure cleanup happens when connection closes
	defer func() {
		log.Infof("Closing WebSocket connection: %s", client.ID)
		h.ws.HandleDisconnect(client)
		socketsOpen.Dec()
	}()

	client.PrepareRead()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			// Check if it's a normal close or unexpected error
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Errorf("WebSocket unexpected close error for socket %s: %v", client.ID, err)
			} else {
				log.Infof("WebSocket connection closed for socket: %s", client.ID)
			}
			break
		}

		// Parse the message
		message := &comm.WSMessage{}
		if err := json.Unmarshal(raw, message); err != nil {
			log.Errorf("Failed to unmarshal message from socket %s: %v", client.ID, err)
			h.sendErrorToClient(client, "Invalid message format")
			continue // Don't break, just skip this message
		}

		log.Debugf("Received message from socket %s: type=%s", client.ID, message.Type)

		// Messages of one connection are handled in arrival order
		h.router.HandleMessage(client, message)
	}
}

// sendErrorToClient sends an error message back to the WebSocket client
func (h *Handler) sendErrorToClient(client *ws.Client, errorMsg string) {
	msg, err := comm.NewMessage(comm.TypeError, comm.ErrorPayload{Message: errorMsg})
	if err != nil {
		log.Errorf("Failed to build error message: %v", err)
		return
	}
	client.Send(msg)
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(healthMessage)); err != nil {
		log.Errorf("Failed to write health response: %v", err)
	}
}
