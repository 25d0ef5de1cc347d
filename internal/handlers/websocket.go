package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"dicebank-backend/internal/models"
	"dicebank-backend/internal/services"
)

const (
	MessageStateUpdate = "STATE_UPDATE"
	MessagePing        = "PING"
	MessagePong        = "PONG"

	writeWait = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler pushes every bankroll change to connected clients. It is
// attached to the store as a services.Broadcaster.
type WebSocketHandler struct {
	gameEngine *services.GameEngine
	hub        *WebSocketHub
	logger     *zap.Logger
}

type WebSocketHub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	done       chan struct{}
	logger     *zap.Logger
}

type Client struct {
	SessionID string
	Conn      *websocket.Conn

	writeMu sync.Mutex
}

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

func (c *Client) WriteJSON(msg *Message) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.Conn.WriteJSON(msg)
}

func NewWebSocketHandler(gameEngine *services.GameEngine, logger *zap.Logger) *WebSocketHandler {
	hub := &WebSocketHub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 100),
		done:       make(chan struct{}),
		logger:     logger,
	}

	go hub.run()

	return &WebSocketHandler{
		gameEngine: gameEngine,
		hub:        hub,
		logger:     logger,
	}
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("failed to upgrade to websocket", zap.Error(err))
		return
	}

	client := &Client{
		SessionID: c.GetString("session_id"),
		Conn:      conn,
	}

	select {
	case h.hub.register <- client:
	case <-h.hub.done:
		conn.Close()
		return
	}

	defer func() {
		select {
		case h.hub.unregister <- client:
		case <-h.hub.done:
		}
		conn.Close()
	}()

	h.sendState(client)

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("websocket error", zap.String("session_id", client.SessionID), zap.Error(err))
			}
			break
		}

		h.handleMessage(client, &msg)
	}
}

func (h *WebSocketHandler) handleMessage(client *Client, msg *Message) {
	switch msg.Type {
	case MessagePing:
		h.sendPong(client)
	case MessageStateUpdate:
		h.sendState(client)
	}
}

func (h *WebSocketHandler) sendState(client *Client) {
	msg := &Message{
		Type: MessageStateUpdate,
		Data: models.NewStateResponse(h.gameEngine.State()),
	}

	if err := client.WriteJSON(msg); err != nil {
		h.logger.Warn("failed to send state", zap.String("session_id", client.SessionID), zap.Error(err))
	}
}

func (h *WebSocketHandler) sendPong(client *Client) {
	msg := &Message{
		Type: MessagePong,
		Data: gin.H{
			"timestamp": time.Now().Unix(),
		},
	}

	if err := client.WriteJSON(msg); err != nil {
		h.logger.Warn("failed to send pong", zap.String("session_id", client.SessionID), zap.Error(err))
	}
}

// BroadcastState queues state for every client. It never blocks the store's
// notification path; when the queue is full the update is dropped.
func (h *WebSocketHandler) BroadcastState(state models.BankrollState) {
	msg := &Message{
		Type: MessageStateUpdate,
		Data: models.NewStateResponse(state),
	}

	select {
	case h.hub.broadcast <- msg:
	default:
		h.logger.Warn("websocket broadcast queue full, dropping state update")
	}
}

func (h *WebSocketHandler) Close() {
	close(h.hub.done)
}

func (hub *WebSocketHub) run() {
	for {
		select {
		case client := <-hub.register:
			hub.clients[client] = true
			hub.logger.Debug("client registered", zap.String("session_id", client.SessionID))

		case client := <-hub.unregister:
			if _, ok := hub.clients[client]; ok {
				delete(hub.clients, client)
				hub.logger.Debug("client unregistered", zap.String("session_id", client.SessionID))
			}

		case message := <-hub.broadcast:
			hub.broadcastMessage(message)

		case <-hub.done:
			for client := range hub.clients {
				client.Conn.Close()
			}
			return
		}
	}
}

func (hub *WebSocketHub) broadcastMessage(message *Message) {
	for client := range hub.clients {
		if err := client.WriteJSON(message); err != nil {
			hub.logger.Warn("failed to broadcast", zap.String("session_id", client.SessionID), zap.Error(err))
		}
	}
}
