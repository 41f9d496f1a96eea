package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"colorspin-backend/internal/models"
	"colorspin-backend/internal/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	store services.AccountStore
	hub   *WebSocketHub
	log   zerolog.Logger
}

type WebSocketHub struct {
	clients    map[string]*websocket.Conn
	register   chan *Client
	unregister chan *Client
	send       chan *Message
}

type Client struct {
	Username string
	Conn     *websocket.Conn
}

type Message struct {
	Type     string      `json:"type"`
	Username string      `json:"username,omitempty"`
	Data     interface{} `json:"data"`
}

func NewWebSocketHandler(store services.AccountStore, logger zerolog.Logger) *WebSocketHandler {
	hub := &WebSocketHub{
		clients:    make(map[string]*websocket.Conn),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		send:       make(chan *Message, 100),
	}

	go hub.run()

	return &WebSocketHandler{
		store: store,
		hub:   hub,
		log:   logger,
	}
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	username := c.GetString("username")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to upgrade to websocket")
		return
	}

	client := &Client{
		Username: username,
		Conn:     conn,
	}

	h.hub.register <- client

	defer func() {
		h.hub.unregister <- client
		conn.Close()
	}()

	h.sendCurrentBalance(client)

	for {
		var msg Message
		err := conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Warn().Err(err).Str("username", username).Msg("websocket error")
			}
			break
		}

		h.handleMessage(client, &msg)
	}
}

func (h *WebSocketHandler) handleMessage(client *Client, msg *Message) {
	switch msg.Type {
	case "PING":
		h.hub.send <- &Message{
			Type:     "PONG",
			Username: client.Username,
			Data:     gin.H{"timestamp": time.Now().Unix()},
		}
	}
}

// sendCurrentBalance routes the greeting through the hub; only the hub
// goroutine ever writes on a connection.
func (h *WebSocketHandler) sendCurrentBalance(client *Client) {
	account, err := h.store.GetAccount(client.Username)
	if err != nil {
		h.log.Warn().Err(err).Str("username", client.Username).Msg("failed to load account for websocket")
		return
	}

	h.hub.send <- &Message{
		Type:     "BALANCE_UPDATE",
		Username: client.Username,
		Data: gin.H{
			"coins":        account.Coins,
			"attack_coins": account.AttackCoins,
		},
	}
}

// SendBalance pushes the new coin balance to the user, if connected.
func (h *WebSocketHandler) SendBalance(username string, coins int) {
	h.hub.send <- &Message{
		Type:     "BALANCE_UPDATE",
		Username: username,
		Data:     gin.H{"coins": coins},
	}
}

// NotifyAttack pushes an attack notification to the victim, if connected.
// The durable copy stays in the account's pending queue until drained.
func (h *WebSocketHandler) NotifyAttack(username string, n models.AttackNotification) {
	h.hub.send <- &Message{
		Type:     "ATTACK_RECEIVED",
		Username: username,
		Data:     n,
	}
}

func (hub *WebSocketHub) run() {
	for {
		select {
		case client := <-hub.register:
			hub.clients[client.Username] = client.Conn

		case client := <-hub.unregister:
			delete(hub.clients, client.Username)

		case message := <-hub.send:
			if message.Username != "" {
				if conn, ok := hub.clients[message.Username]; ok {
					conn.WriteJSON(message)
				}
			} else {
				for _, conn := range hub.clients {
					conn.WriteJSON(message)
				}
			}
		}
	}
}
