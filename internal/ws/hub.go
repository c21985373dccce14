package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"family-backend/internal/models"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS is handled at the HTTP layer
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans stored chat messages out to connected members. Directed messages
// go to the receiver and the sender only; broadcasts go to everyone.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	outbound   chan *models.ChatMessage
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		outbound:   make(chan *models.ChatMessage, 64),
	}
}

// Run owns the client set. Must be started once, on its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if h.clients[c] {
				delete(h.clients, c)
				close(c.send)
			}
		case msg := <-h.outbound:
			payload, err := json.Marshal(msg)
			if err != nil {
				continue
			}
			for c := range h.clients {
				if msg.ReceiverID != nil && c.memberID != *msg.ReceiverID && c.memberID != msg.SenderID {
					continue
				}
				select {
				case c.send <- payload:
				default:
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// Broadcast queues a stored message for fan-out
func (h *Hub) Broadcast(msg *models.ChatMessage) {
	select {
	case h.outbound <- msg:
	default:
		log.Println("Chat hub outbound queue full, dropping message")
	}
}

// Client is one websocket connection bound to a family member.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	memberID models.MemberID
	send     chan []byte
}

// Serve upgrades the connection and starts the pumps.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, memberID models.MemberID) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Websocket upgrade failed: %v", err)
		return
	}

	c := &Client{hub: h, conn: conn, memberID: memberID, send: make(chan []byte, 16)}
	h.register <- c

	go c.writePump()
	go c.readPump()
}

// readPump drains the connection so pings/pongs and close frames are
// processed. Messages are posted over REST, not the socket.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
