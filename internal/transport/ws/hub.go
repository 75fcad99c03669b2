package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Inbound message types (client -> server)
const (
	MsgJoinAsTeacher  MessageType = "joinAsTeacher"
	MsgJoinAsStudent  MessageType = "joinAsStudent"
	MsgCreatePoll     MessageType = "createPoll"
	MsgSubmitAnswer   MessageType = "submitAnswer"
	MsgRemoveStudent  MessageType = "removeStudent"
	MsgResetPoll      MessageType = "resetPoll"
	MsgGetPollHistory MessageType = "getPollHistory"
	MsgChatMessage    MessageType = "chatMessage"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Hub manages the WebSocket connections of the single classroom session
type Hub struct {
	conns map[string]*Connection

	mu sync.RWMutex

	// Channels for coordination
	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents a WebSocket connection
type Connection struct {
	ID   string
	Send chan []byte
	Hub  *Hub
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	To      string // Empty means all connections, specific ID means one connection
	Message *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		conns:      make(map[string]*Connection),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.conns[conn.ID] = conn
			log.Printf("Connection %s registered", conn.ID)
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if existing, ok := h.conns[conn.ID]; ok && existing == conn {
				delete(h.conns, conn.ID)
				close(conn.Send)
				log.Printf("Connection %s unregistered", conn.ID)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)

			if msg.To != "" {
				if conn, ok := h.conns[msg.To]; ok {
					select {
					case conn.Send <- data:
					default:
						// Drop message if buffer full
					}
				}
			} else {
				for _, conn := range h.conns {
					select {
					case conn.Send <- data:
					default:
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastAll sends a message to every connected client (implements service.Broadcaster)
func (h *Hub) BroadcastAll(msgType string, payload interface{}) {
	h.broadcast <- &BroadcastMessage{
		Message: newMessage(msgType, payload),
	}
}

// SendTo sends a targeted message to one connection (implements service.Broadcaster)
func (h *Hub) SendTo(connID string, msgType string, payload interface{}) {
	h.broadcast <- &BroadcastMessage{
		To:      connID,
		Message: newMessage(msgType, payload),
	}
}

func newMessage(msgType string, payload interface{}) *Message {
	msg := &Message{Type: MessageType(msgType)}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			log.Printf("Failed to marshal %s payload: %v", msgType, err)
			return msg
		}
		msg.Payload = data
	}
	return msg
}
