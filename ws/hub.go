package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// Hub fans out change notifications to every connected client.
type Hub struct {
	Clients map[*websocket.Conn]*Client
	Mutex   sync.RWMutex
}

var H = Hub{
	Clients: make(map[*websocket.Conn]*Client),
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}
	h.Clients[conn] = client

	go h.writePump(conn)
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if client, ok := h.Clients[conn]; ok {
		close(client.Send)
		delete(h.Clients, conn)
		conn.Close()
	}
}

func (h *Hub) writePump(conn *websocket.Conn) {
	h.Mutex.RLock()
	client, ok := h.Clients[conn]
	h.Mutex.RUnlock()
	if !ok {
		return
	}

	for msg := range client.Send {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

func (h *Hub) broadcast(payload interface{}) {
	msg, err := json.Marshal(payload)
	if err != nil {
		log.Println("ws marshal error:", err)
		return
	}

	h.Mutex.RLock()
	defer h.Mutex.RUnlock()
	for _, client := range h.Clients {
		select {
		case client.Send <- msg:
		default:
			// slow client, drop the message
		}
	}
}

type listChangedEvent struct {
	Type string `json:"type"`
}

func BroadcastTrainingListChanged() {
	H.broadcast(listChangedEvent{Type: "training_list_changed"})
}

func BroadcastContentListChanged() {
	H.broadcast(listChangedEvent{Type: "content_list_changed"})
}
