package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// EventType tags every event crossing the websocket.
type EventType string

const (
	TypePing EventType = "ping"
	TypePong EventType = "pong"

	// Inbound
	TypeJoinRoom    EventType = "join_room"
	TypeLeaveRoom   EventType = "leave_room"
	TypeSendMessage EventType = "send_message"

	// Outbound
	TypeJoinedRoom       EventType = "joined_room"
	TypeLeftRoom         EventType = "left_room"
	TypeMessageDelivered EventType = "message_delivered"
	TypeError            EventType = "error"
)

// Event is the wire envelope. Which fields must be set depends on Type; the
// gateway validates the full field set for send_message.
type Event struct {
	Type           EventType `json:"type"`
	RoomID         string    `json:"room_id,omitempty"`
	SenderID       uint      `json:"sender_id,omitempty"`
	SenderUsername string    `json:"sender_username,omitempty"`
	Message        string    `json:"message,omitempty"`
	Timestamp      string    `json:"timestamp,omitempty"`
}

type Client struct {
	ID       uuid.UUID
	UserID   uint
	Username string
	Conn     *websocket.Conn
	Send     chan []byte
	Rooms    map[string]bool
	Hub      *Hub
	mu       sync.RWMutex
}

// Hub is the in-process broadcaster: it tracks which connections are
// subscribed to which rooms and fans events out to them. Subscriptions hold
// no persistent state.
type Hub struct {
	clients map[uuid.UUID]*Client

	// Subscribers per room id
	rooms map[string]map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		rooms:      make(map[string]map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Run processes registrations until Stop is called.
func (h *Hub) Run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-ticker.C:
			h.ping()
		}
	}
}

func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		close(client.Send)
		if client.Conn != nil {
			client.Conn.Close()
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client

	log.Printf("Client registered: %s (user %d)", client.ID, client.UserID)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}

	// A disconnect must not leave stale subscriptions behind.
	for roomID := range client.Rooms {
		h.removeFromRoomUnsafe(client, roomID)
	}

	delete(h.clients, client.ID)
	close(client.Send)

	log.Printf("Client unregistered: %s (user %d)", client.ID, client.UserID)
}

// Subscribe adds the client to the room's subscriber set. Idempotent. The
// room is announced as online to every subscriber, the joiner included.
func (h *Hub) Subscribe(client *Client, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[uuid.UUID]*Client)
	}

	h.rooms[roomID][client.ID] = client
	client.mu.Lock()
	client.Rooms[roomID] = true
	client.mu.Unlock()

	joined := Event{
		Type:      TypeJoinedRoom,
		RoomID:    roomID,
		SenderID:  client.UserID,
		Message:   fmt.Sprintf("%s is now online.", roomID),
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if data, err := json.Marshal(joined); err == nil {
		h.publishUnsafe(roomID, data, uuid.Nil)
	}
}

// Unsubscribe removes the client from the room's subscriber set. No-op when
// the client was not subscribed.
func (h *Hub) Unsubscribe(client *Client, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeFromRoomUnsafe(client, roomID)
}

func (h *Hub) removeFromRoomUnsafe(client *Client, roomID string) {
	room, ok := h.rooms[roomID]
	if !ok {
		return
	}
	if _, ok := room[client.ID]; !ok {
		return
	}

	delete(room, client.ID)
	client.mu.Lock()
	delete(client.Rooms, roomID)
	client.mu.Unlock()

	if len(room) == 0 {
		delete(h.rooms, roomID)
		return
	}

	left := Event{
		Type:      TypeLeftRoom,
		RoomID:    roomID,
		SenderID:  client.UserID,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if data, err := json.Marshal(left); err == nil {
		h.publishUnsafe(roomID, data, client.ID)
	}
}

// Publish delivers the payload to every current subscriber of the room except
// exclude (uuid.Nil excludes nobody). Delivery is best effort: a subscriber
// whose send queue is full is skipped, never waited on.
func (h *Hub) Publish(roomID string, message []byte, exclude uuid.UUID) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	h.publishUnsafe(roomID, message, exclude)
}

func (h *Hub) publishUnsafe(roomID string, message []byte, exclude uuid.UUID) {
	room, ok := h.rooms[roomID]
	if !ok {
		return
	}

	for _, client := range room {
		if client.ID == exclude {
			continue
		}
		select {
		case client.Send <- message:
		default:
			log.Printf("Client %s send channel full", client.ID)
		}
	}
}

func (h *Hub) ping() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ev := Event{
		Type:      TypePing,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if data, err := json.Marshal(ev); err == nil {
		for _, client := range h.clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}

// RoomUsers returns the distinct user ids currently subscribed to the room.
func (h *Hub) RoomUsers(roomID string) []uint {
	h.mu.RLock()
	defer h.mu.RUnlock()

	userMap := make(map[uint]bool)
	if room, ok := h.rooms[roomID]; ok {
		for _, client := range room {
			userMap[client.UserID] = true
		}
	}

	users := make([]uint, 0, len(userMap))
	for userID := range userMap {
		users = append(users, userID)
	}
	return users
}

// OnlineUsers returns the distinct user ids with at least one live connection.
func (h *Hub) OnlineUsers() []uint {
	h.mu.RLock()
	defer h.mu.RUnlock()

	userMap := make(map[uint]bool)
	for _, client := range h.clients {
		userMap[client.UserID] = true
	}

	users := make([]uint, 0, len(userMap))
	for userID := range userMap {
		users = append(users, userID)
	}
	return users
}
