package handlers

import (
	"encoding/json"
	"log"
	"time"

	"github.com/pselivanov/errandchat/internal/database"
	"github.com/pselivanov/errandchat/internal/models"
	"github.com/pselivanov/errandchat/internal/websocket"
)

// ChatGateway drives the lifecycle of every inbound chat event:
// validate, ensure the room's log exists, persist, then broadcast.
type ChatGateway struct {
	db  *database.Database
	hub *websocket.Hub
}

func NewChatGateway(db *database.Database, hub *websocket.Hub) *ChatGateway {
	return &ChatGateway{
		db:  db,
		hub: hub,
	}
}

func (g *ChatGateway) HandleEvent(client *websocket.Client, ev *websocket.Event) error {
	switch ev.Type {
	case websocket.TypeSendMessage:
		return g.handleSendMessage(client, ev)

	default:
		log.Printf("Unknown event type: %s", ev.Type)
		return nil
	}
}

func (g *ChatGateway) handleSendMessage(client *websocket.Client, ev *websocket.Event) error {
	if ev.RoomID == "" || ev.Timestamp == "" || ev.Message == "" ||
		ev.SenderID == 0 || ev.SenderUsername == "" {
		return websocket.ErrInvalidEvent
	}

	// The session, not the payload, decides who the sender is.
	if ev.SenderID != client.UserID {
		return websocket.ErrSenderMismatch
	}

	if !client.IsInRoom(ev.RoomID) {
		return websocket.ErrNotSubscribed
	}

	if _, err := g.db.GetOrCreateMessageLog(ev.RoomID); err != nil {
		log.Printf("Failed to ensure message log for room %s: %v", ev.RoomID, err)
		return err
	}

	msg := &models.ChatMessage{
		RoomID:         ev.RoomID,
		SenderID:       client.UserID,
		SenderUsername: ev.SenderUsername,
		Content:        ev.Message,
		Timestamp:      time.Now(),
	}

	// Persist before broadcast: subscribers must never see a message the
	// store failed to record.
	if err := g.db.AppendChatMessage(msg); err != nil {
		log.Printf("Failed to save message for room %s: %v", ev.RoomID, err)
		return err
	}

	delivered := websocket.Event{
		Type:           websocket.TypeMessageDelivered,
		RoomID:         ev.RoomID,
		SenderID:       ev.SenderID,
		SenderUsername: ev.SenderUsername,
		Message:        ev.Message,
		Timestamp:      ev.Timestamp,
	}

	data, err := json.Marshal(delivered)
	if err != nil {
		return err
	}

	g.hub.Publish(ev.RoomID, data, client.ID)

	go g.db.UpdateLastSeen(client.UserID)

	return nil
}
