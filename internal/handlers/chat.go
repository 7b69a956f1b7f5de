package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pselivanov/errandchat/internal/chat"
	"github.com/pselivanov/errandchat/internal/database"
	"github.com/pselivanov/errandchat/internal/middleware"
)

type ChatHandler struct {
	db        *database.Database
	directory *chat.Directory
}

func NewChatHandler(db *database.Database, directory *chat.Directory) *ChatHandler {
	return &ChatHandler{db: db, directory: directory}
}

// OpenChat opens (or returns the existing) direct chat with the peer
// identified by email.
func (h *ChatHandler) OpenChat(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	var req struct {
		PeerEmail string `json:"peer_email" binding:"required,email"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	roomID, err := h.directory.OpenChat(userID, req.PeerEmail)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrPeerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "peer not found"})
		case errors.Is(err, chat.ErrSelfChat):
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot open a chat with yourself"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open chat"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"room_id": roomID})
}

// ListChats returns the user's chat list with last-message previews.
// ?active=<room_id> marks the entry the user is currently viewing.
func (h *ChatHandler) ListChats(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)
	activeRoomID := c.Query("active")

	chats, err := h.directory.ListChats(userID, activeRoomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list chats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"chats": chats})
}

// GetRoomMessages returns the full message history of a room the user's chat
// list references.
func (h *ChatHandler) GetRoomMessages(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)
	roomID := c.Param("room_id")

	isMember, err := h.db.HasChatEntryForRoom(userID, roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check room access"})
		return
	}
	if !isMember {
		c.JSON(http.StatusForbidden, gin.H{"error": "you are not a member of this room"})
		return
	}

	messages, err := h.db.MessageHistory(roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get messages"})
		return
	}

	result := make([]gin.H, len(messages))
	for i, msg := range messages {
		result[i] = gin.H{
			"room_id":         msg.RoomID,
			"sender_id":       msg.SenderID,
			"sender_username": msg.SenderUsername,
			"content":         msg.Content,
			"timestamp":       msg.Timestamp,
		}
	}

	c.JSON(http.StatusOK, gin.H{"messages": result})
}
