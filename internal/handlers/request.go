package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pselivanov/errandchat/internal/database"
	"github.com/pselivanov/errandchat/internal/middleware"
	"github.com/pselivanov/errandchat/internal/models"
)

type RequestHandler struct {
	db *database.Database
}

func NewRequestHandler(db *database.Database) *RequestHandler {
	return &RequestHandler{db: db}
}

// CreateRequest posts a new errand request.
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request := &models.Request{
		Title:       req.Title,
		Description: req.Description,
		UserID:      userID,
		CreatedAt:   time.Now(),
	}

	if err := h.db.CreateRequest(request); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create request"})
		return
	}

	c.JSON(http.StatusCreated, formatRequestResponse(request))
}

// ListRequests returns every open request, newest first.
func (h *RequestHandler) ListRequests(c *gin.Context) {
	requests, err := h.db.ListRequests()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list requests"})
		return
	}

	result := make([]gin.H, len(requests))
	for i := range requests {
		result[i] = formatRequestResponse(&requests[i])
	}

	c.JSON(http.StatusOK, gin.H{"requests": result})
}

// GetRequest returns one request with its requester.
func (h *RequestHandler) GetRequest(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	request, err := h.db.GetRequest(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
		return
	}

	c.JSON(http.StatusOK, formatRequestResponse(request))
}

// DeleteRequest removes a request. Only its owner can delete it.
func (h *RequestHandler) DeleteRequest(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	request, err := h.db.GetRequest(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
		return
	}

	if request.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only delete your own requests"})
		return
	}

	if err := h.db.DeleteRequest(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "request deleted successfully"})
}

func formatRequestResponse(request *models.Request) gin.H {
	response := gin.H{
		"id":          request.ID,
		"title":       request.Title,
		"description": request.Description,
		"user_id":     request.UserID,
		"created_at":  request.CreatedAt,
	}

	if request.User.ID != 0 {
		response["user"] = gin.H{
			"id":       request.User.ID,
			"username": request.User.Username,
			"email":    request.User.Email,
		}
	}

	return response
}
