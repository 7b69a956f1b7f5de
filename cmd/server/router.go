package server

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/pselivanov/errandchat/internal/handlers"
	"github.com/pselivanov/errandchat/internal/middleware"
	"github.com/pselivanov/errandchat/pkg/auth"
)

func APIEndpoints(
	r *gin.Engine,
	authH *handlers.AuthHandler,
	userH *handlers.UserHandler,
	chatH *handlers.ChatHandler,
	requestH *handlers.RequestHandler,
	wsH *handlers.WebSocketHandler,
	jwtMgr *auth.JWTManager,
	rdb *redis.Client,
) {
	// Auth endpoints
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authH.Register)
		authGroup.POST("/login", authH.Login)
		authGroup.POST("/logout", middleware.AuthMiddleware(jwtMgr, rdb), authH.Logout)
	}

	// API endpoints
	api := r.Group("/api/v1", middleware.AuthMiddleware(jwtMgr, rdb))
	{
		api.GET("/users/me", userH.GetMe)
		api.GET("/users/:id", userH.GetUser)

		api.POST("/chats", chatH.OpenChat)
		api.GET("/chats", chatH.ListChats)
		api.GET("/chats/:room_id/messages", chatH.GetRoomMessages)

		api.POST("/requests", requestH.CreateRequest)
		api.GET("/requests", requestH.ListRequests)
		api.GET("/requests/:id", requestH.GetRequest)
		api.DELETE("/requests/:id", requestH.DeleteRequest)
	}

	// Real-time gateway
	r.GET("/ws", middleware.WSAuthMiddleware(jwtMgr, rdb), wsH.HandleWebSocket)
}
