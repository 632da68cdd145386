package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/janhq/camus/internal/interfaces/httpserver/handlers"
)

func registerConversationRoutes(router *gin.RouterGroup, h *handlers.Provider) {
	conversations := router.Group("/conversations")
	conversations.GET("", h.Conversation.List)
	conversations.POST("", h.Conversation.Create)
	conversations.GET("/:id", h.Conversation.Get)
	conversations.PATCH("/:id", h.Conversation.Update)

	conversations.POST("/:id/messages", h.Message.Create)
	conversations.PUT("/:id/messages", h.Message.Update)

	conversations.POST("/:id/artifacts", h.Artifact.Create)
	conversations.PUT("/:id/artifacts", h.Artifact.Update)

	conversations.POST("/:id/tool-results", h.ToolResult.Create)
	conversations.PUT("/:id/tool-results", h.ToolResult.Update)
}
