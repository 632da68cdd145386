package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/janhq/camus/internal/interfaces/httpserver/handlers"
)

func registerShareRoutes(router *gin.RouterGroup, handler *handlers.ShareHandler) {
	router.POST("/conversations/:id/share", handler.ShareConversation)
	router.DELETE("/conversations/:id/share", handler.UnshareConversation)
	router.POST("/conversations/:id/artifacts/:artifactId/share", handler.ShareArtifact)

	// Public reads
	router.GET("/shared/conversations/:slug", handler.GetSharedConversation)
	router.GET("/shared/artifacts/:slug", handler.GetSharedArtifact)
}
