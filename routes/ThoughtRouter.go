package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/jsck45/social-network-api/controllers"
)

func ThoughtRouter(incomingRoutes *gin.Engine, tc *controllers.ThoughtController) {
	incomingRoutes.GET("/api/thoughts", tc.GetThoughts)
	incomingRoutes.POST("/api/thoughts", tc.CreateThought)
	incomingRoutes.GET("/api/thoughts/:thoughtId", tc.GetSingleThought)
	incomingRoutes.PUT("/api/thoughts/:thoughtId", tc.UpdateThought)
	incomingRoutes.DELETE("/api/thoughts/:thoughtId", tc.DeleteThought)
	incomingRoutes.POST("/api/thoughts/:thoughtId/reactions", tc.AddReaction)
	incomingRoutes.DELETE("/api/thoughts/:thoughtId/reactions/:reactionId", tc.RemoveReaction)
}
