package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/jsck45/social-network-api/controllers"
)

func UserRouter(incomingRoutes *gin.Engine, uc *controllers.UserController) {
	incomingRoutes.GET("/api/users", uc.GetUsers)
	incomingRoutes.POST("/api/users", uc.CreateUser)
	incomingRoutes.GET("/api/users/:userId", uc.GetSingleUser)
	incomingRoutes.PUT("/api/users/:userId", uc.UpdateUser)
	incomingRoutes.DELETE("/api/users/:userId", uc.DeleteUser)
	incomingRoutes.POST("/api/users/:userId/friends/:friendId", uc.AddFriend)
	incomingRoutes.DELETE("/api/users/:userId/friends/:friendId", uc.RemoveFriend)
}
