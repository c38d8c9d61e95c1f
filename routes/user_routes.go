package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pulseblog/api-go/controllers"
)

func SetupUserRoutes(public *gin.RouterGroup, userController *controllers.UserController) {
	users := public.Group("/users")
	{
		users.GET("/:username", userController.GetUserProfile)
	}
}
