package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pulseblog/api-go/controllers"
)

func SetupInteractionReadRoutes(public *gin.RouterGroup, interactionController *controllers.InteractionController) {
	users := public.Group("/users")
	{
		users.GET("/:username/followers", interactionController.GetUserFollowers)
		users.GET("/:username/following", interactionController.GetUserFollowing)
	}
}

func SetupInteractionWriteRoutes(protected *gin.RouterGroup, interactionController *controllers.InteractionController) {
	users := protected.Group("/users")
	{
		users.POST("/:username/follow", interactionController.FollowUser)
		users.DELETE("/:username/follow", interactionController.UnfollowUser)
	}
}
