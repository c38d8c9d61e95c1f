package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pulseblog/api-go/controllers"
)

func SetupGroupReadRoutes(public *gin.RouterGroup, groupController *controllers.GroupController) {
	groups := public.Group("/groups")
	{
		groups.GET("", groupController.ListGroups)
		groups.GET("/:slug", groupController.GetGroup)
		groups.GET("/:slug/posts", groupController.GetGroupPosts)
	}
}

func SetupGroupWriteRoutes(protected *gin.RouterGroup, groupController *controllers.GroupController) {
	groups := protected.Group("/groups")
	{
		groups.POST("", groupController.CreateGroup)
	}
}
