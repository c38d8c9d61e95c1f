package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pulseblog/api-go/controllers"
)

func SetupPostReadRoutes(public *gin.RouterGroup, postController *controllers.PostController, commentController *controllers.CommentController) {
	posts := public.Group("/posts")
	{
		posts.GET("", postController.ListPosts)
		posts.GET("/:id", postController.GetPostDetail)
		posts.GET("/:id/comments", commentController.ListComments)
	}

	users := public.Group("/users")
	{
		users.GET("/:username/posts", postController.GetUserPosts)
	}
}

func SetupPostWriteRoutes(protected *gin.RouterGroup, postController *controllers.PostController, commentController *controllers.CommentController) {
	posts := protected.Group("/posts")
	{
		posts.POST("", postController.CreatePost)
		posts.PUT("/:id", postController.UpdatePost)
		posts.DELETE("/:id", postController.DeletePost)
		posts.POST("/:id/comments", commentController.CreateComment)
	}
}
