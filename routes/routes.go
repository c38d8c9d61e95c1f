package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pulseblog/api-go/cache"
	"github.com/pulseblog/api-go/controllers"
	"github.com/pulseblog/api-go/middleware"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, timeline *cache.Timeline) {
	// Initialize controllers
	authController := controllers.NewAuthController(db)
	postController := controllers.NewPostController(db, timeline)
	commentController := controllers.NewCommentController(db)
	groupController := controllers.NewGroupController(db)
	feedController := controllers.NewFeedController(db)
	interactionController := controllers.NewInteractionController(db)
	userController := controllers.NewUserController(db)
	uploadController := controllers.NewUploadController()

	// Public routes: registration, login and every read surface
	public := r.Group("/api")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)

		SetupPostReadRoutes(public, postController, commentController)
		SetupGroupReadRoutes(public, groupController)
		SetupInteractionReadRoutes(public, interactionController)
		SetupUserRoutes(public, userController)
	}

	// Protected routes: everything that writes, plus the personal feed
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/profile", authController.GetProfile)
		protected.PUT("/profile", authController.UpdateProfile)

		SetupPostWriteRoutes(protected, postController, commentController)
		SetupGroupWriteRoutes(protected, groupController)
		SetupFeedRoutes(protected, feedController)
		SetupInteractionWriteRoutes(protected, interactionController)
		SetupUploadRoutes(protected, uploadController)
	}
}
