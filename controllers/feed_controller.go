package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pulseblog/api-go/repository"
	"github.com/pulseblog/api-go/utils"
	"gorm.io/gorm"
)

type FeedController struct {
	Posts *repository.Posts
}

func NewFeedController(db *gorm.DB) *FeedController {
	return &FeedController{Posts: repository.NewPosts(db)}
}

// GetUserFeed godoc
// @Summary Get the personalized feed
// @Description Returns posts from the authors the caller follows, newest
// first, with the same page size as every other listing.
// @Tags feed
// @Produce json
// @Param page query integer false "Page number (default: 1)"
// @Success 200 {object} map[string]interface{}
// @Router /feed [get]
func (fc *FeedController) GetUserFeed(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	result, err := fc.Posts.List(repository.ByFollowed(user.UserID), pageParam(c))
	if err != nil {
		repoError(c, err)
		return
	}

	c.JSON(http.StatusOK, pageResponse(result))
}
