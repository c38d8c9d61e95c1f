package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pulseblog/api-go/models"
	"github.com/pulseblog/api-go/repository"
	"github.com/pulseblog/api-go/utils"
	"gorm.io/gorm"
)

type UserController struct {
	DB      *gorm.DB
	Users   *repository.Users
	Follows *repository.Follows
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{
		DB:      db,
		Users:   repository.NewUsers(db),
		Follows: repository.NewFollows(db),
	}
}

// GetUserProfile godoc
// @Summary Get a user's public profile
// @Description Returns the profile with post and follow counts. When the
// caller is signed in the response also says whether they follow this
// user.
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} map[string]interface{}
// @Router /users/{username} [get]
func (uc *UserController) GetUserProfile(c *gin.Context) {
	target, err := uc.Users.GetByUsername(c.Param("username"))
	if err != nil {
		repoError(c, err)
		return
	}

	var stats struct {
		PostsCount     int64 `json:"postsCount"`
		FollowersCount int64 `json:"followersCount"`
		FollowingCount int64 `json:"followingCount"`
	}
	if err := uc.DB.Model(&models.Post{}).Where("author_id = ?", target.ID).Count(&stats.PostsCount).Error; err != nil {
		repoError(c, err)
		return
	}
	if err := uc.DB.Model(&models.Follow{}).Where("author_id = ?", target.ID).Count(&stats.FollowersCount).Error; err != nil {
		repoError(c, err)
		return
	}
	if err := uc.DB.Model(&models.Follow{}).Where("follower_id = ?", target.ID).Count(&stats.FollowingCount).Error; err != nil {
		repoError(c, err)
		return
	}

	isFollowing := false
	isOwnProfile := false
	if currentUser := utils.GetUser(c); currentUser != nil {
		isOwnProfile = currentUser.UserID == target.ID
		if !isOwnProfile {
			isFollowing, _ = uc.Follows.IsFollowing(currentUser.UserID, target.ID)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             target.ID,
		"username":       target.Username,
		"bio":            target.Bio,
		"avatar":         target.Avatar,
		"createdAt":      target.CreatedAt,
		"postsCount":     stats.PostsCount,
		"followersCount": stats.FollowersCount,
		"followingCount": stats.FollowingCount,
		"isOwnProfile":   isOwnProfile,
		"isFollowing":    isFollowing,
	})
}
