package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pulseblog/api-go/repository"
	"github.com/pulseblog/api-go/utils"
	"gorm.io/gorm"
)

type InteractionController struct {
	Follows *repository.Follows
	Users   *repository.Users
}

func NewInteractionController(db *gorm.DB) *InteractionController {
	return &InteractionController{
		Follows: repository.NewFollows(db),
		Users:   repository.NewUsers(db),
	}
}

// FollowUser godoc
// @Summary Follow an author
// @Description Creates the follow edge. Repeating the call changes
// nothing; following yourself is rejected.
// @Tags interactions
// @Produce json
// @Param username path string true "Author username"
// @Success 200 {object} map[string]interface{}
// @Router /users/{username}/follow [post]
func (ic *InteractionController) FollowUser(c *gin.Context) {
	user := utils.GetUser(c)
	author, err := ic.Users.GetByUsername(c.Param("username"))
	if err != nil {
		repoError(c, err)
		return
	}

	if err := ic.Follows.Follow(user.UserID, author.ID); err != nil {
		repoError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": true})
}

// UnfollowUser godoc
// @Summary Unfollow an author
// @Description Removes the follow edge; removing an absent edge is a
// no-op.
// @Tags interactions
// @Produce json
// @Param username path string true "Author username"
// @Success 200 {object} map[string]interface{}
// @Router /users/{username}/follow [delete]
func (ic *InteractionController) UnfollowUser(c *gin.Context) {
	user := utils.GetUser(c)
	author, err := ic.Users.GetByUsername(c.Param("username"))
	if err != nil {
		repoError(c, err)
		return
	}

	if err := ic.Follows.Unfollow(user.UserID, author.ID); err != nil {
		repoError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": false})
}

// GetUserFollowers godoc
// @Summary Get a user's followers
// @Tags interactions
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} map[string]interface{}
// @Router /users/{username}/followers [get]
func (ic *InteractionController) GetUserFollowers(c *gin.Context) {
	target, err := ic.Users.GetByUsername(c.Param("username"))
	if err != nil {
		repoError(c, err)
		return
	}

	followers, err := ic.Follows.Followers(target.ID)
	if err != nil {
		repoError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"followers": followers})
}

// GetUserFollowing godoc
// @Summary Get the authors a user follows
// @Tags interactions
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} map[string]interface{}
// @Router /users/{username}/following [get]
func (ic *InteractionController) GetUserFollowing(c *gin.Context) {
	target, err := ic.Users.GetByUsername(c.Param("username"))
	if err != nil {
		repoError(c, err)
		return
	}

	following, err := ic.Follows.Following(target.ID)
	if err != nil {
		repoError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": following})
}
