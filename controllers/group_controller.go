package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pulseblog/api-go/repository"
	"gorm.io/gorm"
)

type GroupController struct {
	Groups *repository.Groups
	Posts  *repository.Posts
}

type CreateGroupRequest struct {
	Title       string `json:"title" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
}

func NewGroupController(db *gorm.DB) *GroupController {
	return &GroupController{
		Groups: repository.NewGroups(db),
		Posts:  repository.NewPosts(db),
	}
}

// CreateGroup godoc
// @Summary Create a group
// @Tags groups
// @Accept json
// @Produce json
// @Param group body CreateGroupRequest true "Group creation request"
// @Success 201 {object} models.Group
// @Router /groups [post]
func (gc *GroupController) CreateGroup(c *gin.Context) {
	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := gc.Groups.Create(req.Title, req.Slug, req.Description)
	if err != nil {
		repoError(c, err)
		return
	}

	c.JSON(http.StatusCreated, group)
}

// ListGroups godoc
// @Summary List all groups
// @Tags groups
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /groups [get]
func (gc *GroupController) ListGroups(c *gin.Context) {
	groups, err := gc.Groups.List()
	if err != nil {
		repoError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// GetGroup godoc
// @Summary Get a group by slug
// @Tags groups
// @Produce json
// @Param slug path string true "Group slug"
// @Success 200 {object} models.Group
// @Router /groups/{slug} [get]
func (gc *GroupController) GetGroup(c *gin.Context) {
	group, err := gc.Groups.GetBySlug(c.Param("slug"))
	if err != nil {
		repoError(c, err)
		return
	}

	c.JSON(http.StatusOK, group)
}

// GetGroupPosts godoc
// @Summary Get a group's timeline
// @Description Returns the group's posts newest first. A group with no
// posts yields an empty page; an unknown slug is a 404.
// @Tags groups
// @Produce json
// @Param slug path string true "Group slug"
// @Param page query integer false "Page number (default: 1)"
// @Success 200 {object} map[string]interface{}
// @Router /groups/{slug}/posts [get]
func (gc *GroupController) GetGroupPosts(c *gin.Context) {
	result, err := gc.Posts.List(repository.ByGroup(c.Param("slug")), pageParam(c))
	if err != nil {
		repoError(c, err)
		return
	}

	c.JSON(http.StatusOK, pageResponse(result))
}
