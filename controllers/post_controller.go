package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pulseblog/api-go/cache"
	"github.com/pulseblog/api-go/repository"
	"github.com/pulseblog/api-go/utils"
	"gorm.io/gorm"
)

type PostController struct {
	Posts    *repository.Posts
	Timeline *cache.Timeline
}

type CreatePostRequest struct {
	Text    string `json:"text" binding:"required"`
	GroupID *uint  `json:"groupId"`
	Image   string `json:"image"`
}

type UpdatePostRequest struct {
	Text    string `json:"text" binding:"required"`
	GroupID *uint  `json:"groupId"`
}

func NewPostController(db *gorm.DB, timeline *cache.Timeline) *PostController {
	return &PostController{
		Posts:    repository.NewPosts(db),
		Timeline: timeline,
	}
}

func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// CreatePost godoc
// @Summary Create a new post
// @Tags posts
// @Accept json
// @Produce json
// @Param post body CreatePostRequest true "Post creation request"
// @Success 201 {object} models.Post
// @Router /posts [post]
func (pc *PostController) CreatePost(c *gin.Context) {
	user := utils.GetUser(c)
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := pc.Posts.Create(user.UserID, req.Text, req.GroupID, req.Image)
	if err != nil {
		repoError(c, err)
		return
	}

	pc.Timeline.Invalidate()
	c.JSON(http.StatusCreated, post)
}

// UpdatePost godoc
// @Summary Update an existing post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param post body UpdatePostRequest true "Post update request"
// @Success 200 {object} models.Post
// @Router /posts/{id} [put]
func (pc *PostController) UpdatePost(c *gin.Context) {
	user := utils.GetUser(c)
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := pc.Posts.Update(uint(postID), user.UserID, req.Text, req.GroupID)
	if err != nil {
		repoError(c, err)
		return
	}

	pc.Timeline.Invalidate()
	c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary Delete a post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Router /posts/{id} [delete]
func (pc *PostController) DeletePost(c *gin.Context) {
	user := utils.GetUser(c)
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if err := pc.Posts.Delete(uint(postID), user.UserID); err != nil {
		repoError(c, err)
		return
	}

	pc.Timeline.Invalidate()
	c.JSON(http.StatusOK, gin.H{"message": "Post successfully deleted"})
}

// GetPostDetail godoc
// @Summary Get a single post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} models.Post
// @Router /posts/{id} [get]
func (pc *PostController) GetPostDetail(c *gin.Context) {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	post, err := pc.Posts.Get(uint(postID))
	if err != nil {
		repoError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// ListPosts godoc
// @Summary Get the global timeline
// @Description Returns the paginated global timeline, newest first. Pages
// are served from the timeline cache until a write invalidates it or the
// TTL runs out.
// @Tags posts
// @Produce json
// @Param page query integer false "Page number (default: 1)"
// @Success 200 {object} map[string]interface{}
// @Router /posts [get]
func (pc *PostController) ListPosts(c *gin.Context) {
	page := pageParam(c)
	scope := repository.All()

	if cached, ok := pc.Timeline.Get(scope.CacheKey(), page); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	result, err := pc.Posts.List(scope, page)
	if err != nil {
		repoError(c, err)
		return
	}

	body := pageResponse(result)
	pc.Timeline.Set(scope.CacheKey(), page, body)
	c.JSON(http.StatusOK, body)
}

// GetUserPosts godoc
// @Summary Get posts by author
// @Tags posts
// @Produce json
// @Param username path string true "Username"
// @Param page query integer false "Page number (default: 1)"
// @Success 200 {object} map[string]interface{}
// @Router /users/{username}/posts [get]
func (pc *PostController) GetUserPosts(c *gin.Context) {
	username := c.Param("username")
	page := pageParam(c)

	result, err := pc.Posts.List(repository.ByAuthor(username), page)
	if err != nil {
		repoError(c, err)
		return
	}

	c.JSON(http.StatusOK, pageResponse(result))
}
