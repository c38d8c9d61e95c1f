package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pulseblog/api-go/repository"
	"github.com/pulseblog/api-go/utils"
	"gorm.io/gorm"
)

type CommentController struct {
	Comments *repository.Comments
}

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{Comments: repository.NewComments(db)}
}

// CreateComment godoc
// @Summary Comment on a post
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param comment body CreateCommentRequest true "Comment request"
// @Success 201 {object} models.Comment
// @Router /posts/{id}/comments [post]
func (cc *CommentController) CreateComment(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Commenting requires a signed-in user"})
		return
	}

	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := cc.Comments.Create(uint(postID), user.UserID, req.Text)
	if err != nil {
		repoError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// ListComments godoc
// @Summary List a post's comments
// @Description Returns every comment on the post, newest first.
// @Tags comments
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Router /posts/{id}/comments [get]
func (cc *CommentController) ListComments(c *gin.Context) {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	comments, err := cc.Comments.List(uint(postID))
	if err != nil {
		repoError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}
