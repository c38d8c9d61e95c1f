package repository

import (
	"errors"
	"strings"

	"github.com/pulseblog/api-go/models"
	"gorm.io/gorm"
)

type Comments struct {
	DB *gorm.DB
}

func NewComments(db *gorm.DB) *Comments {
	return &Comments{DB: db}
}

// Create attaches a comment to a post. Anonymous callers are rejected, an
// empty text is rejected, and the post must exist.
func (r *Comments) Create(postID, authorID uint, text string) (*models.Comment, error) {
	if authorID == 0 {
		return nil, &AuthorizationError{Reason: "commenting requires a signed-in user"}
	}
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Field: "text", Reason: "must not be empty"}
	}
	var post models.Post
	if err := r.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	comment := models.Comment{
		Text:     text,
		PostID:   post.ID,
		AuthorID: authorID,
	}
	if err := r.DB.Create(&comment).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Preload("Author").First(&comment, comment.ID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// List returns every comment on the post, most recent first, unpaginated.
// A missing post is ErrNotFound; a post without comments is an empty list.
func (r *Comments) List(postID uint) ([]models.Comment, error) {
	var post models.Post
	if err := r.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	comments := make([]models.Comment, 0)
	err := r.DB.Where("post_id = ?", post.ID).
		Order("created_at DESC, id DESC").
		Preload("Author").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
