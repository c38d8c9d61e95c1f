package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pulseblog/api-go/models"
	"gorm.io/gorm"
)

// Posts holds the post operations. Timestamps are server-assigned; text is
// required; the group and image are optional.
type Posts struct {
	DB *gorm.DB
}

func NewPosts(db *gorm.DB) *Posts {
	return &Posts{DB: db}
}

type scopeKind int

const (
	scopeAll scopeKind = iota
	scopeGroup
	scopeAuthor
	scopeFollowed
)

// Scope selects which timeline a List call assembles.
type Scope struct {
	kind     scopeKind
	slug     string
	username string
	userID   uint
}

// All is the global timeline.
func All() Scope { return Scope{kind: scopeAll} }

// ByGroup limits the listing to posts filed under the group with the slug.
func ByGroup(slug string) Scope { return Scope{kind: scopeGroup, slug: slug} }

// ByAuthor limits the listing to posts written by the named user.
func ByAuthor(username string) Scope { return Scope{kind: scopeAuthor, username: username} }

// ByFollowed limits the listing to posts by authors the user follows.
func ByFollowed(userID uint) Scope { return Scope{kind: scopeFollowed, userID: userID} }

// CacheKey names the scope for the timeline cache.
func (s Scope) CacheKey() string {
	switch s.kind {
	case scopeGroup:
		return "group:" + s.slug
	case scopeAuthor:
		return "author:" + s.username
	case scopeFollowed:
		return fmt.Sprintf("followed:%d", s.userID)
	default:
		return "all"
	}
}

func (r *Posts) Create(authorID uint, text string, groupID *uint, image string) (*models.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Field: "text", Reason: "must not be empty"}
	}
	if groupID != nil {
		var group models.Group
		if err := r.DB.First(&group, *groupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
	}

	post := models.Post{
		Text:     text,
		AuthorID: authorID,
		GroupID:  groupID,
		Image:    image,
	}
	if err := r.DB.Create(&post).Error; err != nil {
		return nil, err
	}
	return r.Get(post.ID)
}

// Update edits a post's text and group. Only the author may edit; the
// group may be set, changed or cleared, but the creation timestamp and the
// image stay as they are.
func (r *Posts) Update(postID, actorID uint, text string, groupID *uint) (*models.Post, error) {
	var post models.Post
	if err := r.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if post.AuthorID != actorID {
		return nil, &AuthorizationError{Reason: "only the author can edit a post"}
	}
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Field: "text", Reason: "must not be empty"}
	}
	if groupID != nil {
		var group models.Group
		if err := r.DB.First(&group, *groupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
	}

	updates := map[string]interface{}{
		"text":     text,
		"group_id": groupID,
	}
	if err := r.DB.Model(&post).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.Get(post.ID)
}

// Delete removes a post and its comments. Only the author may delete.
func (r *Posts) Delete(postID, actorID uint) error {
	var post models.Post
	if err := r.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if post.AuthorID != actorID {
		return &AuthorizationError{Reason: "only the author can delete a post"}
	}

	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
}

func (r *Posts) Get(id uint) (*models.Post, error) {
	var post models.Post
	err := r.DB.Preload("Author").Preload("Group").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// List assembles one page of the scope's timeline, most recent first. A
// scope naming a missing group or user is ErrNotFound; an empty scope is
// an empty page.
func (r *Posts) List(scope Scope, page int) (*Page, error) {
	db := r.DB.Model(&models.Post{})

	switch scope.kind {
	case scopeGroup:
		var group models.Group
		if err := r.DB.Where("slug = ?", scope.slug).First(&group).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		db = db.Where("posts.group_id = ?", group.ID)
	case scopeAuthor:
		var author models.User
		if err := r.DB.Where("username = ?", scope.username).First(&author).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		db = db.Where("posts.author_id = ?", author.ID)
	case scopeFollowed:
		db = db.Joins("JOIN follows ON posts.author_id = follows.author_id").
			Where("follows.follower_id = ?", scope.userID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, err
	}

	posts := make([]models.Post, 0, PageSize)
	err := db.Order("posts.created_at DESC, posts.id DESC").
		Offset(offsetFor(page)).
		Limit(PageSize).
		Preload("Author").
		Preload("Group").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	return &Page{
		Posts:      posts,
		Number:     normalizePage(page),
		TotalItems: total,
		TotalPages: totalPages(total),
	}, nil
}
