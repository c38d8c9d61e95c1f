package repository

import (
	"errors"

	"github.com/pulseblog/api-go/models"
	"gorm.io/gorm"
)

type Follows struct {
	DB *gorm.DB
}

func NewFollows(db *gorm.DB) *Follows {
	return &Follows{DB: db}
}

// Follow creates the edge follower -> author. Following yourself is
// rejected; following the same author twice is a no-op. The composite
// unique index on follows backs the idempotency up under concurrent
// requests.
func (r *Follows) Follow(followerID, authorID uint) error {
	if followerID == authorID {
		return &AuthorizationError{Reason: "you cannot follow yourself"}
	}
	var author models.User
	if err := r.DB.First(&author, authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	var existing models.Follow
	err := r.DB.Where("follower_id = ? AND author_id = ?", followerID, authorID).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	follow := models.Follow{FollowerID: followerID, AuthorID: authorID}
	if err := r.DB.Create(&follow).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}
	return nil
}

// Unfollow removes the edge if present; removing an absent edge is a
// no-op.
func (r *Follows) Unfollow(followerID, authorID uint) error {
	return r.DB.Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Delete(&models.Follow{}).Error
}

func (r *Follows) IsFollowing(followerID, authorID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&models.Follow{}).
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Count(&count).Error
	return count > 0, err
}

// Followers lists the users following the given user, newest edge first.
func (r *Follows) Followers(userID uint) ([]models.User, error) {
	users := make([]models.User, 0)
	err := r.DB.Model(&models.User{}).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.author_id = ?", userID).
		Order("follows.created_at DESC").
		Find(&users).Error
	return users, err
}

// Following lists the authors the given user follows, newest edge first.
func (r *Follows) Following(userID uint) ([]models.User, error) {
	users := make([]models.User, 0)
	err := r.DB.Model(&models.User{}).
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at DESC").
		Find(&users).Error
	return users, err
}
