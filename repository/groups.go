package repository

import (
	"errors"
	"strings"

	"github.com/pulseblog/api-go/models"
	"gorm.io/gorm"
)

type Groups struct {
	DB *gorm.DB
}

func NewGroups(db *gorm.DB) *Groups {
	return &Groups{DB: db}
}

// Create registers a new group. The slug is unique and never changes after
// creation; there is no update operation.
func (r *Groups) Create(title, slug, description string) (*models.Group, error) {
	if strings.TrimSpace(title) == "" {
		return nil, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, &ValidationError{Field: "slug", Reason: "must not be empty"}
	}

	var count int64
	if err := r.DB.Model(&models.Group{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, &ValidationError{Field: "slug", Reason: "already taken"}
	}

	group := models.Group{Title: title, Slug: slug, Description: description}
	if err := r.DB.Create(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *Groups) List() ([]models.Group, error) {
	groups := make([]models.Group, 0)
	err := r.DB.Order("title ASC").Find(&groups).Error
	return groups, err
}

func (r *Groups) GetBySlug(slug string) (*models.Group, error) {
	var group models.Group
	err := r.DB.Where("slug = ?", slug).First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &group, nil
}
