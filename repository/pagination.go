package repository

import "github.com/pulseblog/api-go/models"

// PageSize is the fixed number of posts per listing page, shared by every
// paginated view.
const PageSize = 10

// Page is one slice of an ordered post listing. A page past the end of the
// listing has an empty Posts slice; it is not an error.
type Page struct {
	Posts      []models.Post `json:"posts"`
	Number     int           `json:"currentPage"`
	TotalItems int64         `json:"totalItems"`
	TotalPages int           `json:"totalPages"`
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func offsetFor(page int) int {
	return (normalizePage(page) - 1) * PageSize
}

func totalPages(total int64) int {
	return int((total + PageSize - 1) / PageSize)
}
