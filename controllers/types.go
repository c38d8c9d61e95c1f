package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pulseblog/api-go/repository"
)

// repoError maps the repository error taxonomy onto HTTP statuses.
// Validation -> 400, authorization -> 403, missing rows -> 404.
func repoError(c *gin.Context, err error) {
	switch {
	case repository.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case repository.IsAuthorization(err):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case repository.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func pageResponse(page *repository.Page) gin.H {
	return gin.H{
		"posts": page.Posts,
		"pagination": gin.H{
			"currentPage": page.Number,
			"pageSize":    repository.PageSize,
			"totalItems":  page.TotalItems,
			"totalPages":  page.TotalPages,
		},
	}
}
