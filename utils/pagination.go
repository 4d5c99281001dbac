package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Pagination holds the parsed page/limit query params
type Pagination struct {
	Page  int
	Limit int
}

// PaginationMeta is the pagination block returned alongside list responses
type PaginationMeta struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// ParsePagination reads page/limit from the query string with sane bounds
func ParsePagination(c *gin.Context) Pagination {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return Pagination{Page: page, Limit: limit}
}

// Paginate returns a GORM scope applying the offset/limit for p
func Paginate(p Pagination) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((p.Page - 1) * p.Limit).Limit(p.Limit)
	}
}

// Meta builds the response pagination block for a total row count
func (p Pagination) Meta(totalItems int64) PaginationMeta {
	totalPages := int(totalItems) / p.Limit
	if int(totalItems)%p.Limit != 0 {
		totalPages++
	}
	return PaginationMeta{
		CurrentPage:  p.Page,
		TotalPages:   totalPages,
		TotalItems:   totalItems,
		ItemsPerPage: p.Limit,
	}
}
