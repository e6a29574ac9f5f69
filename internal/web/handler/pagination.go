package handler

import (
	"github.com/gofiber/fiber/v2"
)

const (
	// DefaultPage is used when no page query parameter is given.
	DefaultPage = 1
	// DefaultLimit is used when no limit query parameter is given.
	DefaultLimit = 10
	// MaxLimit caps the page size.
	MaxLimit = 100
)

// Pagination is the page metadata attached to list responses.
type Pagination struct {
	TotalDocs  int64 `json:"totalDocs"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// Paginate reads page and limit from the query string, clamped to sane
// bounds. skip = (page-1) * limit.
func Paginate(c *fiber.Ctx) (page, limit int) {
	page = c.QueryInt("page", DefaultPage)
	if page < 1 {
		page = DefaultPage
	}

	limit = c.QueryInt("limit", DefaultLimit)
	if limit < 1 {
		limit = DefaultLimit
	}

	if limit > MaxLimit {
		limit = MaxLimit
	}

	return page, limit
}

// NewPagination derives the metadata for a page.
// totalPages = ceil(totalDocs / limit).
func NewPagination(totalDocs int64, page, limit int) Pagination {
	totalPages := int((totalDocs + int64(limit) - 1) / int64(limit))

	return Pagination{
		TotalDocs:  totalDocs,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}
