package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	testCases := []struct {
		name       string
		totalDocs  int64
		page       int
		limit      int
		totalPages int
	}{
		{name: "exact fit", totalDocs: 20, page: 1, limit: 10, totalPages: 2},
		{name: "partial last page", totalDocs: 25, page: 3, limit: 10, totalPages: 3},
		{name: "single item", totalDocs: 1, page: 1, limit: 10, totalPages: 1},
		{name: "empty", totalDocs: 0, page: 1, limit: 10, totalPages: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(tc.totalDocs, tc.page, tc.limit)

			assert.Equal(t, tc.totalDocs, p.TotalDocs)
			assert.Equal(t, tc.page, p.Page)
			assert.Equal(t, tc.limit, p.Limit)
			assert.Equal(t, tc.totalPages, p.TotalPages)
		})
	}
}

func TestPaginate(t *testing.T) {
	testCases := []struct {
		name  string
		query string
		page  int
		limit int
	}{
		{name: "defaults", query: "", page: DefaultPage, limit: DefaultLimit},
		{name: "explicit", query: "?page=3&limit=25", page: 3, limit: 25},
		{name: "zero page", query: "?page=0", page: DefaultPage, limit: DefaultLimit},
		{name: "negative limit", query: "?limit=-5", page: DefaultPage, limit: DefaultLimit},
		{name: "limit capped", query: "?limit=5000", page: DefaultPage, limit: MaxLimit},
		{name: "garbage ignored", query: "?page=abc&limit=def", page: DefaultPage, limit: DefaultLimit},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()

			var page, limit int

			app.Get("/", func(c *fiber.Ctx) error {
				page, limit = Paginate(c)
				return c.SendStatus(fiber.StatusOK)
			})

			_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/"+tc.query, nil))
			require.NoError(t, err)

			assert.Equal(t, tc.page, page)
			assert.Equal(t, tc.limit, limit)
		})
	}
}
