package server

import (
	"strconv"

	"discovery-space/internal/web"

	"github.com/gin-gonic/gin"
)

// positiveQuery reads a positive integer query parameter or returns fallback.
func positiveQuery(c *gin.Context, key string, fallback int) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

// parsePagination reads page and per_page, capping per_page at maxPerPage.
func parsePagination(c *gin.Context, defaultPerPage, maxPerPage int) (int, int) {
	page := positiveQuery(c, "page", 1)
	perPage := min(positiveQuery(c, "per_page", defaultPerPage), maxPerPage)
	return page, perPage
}

// buildPaginationData clamps page into [1, totalPages]; an empty listing still
// has one page.
func buildPaginationData(basePath string, page, perPage int, total int64) web.PaginationData {
	perPage = max(perPage, 1)
	totalPages := max(int((total+int64(perPage)-1)/int64(perPage)), 1)
	page = min(max(page, 1), totalPages)

	data := web.PaginationData{
		BasePath:   basePath,
		Page:       page,
		PerPage:    perPage,
		Total:      int(total),
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
	if data.HasPrev {
		data.PrevPage = page - 1
	}
	if data.HasNext {
		data.NextPage = page + 1
	}
	return data
}
