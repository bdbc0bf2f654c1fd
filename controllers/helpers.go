package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parsePagination reads page/per_page from the query string. Unparseable
// values fall back to the defaults; only an explicit page below 1 is invalid.
func parsePagination(ctx *gin.Context) (page, perPage int, ok bool) {
	page, perPage = 1, 10
	if v := ctx.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page = n
		}
	}
	if v := ctx.Query("per_page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			perPage = n
		}
	}
	if page < 1 {
		return 0, 0, false
	}
	return page, perPage, true
}

// setLastPage writes the out-of-band total-page-count header. A per_page of
// zero means the whole set was returned, so the divisor becomes the count
// itself to avoid dividing by zero.
func setLastPage(ctx *gin.Context, count int64, perPage int) {
	divisor := int64(perPage)
	if divisor == 0 {
		divisor = count
	}
	var last int64
	if divisor > 0 {
		last = (count + divisor - 1) / divisor
	}
	ctx.Header("Last-Page", strconv.FormatInt(last, 10))
}

// truncateText shortens s to at most limit runes, appending an ellipsis
// marker when something was cut. List views use this for long text fields;
// single reads always return the full value.
func truncateText(s string, limit int) string {
	runes := []rune(s)
	if len(runes) < limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
