package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", truncateText("short", 10))
	assert.Equal(t, strings.Repeat("a", 9), truncateText(strings.Repeat("a", 9), 10))
	assert.Equal(t, strings.Repeat("a", 10)+"...", truncateText(strings.Repeat("a", 10), 10))
	// limit counts runes, not bytes
	assert.Equal(t, "안녕하", truncateText("안녕하", 10))
	assert.Equal(t, strings.Repeat("안", 10)+"...", truncateText(strings.Repeat("안", 12), 10))
}

func TestSetLastPage(t *testing.T) {
	cases := []struct {
		count   int64
		perPage int
		want    string
	}{
		{0, 10, "0"},
		{1, 10, "1"},
		{10, 10, "1"},
		{11, 10, "2"},
		{25, 10, "3"},
		{7, 0, "1"},
		{0, 0, "0"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(w)
		setLastPage(ctx, tc.count, tc.perPage)
		assert.Equal(t, tc.want, ctx.Writer.Header().Get("Last-Page"), "count=%d per_page=%d", tc.count, tc.perPage)
	}
}

func TestParsePagination(t *testing.T) {
	parse := func(query string) (int, int, bool) {
		ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
		ctx.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
		return parsePagination(ctx)
	}

	page, perPage, ok := parse("")
	assert.True(t, ok)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, perPage)

	page, perPage, ok = parse("page=3&per_page=25")
	assert.True(t, ok)
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, perPage)

	// unparseable values keep the defaults
	page, perPage, ok = parse("page=abc&per_page=xyz")
	assert.True(t, ok)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, perPage)

	_, _, ok = parse("page=0")
	assert.False(t, ok)

	_, _, ok = parse("page=-1")
	assert.False(t, ok)
}
