package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func ginContextWithQuery(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := CalculateOffsetLimit(1, 20)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, 20, limit)

	offset, limit = CalculateOffsetLimit(3, 20)
	assert.Equal(t, uint64(40), offset)
	assert.Equal(t, 20, limit)

	offset, limit = CalculateOffsetLimit(0, 0)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, DefaultPageSize, limit)

	_, limit = CalculateOffsetLimit(1, MaxPageSize+1)
	assert.Equal(t, DefaultPageSize, limit)
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(101, 2, 50)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, 50, info.PageSize)
	assert.Equal(t, int64(101), info.TotalItems)

	empty := NewPaginationInfo(0, 1, 50)
	assert.Equal(t, 1, empty.TotalPages)

	clamped := NewPaginationInfo(10, 9, 50)
	assert.Equal(t, 1, clamped.CurrentPage, "page is clamped to the last page")
}

func TestParsePaginationParams(t *testing.T) {
	page, size := ParsePaginationParams(ginContextWithQuery("page=3&pageSize=25"))
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, size)

	page, size = ParsePaginationParams(ginContextWithQuery(""))
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultPageSize, size)

	page, size = ParsePaginationParams(ginContextWithQuery("page=-1&pageSize=9999"))
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultPageSize, size)
}

func TestParseSortParams(t *testing.T) {
	allowed := []string{"name", "size", "modified"}

	sortBy, sortOrder := ParseSortParams(ginContextWithQuery("sortBy=Size&sortOrder=DESC"), allowed, "name")
	assert.Equal(t, "size", sortBy)
	assert.Equal(t, SortOrderDesc, sortOrder)

	sortBy, sortOrder = ParseSortParams(ginContextWithQuery("sortBy=owner&sortOrder=sideways"), allowed, "name")
	assert.Equal(t, "name", sortBy)
	assert.Equal(t, SortOrderAsc, sortOrder)
}

func TestCalculateSliceIndices(t *testing.T) {
	start, end := CalculateSliceIndices(1, 10, 25)
	assert.Equal(t, 0, start)
	assert.Equal(t, 10, end)

	start, end = CalculateSliceIndices(3, 10, 25)
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)

	start, end = CalculateSliceIndices(4, 10, 25)
	assert.Equal(t, 25, start)
	assert.Equal(t, 25, end)
}
