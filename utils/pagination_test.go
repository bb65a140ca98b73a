package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePaginationDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/products", nil)
	page, limit := ParsePagination(r, 12)
	assert.Equal(t, int64(1), page)
	assert.Equal(t, int64(12), limit)
}

func TestParsePaginationFromQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/products?page=2&limit=12", nil)
	page, limit := ParsePagination(r, 20)
	assert.Equal(t, int64(2), page)
	assert.Equal(t, int64(12), limit)
}

func TestParsePaginationIgnoresBadValues(t *testing.T) {
	r := httptest.NewRequest("GET", "/products?page=abc&limit=-5", nil)
	page, limit := ParsePagination(r, 12)
	assert.Equal(t, int64(1), page)
	assert.Equal(t, int64(12), limit)
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 12, 25)
	assert.Equal(t, int64(2), p.CurrentPage)
	assert.Equal(t, int64(3), p.TotalPages)
	assert.Equal(t, int64(25), p.TotalItems)
	assert.Equal(t, int64(12), p.Limit)

	exact := NewPagination(1, 10, 30)
	assert.Equal(t, int64(3), exact.TotalPages)

	empty := NewPagination(1, 10, 0)
	assert.Equal(t, int64(0), empty.TotalPages)
}
