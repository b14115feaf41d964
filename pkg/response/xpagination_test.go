package response

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePaginationHeaderRoundTrip(t *testing.T) {
	h := http.Header{}
	WritePaginationHeader(h, PageMeta{CurrentPage: 2, PageSize: 10, TotalCount: 41, TotalPages: 5})

	meta := ParsePaginationHeader(h, nil)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 10, meta.PageSize)
	assert.Equal(t, 41, meta.TotalCount)
	assert.Equal(t, 5, meta.TotalPages)
}

func TestParsePaginationHeaderNilHeaders(t *testing.T) {
	meta := ParsePaginationHeader(nil, nil)
	assert.Equal(t, PageMeta{}, meta)
}

func TestParsePaginationHeaderMissing(t *testing.T) {
	meta := ParsePaginationHeader(http.Header{}, nil)
	assert.Equal(t, PageMeta{}, meta)
}

func TestParsePaginationHeaderMalformed(t *testing.T) {
	h := http.Header{}
	h.Set(PaginationHeaderKey, "{not json")

	meta := ParsePaginationHeader(h, nil)
	assert.Equal(t, PageMeta{}, meta)
}

func TestNewPageMetaRoundsTotalPagesUp(t *testing.T) {
	meta := NewPageMeta(1, 10, 41)
	assert.Equal(t, 5, meta.TotalPages)

	meta = NewPageMeta(1, 10, 40)
	assert.Equal(t, 4, meta.TotalPages)

	meta = NewPageMeta(1, 0, 40)
	assert.Equal(t, 0, meta.TotalPages)
}
