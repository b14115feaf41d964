package response

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// PaginationHeaderKey names the header carrying list pagination metadata.
const PaginationHeaderKey = "X-Pagination"

// PageMeta describes the position of a list response within its result set.
type PageMeta struct {
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalCount  int `json:"totalCount"`
	TotalPages  int `json:"totalPages"`
}

// NewPageMeta derives pagination metadata from a normalized page request and
// the total row count reported by the repository.
func NewPageMeta(page, size, total int) PageMeta {
	meta := PageMeta{CurrentPage: page, PageSize: size, TotalCount: total}
	if size > 0 {
		meta.TotalPages = (total + size - 1) / size
	}
	return meta
}

// WritePaginationHeader serialises the metadata into the X-Pagination header.
func WritePaginationHeader(h http.Header, meta PageMeta) {
	payload, err := json.Marshal(meta)
	if err != nil {
		return
	}
	h.Set(PaginationHeaderKey, string(payload))
}

// ParsePaginationHeader reads X-Pagination from a response header set.
// A nil header set, a missing header, or malformed JSON all yield zeroed
// metadata with a logged warning. Callers never see an error from this.
func ParsePaginationHeader(h http.Header, logger *zap.Logger) PageMeta {
	if logger == nil {
		logger = zap.NewNop()
	}
	var meta PageMeta
	if h == nil {
		logger.Warn("pagination header set is nil, defaulting to zero metadata")
		return meta
	}
	raw := h.Get(PaginationHeaderKey)
	if raw == "" {
		logger.Warn("pagination header missing, defaulting to zero metadata")
		return meta
	}
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		logger.Warn("pagination header malformed, defaulting to zero metadata",
			zap.String("header", raw), zap.Error(err))
		return PageMeta{}
	}
	return meta
}
