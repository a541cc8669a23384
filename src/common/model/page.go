package model

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/spaolacci/murmur3"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Pagination selects one page of a query, 1-based.
type Pagination struct {
	Current int64 `json:"current"`
	Size    int64 `json:"size"`
}

// Page is one page of query results.
type Page[T any] struct {
	Records []T   `json:"records"`
	Total   int64 `json:"total"`
	Size    int64 `json:"size"`
	Current int64 `json:"current"`
	Pages   int64 `json:"pages"`
}

// NewPage builds a page and derives the page count from total and size.
func NewPage[T any](records []T, total int64, p Pagination) Page[T] {
	if records == nil {
		records = []T{}
	}
	var pages int64
	if p.Size > 0 {
		pages = (total + p.Size - 1) / p.Size
	}
	return Page[T]{Records: records, Total: total, Size: p.Size, Current: p.Current, Pages: pages}
}

// UserQuery holds the list filters for users. Empty filters match everything.
type UserQuery struct {
	Username string      `json:"username,omitempty"`
	Phone    string      `json:"phone,omitempty"`
	Email    string      `json:"email,omitempty"`
	Page     *Pagination `json:"page,omitempty"`
}

// Normalize trims the filters and clamps the pagination to sane bounds.
func (q UserQuery) Normalize() UserQuery {
	out := UserQuery{
		Username: strings.TrimSpace(q.Username),
		Phone:    strings.TrimSpace(q.Phone),
		Email:    strings.TrimSpace(q.Email),
		Page:     &Pagination{Current: 1, Size: DefaultPageSize},
	}
	if q.Page != nil {
		if q.Page.Current > 0 {
			out.Page.Current = q.Page.Current
		}
		if q.Page.Size > 0 {
			out.Page.Size = min(q.Page.Size, MaxPageSize)
		}
	}
	return out
}

// Offset is the number of rows skipped before the selected page.
func (q UserQuery) Offset() int {
	n := q.Normalize()
	return int((n.Page.Current - 1) * n.Page.Size)
}

// CacheKey derives a stable key for the normalized query, so equivalent
// queries share one cache entry.
func (q UserQuery) CacheKey() string {
	data, _ := json.Marshal(q.Normalize())
	return strconv.FormatUint(murmur3.Sum64(data), 16)
}
