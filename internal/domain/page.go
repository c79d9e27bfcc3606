package domain

import "math"

// Paging defaults applied when a request omits or overshoots a value.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// SortDirection is the ordering applied to a sort field.
type SortDirection string

// Supported sort directions.
const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortOrder orders a listing by one field.
type SortOrder struct {
	Field     string
	Direction SortDirection
}

// PageRequest selects one zero-based page of a listing.
type PageRequest struct {
	Page int
	Size int
	Sort []SortOrder
}

// NewPageRequest builds a PageRequest, clamping page and size into range.
// page is capped so that Offset never overflows; such a page is past the end
// of any listing and comes back empty.
func NewPageRequest(page, size int, sort ...SortOrder) PageRequest {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if maxPage := math.MaxInt / size; page > maxPage {
		page = maxPage
	}
	return PageRequest{Page: page, Size: size, Sort: sort}
}

// Offset returns the number of rows to skip.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Page is one slice of a filtered listing together with the total match count.
type Page[T any] struct {
	Content       []T
	TotalElements int64
	Number        int
	Size          int
}

// TotalPages returns the number of pages needed to hold TotalElements.
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
}
