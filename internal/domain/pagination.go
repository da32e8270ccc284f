package domain

// Paging defaults and limits.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// PageRequest selects a slice of an ordered collection.
type PageRequest struct {
	Page     int
	PageSize int
}

// Normalize applies defaults to non-positive values and caps PageSize at
// MaxPageSize.
func (r PageRequest) Normalize() PageRequest {
	if r.Page < 1 {
		r.Page = DefaultPage
	}
	if r.PageSize < 1 {
		r.PageSize = DefaultPageSize
	}
	if r.PageSize > MaxPageSize {
		r.PageSize = MaxPageSize
	}
	return r
}

// Offset is the number of items preceding the page.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// Page is one page of results plus the metadata needed to walk the rest.
type Page[T any] struct {
	Items       []T
	Page        int
	PageSize    int
	TotalCount  int
	TotalPages  int
	HasPrevious bool
	HasNext     bool
}

// NewPage builds a Page from the items of a normalized request and the total
// number of items available.
func NewPage[T any](items []T, req PageRequest, total int) Page[T] {
	totalPages := 0
	if req.PageSize > 0 {
		totalPages = (total + req.PageSize - 1) / req.PageSize
	}
	return Page[T]{
		Items:       items,
		Page:        req.Page,
		PageSize:    req.PageSize,
		TotalCount:  total,
		TotalPages:  totalPages,
		HasPrevious: req.Page > 1,
		HasNext:     req.Page < totalPages,
	}
}

// MapPage converts the items of a page while keeping its metadata.
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	items := make([]U, len(p.Items))
	for i, item := range p.Items {
		items[i] = fn(item)
	}
	return Page[U]{
		Items:       items,
		Page:        p.Page,
		PageSize:    p.PageSize,
		TotalCount:  p.TotalCount,
		TotalPages:  p.TotalPages,
		HasPrevious: p.HasPrevious,
		HasNext:     p.HasNext,
	}
}
