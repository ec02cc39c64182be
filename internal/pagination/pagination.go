// Package pagination splits ordered result sets into fixed-size pages.
package pagination

// DefaultPageSize is the process-wide default number of items per page.
const DefaultPageSize = 10

// Page is one slice of an ordered result set.
type Page[T any] struct {
	Items       []T  `json:"items"`
	Number      int  `json:"number"`
	Size        int  `json:"size"`
	TotalItems  int  `json:"total_items"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// Paginate slices items into the requested page. A page number below 1
// yields the first page; a number past the end yields the last page, so
// callers never receive an empty page for a non-empty set. An empty set
// yields a single empty page rather than an error.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}

	total := len(items)
	totalPages := (total + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:       items[start:end],
		Number:      page,
		Size:        size,
		TotalItems:  total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}
