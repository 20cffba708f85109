package models

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListFilters carries the page/limit/search query of a list endpoint.
type ListFilters struct {
	Page   int
	Limit  int
	Search string
}

// Normalize clamps page and limit into their valid ranges.
func (f ListFilters) Normalize() ListFilters {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	return f
}

func (f ListFilters) Offset() int64 {
	return int64((f.Page - 1) * f.Limit)
}

// TotalPages never reports fewer than one page so an empty list still renders page 1 of 1.
func TotalPages(total int64, limit int) int {
	if limit < 1 || total <= 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
