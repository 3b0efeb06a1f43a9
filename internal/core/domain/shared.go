package domain

import "math"

type ID string

// ValidateID reports whether id has the shape of a store identifier
// (24 hexadecimal characters).
func ValidateID(id string) bool {
	if len(id) != 24 {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		isDigit := c >= '0' && c <= '9'
		isLower := c >= 'a' && c <= 'f'
		isUpper := c >= 'A' && c <= 'F'
		if !isDigit && !isLower && !isUpper {
			return false
		}
	}
	return true
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

type Pagination struct {
	Page  int
	Limit int
}

// NewPagination clamps page and limit to a minimum of 1.
func NewPagination(page, limit int) Pagination {
	return Pagination{Page: max(1, page), Limit: max(1, limit)}
}

// Offset saturates at math.MaxInt64 instead of wrapping for huge pages.
func (p Pagination) Offset() int64 {
	skipped, limit := int64(p.Page-1), int64(p.Limit)
	if limit > 0 && skipped > math.MaxInt64/limit {
		return math.MaxInt64
	}
	return skipped * limit
}

// TotalPages is ceil(total/limit). A non-positive limit yields zero pages.
func TotalPages(total int64, limit int) int64 {
	if limit <= 0 || total <= 0 {
		return 0
	}
	l := int64(limit)
	pages := total / l
	if total%l != 0 {
		pages++
	}
	return pages
}

type Event interface {
	GetName() string
	GetEntityName() string
}
