package services

import "math"

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// pageWindow normalises page and limit and returns the offset of the
// page's first row. A page beyond math.MaxInt rows yields math.MaxInt.
func pageWindow(page, limit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if page-1 > math.MaxInt/limit {
		return page, limit, math.MaxInt
	}
	return page, limit, (page - 1) * limit
}
