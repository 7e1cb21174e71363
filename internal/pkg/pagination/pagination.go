package pagination

import (
	"fmt"
	"math"
)

// Page summarises one page of a list response.
type Page struct {
	TotalCount int64
	Page       int
	Limit      int
	TotalPages int
	Showing    string
}

// New computes total pages and the "from-to of total" label.
func New(total int64, page, limit int) Page {
	p := Page{TotalCount: total, Page: page, Limit: limit}
	if limit > 0 {
		p.TotalPages = int(math.Ceil(float64(total) / float64(limit)))
	}

	if total == 0 {
		p.Showing = "0 of 0"
		return p
	}

	start := (page-1)*limit + 1
	end := page * limit
	if end > int(total) {
		end = int(total)
	}
	if start > int(total) {
		p.Showing = fmt.Sprintf("0 of %d", total)
		return p
	}
	p.Showing = fmt.Sprintf("%d-%d of %d", start, end, total)
	return p
}

// Offset returns the SQL OFFSET for page and limit.
func Offset(page, limit int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * limit
}
