package params

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Pagination holds the parsed page window plus metadata computed after the
// total count is known. Pages are 1-indexed at the boundary; Offset is the
// 0-indexed position handed to the store.
type Pagination struct {
	Limit      int  `json:"limit"`
	Offset     int  `json:"-"`
	Page       int  `json:"page"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// ParsePagination parses ?size=...&page=... safely. A page below 1 clamps to
// the first page; the size is capped.
func ParsePagination(q url.Values) Pagination {
	p := Pagination{
		Limit: defaultPageSize,
		Page:  1,
	}

	if sizeStr := strings.TrimSpace(q.Get("size")); sizeStr != "" {
		if size, err := strconv.Atoi(sizeStr); err == nil {
			switch {
			case size <= 0:
				p.Limit = defaultPageSize
			case size > maxPageSize:
				p.Limit = maxPageSize
			default:
				p.Limit = size
			}
		}
	}

	if pageStr := strings.TrimSpace(q.Get("page")); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			p.Page = page
		}
	}

	p.Offset = (p.Page - 1) * p.Limit
	return p
}

// ComputeMeta fills in the totals once the store reported a match count.
func (p *Pagination) ComputeMeta(total int) {
	p.Total = total
	if p.Limit > 0 {
		p.TotalPages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	p.HasPrev = p.Page > 1
	p.HasNext = p.Page*p.Limit < total
}
