package fop

import (
	"strconv"
	"strings"
)

// Page number defaults.
const (
	DefaultPage    = 1
	DefaultPerPage = 15
	MaxPerPage     = 100

	// maxPage keeps Offset well inside int64.
	maxPage = 1 << 40
)

// PageNumber represents the requested page and the number of items per page.
type PageNumber struct {
	Page    int
	PerPage int
}

// Offset returns the number of rows to skip before the requested page.
func (p PageNumber) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// PageInfo returns pagination data for a page number query.
type PageInfo struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"perPage"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
}

// NewPageInfo computes the page info for a filtered result set of total rows.
func NewPageInfo(page PageNumber, total int64) PageInfo {
	return PageInfo{
		Page:       page.Page,
		PerPage:    page.PerPage,
		TotalCount: total,
		TotalPages: TotalPages(total, page.PerPage),
	}
}

// TotalPages returns ceil(total / perPage).
func TotalPages(total int64, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	pp := int64(perPage)
	return int((total + pp - 1) / pp)
}

// ParsePageNumber converts raw page and per page values into a PageNumber.
// Malformed input never fails: non numeric or non positive values fall back
// to the defaults and per page is capped at MaxPerPage.
func ParsePageNumber(page string, perPage string) PageNumber {
	p := parsePositive(page, DefaultPage)
	if p > maxPage {
		p = maxPage
	}

	pp := parsePositive(perPage, DefaultPerPage)
	if pp > MaxPerPage {
		pp = MaxPerPage
	}

	return PageNumber{
		Page:    p,
		PerPage: pp,
	}
}

func parsePositive(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		// Accept "2.0" style values coming from JSON numbers.
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != float64(int(f)) {
			return fallback
		}
		n = int(f)
	}

	if n < 1 {
		return fallback
	}
	return n
}
