package queryHelper

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Page is a validated, 1-based page request.
type Page struct {
	Number int
	Limit  int
}

// NewPage parses raw page/limit query values. Blank values take the defaults,
// page is floored at 1 and limit is clamped to [1, maxLimit].
func NewPage(rawPage, rawLimit string, defaultLimit, maxLimit int) (Page, error) {
	page := 1
	limit := defaultLimit

	if s := strings.TrimSpace(rawPage); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Page{}, fmt.Errorf("invalid page %q: must be an integer", rawPage)
		}
		page = n
	}

	if s := strings.TrimSpace(rawLimit); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Page{}, fmt.Errorf("invalid limit %q: must be an integer", rawLimit)
		}
		limit = n
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	// A page past the data is a valid empty page; only an offset that no
	// longer fits in an int is rejected.
	if page-1 > math.MaxInt/limit {
		return Page{}, fmt.Errorf("invalid page %d: offset out of range", page)
	}

	return Page{Number: page, Limit: limit}, nil
}

// Offset is the number of rows skipped before this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}
