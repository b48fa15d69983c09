package task

import (
	"math"
	"strconv"
)

// All disables a status, priority or category filter.
const All = "ALL"

// Sort keys accepted by the task listing.
const (
	SortDueDate   = "dueDate"
	SortPriority  = "priority"
	SortTitle     = "title"
	SortCreatedAt = "createdAt"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Filter describes one task listing request. Zero values mean "use the default".
type Filter struct {
	Page     int    `json:"page"`
	Limit    int    `json:"limit"`
	Search   string `json:"search"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
	Category string `json:"category"`
	Sort     string `json:"sort"`
}

// Normalize returns a copy of f with every unset or out-of-domain value replaced
// by its default.
func (f Filter) Normalize() Filter {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Status == "" {
		f.Status = All
	}
	if f.Priority == "" {
		f.Priority = All
	}
	if f.Category == "" {
		f.Category = All
	}
	if f.Sort == "" {
		f.Sort = SortDueDate
	}
	return f
}

// Offset is the number of matching rows skipped before the page starts.
// Pages past the representable range saturate at math.MaxInt.
func (f Filter) Offset() int {
	n := f.Normalize()
	if n.Page-1 > math.MaxInt/n.Limit {
		return math.MaxInt
	}
	return (n.Page - 1) * n.Limit
}

// OrderClause maps the sort key to its SQL ordering.
// Priority is ordered by its label text, not by severity.
func (f Filter) OrderClause() string {
	switch f.Normalize().Sort {
	case SortDueDate:
		return "due_date ASC"
	case SortPriority:
		return "priority DESC"
	case SortTitle:
		return "title ASC"
	default:
		return "created_at DESC"
	}
}

// ParsePositive parses a query-string integer, returning 0 when raw is not a
// positive number so that Normalize applies the default.
func ParsePositive(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0
	}
	return n
}
