package task

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Normalize(t *testing.T) {
	got := Filter{}.Normalize()

	assert.Equal(t, Filter{
		Page:     1,
		Limit:    10,
		Status:   All,
		Priority: All,
		Category: All,
		Sort:     SortDueDate,
	}, got)
}

func TestFilter_NormalizeKeepsExplicitValues(t *testing.T) {
	in := Filter{Page: 3, Limit: 25, Search: "milk", Status: "PENDING", Priority: "HIGH", Category: "Home", Sort: SortTitle}
	assert.Equal(t, in, in.Normalize())
}

func TestFilter_Offset(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{name: "defaults", filter: Filter{}, want: 0},
		{name: "second page", filter: Filter{Page: 2, Limit: 10}, want: 10},
		{name: "third page of five", filter: Filter{Page: 3, Limit: 5}, want: 10},
		{name: "negative page", filter: Filter{Page: -4, Limit: 5}, want: 0},
		{name: "page beyond int range", filter: Filter{Page: math.MaxInt, Limit: 2}, want: math.MaxInt},
		{name: "limit beyond int range", filter: Filter{Page: 3, Limit: math.MaxInt}, want: math.MaxInt},
		{name: "largest exact offset", filter: Filter{Page: 2, Limit: math.MaxInt}, want: math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Offset())
		})
	}
}

func TestFilter_OrderClause(t *testing.T) {
	tests := []struct {
		sort string
		want string
	}{
		{sort: "", want: "due_date ASC"},
		{sort: SortDueDate, want: "due_date ASC"},
		{sort: SortPriority, want: "priority DESC"},
		{sort: SortTitle, want: "title ASC"},
		{sort: SortCreatedAt, want: "created_at DESC"},
		{sort: "bogus", want: "created_at DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.sort, func(t *testing.T) {
			assert.Equal(t, tt.want, Filter{Sort: tt.sort}.OrderClause())
		})
	}
}

func TestParsePositive(t *testing.T) {
	assert.Equal(t, 4, ParsePositive("4"))
	assert.Equal(t, 0, ParsePositive(""))
	assert.Equal(t, 0, ParsePositive("abc"))
	assert.Equal(t, 0, ParsePositive("0"))
	assert.Equal(t, 0, ParsePositive("-2"))
}
