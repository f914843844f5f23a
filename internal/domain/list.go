package domain

import "math"

const (
	DefaultPage    = 1
	DefaultLimit   = 20
	DefaultOrderBy = "name"
	DefaultOrder   = "asc"
)

// ListQuery drives every paginated listing. Zero values mean "not given".
type ListQuery struct {
	Page    int
	Limit   int
	Filter  string
	OrderBy string
	Order   string
	ID      uint
}

// WithDefaults fills in whatever the caller left empty.
func (q ListQuery) WithDefaults() ListQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.OrderBy == "" {
		q.OrderBy = DefaultOrderBy
	}
	if q.Order != "desc" {
		q.Order = DefaultOrder
	}
	return q
}

// Offset is (page-1)*limit, saturating at math.MaxInt so a huge page lands
// past the end instead of wrapping around.
func (q ListQuery) Offset() int {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.Limit {
		return math.MaxInt
	}
	return (q.Page - 1) * q.Limit
}
