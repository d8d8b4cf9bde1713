package repository

import (
	"strings"

	"gorm.io/gorm"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// ListOptions carries the query surface shared by every list endpoint.
type ListOptions struct {
	Search  string
	Page    int
	PerPage int
	OrderBy string
	Desc    bool
}

func (o ListOptions) normalized() ListOptions {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.PerPage < 1 {
		o.PerPage = defaultPerPage
	}
	if o.PerPage > maxPerPage {
		o.PerPage = maxPerPage
	}
	return o
}

// paginate applies ordering and offset/limit. Ordering columns are chosen by
// the repositories, never from raw client input.
func (o ListOptions) paginate(q *gorm.DB) *gorm.DB {
	o = o.normalized()
	if o.OrderBy != "" {
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		q = q.Order(o.OrderBy + " " + dir)
	}
	return q.Offset((o.Page - 1) * o.PerPage).Limit(o.PerPage)
}

// searchPattern builds the case-insensitive substring pattern used with
// LOWER(col) LIKE ?, which behaves the same on mysql and sqlite.
func searchPattern(term string) string {
	return "%" + strings.ToLower(term) + "%"
}
