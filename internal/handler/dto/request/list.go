package request

import (
	"roomstay-admin/internal/usecase/queries"
)

// ListRequest is the query-string shape shared by every list endpoint.
// Filters ride as extra query params and are bound by the handler,
// since gin cannot bind an open-ended set into a map with `form`.
type ListRequest struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

func (r ListRequest) ToQuery(defaultPageSize int, filters map[string]string) queries.ListQuery {
	size := r.PageSize
	if size <= 0 {
		size = defaultPageSize
	}
	q := queries.NewListQuery(size)
	q.SetSearchTerm(r.Search)
	for field, value := range filters {
		q.SetFilter(field, value)
	}
	if r.Page > 0 {
		q.SetPage(r.Page)
	}
	return q
}
