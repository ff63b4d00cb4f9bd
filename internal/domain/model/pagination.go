package model

// Pagination mirrors the paging envelope the upstream API attaches to
// list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
	TotalItems int `json:"totalItems"`
}

// ListOptions controls paging for upstream list calls.
type ListOptions struct {
	Page  int
	Limit int
}

// Normalize clamps paging values to upstream defaults.
func (o *ListOptions) Normalize() {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.Limit < 1 || o.Limit > 100 {
		o.Limit = 10
	}
}
