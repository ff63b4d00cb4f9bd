package httpx

import (
	"net/http"
	"strconv"

	"github.com/openshelf/library-admin/internal/domain/model"
)

// listOptionsFromQuery reads page/limit query parameters. Garbage
// values fall back to defaults via Normalize.
func listOptionsFromQuery(r *http.Request) model.ListOptions {
	opts := model.ListOptions{}
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		opts.Page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		opts.Limit = v
	}
	opts.Normalize()
	return opts
}

// optString returns a pointer to the form value when present and
// non-empty, for optional-update payloads.
func optString(r *http.Request, field string) *string {
	v := r.PostFormValue(field)
	if v == "" {
		return nil
	}
	return &v
}

// optInt parses an optional integer form value. Unparseable input is
// treated as absent.
func optInt(r *http.Request, field string) *int {
	v := r.PostFormValue(field)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}
