package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hrm-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

// parseIDParam reads a positive integer path parameter.
func parseIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, validator.ValidationErrors{{
			Field:   name,
			Message: name + " must be a positive number",
		}}
	}
	return id, nil
}

// parseIDQuery reads a required positive integer query parameter.
func parseIDQuery(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, validator.ValidationErrors{{Field: name, Message: name + " is required"}}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, validator.ValidationErrors{{Field: name, Message: name + " must be a positive number"}}
	}
	return id, nil
}

// optionalIDQuery returns nil when the parameter is absent or malformed.
func optionalIDQuery(r *http.Request, name string) *int64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

func optionalStringQuery(r *http.Request, name string) *string {
	if v := r.URL.Query().Get(name); v != "" {
		return &v
	}
	return nil
}

// pageQuery reads page, limit, sort_by and sort_order; defaults are applied by
// the filter's Validate.
func pageQuery(r *http.Request) (page, limit int, sortBy, sortOrder string) {
	q := r.URL.Query()
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(q.Get("limit")); err == nil && l > 0 {
		limit = l
	}
	return page, limit, q.Get("sort_by"), q.Get("sort_order")
}
