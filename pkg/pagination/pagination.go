package pagination

import (
	"net/http"
	"strconv"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Page carries normalized limit/offset parameters parsed from a request.
type Page struct {
	Limit  int
	Offset int
}

// FromRequest reads limit/offset query params and clamps them to sane bounds.
// Invalid values fall back to defaults rather than erroring.
func FromRequest(r *http.Request) Page {
	page := Page{Limit: DefaultLimit}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page.Limit = v
		}
	}
	if page.Limit > MaxLimit {
		page.Limit = MaxLimit
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			page.Offset = v
		}
	}

	return page
}

// Meta is the pagination block returned alongside list payloads.
type Meta struct {
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Total  int64 `json:"total"`
}

func NewMeta(page Page, total int64) Meta {
	return Meta{Limit: page.Limit, Offset: page.Offset, Total: total}
}
