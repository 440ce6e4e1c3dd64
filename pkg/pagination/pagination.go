// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

// Package pagination implements cursorless page/limit pagination shared by
// the list endpoints.
package pagination

import (
	"net/http"

	"github.com/inkwellhq/inkwell/pkg/convert"
)

const (
	// DefaultLimit is applied when the client omits the limit parameter.
	DefaultLimit = 20

	// MaxLimit caps the page size a client may request.
	MaxLimit = 100
)

// Page describes the window the client asked for.
type Page struct {
	Number int
	Limit  int
}

// FromRequest reads "page" and "limit" from the query string, clamping both
// to sane values. Invalid input falls back to the defaults instead of
// failing the request.
func FromRequest(r *http.Request) Page {
	p := Page{Number: 1, Limit: DefaultLimit}

	if n := convert.Atoi(r.URL.Query().Get("page"), 0); n > 0 {
		p.Number = n
	}

	if n := convert.Atoi(r.URL.Query().Get("limit"), 0); n > 0 {
		p.Limit = min(n, MaxLimit)
	}

	return p
}

// Offset converts the page window into a SQL OFFSET.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// Meta is the pagination block returned alongside list payloads.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// NewMeta builds the response metadata for a page and total row count.
func NewMeta(p Page, total int64) Meta {
	pages := total / int64(p.Limit)
	if total%int64(p.Limit) != 0 {
		pages++
	}
	return Meta{
		Page:       p.Number,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: pages,
	}
}
