// Package pagination holds page requests and page results shared by the
// repository, service and handler layers.
package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

type Config struct {
	DefaultLimit int
	MaxLimit     int
}

// Params is a page request. Page is 1-based.
type Params struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (p Params) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Metadata describes where a page sits in the full result set.
type Metadata struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type Page[T any] struct {
	Content    []T      `json:"content"`
	Pagination Metadata `json:"pagination"`
}

func NewPage[T any](content []T, params Params, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	return Page[T]{
		Content: content,
		Pagination: Metadata{
			Page:       params.Page,
			Limit:      params.Limit,
			Total:      total,
			TotalPages: TotalPages(total, params.Limit),
		},
	}
}

func Empty[T any](params Params) Page[T] {
	return NewPage[T](nil, params, 0)
}

// Map projects page content while keeping the metadata.
func Map[T, R any](page Page[T], fn func(T) R) Page[R] {
	out := make([]R, 0, len(page.Content))
	for _, item := range page.Content {
		out = append(out, fn(item))
	}
	return Page[R]{Content: out, Pagination: page.Pagination}
}

func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// ParseQueryParams reads page and limit from the query string, falling back to
// cfg defaults when absent.
func ParseQueryParams(r *http.Request, cfg Config) (Params, error) {
	params := Params{Page: 1, Limit: cfg.DefaultLimit}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return params, fmt.Errorf("invalid query parameter: page must be a positive integer")
		}
		params.Page = page
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > cfg.MaxLimit {
			return params, fmt.Errorf("invalid query parameter: limit must be between 1 and %d", cfg.MaxLimit)
		}
		params.Limit = limit
	}

	return params, nil
}
