package pagination

import (
	"math"
	"net/url"
	"strconv"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Pagination mirrors the metadata block the backend returns with list endpoints
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// Params represents input parameters for pagination
type Params struct {
	Page  int `form:"page" json:"page"`
	Limit int `form:"limit" json:"limit"`
}

// DefaultParams returns default pagination values
func DefaultParams() Params {
	return Params{Page: 1, Limit: DefaultLimit}
}

// Validate clamps pagination parameters into valid ranges
func (p *Params) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

// Apply writes page and limit into query values for a backend call
func (p Params) Apply(q url.Values) {
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
}

// New creates pagination metadata for a page of a result set
func New(page, limit int, total int64) *Pagination {
	p := &Pagination{Total: total, Page: page, Limit: limit}
	p.fill()
	return p
}

// Normalize recomputes derived fields. The backend may omit totalPages.
func (p *Pagination) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	p.fill()
}

func (p *Pagination) fill() {
	if p.Limit > 0 && p.TotalPages == 0 {
		p.TotalPages = int(math.Ceil(float64(p.Total) / float64(p.Limit)))
	}
	p.HasNext = p.Page < p.TotalPages
	p.HasPrev = p.Page > 1
}

// PaginatedResult represents a paginated result with items and pagination info
type PaginatedResult[T any] struct {
	Items      []T         `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

// NewPaginatedResult creates a new paginated result
func NewPaginatedResult[T any](items []T, pagination *Pagination) *PaginatedResult[T] {
	if items == nil {
		items = []T{}
	}
	return &PaginatedResult[T]{
		Items:      items,
		Pagination: pagination,
	}
}
