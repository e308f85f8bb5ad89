package pagination

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Params represents pagination and filter parameters
type Params struct {
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
	Offset int    `json:"-"`
	Search string `json:"-"`
	Role   string `json:"-"`
}

// Meta represents pagination metadata
type Meta struct {
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	NextPage    *int  `json:"next_page"`
	PrevPage    *int  `json:"prev_page"`
}

// DefaultLimit is the default number of items per page
const DefaultLimit = 10

// MaxLimit is the maximum number of items per page
const MaxLimit = 100

// GetParams extracts pagination and filter parameters from request
func GetParams(c *fiber.Ctx) *Params {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(DefaultLimit)))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return &Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
		Search: c.Query("search"),
		Role:   c.Query("role"),
	}
}

// GetMeta calculates pagination metadata. NextPage and PrevPage are nil at
// the boundaries; a page past the end simply has no next page.
func GetMeta(params *Params, total int64) *Meta {
	totalPages := int(total) / params.Limit
	if int(total)%params.Limit > 0 {
		totalPages++
	}

	meta := &Meta{
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: params.Page,
	}

	if params.Page < totalPages {
		next := params.Page + 1
		meta.NextPage = &next
	}
	if params.Page > 1 {
		prev := params.Page - 1
		meta.PrevPage = &prev
	}

	return meta
}

// Response represents a paginated response
type Response struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta"`
}

// NewResponse creates a new paginated response
func NewResponse(data interface{}, meta *Meta) *Response {
	return &Response{
		Data: data,
		Meta: meta,
	}
}
