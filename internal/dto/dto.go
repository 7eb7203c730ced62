package dto

import "doctama-backoffice/internal/listview"

// Response is the uniform envelope every endpoint answers with.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Meta    *Meta      `json:"meta,omitempty"`

	// Degraded lists the collections that failed to fetch while the rest
	// of the payload was still computed. Screens render it as a banner.
	Degraded []string `json:"degraded,omitempty"`
}

type ErrorInfo struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type Meta struct {
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	PageSize   int  `json:"pageSize"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

func Success(data any) Response {
	return Response{Success: true, Data: data}
}

func SuccessDegraded(data any, degraded []string) Response {
	return Response{Success: true, Data: data, Degraded: degraded}
}

func SuccessPage(data any, meta Meta, degraded []string) Response {
	return Response{Success: true, Data: data, Meta: &meta, Degraded: degraded}
}

func Failure(code, message string) Response {
	return Response{Success: false, Error: &ErrorInfo{Code: code, Message: message}}
}

func ValidationFailure(fields map[string]string) Response {
	return Response{Success: false, Error: &ErrorInfo{
		Code:    "validation_failed",
		Message: "request validation failed",
		Fields:  fields,
	}}
}

// PageMeta lifts a result page's counters into the response Meta.
func PageMeta[T any](p listview.Page[T]) Meta {
	return Meta{
		Total:      p.TotalItems,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
		HasNext:    p.HasNext,
		HasPrev:    p.HasPrev,
	}
}

// ListQuery are the common query parameters of every list screen.
type ListQuery struct {
	Page     int    `query:"page"`
	PageSize int    `query:"pageSize"`
	Search   string `query:"search"`
	SortBy   string `query:"sortBy"`
	Order    string `query:"order"`
	Status   string `query:"status"`
	Role     string `query:"role"`
	Category string `query:"category"`
}

func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 10
	}
	if q.Order != "desc" {
		q.Order = "asc"
	}
}
