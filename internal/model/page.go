package model

const (
	DefaultPageSize = 9
	MinPageSize     = 3
	MaxPageSize     = 30
)

// PageRequest 分頁參數 (page 從 1 開始)
type PageRequest struct {
	Page     int
	PageSize int
}

// Normalize clamps page to >= 1 and pageSize to [MinPageSize, MaxPageSize].
// A zero pageSize means "not given" and becomes DefaultPageSize.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	switch {
	case p.PageSize == 0:
		p.PageSize = DefaultPageSize
	case p.PageSize < MinPageSize:
		p.PageSize = MinPageSize
	case p.PageSize > MaxPageSize:
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset returns the row offset for the current page (0-based).
func (p PageRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Page is the uniform paginated response.
type Page[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

func EmptyPage[T any](req PageRequest) Page[T] {
	return Page[T]{Items: []T{}, Total: 0, Page: req.Page, PageSize: req.PageSize}
}

// EventPhasePage is a single-phase page that may have fallen back to past events.
type EventPhasePage struct {
	Page[*Event]
	IsFallbackPast bool `json:"isFallbackPast"`
}
