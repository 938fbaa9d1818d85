package application

const (
	DefaultPostLimit    = 10
	DefaultCommentLimit = 20
	DefaultMemberLimit  = 20
	MaxLimit            = 100
	MaxPage             = 10_000_000
)

type Pagination struct {
	Page  int
	Limit int
}

// Normalize fills in a missing page or limit and caps both.
func (p Pagination) Normalize(defaultLimit int) Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

func (p Pagination) Offset() int { return (p.Page - 1) * p.Limit }

type Page[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

// NewPage builds a page; TotalPages is ceil(total/limit).
func NewPage[T any](data []T, total int, pg Pagination) Page[T] {
	if data == nil {
		data = []T{}
	}
	pages := 0
	if pg.Limit > 0 {
		pages = (total + pg.Limit - 1) / pg.Limit
	}
	return Page[T]{Data: data, Total: total, Page: pg.Page, Limit: pg.Limit, TotalPages: pages}
}

// Slice returns the window of items the page covers.
func Slice[T any](items []T, pg Pagination) []T {
	if pg.Page < 1 || pg.Page > MaxPage || pg.Limit < 1 {
		return nil
	}
	start := pg.Offset()
	if start < 0 || start >= len(items) {
		return nil
	}
	end := start + pg.Limit
	if end < start || end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
