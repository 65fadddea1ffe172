package tableview

import "github.com/pkg/errors"

// Paginator windows a filtered collection into fixed-size pages. Pages are
// 1-based. SetPage ignores out-of-range targets instead of clamping them,
// only a shrinking total pulls the current page back in range.
type Paginator struct {
	pageSize int
	page     int
	total    int
}

// NewPaginator returns a paginator with the given page size. A size below
// one is a programming error and is rejected outright.
func NewPaginator(pageSize int) (*Paginator, error) {
	if pageSize < 1 {
		return nil, errors.Errorf("page size %d below 1", pageSize)
	}
	return &Paginator{pageSize: pageSize, page: 1}, nil
}

// SetTotal records the filtered item count and clamps the current page when
// the collection shrank underneath it.
func (p *Paginator) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	p.total = total
	if p.page > p.TotalPages() {
		p.page = p.TotalPages()
	}
}

// SetPage moves to the given page. Targets outside [1, TotalPages] leave
// the paginator untouched.
func (p *Paginator) SetPage(page int) {
	if page < 1 || page > p.TotalPages() {
		return
	}
	p.page = page
}

// Page returns the current 1-based page.
func (p *Paginator) Page() int { return p.page }

// PageSize returns the fixed page size.
func (p *Paginator) PageSize() int { return p.pageSize }

// Total returns the item count last passed to SetTotal.
func (p *Paginator) Total() int { return p.total }

// TotalPages returns the page count, never below one so an empty
// collection still renders a single empty page.
func (p *Paginator) TotalPages() int {
	pages := (p.total + p.pageSize - 1) / p.pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Window returns the half-open index range [start, end) of the current
// page within a collection of Total() items.
func (p *Paginator) Window() (int, int) {
	start := (p.page - 1) * p.pageSize
	if start > p.total {
		start = p.total
	}
	end := start + p.pageSize
	if end > p.total {
		end = p.total
	}
	return start, end
}

// PageOf records the slice length on p and returns the current page window
// of items.
func PageOf[T any](p *Paginator, items []T) []T {
	p.SetTotal(len(items))
	start, end := p.Window()
	return items[start:end]
}
