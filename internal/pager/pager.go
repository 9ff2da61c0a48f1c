// Package pager computes the pagination controls shown under a result list.
package pager

import (
	"fmt"

	"cdnctl/internal/api"
	"cdnctl/internal/datasource"
	"cdnctl/internal/query"
)

// PageSizeOptions are the selectable page sizes.
var PageSizeOptions = []int{10, 20, 50, 100}

type Pager struct {
	Page  int
	Limit int
	Total int
}

func New(page, limit, total int) Pager {
	s := query.State{Page: page, Limit: limit}.Normalize()
	if total < 0 {
		total = 0
	}
	return Pager{Page: s.Page, Limit: s.Limit, Total: total}
}

// FromResult builds a pager from the metadata of a result page.
func FromResult[T any](p *datasource.ResultPage[T]) Pager {
	return New(p.Page, p.Limit, p.Total)
}

// TotalPages returns ceil(Total/Limit), at least 1.
func (p Pager) TotalPages() int {
	return datasource.ResultPage[struct{}]{Limit: p.Limit, Total: p.Total}.TotalPages()
}

// Start returns the 1-based index of the first item on the page, or 0 when
// the page is empty.
func (p Pager) Start() int {
	start, _, ok := p.window()
	if !ok {
		return 0
	}
	return start + 1
}

// End returns the 1-based index of the last item on the page, or 0 when the
// page is empty.
func (p Pager) End() int {
	_, end, _ := p.window()
	return end
}

func (p Pager) window() (start, end int, ok bool) {
	return query.State{Page: p.Page, Limit: p.Limit}.Window(p.Total)
}

func (p Pager) HasPrev() bool {
	return p.Page > 1
}

func (p Pager) HasNext() bool {
	return p.Page < p.TotalPages()
}

// Summary renders the results line, e.g. "Showing 16 to 30 of 150 results".
func (p Pager) Summary() string {
	if p.Total == 0 {
		return "No results"
	}
	if p.Start() == 0 {
		return fmt.Sprintf("Page %d of %d is empty (%d results)", p.Page, p.TotalPages(), p.Total)
	}
	return fmt.Sprintf("Showing %d to %d of %d results", p.Start(), p.End(), p.Total)
}

// PageInfo renders "Page X of Y".
func (p Pager) PageInfo() string {
	return fmt.Sprintf("Page %d of %d", p.Page, p.TotalPages())
}

// Links builds the self, first, next and last links of the page for the API
// path. Next stays on the last page once it is reached.
func (p Pager) Links(path string, s query.State) api.Links {
	s.Limit = p.Limit
	link := func(page int) string {
		return path + "?" + query.EncodeAPIQuery(s.WithPage(page)).Encode()
	}
	last := p.TotalPages()
	next := min(p.Page+1, last)
	if p.Page > last {
		next = last
	}
	return api.Links{
		Self:  link(p.Page),
		First: link(1),
		Next:  link(next),
		Last:  link(last),
	}
}
