package models

import "math"

// NotePage is one page of an ordered note listing.
type NotePage struct {
	CurrentPage int    `json:"current_page"`
	Data        []Note `json:"data"`
	From        *int   `json:"from"`
	To          *int   `json:"to"`
	LastPage    int    `json:"last_page"`
	PerPage     int    `json:"per_page"`
	Total       int    `json:"total"`
}

// NewNotePage assembles page metadata for data found at page (1-based) of a
// listing holding total items in chunks of perPage.
func NewNotePage(data []Note, page, perPage, total int) NotePage {
	if data == nil {
		data = []Note{}
	}

	lastPage := 1
	if total > 0 && perPage > 0 {
		lastPage = (total + perPage - 1) / perPage
	}

	p := NotePage{
		CurrentPage: page,
		Data:        data,
		LastPage:    lastPage,
		PerPage:     perPage,
		Total:       total,
	}

	if offset := Offset(page, perPage); len(data) > 0 && offset < total {
		from := offset + 1
		to := offset + len(data)
		p.From = &from
		p.To = &to
	}

	return p
}

func (p NotePage) HasNext() bool {
	return p.CurrentPage < p.LastPage
}

func (p NotePage) HasPrev() bool {
	return p.CurrentPage > 1
}

// Offset returns the row offset of page for the given page size. Pages below
// 1 are treated as the first page; offsets past math.MaxInt saturate.
func Offset(page, perPage int) int {
	if page < 1 || perPage < 1 {
		return 0
	}
	if page-1 > math.MaxInt/perPage {
		return math.MaxInt
	}
	return (page - 1) * perPage
}
