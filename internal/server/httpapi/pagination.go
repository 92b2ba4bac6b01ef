package httpapi

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/notely/internal/server/models"
)

// PageResponse is a note page with navigation links, as returned by the
// listing endpoints.
type PageResponse struct {
	models.NotePage
	Path         string  `json:"path"`
	FirstPageURL string  `json:"first_page_url"`
	LastPageURL  string  `json:"last_page_url"`
	NextPageURL  *string `json:"next_page_url"`
	PrevPageURL  *string `json:"prev_page_url"`
}

// newPageResponse builds navigation links relative to the request URL,
// keeping every query parameter but page.
func newPageResponse(r *http.Request, p models.NotePage) PageResponse {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if fwd := r.Header.Get("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}
	path := scheme + "://" + r.Host + r.URL.Path

	pageURL := func(n int) string {
		q := url.Values{}
		for k, v := range r.URL.Query() {
			if k != "page" {
				q[k] = v
			}
		}
		q.Set("page", strconv.Itoa(n))
		return path + "?" + q.Encode()
	}

	resp := PageResponse{
		NotePage:     p,
		Path:         path,
		FirstPageURL: pageURL(1),
		LastPageURL:  pageURL(p.LastPage),
	}
	if p.HasNext() {
		next := pageURL(p.CurrentPage + 1)
		resp.NextPageURL = &next
	}
	if p.HasPrev() {
		prev := pageURL(p.CurrentPage - 1)
		resp.PrevPageURL = &prev
	}
	return resp
}

// pageParam reads ?page=, treating absent or malformed values as 1.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
