package response

import (
	"net/url"
	"strconv"
)

// pageWindow is how many numbered page links the control shows at once.
const pageWindow = 5

// PageLink is one numbered entry of a pagination control.
type PageLink struct {
	Number  int
	URL     string
	Current bool
}

// PaginationControl is the navigation rendered under paginated lists.
// Empty First/Prev/Next/Last mean the link is disabled.
type PaginationControl struct {
	Page       int
	TotalPages int
	Pages      []PageLink
	First      string
	Prev       string
	Next       string
	Last       string
}

// Paginate builds the control for p, linking back to base with only the
// pageno parameter changed. It returns nil when there is a single page.
func Paginate(p *Pagination, base *url.URL) *PaginationControl {
	if p == nil || base == nil || p.TotalPages <= 1 {
		return nil
	}

	link := func(n int) string {
		u := *base
		q := u.Query()
		q.Set("pageno", strconv.Itoa(n))
		u.RawQuery = q.Encode()
		return u.RequestURI()
	}

	start := p.Page - pageWindow/2
	if start < 1 {
		start = 1
	}
	end := start + pageWindow - 1
	if end > p.TotalPages {
		end = p.TotalPages
		start = max(1, end-pageWindow+1)
	}

	ctrl := &PaginationControl{Page: p.Page, TotalPages: p.TotalPages}
	for n := start; n <= end; n++ {
		ctrl.Pages = append(ctrl.Pages, PageLink{Number: n, URL: link(n), Current: n == p.Page})
	}
	if p.Page > 1 {
		ctrl.First = link(1)
		ctrl.Prev = link(min(p.Page-1, p.TotalPages))
	}
	if p.Page < p.TotalPages {
		ctrl.Next = link(p.Page + 1)
		ctrl.Last = link(p.TotalPages)
	}
	return ctrl
}
