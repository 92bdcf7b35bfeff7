package response

import (
	"net/url"
	"testing"
)

func TestPaginate_SinglePage(t *testing.T) {
	u, _ := url.Parse("/quizzes")
	if got := Paginate(NewPagination(1, 10, 7), u); got != nil {
		t.Errorf("expected nil control, got %+v", got)
	}
	if got := Paginate(nil, u); got != nil {
		t.Errorf("expected nil control for nil pagination")
	}
}

func TestPaginate_KeepsSearch(t *testing.T) {
	u, _ := url.Parse("/quizzes?search=capital+spain&pageno=2")
	ctrl := Paginate(NewPagination(2, 10, 25), u)
	if ctrl == nil {
		t.Fatal("nil control")
	}
	if ctrl.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", ctrl.TotalPages)
	}
	if want := "/quizzes?pageno=1&search=capital+spain"; ctrl.Prev != want {
		t.Errorf("Prev = %q, want %q", ctrl.Prev, want)
	}
	if want := "/quizzes?pageno=3&search=capital+spain"; ctrl.Next != want {
		t.Errorf("Next = %q, want %q", ctrl.Next, want)
	}
	if len(ctrl.Pages) != 3 || !ctrl.Pages[1].Current {
		t.Errorf("Pages = %+v", ctrl.Pages)
	}
}

func TestPaginate_Window(t *testing.T) {
	u, _ := url.Parse("/quizzes")
	tests := []struct {
		page, total int
		first, last int
	}{
		{1, 200, 1, 5},
		{10, 200, 8, 12},
		{20, 200, 16, 20},
		{25, 200, 16, 20},
	}
	for _, tt := range tests {
		ctrl := Paginate(NewPagination(tt.page, 10, tt.total), u)
		if ctrl == nil {
			t.Fatalf("page %d: nil control", tt.page)
		}
		got := ctrl.Pages
		if got[0].Number != tt.first || got[len(got)-1].Number != tt.last {
			t.Errorf("page %d: window %d..%d, want %d..%d",
				tt.page, got[0].Number, got[len(got)-1].Number, tt.first, tt.last)
		}
	}
}

func TestPaginate_Edges(t *testing.T) {
	u, _ := url.Parse("/quizzes")

	first := Paginate(NewPagination(1, 10, 30), u)
	if first.First != "" || first.Prev != "" {
		t.Errorf("first page should have no back links: %+v", first)
	}

	last := Paginate(NewPagination(3, 10, 30), u)
	if last.Next != "" || last.Last != "" {
		t.Errorf("last page should have no forward links: %+v", last)
	}

	beyond := Paginate(NewPagination(9, 10, 30), u)
	if want := "/quizzes?pageno=3"; beyond.Prev != want {
		t.Errorf("Prev beyond last = %q, want %q", beyond.Prev, want)
	}
}
