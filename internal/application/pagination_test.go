package application_test

import (
	"math"
	"testing"

	"github.com/oksasatya/go-ddd-content-platform/internal/application"
)

func TestPaginationNormalize(t *testing.T) {
	cases := []struct {
		in   application.Pagination
		want application.Pagination
	}{
		{application.Pagination{}, application.Pagination{Page: 1, Limit: 10}},
		{application.Pagination{Page: -3, Limit: 5}, application.Pagination{Page: 1, Limit: 5}},
		{application.Pagination{Page: 4, Limit: 500}, application.Pagination{Page: 4, Limit: application.MaxLimit}},
		{application.Pagination{Page: math.MaxInt, Limit: 100}, application.Pagination{Page: application.MaxPage, Limit: 100}},
	}
	for _, tc := range cases {
		if got := tc.in.Normalize(10); got != tc.want {
			t.Errorf("Normalize(%+v) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestNewPage(t *testing.T) {
	pg := application.Pagination{Page: 1, Limit: 10}
	p := application.NewPage[int](nil, 0, pg)
	if p.Data == nil || p.TotalPages != 0 {
		t.Fatalf("empty page = %+v", p)
	}
	if p := application.NewPage([]int{1}, 21, pg); p.TotalPages != 3 {
		t.Fatalf("total pages = %d, want 3", p.TotalPages)
	}
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	if got := application.Slice(items, application.Pagination{Page: 2, Limit: 2}); len(got) != 2 || got[0] != 3 {
		t.Fatalf("page 2 = %v", got)
	}
	if got := application.Slice(items, application.Pagination{Page: 3, Limit: 2}); len(got) != 1 || got[0] != 5 {
		t.Fatalf("page 3 = %v", got)
	}
	if got := application.Slice(items, application.Pagination{Page: 9, Limit: 2}); got != nil {
		t.Fatalf("past end = %v", got)
	}
	huge := application.Pagination{Page: math.MaxInt64/100 + 2, Limit: 100}
	if got := application.Slice(items, huge.Normalize(10)); got != nil {
		t.Fatalf("huge page = %v", got)
	}
	if got := application.Slice(items, huge); got != nil {
		t.Fatalf("huge page without normalize = %v", got)
	}
}
