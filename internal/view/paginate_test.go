package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name          string
		totalCount    int
		pageSize      int
		requestedPage int
		want          PageInfo
	}{
		{
			name:       "empty set still has one page",
			totalCount: 0, pageSize: 5, requestedPage: 1,
			want: PageInfo{ItemsOnPage: 0, LastPage: 1, HasMorePages: false},
		},
		{
			name:       "exactly one full page",
			totalCount: 5, pageSize: 5, requestedPage: 1,
			want: PageInfo{ItemsOnPage: 5, LastPage: 1, HasMorePages: false},
		},
		{
			name:       "partial last page",
			totalCount: 7, pageSize: 5, requestedPage: 2,
			want: PageInfo{ItemsOnPage: 2, LastPage: 2, HasMorePages: false},
		},
		{
			name:       "middle page has more pages",
			totalCount: 16, pageSize: 5, requestedPage: 2,
			want: PageInfo{ItemsOnPage: 5, LastPage: 4, HasMorePages: true},
		},
		{
			name:       "first of many pages",
			totalCount: 21, pageSize: 10, requestedPage: 1,
			want: PageInfo{ItemsOnPage: 10, LastPage: 3, HasMorePages: true},
		},
		{
			name:       "page past the end yields empty slice, no error",
			totalCount: 7, pageSize: 5, requestedPage: 4,
			want: PageInfo{ItemsOnPage: 0, LastPage: 2, HasMorePages: false},
		},
		{
			name:       "page size of one",
			totalCount: 3, pageSize: 1, requestedPage: 3,
			want: PageInfo{ItemsOnPage: 1, LastPage: 3, HasMorePages: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(tt.totalCount, tt.pageSize, tt.requestedPage)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPaginateLastPageFormula(t *testing.T) {
	// lastPage = max(1, ceil(total / pageSize)) for a spread of inputs
	for total := 0; total <= 30; total++ {
		for pageSize := 1; pageSize <= 7; pageSize++ {
			want := (total + pageSize - 1) / pageSize
			if want < 1 {
				want = 1
			}
			got := Paginate(total, pageSize, 1)
			assert.Equal(t, want, got.LastPage, "total=%d pageSize=%d", total, pageSize)
			assert.Equal(t, 1 < got.LastPage, got.HasMorePages, "total=%d pageSize=%d", total, pageSize)
		}
	}
}
