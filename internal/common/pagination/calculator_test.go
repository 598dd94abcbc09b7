package pagination_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"newspress/internal/common/pagination"
)

func TestCalculateOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		page  int
		limit int
		want  int
	}{
		{name: "first page", page: 1, limit: 4, want: 0},
		{name: "second page", page: 2, limit: 4, want: 4},
		{name: "third page of hero rail", page: 3, limit: 3, want: 6},
		{name: "page zero", page: 0, limit: 4, want: 0},
		{name: "zero limit", page: 3, limit: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pagination.CalculateOffset(tt.page, tt.limit)
			if got != tt.want {
				t.Errorf("CalculateOffset(%d, %d) = %d, want %d", tt.page, tt.limit, got, tt.want)
			}
		})
	}
}

func TestCalculateTotalPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{name: "zero total", total: 0, limit: 4, want: 1},
		{name: "total less than limit", total: 3, limit: 4, want: 1},
		{name: "total equals limit", total: 4, limit: 4, want: 1},
		{name: "total one more than limit", total: 5, limit: 4, want: 2},
		{name: "ten items in threes", total: 10, limit: 3, want: 4},
		{name: "limit 1", total: 5, limit: 1, want: 5},
		{name: "unbounded limit", total: 50, limit: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pagination.CalculateTotalPages(tt.total, tt.limit)
			if got != tt.want {
				t.Errorf("CalculateTotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
			}
		})
	}
}

func TestClampPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		page, total, want int
	}{
		{page: 1, total: 3, want: 1},
		{page: 0, total: 3, want: 1},
		{page: -7, total: 3, want: 1},
		{page: 5, total: 3, want: 3},
		{page: 2, total: 3, want: 2},
		{page: 2, total: 0, want: 1},
	}
	for _, tt := range tests {
		if got := pagination.ClampPage(tt.page, tt.total); got != tt.want {
			t.Errorf("ClampPage(%d, %d) = %d, want %d", tt.page, tt.total, got, tt.want)
		}
	}
}

func TestSlice_PartitionsWithoutGapsOrOverlap(t *testing.T) {
	t.Parallel()

	for total := 0; total <= 13; total++ {
		for _, limit := range []int{1, 3, 4, 5} {
			items := make([]int, total)
			for i := range items {
				items[i] = i
			}
			pages := pagination.CalculateTotalPages(total, limit)

			var joined []int
			for p := 1; p <= pages; p++ {
				joined = append(joined, pagination.Slice(items, p, limit)...)
			}
			if total == 0 {
				if len(joined) != 0 {
					t.Fatalf("total=0 limit=%d: got %v", limit, joined)
				}
				continue
			}
			if diff := cmp.Diff(items, joined); diff != "" {
				t.Errorf("total=%d limit=%d partition mismatch (-want +got):\n%s", total, limit, diff)
			}
		}
	}
}

func TestSlice_ClampsOutOfRangePage(t *testing.T) {
	t.Parallel()

	items := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"}
	// 9 items, 3 per page -> 3 pages; page 5 must equal page 3.
	if diff := cmp.Diff(pagination.Slice(items, 3, 3), pagination.Slice(items, 5, 3)); diff != "" {
		t.Errorf("page 5 differs from page 3 (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, pagination.Slice(items, -1, 3)); diff != "" {
		t.Errorf("negative page mismatch (-want +got):\n%s", diff)
	}
}

func TestNewMetadata(t *testing.T) {
	t.Parallel()

	got := pagination.NewMetadata(9, 5, 3)
	want := pagination.Metadata{Total: 9, Page: 3, Limit: 3, TotalPages: 3, HasPrev: true, HasNext: false}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NewMetadata mismatch (-want +got):\n%s", diff)
	}

	empty := pagination.NewMetadata(0, 1, 4)
	if empty.TotalPages != 1 || empty.Page != 1 || empty.HasNext || empty.HasPrev {
		t.Errorf("empty metadata = %+v", empty)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, got.Pages()); diff != "" {
		t.Errorf("Pages() mismatch (-want +got):\n%s", diff)
	}
}

func BenchmarkSlice(b *testing.B) {
	items := make([]int, 1000)
	for i := 0; i < b.N; i++ {
		pagination.Slice(items, 17, 20)
	}
}
