package params

import (
	"net/url"
	"testing"
)

func TestParsePaginationDefaults(t *testing.T) {
	p := ParsePagination(url.Values{})

	if p.Limit != defaultPageSize {
		t.Errorf("expected default limit %d, got %d", defaultPageSize, p.Limit)
	}
	if p.Page != 1 || p.Offset != 0 {
		t.Errorf("expected first page at offset 0, got page=%d offset=%d", p.Page, p.Offset)
	}
}

func TestParsePaginationClamps(t *testing.T) {
	tests := []struct {
		name       string
		query      url.Values
		wantLimit  int
		wantPage   int
		wantOffset int
	}{
		{"normal", url.Values{"size": {"5"}, "page": {"3"}}, 5, 3, 10},
		{"zero size", url.Values{"size": {"0"}}, defaultPageSize, 1, 0},
		{"negative page", url.Values{"page": {"-2"}}, defaultPageSize, 1, 0},
		{"oversized", url.Values{"size": {"500"}}, maxPageSize, 1, 0},
		{"garbage", url.Values{"size": {"abc"}, "page": {"x"}}, defaultPageSize, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParsePagination(tt.query)
			if p.Limit != tt.wantLimit || p.Page != tt.wantPage || p.Offset != tt.wantOffset {
				t.Errorf("got limit=%d page=%d offset=%d, want limit=%d page=%d offset=%d",
					p.Limit, p.Page, p.Offset, tt.wantLimit, tt.wantPage, tt.wantOffset)
			}
		})
	}
}

func TestComputeMeta(t *testing.T) {
	p := ParsePagination(url.Values{"size": {"10"}, "page": {"2"}})
	p.ComputeMeta(25)

	if p.Total != 25 || p.TotalPages != 3 {
		t.Errorf("expected total=25 totalPages=3, got total=%d totalPages=%d", p.Total, p.TotalPages)
	}
	if !p.HasPrev || !p.HasNext {
		t.Errorf("page 2 of 3 must have both neighbours, got hasPrev=%v hasNext=%v", p.HasPrev, p.HasNext)
	}

	p = ParsePagination(url.Values{"size": {"10"}, "page": {"3"}})
	p.ComputeMeta(25)
	if p.HasNext {
		t.Error("last page must not report a next page")
	}
}
