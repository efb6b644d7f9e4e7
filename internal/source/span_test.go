package source_test

import (
	"testing"

	"mojomls/internal/source"
)

func TestSpanEmptyAndLen(t *testing.T) {
	s := source.Span{File: 0, Start: 3, End: 3}
	if !s.Empty() {
		t.Errorf("expected empty span")
	}
	s.End = 8
	if s.Empty() {
		t.Errorf("expected non-empty span")
	}
	if s.Len() != 5 {
		t.Errorf("Len() = %d, want 5", s.Len())
	}
}

func TestSpanContains(t *testing.T) {
	s := source.Span{Start: 2, End: 6}
	cases := []struct {
		off  uint32
		want bool
	}{
		{1, false},
		{2, true},
		{5, true},
		{6, false},
	}
	for _, tc := range cases {
		if got := s.Contains(tc.off); got != tc.want {
			t.Errorf("Contains(%d) = %v, want %v", tc.off, got, tc.want)
		}
	}
}

func TestSpanCover(t *testing.T) {
	a := source.Span{File: 1, Start: 5, End: 10}
	b := source.Span{File: 1, Start: 2, End: 7}
	c := a.Cover(b)
	if c.Start != 2 || c.End != 10 {
		t.Errorf("Cover = %v, want 2-10", c)
	}

	other := source.Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Errorf("Cover across files must be a no-op, got %v", got)
	}
}
