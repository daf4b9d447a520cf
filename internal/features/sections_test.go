package features

import (
	"errors"
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPartition(t *testing.T) {
	tests := []struct {
		size, num int
		want      []Span
	}{
		{90, 3, []Span{{0, 30}, {30, 60}, {60, 90}}},
		{10, 3, []Span{{0, 4}, {4, 7}, {7, 10}}},
		{11, 3, []Span{{0, 4}, {4, 8}, {8, 11}}},
		{10, 4, []Span{{0, 3}, {3, 5}, {5, 8}, {8, 10}}},
		{5, 1, []Span{{0, 5}}},
		{2, 3, []Span{{0, 1}, {1, 2}, {2, 2}}},
	}

	for _, tt := range tests {
		got := Partition(tt.size, tt.num)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Partition(%d, %d) mismatch (-want +got):\n%s", tt.size, tt.num, diff)
		}
	}
}

func TestPartition_Tiles(t *testing.T) {
	for size := 0; size <= 64; size++ {
		for num := 1; num <= 8; num++ {
			spans := Partition(size, num)
			if len(spans) != num {
				t.Fatalf("Partition(%d, %d): got %d spans", size, num, len(spans))
			}
			if spans[0].Lo != 0 || spans[num-1].Hi != size {
				t.Fatalf("Partition(%d, %d) does not cover [0,%d): %v", size, num, size, spans)
			}
			covered := 0
			for i, s := range spans {
				if s.Lo > s.Hi {
					t.Fatalf("Partition(%d, %d) span %d reversed: %v", size, num, i, s)
				}
				if i > 0 && spans[i-1].Hi != s.Lo {
					t.Fatalf("Partition(%d, %d) gap or overlap at %d: %v", size, num, i, spans)
				}
				if n := s.Len(); n != size/num && n != size/num+1 {
					t.Fatalf("Partition(%d, %d) span %d has length %d, want %d or %d: %v", size, num, i, n, size/num, size/num+1, spans)
				}
				covered += s.Len()
			}
			if covered != size {
				t.Fatalf("Partition(%d, %d) covers %d pixels", size, num, covered)
			}
		}
	}
}

func TestGrid_Order(t *testing.T) {
	sections, err := Grid(90, 180, DefaultGrid)
	if err != nil {
		t.Fatalf("Grid failed: %v", err)
	}
	if len(sections) != 9 {
		t.Fatalf("expected 9 sections, got %d", len(sections))
	}

	// Outer loop over width spans, inner loop over height spans.
	want := []image.Rectangle{
		image.Rect(0, 0, 30, 60), image.Rect(0, 60, 30, 120), image.Rect(0, 120, 30, 180),
		image.Rect(30, 0, 60, 60), image.Rect(30, 60, 60, 120), image.Rect(30, 120, 60, 180),
		image.Rect(60, 0, 90, 60), image.Rect(60, 60, 90, 120), image.Rect(60, 120, 90, 180),
	}
	if diff := cmp.Diff(want, sections); diff != "" {
		t.Errorf("Grid mismatch (-want +got):\n%s", diff)
	}
	if sections[MiddleSection] != image.Rect(30, 60, 60, 120) {
		t.Errorf("middle section: got %v", sections[MiddleSection])
	}
}

func TestGrid_Degenerate(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		num           int
	}{
		{"narrow", 2, 10, 3},
		{"short", 10, 2, 3},
		{"16 grid", 3, 3, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Grid(tt.width, tt.height, tt.num)
			if !errors.Is(err, ErrDegeneratePartition) {
				t.Errorf("got %v, want ErrDegeneratePartition", err)
			}
		})
	}

	if _, err := Grid(3, 3, 3); err != nil {
		t.Errorf("Grid(3,3,3) should succeed: %v", err)
	}
}
