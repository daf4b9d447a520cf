package features

import (
	"fmt"
	"image"
)

const (
	// DefaultGrid divides each dimension into 3 spans, giving 9 sections.
	DefaultGrid = 3

	// DepthOfFieldGrid divides each dimension into 4 spans, giving 16 sections.
	DepthOfFieldGrid = 4

	// MiddleSection is the index of the center section of the 3x3 grid.
	MiddleSection = 4
)

// Span is a half-open integer range [Lo, Hi).
type Span struct {
	Lo int `json:"lo"`
	Hi int `json:"hi"`
}

// Len returns the number of integers in the span.
func (s Span) Len() int { return s.Hi - s.Lo }

// Partition divides [0, size) into num contiguous, non-overlapping spans.
//
// Span i starts at ceil(size*i/num) and ends where span i+1 starts; the last
// span ends at size. Earlier spans receive the remainder, so for size=10 and
// num=3 the spans are [0,4) [4,7) [7,10). When num > size some spans are
// empty.
func Partition(size, num int) []Span {
	if num <= 0 {
		return nil
	}
	spans := make([]Span, num)
	for i := 0; i < num; i++ {
		spans[i].Lo = (size*i + num - 1) / num
	}
	for i := 0; i < num-1; i++ {
		spans[i].Hi = spans[i+1].Lo
	}
	spans[num-1].Hi = size
	return spans
}

// Grid divides a width x height area into num*num sections.
//
// Sections are ordered with the outer loop over width spans and the inner
// loop over height spans, so section q covers width span q/num and height
// span q%num. Each section is returned as an image.Rectangle with Min
// inclusive and Max exclusive.
//
// Returns an error wrapping ErrDegeneratePartition if either dimension is
// smaller than num, since some sections would be empty.
func Grid(width, height, num int) ([]image.Rectangle, error) {
	if num <= 0 {
		return nil, fmt.Errorf("%w: grid size %d", ErrInvalidConfig, num)
	}
	if width < num || height < num {
		return nil, fmt.Errorf("%w: %dx%d image cannot be divided into a %dx%d grid",
			ErrDegeneratePartition, width, height, num, num)
	}

	ws := Partition(width, num)
	hs := Partition(height, num)
	sections := make([]image.Rectangle, 0, num*num)
	for _, w := range ws {
		for _, h := range hs {
			sections = append(sections, image.Rect(w.Lo, h.Lo, w.Hi, h.Hi))
		}
	}
	return sections, nil
}

// sections returns the num x num grid over the image.
func (im *Image) sections(num int) ([]image.Rectangle, error) {
	return Grid(im.width, im.height, num)
}
