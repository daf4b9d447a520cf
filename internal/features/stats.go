package features

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/parallel"
)

// Aggregate selects how FunctionChannelOfEachSection reduces a section.
type Aggregate int

const (
	AggregateMax Aggregate = iota
	AggregateMin
)

// ParseAggregate parses "max" or "min".
func ParseAggregate(s string) (Aggregate, error) {
	switch s {
	case "max":
		return AggregateMax, nil
	case "min":
		return AggregateMin, nil
	default:
		return 0, fmt.Errorf("%w: unknown aggregate %q", ErrInvalidConfig, s)
	}
}

func (a Aggregate) String() string {
	switch a {
	case AggregateMax:
		return "max"
	case AggregateMin:
		return "min"
	default:
		return fmt.Sprintf("Aggregate(%d)", int(a))
	}
}

// AspectRatio returns [width / height].
func (im *Image) AspectRatio() []float64 {
	return []float64{float64(im.width) / float64(im.height)}
}

// SumOfSizes returns [width + height].
func (im *Image) SumOfSizes() []int {
	return []int{im.width + im.height}
}

// Size returns [width, height].
func (im *Image) Size() []int {
	return []int{im.width, im.height}
}

// AverageBrightness returns the mean HSV value over every pixel of the image.
func (im *Image) AverageBrightness() []float64 {
	return []float64{im.averageOver(im.Bounds(), SpaceHSV, 2)}
}

// AverageHueOfMiddle returns the mean HSV hue over the center section of the
// 3x3 grid.
func (im *Image) AverageHueOfMiddle() ([]float64, error) {
	return im.averageOfMiddle(0)
}

// AverageSaturationOfMiddle returns the mean HSV saturation over the center
// section of the 3x3 grid.
func (im *Image) AverageSaturationOfMiddle() ([]float64, error) {
	return im.averageOfMiddle(1)
}

func (im *Image) averageOfMiddle(channel int) ([]float64, error) {
	sections, err := im.sections(DefaultGrid)
	if err != nil {
		return nil, err
	}
	return []float64{im.averageOver(sections[MiddleSection], SpaceHSV, channel)}, nil
}

// AverageChannelOfEachSection returns, for each of the 9 sections of the 3x3
// grid, the mean of one channel after mapping every pixel into cs.
//
// Returns an error wrapping ErrInvalidConfig for an unknown color space or a
// channel outside 0-2, and ErrDegeneratePartition for images narrower or
// shorter than 3 pixels.
func (im *Image) AverageChannelOfEachSection(cs ColorSpace, channel int) ([]float64, error) {
	if err := checkChannel(cs, channel); err != nil {
		return nil, err
	}
	sections, err := im.sections(DefaultGrid)
	if err != nil {
		return nil, err
	}
	return eachSection(sections, func(r image.Rectangle) float64 {
		return im.averageOver(r, cs, channel)
	}), nil
}

// FunctionChannelOfEachSection is like AverageChannelOfEachSection but
// reduces each section with the maximum or minimum instead of the mean.
func (im *Image) FunctionChannelOfEachSection(agg Aggregate, cs ColorSpace, channel int) ([]float64, error) {
	if agg != AggregateMax && agg != AggregateMin {
		return nil, fmt.Errorf("%w: unknown aggregate %d", ErrInvalidConfig, int(agg))
	}
	if err := checkChannel(cs, channel); err != nil {
		return nil, err
	}
	sections, err := im.sections(DefaultGrid)
	if err != nil {
		return nil, err
	}
	return eachSection(sections, func(r image.Rectangle) float64 {
		return im.aggregateOver(r, agg, cs, channel)
	}), nil
}

// AverageHueOfEachSection returns the mean HSV hue of each 3x3 section.
func (im *Image) AverageHueOfEachSection() ([]float64, error) {
	return im.AverageChannelOfEachSection(SpaceHSV, 0)
}

// AverageSaturationOfEachSection returns the mean HSV saturation of each 3x3 section.
func (im *Image) AverageSaturationOfEachSection() ([]float64, error) {
	return im.AverageChannelOfEachSection(SpaceHSV, 1)
}

// AverageValueOfEachSection returns the mean HSV value of each 3x3 section.
func (im *Image) AverageValueOfEachSection() ([]float64, error) {
	return im.AverageChannelOfEachSection(SpaceHSV, 2)
}

// AveragePleasureOfEachSection returns the mean PAD pleasure of each 3x3 section.
func (im *Image) AveragePleasureOfEachSection() ([]float64, error) {
	return im.AverageChannelOfEachSection(SpacePAD, 0)
}

// AverageArousalOfEachSection returns the mean PAD arousal of each 3x3 section.
func (im *Image) AverageArousalOfEachSection() ([]float64, error) {
	return im.AverageChannelOfEachSection(SpacePAD, 1)
}

// AverageDominanceOfEachSection returns the mean PAD dominance of each 3x3 section.
func (im *Image) AverageDominanceOfEachSection() ([]float64, error) {
	return im.AverageChannelOfEachSection(SpacePAD, 2)
}

// eachSection evaluates fn for every section concurrently and returns the
// results in section order. Each section is reduced by a single goroutine,
// so the values match a sequential evaluation exactly.
func eachSection(sections []image.Rectangle, fn func(image.Rectangle) float64) []float64 {
	out := make([]float64, len(sections))
	parallel.Line(len(sections), func(start, end int) {
		for q := start; q < end; q++ {
			out[q] = fn(sections[q])
		}
	})
	return out
}

// averageOver returns the mean channel value over a non-empty rectangle,
// summing column by column.
func (im *Image) averageOver(r image.Rectangle, cs ColorSpace, channel int) float64 {
	var sum float64
	for x := r.Min.X; x < r.Max.X; x++ {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			sum += im.channelValue(cs, channel, x, y)
		}
	}
	return sum / float64(r.Dx()*r.Dy())
}

// aggregateOver returns the maximum or minimum channel value over a
// non-empty rectangle.
func (im *Image) aggregateOver(r image.Rectangle, agg Aggregate, cs ColorSpace, channel int) float64 {
	best := im.channelValue(cs, channel, r.Min.X, r.Min.Y)
	for x := r.Min.X; x < r.Max.X; x++ {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			v := im.channelValue(cs, channel, x, y)
			if (agg == AggregateMax && v > best) || (agg == AggregateMin && v < best) {
				best = v
			}
		}
	}
	return best
}
