package features

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/parallel"
)

// BinType selects how a pixel is mapped to a histogram bucket.
type BinType int

const (
	// BinAvg uses num_bins buckets indexed by the mean of r, g and b.
	BinAvg BinType = iota
	// Bin3D uses num_bins^3 buckets indexed by the quantized r, g and b.
	Bin3D
)

// NormType selects how each section's histogram is normalized.
type NormType int

const (
	// NormSumToOne divides every bucket by the section's pixel count.
	NormSumToOne NormType = iota
	// NormNone keeps raw pixel counts.
	NormNone
	// NormEuclidean divides every bucket by the histogram's L2 norm.
	NormEuclidean
)

// DifType selects the distance between two section histograms.
type DifType int

const (
	// DifSumOfAbs is the L1 distance.
	DifSumOfAbs DifType = iota
	// DifEuclidean is the L2 distance.
	DifEuclidean
	// DifEarthMover is the 1-D earth mover's distance, the L1 distance
	// between cumulative histograms. Only defined for BinAvg.
	DifEarthMover
)

// PixelType selects the pixel representation that is binned.
type PixelType int

const (
	PixelRGB PixelType = iota
)

// ParseBinType parses "avg" or "3d".
func ParseBinType(s string) (BinType, error) {
	switch s {
	case "avg":
		return BinAvg, nil
	case "3d":
		return Bin3D, nil
	default:
		return 0, fmt.Errorf("%w: unknown bin type %q", ErrInvalidConfig, s)
	}
}

// ParseNormType parses "sum_to_one", "none" or "euclidean".
func ParseNormType(s string) (NormType, error) {
	switch s {
	case "sum_to_one":
		return NormSumToOne, nil
	case "none":
		return NormNone, nil
	case "euclidean":
		return NormEuclidean, nil
	default:
		return 0, fmt.Errorf("%w: unknown norm type %q", ErrInvalidConfig, s)
	}
}

// ParseDifType parses "sum_of_abs", "euclidean" or "earth_mover".
func ParseDifType(s string) (DifType, error) {
	switch s {
	case "sum_of_abs":
		return DifSumOfAbs, nil
	case "euclidean":
		return DifEuclidean, nil
	case "earth_mover":
		return DifEarthMover, nil
	default:
		return 0, fmt.Errorf("%w: unknown dif type %q", ErrInvalidConfig, s)
	}
}

// ParsePixelType parses "rgb".
func ParsePixelType(s string) (PixelType, error) {
	switch s {
	case "rgb":
		return PixelRGB, nil
	default:
		return 0, fmt.Errorf("%w: unknown pixel type %q", ErrInvalidConfig, s)
	}
}

func (t BinType) String() string {
	switch t {
	case BinAvg:
		return "avg"
	case Bin3D:
		return "3d"
	}
	return fmt.Sprintf("BinType(%d)", int(t))
}

func (t NormType) String() string {
	switch t {
	case NormSumToOne:
		return "sum_to_one"
	case NormNone:
		return "none"
	case NormEuclidean:
		return "euclidean"
	}
	return fmt.Sprintf("NormType(%d)", int(t))
}

func (t DifType) String() string {
	switch t {
	case DifSumOfAbs:
		return "sum_of_abs"
	case DifEuclidean:
		return "euclidean"
	case DifEarthMover:
		return "earth_mover"
	}
	return fmt.Sprintf("DifType(%d)", int(t))
}

func (t PixelType) String() string {
	if t == PixelRGB {
		return "rgb"
	}
	return fmt.Sprintf("PixelType(%d)", int(t))
}

const (
	// MaxAvgBins is the number of distinct r+g+b sums.
	MaxAvgBins = 766

	// Max3DBins caps 3d histograms at 64^3 buckets.
	Max3DBins = 64
)

// BinConfig configures BinComparison.
type BinConfig struct {
	NumBins int
	Bin     BinType
	Norm    NormType
	Dif     DifType
	Pixel   PixelType
}

// DefaultBinConfig returns 10 averaged bins normalized to sum to one and
// compared with the L1 distance.
func DefaultBinConfig() BinConfig {
	return BinConfig{NumBins: 10, Bin: BinAvg, Norm: NormSumToOne, Dif: DifSumOfAbs, Pixel: PixelRGB}
}

// ParseBinConfig builds a BinConfig from option names, failing on the first
// name outside its enumerated set.
func ParseBinConfig(numBins int, binType, normType, difType, pixelType string) (BinConfig, error) {
	var cfg BinConfig
	var err error
	cfg.NumBins = numBins
	if cfg.Bin, err = ParseBinType(binType); err != nil {
		return BinConfig{}, err
	}
	if cfg.Norm, err = ParseNormType(normType); err != nil {
		return BinConfig{}, err
	}
	if cfg.Dif, err = ParseDifType(difType); err != nil {
		return BinConfig{}, err
	}
	if cfg.Pixel, err = ParsePixelType(pixelType); err != nil {
		return BinConfig{}, err
	}
	return cfg, cfg.Validate()
}

// Validate reports an error wrapping ErrInvalidConfig if any option is
// outside its enumerated set or the options cannot be combined.
func (c BinConfig) Validate() error {
	if c.NumBins < 1 {
		return fmt.Errorf("%w: num_bins %d, must be at least 1", ErrInvalidConfig, c.NumBins)
	}
	switch c.Bin {
	case BinAvg, Bin3D:
	default:
		return fmt.Errorf("%w: unknown bin type %d", ErrInvalidConfig, int(c.Bin))
	}
	switch c.Norm {
	case NormSumToOne, NormNone, NormEuclidean:
	default:
		return fmt.Errorf("%w: unknown norm type %d", ErrInvalidConfig, int(c.Norm))
	}
	switch c.Dif {
	case DifSumOfAbs, DifEuclidean:
	case DifEarthMover:
		if c.Bin != BinAvg {
			return fmt.Errorf("%w: earth_mover distance requires avg bins, got %s", ErrInvalidConfig, c.Bin)
		}
	default:
		return fmt.Errorf("%w: unknown dif type %d", ErrInvalidConfig, int(c.Dif))
	}
	if c.Pixel != PixelRGB {
		return fmt.Errorf("%w: unknown pixel type %d", ErrInvalidConfig, int(c.Pixel))
	}
	if c.Bin == BinAvg && c.NumBins > MaxAvgBins {
		return fmt.Errorf("%w: num_bins %d exceeds %d for avg bins", ErrInvalidConfig, c.NumBins, MaxAvgBins)
	}
	if c.Bin == Bin3D && c.NumBins > Max3DBins {
		return fmt.Errorf("%w: num_bins %d exceeds %d for 3d bins", ErrInvalidConfig, c.NumBins, Max3DBins)
	}
	return nil
}

// Len returns the number of buckets in each histogram.
func (c BinConfig) Len() int {
	if c.Bin == Bin3D {
		return c.NumBins * c.NumBins * c.NumBins
	}
	return c.NumBins
}

// bucket returns the histogram index of an RGB pixel.
func (c BinConfig) bucket(r, g, b uint8) int {
	n := c.NumBins
	if c.Bin == Bin3D {
		ri := int(r) * n / 256
		gi := int(g) * n / 256
		bi := int(b) * n / 256
		return ri + gi*n + bi*n*n
	}
	// floor(avg(r,g,b) * n / 256) in exact integer arithmetic.
	return (int(r) + int(g) + int(b)) * n / 768
}

// Histogram is an ordered sequence of bucket counts or weights.
type Histogram []float64

// Sum returns the total of all buckets.
func (h Histogram) Sum() float64 {
	var s float64
	for _, v := range h {
		s += v
	}
	return s
}

// SectionHistograms returns the normalized histogram of each of the 9
// sections of the 3x3 grid, in section order.
func (im *Image) SectionHistograms(cfg BinConfig) ([]Histogram, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sections, err := im.sections(DefaultGrid)
	if err != nil {
		return nil, err
	}

	hists := make([]Histogram, len(sections))
	parallel.Line(len(sections), func(start, end int) {
		for q := start; q < end; q++ {
			h := im.histogram(sections[q], cfg)
			normalize(h, cfg.Norm, sections[q].Dx()*sections[q].Dy())
			hists[q] = h
		}
	})
	return hists, nil
}

// BinComparison builds a histogram for each of the 9 sections of the 3x3
// grid and returns the distance between every pair of sections.
//
// The 36 distances are ordered (0,1), (0,2), ..., (0,8), (1,2), ..., (7,8).
// The configuration is validated before any pixel is read; an invalid
// configuration returns an error wrapping ErrInvalidConfig.
//
// # Example
//
//	cfg, err := features.ParseBinConfig(10, "avg", "sum_to_one", "sum_of_abs", "rgb")
//	if err != nil {
//	    return err
//	}
//	dists, err := img.BinComparison(cfg)
func (im *Image) BinComparison(cfg BinConfig) ([]float64, error) {
	hists, err := im.SectionHistograms(cfg)
	if err != nil {
		return nil, err
	}

	dists := make([]float64, 0, len(hists)*(len(hists)-1)/2)
	for i := 0; i < len(hists); i++ {
		for j := i + 1; j < len(hists); j++ {
			dists = append(dists, distance(hists[i], hists[j], cfg.Dif))
		}
	}
	return dists, nil
}

// histogram counts the pixels of one section into buckets.
func (im *Image) histogram(r image.Rectangle, cfg BinConfig) Histogram {
	h := make(Histogram, cfg.Len())
	for x := r.Min.X; x < r.Max.X; x++ {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			pr, pg, pb := im.Pixel(x, y)
			h[cfg.bucket(pr, pg, pb)]++
		}
	}
	return h
}

// normalize scales h in place.
func normalize(h Histogram, norm NormType, pixels int) {
	var scale float64
	switch norm {
	case NormSumToOne:
		if pixels == 0 {
			return
		}
		scale = float64(pixels)
	case NormEuclidean:
		var sq float64
		for _, v := range h {
			sq += v * v
		}
		if sq == 0 {
			return
		}
		scale = math.Sqrt(sq)
	default:
		return
	}
	for k := range h {
		h[k] /= scale
	}
}

// distance compares two histograms of equal length.
func distance(a, b Histogram, dif DifType) float64 {
	var d float64
	switch dif {
	case DifEuclidean:
		for k := range a {
			diff := a[k] - b[k]
			d += diff * diff
		}
		return math.Sqrt(d)
	case DifEarthMover:
		var ca, cb float64
		for k := range a {
			ca += a[k]
			cb += b[k]
			d += math.Abs(ca - cb)
		}
		return d
	default:
		for k := range a {
			d += math.Abs(a[k] - b[k])
		}
		return d
	}
}
