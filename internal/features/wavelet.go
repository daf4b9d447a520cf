package features

import "math"

// WaveletLevels is the number of decomposition levels used by the texture
// features.
const WaveletLevels = 3

// Subband is a 2-D array of wavelet coefficients indexed [row][column].
type Subband [][]float64

// Sum returns the signed sum of all coefficients.
func (s Subband) Sum() float64 {
	var total float64
	for _, row := range s {
		for _, v := range row {
			total += v
		}
	}
	return total
}

// AbsSum returns the sum of the absolute values of all coefficients.
func (s Subband) AbsSum() float64 {
	var total float64
	for _, row := range s {
		for _, v := range row {
			total += math.Abs(v)
		}
	}
	return total
}

// DetailLevel holds the three detail subbands of one decomposition level.
type DetailLevel struct {
	LH Subband // horizontal detail: low-pass along rows, high-pass along columns
	HL Subband // vertical detail: high-pass along rows, low-pass along columns
	HH Subband // diagonal detail: high-pass in both directions
}

// Sum returns the signed sum over all three subbands.
func (d DetailLevel) Sum() float64 {
	return d.LH.Sum() + d.HL.Sum() + d.HH.Sum()
}

// AbsSum returns the sum of absolute values over all three subbands.
func (d DetailLevel) AbsSum() float64 {
	return d.LH.AbsSum() + d.HL.AbsSum() + d.HH.AbsSum()
}

// Decomposition is the result of a multi-level 2-D wavelet transform.
type Decomposition struct {
	// Levels holds the detail subbands, finest first: Levels[0] is level 1.
	Levels []DetailLevel

	// Approximation is the low-pass subband left after the last level.
	Approximation Subband
}

// Level returns the detail subbands of level l, where 1 is the finest.
func (d Decomposition) Level(l int) DetailLevel {
	return d.Levels[l-1]
}

// Decompose applies a levels-deep 2-D Haar wavelet transform to samples,
// which is indexed [row][column].
//
// Each level transforms the rows and then the columns of the previous
// approximation with the orthonormal Haar pair
//
//	low  = (a + b) / sqrt(2)
//	high = (a - b) / sqrt(2)
//
// An odd-length row or column is extended symmetrically, pairing its last
// sample with itself, so every level has ceil(n/2) coefficients along each
// axis.
func Decompose(samples [][]float64, levels int) Decomposition {
	d := Decomposition{Levels: make([]DetailLevel, 0, levels)}
	approx := Subband(samples)
	for l := 0; l < levels; l++ {
		ll, lh, hl, hh := haar2D(approx)
		d.Levels = append(d.Levels, DetailLevel{LH: lh, HL: hl, HH: hh})
		approx = ll
	}
	d.Approximation = approx
	return d
}

// haar2D runs one level of the transform.
func haar2D(a Subband) (ll, lh, hl, hh Subband) {
	if len(a) == 0 || len(a[0]) == 0 {
		return Subband{}, Subband{}, Subband{}, Subband{}
	}

	lowX := make(Subband, len(a))
	highX := make(Subband, len(a))
	for y, row := range a {
		lowX[y], highX[y] = haar1D(row)
	}

	ll, lh = haarColumns(lowX)
	hl, hh = haarColumns(highX)
	return ll, lh, hl, hh
}

// haarColumns transforms every column of m.
func haarColumns(m Subband) (low, high Subband) {
	rows, cols := len(m), len(m[0])
	half := (rows + 1) / 2
	low = newSubband(half, cols)
	high = newSubband(half, cols)

	col := make([]float64, rows)
	for x := 0; x < cols; x++ {
		for y := 0; y < rows; y++ {
			col[y] = m[y][x]
		}
		l, h := haar1D(col)
		for y := 0; y < half; y++ {
			low[y][x] = l[y]
			high[y][x] = h[y]
		}
	}
	return low, high
}

// haar1D splits src into its low-pass and high-pass halves.
func haar1D(src []float64) (low, high []float64) {
	half := (len(src) + 1) / 2
	low = make([]float64, half)
	high = make([]float64, half)
	for i := 0; i < half; i++ {
		a := src[2*i]
		b := a
		if 2*i+1 < len(src) {
			b = src[2*i+1]
		}
		low[i] = (a + b) / math.Sqrt2
		high[i] = (a - b) / math.Sqrt2
	}
	return low, high
}

func newSubband(rows, cols int) Subband {
	s := make(Subband, rows)
	for y := range s {
		s[y] = make([]float64, cols)
	}
	return s
}
