package features

import (
	"fmt"
	"image"
)

// depthOfFieldMiddle lists the sections of the 4x4 grid whose detail energy
// forms the depth-of-field numerator.
var depthOfFieldMiddle = [...]int{6, 7, 10, 11}

// WaveletTransform decomposes one channel of a region of the image into
// WaveletLevels levels of Haar detail subbands.
//
// The region uses the image coordinate system and must be non-empty and lie
// inside the image. Sample (row, column) of the transform input is the
// channel value of pixel (region.Min.X+column, region.Min.Y+row).
func (im *Image) WaveletTransform(region image.Rectangle, cs ColorSpace, channel int) (Decomposition, error) {
	if err := checkChannel(cs, channel); err != nil {
		return Decomposition{}, err
	}
	if region.Empty() || !region.In(im.Bounds()) {
		return Decomposition{}, fmt.Errorf("%w: region %v outside image bounds %v", ErrInvalidArgument, region, im.Bounds())
	}
	return Decompose(im.samples(region, cs, channel), WaveletLevels), nil
}

// HSVWaveletFeature returns the normalized signed detail energy of one HSV
// channel at one decomposition level (1 = finest, 3 = coarsest):
//
//	total = sum(LH) + sum(HL) + sum(HH)
//	norm  = sum(|LH|) + sum(|HL|) + sum(|HH|)
//	feature = total / norm, or 0 when norm is 0
//
// Returns an error wrapping ErrInvalidConfig if layer is not 1, 2 or 3.
func (im *Image) HSVWaveletFeature(channel, layer int) ([]float64, error) {
	if layer < 1 || layer > WaveletLevels {
		return nil, fmt.Errorf("%w: wavelet layer %d outside 1-%d", ErrInvalidConfig, layer, WaveletLevels)
	}
	d, err := im.WaveletTransform(im.Bounds(), SpaceHSV, channel)
	if err != nil {
		return nil, err
	}
	return []float64{energyRatio(d.Level(layer))}, nil
}

// SumHueWaveletFeature returns HSVWaveletFeature(0, l) summed over l = 1..3.
func (im *Image) SumHueWaveletFeature() ([]float64, error) {
	return im.sumWaveletFeature(0)
}

// SumSaturationWaveletFeature returns HSVWaveletFeature(1, l) summed over l = 1..3.
func (im *Image) SumSaturationWaveletFeature() ([]float64, error) {
	return im.sumWaveletFeature(1)
}

// SumValueWaveletFeature returns HSVWaveletFeature(2, l) summed over l = 1..3.
func (im *Image) SumValueWaveletFeature() ([]float64, error) {
	return im.sumWaveletFeature(2)
}

func (im *Image) sumWaveletFeature(channel int) ([]float64, error) {
	d, err := im.WaveletTransform(im.Bounds(), SpaceHSV, channel)
	if err != nil {
		return nil, err
	}
	var sum float64
	for layer := 1; layer <= WaveletLevels; layer++ {
		sum += energyRatio(d.Level(layer))
	}
	return []float64{sum}, nil
}

// SectionDetailEnergy returns, for each of the 16 sections of the 4x4 grid,
// the signed sum of the level-3 detail coefficients of one HSV channel
// computed over that section alone.
func (im *Image) SectionDetailEnergy(channel int) ([]float64, error) {
	if err := checkChannel(SpaceHSV, channel); err != nil {
		return nil, err
	}
	sections, err := im.sections(DepthOfFieldGrid)
	if err != nil {
		return nil, err
	}
	return eachSection(sections, func(r image.Rectangle) float64 {
		d := Decompose(im.samples(r, SpaceHSV, channel), WaveletLevels)
		return d.Level(WaveletLevels).Sum()
	}), nil
}

// DepthOfField returns the share of level-3 detail energy of one HSV channel
// that falls in sections 6, 7, 10 and 11 of the 4x4 grid:
//
//	feature = (e[6] + e[7] + e[10] + e[11]) / (e[0] + ... + e[15])
//
// where e is SectionDetailEnergy(channel). The result is 0 when the total is 0.
// Images narrower or shorter than 4 pixels fail with ErrDegeneratePartition.
func (im *Image) DepthOfField(channel int) ([]float64, error) {
	energy, err := im.SectionDetailEnergy(channel)
	if err != nil {
		return nil, err
	}
	var all, middle float64
	for _, e := range energy {
		all += e
	}
	for _, q := range depthOfFieldMiddle {
		middle += energy[q]
	}
	if all == 0 {
		return []float64{0}, nil
	}
	return []float64{middle / all}, nil
}

// energyRatio returns the signed detail sum divided by the absolute detail
// sum of one level, or 0 for a level with no detail.
func energyRatio(level DetailLevel) float64 {
	norm := level.AbsSum()
	if norm == 0 {
		return 0
	}
	return level.Sum() / norm
}

// samples extracts one channel of a region as a [row][column] array.
func (im *Image) samples(r image.Rectangle, cs ColorSpace, channel int) [][]float64 {
	out := make([][]float64, r.Dy())
	for y := range out {
		row := make([]float64, r.Dx())
		for x := range row {
			row[x] = im.channelValue(cs, channel, r.Min.X+x, r.Min.Y+y)
		}
		out[y] = row
	}
	return out
}
