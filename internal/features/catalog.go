package features

import "fmt"

// Descriptor names one feature of the default feature vector.
type Descriptor struct {
	// Name identifies the feature, e.g. "aspect_ratio".
	Name string

	// Len is the number of values the feature produces.
	Len int

	extract func(*Image) ([]float64, error)
}

// Extract computes the feature for img.
func (d Descriptor) Extract(img *Image) ([]float64, error) {
	return d.extract(img)
}

// Feature is one named entry of a feature vector.
type Feature struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// Vector is an ordered list of named features.
type Vector []Feature

// Flatten concatenates the values of every feature in order.
func (v Vector) Flatten() []float64 {
	n := 0
	for _, f := range v {
		n += len(f.Values)
	}
	out := make([]float64, 0, n)
	for _, f := range v {
		out = append(out, f.Values...)
	}
	return out
}

// Catalog returns the features that make up the default feature vector, in
// vector order.
func Catalog() []Descriptor {
	return []Descriptor{
		{"size", 2, func(im *Image) ([]float64, error) { return intsToFloats(im.Size()), nil }},
		{"aspect_ratio", 1, func(im *Image) ([]float64, error) { return im.AspectRatio(), nil }},
		{"sum_of_sizes", 1, func(im *Image) ([]float64, error) { return intsToFloats(im.SumOfSizes()), nil }},
		{"average_brightness", 1, func(im *Image) ([]float64, error) { return im.AverageBrightness(), nil }},
		{"average_hue_of_middle", 1, (*Image).AverageHueOfMiddle},
		{"average_saturation_of_middle", 1, (*Image).AverageSaturationOfMiddle},
		{"average_hue_of_each_section", 9, (*Image).AverageHueOfEachSection},
		{"average_saturation_of_each_section", 9, (*Image).AverageSaturationOfEachSection},
		{"average_value_of_each_section", 9, (*Image).AverageValueOfEachSection},
		{"average_pleasure_of_each_section", 9, (*Image).AveragePleasureOfEachSection},
		{"average_arousal_of_each_section", 9, (*Image).AverageArousalOfEachSection},
		{"average_dominance_of_each_section", 9, (*Image).AverageDominanceOfEachSection},
		{"max_value_of_each_section", 9, func(im *Image) ([]float64, error) {
			return im.FunctionChannelOfEachSection(AggregateMax, SpaceHSV, 2)
		}},
		{"min_value_of_each_section", 9, func(im *Image) ([]float64, error) {
			return im.FunctionChannelOfEachSection(AggregateMin, SpaceHSV, 2)
		}},
		{"bin_comparison", 36, func(im *Image) ([]float64, error) {
			return im.BinComparison(DefaultBinConfig())
		}},
		{"sum_hue_wavelet", 1, (*Image).SumHueWaveletFeature},
		{"sum_saturation_wavelet", 1, (*Image).SumSaturationWaveletFeature},
		{"sum_value_wavelet", 1, (*Image).SumValueWaveletFeature},
		{"depth_of_field_hue", 1, func(im *Image) ([]float64, error) { return im.DepthOfField(0) }},
		{"depth_of_field_saturation", 1, func(im *Image) ([]float64, error) { return im.DepthOfField(1) }},
		{"depth_of_field_value", 1, func(im *Image) ([]float64, error) { return im.DepthOfField(2) }},
	}
}

// ExtractAll computes every catalog feature for img. It stops at the first
// feature that fails; images smaller than 4x4 fail with
// ErrDegeneratePartition.
func ExtractAll(img *Image) (Vector, error) {
	catalog := Catalog()
	v := make(Vector, 0, len(catalog))
	for _, d := range catalog {
		values, err := d.Extract(img)
		if err != nil {
			return nil, fmt.Errorf("feature %s: %w", d.Name, err)
		}
		v = append(v, Feature{Name: d.Name, Values: values})
	}
	return v, nil
}

func intsToFloats(in []int) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}
