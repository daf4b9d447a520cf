package features

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSV is a color in Hue/Saturation/Value space.
type HSV struct {
	H int     `json:"h"` // Hue: whole degrees 0-359 (0=red, 120=green, 240=blue)
	S float64 `json:"s"` // Saturation: 0-1
	V float64 `json:"v"` // Value: 0-1
}

// PAD is a color in the Pleasure/Arousal/Dominance affective model.
type PAD struct {
	Pleasure  float64 `json:"pleasure"`
	Arousal   float64 `json:"arousal"`
	Dominance float64 `json:"dominance"`
}

// Triple holds the three channels of a color in some color space.
type Triple [3]float64

// RGBtoHSV converts 8-bit RGB values to HSV.
//
// The hue is computed from whichever component is largest:
//
//	r max: 60 * ((g-b)/delta mod 6)
//	g max: 60 * ((b-r)/delta + 2)
//	b max: 60 * ((r-g)/delta + 4)
//
// Negative hues are wrapped by adding 360 and the result is truncated, not
// rounded, to whole degrees. Gray colors (delta == 0) have hue 0.
func RGBtoHSV(r, g, b uint8) HSV {
	c := colorful.Color{R: float64(r) / 255.0, G: float64(g) / 255.0, B: float64(b) / 255.0}
	h, s, v := c.Hsv()
	hue := int(h)
	if hue >= 360 {
		hue -= 360
	}
	return HSV{H: hue, S: s, V: v}
}

// RGBtoPAD converts 8-bit RGB values to the PAD model via HSV:
//
//	pleasure  =  0.69*v + 0.22*s
//	arousal   = -0.31*v + 0.60*s
//	dominance =  0.76*v + 0.32*s
func RGBtoPAD(r, g, b uint8) PAD {
	hsv := RGBtoHSV(r, g, b)
	return PAD{
		Pleasure:  0.69*hsv.V + 0.22*hsv.S,
		Arousal:   -0.31*hsv.V + 0.60*hsv.S,
		Dominance: 0.76*hsv.V + 0.32*hsv.S,
	}
}

// RGBtoRGB returns the RGB channels unchanged.
func RGBtoRGB(r, g, b uint8) Triple {
	return Triple{float64(r), float64(g), float64(b)}
}

// ColorSpace selects the mapping applied to each pixel before a channel is
// read.
type ColorSpace int

const (
	SpaceRGB ColorSpace = iota
	SpaceHSV
	SpacePAD
)

// ParseColorSpace parses "rgb", "hsv" or "pad".
func ParseColorSpace(s string) (ColorSpace, error) {
	switch s {
	case "rgb":
		return SpaceRGB, nil
	case "hsv":
		return SpaceHSV, nil
	case "pad":
		return SpacePAD, nil
	default:
		return 0, fmt.Errorf("%w: unknown color space %q", ErrInvalidConfig, s)
	}
}

func (cs ColorSpace) String() string {
	switch cs {
	case SpaceRGB:
		return "rgb"
	case SpaceHSV:
		return "hsv"
	case SpacePAD:
		return "pad"
	default:
		return fmt.Sprintf("ColorSpace(%d)", int(cs))
	}
}

func (cs ColorSpace) valid() bool {
	return cs == SpaceRGB || cs == SpaceHSV || cs == SpacePAD
}

// Convert maps an RGB pixel into the color space.
func (cs ColorSpace) Convert(r, g, b uint8) Triple {
	switch cs {
	case SpaceHSV:
		hsv := RGBtoHSV(r, g, b)
		return Triple{float64(hsv.H), hsv.S, hsv.V}
	case SpacePAD:
		pad := RGBtoPAD(r, g, b)
		return Triple{pad.Pleasure, pad.Arousal, pad.Dominance}
	default:
		return RGBtoRGB(r, g, b)
	}
}

// channelValue reads one channel of pixel (x, y) in the given color space.
func (im *Image) channelValue(cs ColorSpace, channel, x, y int) float64 {
	r, g, b := im.Pixel(x, y)
	return cs.Convert(r, g, b)[channel]
}

// checkChannel validates a color space and channel index pair.
func checkChannel(cs ColorSpace, channel int) error {
	if !cs.valid() {
		return fmt.Errorf("%w: unknown color space %d", ErrInvalidConfig, int(cs))
	}
	if channel < 0 || channel > 2 {
		return fmt.Errorf("%w: channel %d outside 0-2", ErrInvalidConfig, channel)
	}
	return nil
}
