package imaging

import (
	"fmt"

	"github.com/curranmax/ImageFeatures/internal/features"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSVColor is the hue, saturation and value the feature extractors see.
type HSVColor struct {
	H int     `json:"h"` // Hue: integer degrees in [0, 360)
	S float64 `json:"s"` // Saturation: 0-1
	V float64 `json:"v"` // Value: 0-1
}

// PADColor is the pleasure, arousal and dominance of a color.
type PADColor struct {
	Pleasure  float64 `json:"pleasure"`
	Arousal   float64 `json:"arousal"`
	Dominance float64 `json:"dominance"`
}

// ColorResult contains one pixel in every color space the features use.
type ColorResult struct {
	X   int      `json:"x"`
	Y   int      `json:"y"`
	Hex string   `json:"hex"` // "#RRGGBB"
	RGB RGBColor `json:"rgb"`
	HSV HSVColor `json:"hsv"`
	PAD PADColor `json:"pad"`
}

// SampleColor reports the color at a pixel coordinate in RGB, HSV and PAD.
//
// Parameters:
//   - img: The analyzed image. When the loader downscales, coordinates refer
//     to the downscaled image.
//   - x: X coordinate (0-based, 0 = leftmost pixel).
//   - y: Y coordinate (0-based, 0 = topmost pixel).
//
// Returns an error if the coordinates are outside the image bounds.
func SampleColor(img *features.Image, x, y int) (*ColorResult, error) {
	if x < 0 || x >= img.Width() || y < 0 || y >= img.Height() {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds %dx%d", x, y, img.Width(), img.Height())
	}

	r, g, b := img.Pixel(x, y)
	hsv := features.RGBtoHSV(r, g, b)
	pad := features.RGBtoPAD(r, g, b)

	return &ColorResult{
		X:   x,
		Y:   y,
		Hex: fmt.Sprintf("#%02X%02X%02X", r, g, b),
		RGB: RGBColor{R: r, G: g, B: b},
		HSV: HSVColor{H: hsv.H, S: hsv.S, V: hsv.V},
		PAD: PADColor{Pleasure: pad.Pleasure, Arousal: pad.Arousal, Dominance: pad.Dominance},
	}, nil
}
