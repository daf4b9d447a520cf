package features

import (
	"image"
	"image/color"
	"math/rand"
	"testing"
)

var (
	black   = color.RGBA{0, 0, 0, 255}
	red     = color.RGBA{255, 0, 0, 255}
	green   = color.RGBA{0, 255, 0, 255}
	blue    = color.RGBA{0, 0, 255, 255}
	yellow  = color.RGBA{255, 255, 0, 255}
	magenta = color.RGBA{255, 0, 255, 255}
	cyan    = color.RGBA{0, 255, 255, 255}
	white   = color.RGBA{255, 255, 255, 255}
)

// nineColors paints the 3x3 test grid: two black sections, seven full-value
// colors, and pure yellow in the middle.
var nineColors = [9]color.RGBA{black, red, green, blue, yellow, magenta, cyan, white, black}

// createInMemoryImage creates a single-color image.
func createInMemoryImage(t *testing.T, width, height int, c color.Color) *Image {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return mustImage(t, img)
}

// createNineSectionImage paints each section of the 3x3 grid with its own
// color, in section order.
func createNineSectionImage(t *testing.T, width, height int, colors [9]color.RGBA) *Image {
	t.Helper()
	sections, err := Grid(width, height, DefaultGrid)
	if err != nil {
		t.Fatalf("Grid failed: %v", err)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for q, r := range sections {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				img.Set(x, y, colors[q])
			}
		}
	}
	return mustImage(t, img)
}

// createStripedImage paints horizontal bands of equal height, one per color,
// top to bottom.
func createStripedImage(t *testing.T, width, height int, colors []color.RGBA) *Image {
	t.Helper()
	bands := Partition(height, len(colors))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, band := range bands {
		for y := band.Lo; y < band.Hi; y++ {
			for x := 0; x < width; x++ {
				img.Set(x, y, colors[i])
			}
		}
	}
	return mustImage(t, img)
}

// createNoiseImage fills an image with reproducible pseudo-random colors.
func createNoiseImage(t *testing.T, width, height int, seed int64) *Image {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	pix := make([]uint8, 3*width*height)
	for i := range pix {
		pix[i] = uint8(rng.Intn(256))
	}
	img, err := NewImageRGB(width, height, pix)
	if err != nil {
		t.Fatalf("NewImageRGB failed: %v", err)
	}
	return img
}

func mustImage(t *testing.T, src image.Image) *Image {
	t.Helper()
	img, err := NewImage(src)
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}
	return img
}
