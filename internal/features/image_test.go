package features

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNewImage_RGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 3))
	src.Set(2, 1, color.RGBA{10, 20, 30, 255})

	img, err := NewImage(src)
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}
	if img.Width() != 4 || img.Height() != 3 {
		t.Errorf("dimensions: got %dx%d, want 4x3", img.Width(), img.Height())
	}
	if r, g, b := img.Pixel(2, 1); r != 10 || g != 20 || b != 30 {
		t.Errorf("Pixel(2,1): got (%d,%d,%d), want (10,20,30)", r, g, b)
	}
}

func TestNewImage_ColorModels(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	gray.SetGray(1, 1, color.Gray{Y: 77})

	paletted := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{black, yellow})
	paletted.SetColorIndex(1, 1, 1)

	nrgba := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	nrgba.SetNRGBA(1, 1, color.NRGBA{R: 200, G: 100, B: 50, A: 0})

	gray16 := image.NewGray16(image.Rect(0, 0, 2, 2))
	gray16.SetGray16(1, 1, color.Gray16{Y: 0xFFFF})

	tests := []struct {
		name    string
		src     image.Image
		r, g, b uint8
	}{
		{"gray", gray, 77, 77, 77},
		{"paletted", paletted, 255, 255, 0},
		{"nrgba alpha discarded", nrgba, 200, 100, 50},
		{"gray16", gray16, 255, 255, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := NewImage(tt.src)
			if err != nil {
				t.Fatalf("NewImage failed: %v", err)
			}
			r, g, b := img.Pixel(1, 1)
			if r != tt.r || g != tt.g || b != tt.b {
				t.Errorf("Pixel(1,1): got (%d,%d,%d), want (%d,%d,%d)", r, g, b, tt.r, tt.g, tt.b)
			}
		})
	}
}

func TestNewImage_OffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 8, 9))
	src.Set(5, 5, red)
	src.Set(7, 8, blue)

	img, err := NewImage(src)
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}
	if img.Width() != 3 || img.Height() != 4 {
		t.Fatalf("dimensions: got %dx%d, want 3x4", img.Width(), img.Height())
	}
	if r, g, b := img.Pixel(0, 0); r != 255 || g != 0 || b != 0 {
		t.Errorf("Pixel(0,0): got (%d,%d,%d), want red", r, g, b)
	}
	if r, g, b := img.Pixel(2, 3); r != 0 || g != 0 || b != 255 {
		t.Errorf("Pixel(2,3): got (%d,%d,%d), want blue", r, g, b)
	}
}

func TestNewImage_Empty(t *testing.T) {
	if _, err := NewImage(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("nil image: got %v, want ErrInvalidArgument", err)
	}
	if _, err := NewImage(image.NewRGBA(image.Rect(0, 0, 0, 10))); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("zero width: got %v, want ErrInvalidArgument", err)
	}
}

func TestNewImageRGB(t *testing.T) {
	pix := []uint8{1, 2, 3, 4, 5, 6}
	img, err := NewImageRGB(2, 1, pix)
	if err != nil {
		t.Fatalf("NewImageRGB failed: %v", err)
	}

	// The buffer is copied.
	pix[3] = 99
	if r, g, b := img.Pixel(1, 0); r != 4 || g != 5 || b != 6 {
		t.Errorf("Pixel(1,0): got (%d,%d,%d), want (4,5,6)", r, g, b)
	}

	if _, err := NewImageRGB(2, 2, pix); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("short buffer: got %v, want ErrInvalidArgument", err)
	}
	if _, err := NewImageRGB(0, 2, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("zero width: got %v, want ErrInvalidArgument", err)
	}
}

func TestImage_NRGBA(t *testing.T) {
	img := createNineSectionImage(t, 9, 12, nineColors)

	out := img.NRGBA()
	if out.Bounds() != img.Bounds() {
		t.Fatalf("bounds: got %v, want %v", out.Bounds(), img.Bounds())
	}
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			r, g, b := img.Pixel(x, y)
			if got := out.NRGBAAt(x, y); got != (color.NRGBA{R: r, G: g, B: b, A: 255}) {
				t.Fatalf("pixel (%d,%d): got %v, want (%d,%d,%d,255)", x, y, got, r, g, b)
			}
		}
	}

	back, err := NewImage(out)
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}
	if r, g, b := back.Pixel(4, 5); r != 255 || g != 255 || b != 0 {
		t.Errorf("middle pixel after round trip: got (%d,%d,%d), want yellow", r, g, b)
	}
}
