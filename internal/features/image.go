package features

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Image is a decoded 8-bit RGB pixel buffer.
//
// The buffer is materialized eagerly at construction and costs
// 3*width*height bytes. An Image is never modified afterwards.
type Image struct {
	width  int
	height int
	pix    []uint8 // packed r,g,b rows, stride 3*width
}

// NewImage copies src into a new Image.
//
// Any color model (grayscale, paletted, RGBA, 16-bit, YCbCr) is converted to
// non-premultiplied 8-bit color first; the alpha channel is discarded. The
// source bounds do not need to start at the origin: pixel (0,0) of the result
// is src.Bounds().Min.
//
// Returns an error wrapping ErrInvalidArgument if src is nil or has no pixels.
func NewImage(src image.Image) (*Image, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidArgument)
	}
	bounds := src.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("%w: image has no pixels (%dx%d)", ErrInvalidArgument, bounds.Dx(), bounds.Dy())
	}

	nrgba := imaging.Clone(src)
	width, height := bounds.Dx(), bounds.Dy()
	pix := make([]uint8, 3*width*height)
	for y := 0; y < height; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+4*width]
		out := pix[3*y*width : 3*(y+1)*width]
		for x := 0; x < width; x++ {
			out[3*x] = row[4*x]
			out[3*x+1] = row[4*x+1]
			out[3*x+2] = row[4*x+2]
		}
	}

	return &Image{width: width, height: height, pix: pix}, nil
}

// NewImageRGB builds an Image from a packed RGB buffer laid out row by row,
// three bytes per pixel. The buffer is copied.
func NewImageRGB(width, height int, pix []uint8) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: image has no pixels (%dx%d)", ErrInvalidArgument, width, height)
	}
	if len(pix) != 3*width*height {
		return nil, fmt.Errorf("%w: buffer length %d, want %d", ErrInvalidArgument, len(pix), 3*width*height)
	}
	buf := make([]uint8, len(pix))
	copy(buf, pix)
	return &Image{width: width, height: height, pix: buf}, nil
}

// Width returns the image width in pixels.
func (im *Image) Width() int { return im.width }

// Height returns the image height in pixels.
func (im *Image) Height() int { return im.height }

// Bounds returns the image rectangle with its origin at (0,0).
func (im *Image) Bounds() image.Rectangle { return image.Rect(0, 0, im.width, im.height) }

// Pixel returns the color of the pixel at (x, y). Coordinates must satisfy
// 0 <= x < Width() and 0 <= y < Height().
func (im *Image) Pixel(x, y int) (r, g, b uint8) {
	i := 3 * (y*im.width + x)
	return im.pix[i], im.pix[i+1], im.pix[i+2]
}

// NRGBA returns an opaque copy of the image as a standard library image.
func (im *Image) NRGBA() *image.NRGBA {
	out := image.NewNRGBA(im.Bounds())
	for i, j := 0, 0; i < len(im.pix); i, j = i+3, j+4 {
		out.Pix[j] = im.pix[i]
		out.Pix[j+1] = im.pix[i+1]
		out.Pix[j+2] = im.pix[i+2]
		out.Pix[j+3] = 0xff
	}
	return out
}
