package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/gift"
	"github.com/disintegration/imaging"

	"github.com/curranmax/ImageFeatures/internal/features"
)

// MaxCropScale is the largest scale factor Crop accepts.
const MaxCropScale = 16.0

// CropResult contains the cropped image data
type CropResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`

	// Section is the cropped section in source image coordinates.
	Section SectionBounds `json:"section"`
}

// Crop extracts a rectangular region from an image and encodes it as PNG,
// optionally rescaling it with Lanczos resampling. A scale of 0 or 1 keeps
// the original size; scales above MaxCropScale are rejected.
func Crop(img *features.Image, region image.Rectangle, scale float64) (*CropResult, error) {
	if region.Empty() {
		return nil, fmt.Errorf("invalid crop region %v: must have x1 < x2 and y1 < y2", region)
	}
	if !region.In(img.Bounds()) {
		return nil, fmt.Errorf("crop region %v outside image bounds %v", region, img.Bounds())
	}
	if scale < 0 || scale > MaxCropScale {
		return nil, fmt.Errorf("%w: scale %g outside 0-%g", features.ErrInvalidArgument, scale, MaxCropScale)
	}

	cropped := imaging.Crop(img.NRGBA(), region)

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		if newWidth < 1 {
			newWidth = 1
		}
		if newHeight < 1 {
			newHeight = 1
		}
		g := gift.New(gift.Resize(newWidth, newHeight, gift.LanczosResampling))
		scaled := image.NewNRGBA(g.Bounds(cropped.Bounds()))
		g.Draw(scaled, cropped)
		cropped = scaled
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, cropped); err != nil {
		return nil, fmt.Errorf("failed to encode cropped image: %w", err)
	}

	return &CropResult{
		Width:       cropped.Bounds().Dx(),
		Height:      cropped.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
		Section: SectionBounds{
			Index: -1,
			X1:    region.Min.X,
			Y1:    region.Min.Y,
			X2:    region.Max.X,
			Y2:    region.Max.Y,
		},
	}, nil
}

// CropSection extracts section index of the grid x grid feature partition,
// so the pixels behind a per-section feature value can be inspected.
func CropSection(img *features.Image, grid, index int, scale float64) (*CropResult, error) {
	sections, err := features.Grid(img.Width(), img.Height(), grid)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(sections) {
		return nil, fmt.Errorf("%w: section %d outside 0-%d", features.ErrInvalidArgument, index, len(sections)-1)
	}

	result, err := Crop(img, sections[index], scale)
	if err != nil {
		return nil, err
	}
	result.Section.Index = index
	return result, nil
}
