package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strconv"

	"github.com/curranmax/ImageFeatures/internal/features"
)

// SectionBounds is one section of a feature grid in pixel coordinates.
// (X1,Y1) is inclusive and (X2,Y2) is exclusive.
type SectionBounds struct {
	Index int `json:"index"`
	X1    int `json:"x1"`
	Y1    int `json:"y1"`
	X2    int `json:"x2"`
	Y2    int `json:"y2"`
}

// SectionOverlayResult contains the image with section boundaries drawn on it.
type SectionOverlayResult struct {
	Width       int             `json:"width"`
	Height      int             `json:"height"`
	ImageBase64 string          `json:"image_base64"`
	MimeType    string          `json:"mime_type"`
	Grid        int             `json:"grid"`
	Sections    []SectionBounds `json:"sections"`
}

// SectionOverlay draws the boundaries of the grid x grid feature partition
// onto a copy of the image, optionally labeling each section with its index.
//
// Sections are numbered the way the feature extractors number them: column
// by column, so index 1 lies below index 0.
//
// Parameters:
//   - img: The analyzed image.
//   - grid: Sections per side; 3 for the per-section statistics and
//     histograms, 4 for depth of field.
//   - showIndices: Draw each section's index in its top-left corner.
//   - lineColorHex: Boundary color as "#RRGGBB" or "#RRGGBBAA". An invalid
//     value falls back to opaque red.
//
// Returns an error wrapping features.ErrDegeneratePartition if the image is
// smaller than grid pixels along either side.
func SectionOverlay(img *features.Image, grid int, showIndices bool, lineColorHex string) (*SectionOverlayResult, error) {
	sections, err := features.Grid(img.Width(), img.Height(), grid)
	if err != nil {
		return nil, err
	}

	lineColor, err := parseHexColor(lineColorHex)
	if err != nil {
		lineColor = color.RGBA{255, 0, 0, 255}
	}

	result := image.NewRGBA(img.Bounds())
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			r, g, b := img.Pixel(x, y)
			result.SetRGBA(x, y, color.RGBA{r, g, b, 255})
		}
	}

	bounds := make([]SectionBounds, len(sections))
	for q, s := range sections {
		bounds[q] = SectionBounds{Index: q, X1: s.Min.X, Y1: s.Min.Y, X2: s.Max.X, Y2: s.Max.Y}

		// Interior edges only; the image border is not a boundary.
		if s.Min.X > 0 {
			for y := s.Min.Y; y < s.Max.Y; y++ {
				result.Set(s.Min.X, y, lineColor)
			}
		}
		if s.Min.Y > 0 {
			for x := s.Min.X; x < s.Max.X; x++ {
				result.Set(x, s.Min.Y, lineColor)
			}
		}
	}

	if showIndices {
		labelColor := color.RGBA{255, 255, 255, 255}
		bgColor := color.RGBA{0, 0, 0, 180}
		for q, s := range sections {
			drawLabel(result, s.Min.X+2, s.Min.Y+2, strconv.Itoa(q), labelColor, bgColor)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, result); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &SectionOverlayResult{
		Width:       img.Width(),
		Height:      img.Height(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
		Grid:        grid,
		Sections:    bounds,
	}, nil
}

// parseHexColor parses a hex color string like "#FF0000" or "#FF000080"
func parseHexColor(hex string) (color.RGBA, error) {
	if len(hex) == 0 {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid hex color length")
	}

	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, err
	}
	if len(hex) == 6 {
		val = val<<8 | 0xff
	}
	return color.RGBA{R: uint8(val >> 24), G: uint8(val >> 16), B: uint8(val >> 8), A: uint8(val)}, nil
}

// digitGlyphs is a 3x5 pixel font for section indices.
var digitGlyphs = [10][5]string{
	{"111", "101", "101", "101", "111"},
	{"010", "110", "010", "010", "111"},
	{"111", "001", "111", "100", "111"},
	{"111", "001", "111", "001", "111"},
	{"101", "101", "111", "001", "001"},
	{"111", "100", "111", "001", "111"},
	{"111", "100", "111", "101", "111"},
	{"111", "001", "001", "001", "001"},
	{"111", "101", "111", "101", "111"},
	{"111", "101", "111", "001", "111"},
}

// drawLabel draws a string of digits on a background box at (x, y),
// clipped to the image. Non-digit characters leave a blank cell.
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	const charWidth, labelHeight = 4, 7
	bounds := img.Bounds()
	set := func(px, py int, c color.RGBA) {
		if image.Pt(px, py).In(bounds) {
			img.SetRGBA(px, py, c)
		}
	}

	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < len(text)*charWidth; dx++ {
			set(x+dx, y+dy, bg)
		}
	}

	for i, ch := range text {
		if ch < '0' || ch > '9' {
			continue
		}
		for row, line := range digitGlyphs[ch-'0'] {
			for col, pixel := range line {
				if pixel == '1' {
					set(x+i*charWidth+col, y+row, fg)
				}
			}
		}
	}
}
