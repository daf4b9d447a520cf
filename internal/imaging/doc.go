// Package imaging loads image files for feature extraction and renders the
// feature partitions for inspection.
//
// Files are decoded once, oriented by their EXIF metadata, optionally
// downscaled, and converted to *features.Image. Coordinates follow the
// features package: (0,0) is the top-left pixel, X increases rightward and Y
// increases downward. For regions, (x1,y1) is inclusive and (x2,y2) is
// exclusive.
//
// # Supported Formats
//
// PNG, JPEG and GIF through the standard library; BMP, TIFF and WebP through
// golang.org/x/image. The format is detected from the file contents.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. The rendering functions
// (SectionOverlay, CropSection, SampleColor) only read the image and can be
// called concurrently.
//
// # Error Handling
//
// File I/O and decode errors are wrapped with %w. Partition errors from the
// features package are returned unchanged, so callers can test them with
// errors.Is.
package imaging
