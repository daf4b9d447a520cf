// Package features computes fixed-length numeric feature vectors that
// summarize the visual content of a single decoded image.
//
// The package covers color distribution, spatial color layout, histogram
// structure and multiresolution texture energy. Every feature is a method on
// *Image and returns an ordered slice whose length is fixed for that feature:
//   - Scalar features (aspect ratio, brightness, depth of field): length 1
//   - Size: length 2 (width, height)
//   - Per-section features: length 9, one value per section of the 3x3 grid
//   - Bin comparison: length 36, one distance per pair of sections
//
// # Sections
//
// Most features divide the image into a grid of sections by partitioning the
// width and height independently (see Partition). Sections are numbered with
// the outer loop over width spans and the inner loop over height spans, so
// for the default 3x3 grid section q covers width span q/3 and height span
// q%3. Section 4 is the middle of the image.
//
// A grid needs at least num pixels along each dimension. Images smaller than
// that fail with ErrDegeneratePartition instead of producing empty sections.
//
// # Color Spaces
//
// Channel-based features select a ColorSpace (RGB, HSV or PAD) and a channel
// index 0-2:
//   - RGB: red, green, blue in 0-255
//   - HSV: hue in whole degrees 0-359, saturation 0-1, value 0-1
//   - PAD: pleasure, arousal, dominance, linear in saturation and value
//
// # Error Handling
//
// Configuration problems (unknown bin type, channel out of range, wavelet
// layer outside 1-3) are reported with ErrInvalidConfig before any pixel is
// read. Use errors.Is to test for the sentinel errors.
//
// # Thread Safety
//
// An Image is never mutated after construction, so all features may be
// called concurrently on the same Image. Calling a feature twice returns
// bit-identical results.
package features
