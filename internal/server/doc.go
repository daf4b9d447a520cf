// Package server implements the MCP (Model Context Protocol) server for image
// feature extraction.
//
// The server speaks JSON-RPC 2.0 over stdio:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image Information:
//   - image_load: Load image and get metadata
//   - image_sample_color: Get a pixel in RGB, HSV and PAD
//
// Whole-image Features:
//   - features_extract_all: The complete feature vector
//   - features_geometry: Size, aspect ratio and sum of sizes
//   - features_brightness: Mean HSV value
//   - features_middle: Hue and saturation of the center section
//
// Per-section Statistics:
//   - features_section_average: Mean of a channel per 3x3 section
//   - features_section_aggregate: Max or min of a channel per 3x3 section
//
// Histogram Comparison:
//   - features_bin_comparison: 36 pairwise section histogram distances
//   - features_section_histograms: The histograms behind the distances
//
// Wavelet Texture:
//   - features_wavelet: Haar detail energy of one level
//   - features_wavelet_sum: Haar detail energy summed over levels
//   - features_depth_of_field: Share of detail in the 4x4 center
//
// Section Inspection:
//   - sections_overlay: Draw the section grid
//   - section_crop: Extract one section
//
// # Image Caching
//
// Decoded images are cached by path for the lifetime of the process, so a
// client computing several features of one image decodes it once. When the
// server is started with a MaxSide limit, every feature is computed on the
// downscaled image.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with code
// -32000 and the Go error string as data. Unknown option names fail before
// the image is read.
//
// # Usage
//
//	srv := server.New(imaging.Options{MaxSide: 1024})
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
