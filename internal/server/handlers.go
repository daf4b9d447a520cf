package server

import (
	"encoding/json"
	"fmt"

	"github.com/curranmax/ImageFeatures/internal/features"
	"github.com/curranmax/ImageFeatures/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "features_bin_comparison").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Parses option names into feature configuration, failing before any
//     pixel is read
//  4. Loads the image from cache
//  5. Calls the features or imaging function and returns its result
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	// Whole-image Features
	case "features_extract_all":
		return s.handleExtractAll(args)
	case "features_geometry":
		return s.handleGeometry(args)
	case "features_brightness":
		return s.handleBrightness(args)
	case "features_middle":
		return s.handleMiddle(args)

	// Per-section Statistics
	case "features_section_average":
		return s.handleSectionAverage(args)
	case "features_section_aggregate":
		return s.handleSectionAggregate(args)

	// Histogram Comparison
	case "features_bin_comparison":
		return s.handleBinComparison(args)
	case "features_section_histograms":
		return s.handleSectionHistograms(args)

	// Wavelet Texture
	case "features_wavelet":
		return s.handleWavelet(args)
	case "features_wavelet_sum":
		return s.handleWaveletSum(args)
	case "features_depth_of_field":
		return s.handleDepthOfField(args)

	// Section Inspection
	case "sections_overlay":
		return s.handleSectionsOverlay(args)
	case "section_crop":
		return s.handleSectionCrop(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// pathArgs is embedded by every tool's arguments.
type pathArgs struct {
	Path string `json:"path"`
}

// decodeAndLoad unmarshals args into a and loads the image named by path.
func (s *Server) decodeAndLoad(args json.RawMessage, a interface{}, path *string) (*features.Image, error) {
	if err := json.Unmarshal(args, a); err != nil {
		return nil, err
	}
	return s.cache.Load(*path)
}

// === Image Information Handlers ===

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

type imageSampleColorArgs struct {
	pathArgs
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	img, err := s.decodeAndLoad(args, &a, &a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

// === Whole-image Feature Handlers ===

// ExtractAllResult is the complete feature vector of one image.
type ExtractAllResult struct {
	Features features.Vector `json:"features"`
	Vector   []float64       `json:"vector"`
	Length   int             `json:"length"`
}

func (s *Server) handleExtractAll(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	img, err := s.decodeAndLoad(args, &a, &a.Path)
	if err != nil {
		return nil, err
	}
	v, err := features.ExtractAll(img)
	if err != nil {
		return nil, err
	}
	flat := v.Flatten()
	return &ExtractAllResult{Features: v, Vector: flat, Length: len(flat)}, nil
}

func (s *Server) handleGeometry(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	img, err := s.decodeAndLoad(args, &a, &a.Path)
	if err != nil {
		return nil, err
	}
	size := img.Size()
	return features.Vector{
		{Name: "size", Values: []float64{float64(size[0]), float64(size[1])}},
		{Name: "aspect_ratio", Values: img.AspectRatio()},
		{Name: "sum_of_sizes", Values: []float64{float64(img.SumOfSizes()[0])}},
	}, nil
}

func (s *Server) handleBrightness(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	img, err := s.decodeAndLoad(args, &a, &a.Path)
	if err != nil {
		return nil, err
	}
	return &features.Feature{Name: "average_brightness", Values: img.AverageBrightness()}, nil
}

func (s *Server) handleMiddle(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	img, err := s.decodeAndLoad(args, &a, &a.Path)
	if err != nil {
		return nil, err
	}
	hue, err := img.AverageHueOfMiddle()
	if err != nil {
		return nil, err
	}
	sat, err := img.AverageSaturationOfMiddle()
	if err != nil {
		return nil, err
	}
	return features.Vector{
		{Name: "average_hue_of_middle", Values: hue},
		{Name: "average_saturation_of_middle", Values: sat},
	}, nil
}

// === Per-section Statistic Handlers ===

type sectionChannelArgs struct {
	pathArgs
	ColorSpace string `json:"color_space"`
	Channel    int    `json:"channel"`
	Function   string `json:"function"`
}

func (a *sectionChannelArgs) colorSpace() (features.ColorSpace, error) {
	if a.ColorSpace == "" {
		a.ColorSpace = "hsv"
	}
	return features.ParseColorSpace(a.ColorSpace)
}

func (s *Server) handleSectionAverage(args json.RawMessage) (interface{}, error) {
	var a sectionChannelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	cs, err := a.colorSpace()
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	values, err := img.AverageChannelOfEachSection(cs, a.Channel)
	if err != nil {
		return nil, err
	}
	name := fmt.Sprintf("average_%s_%d_of_each_section", cs, a.Channel)
	return &features.Feature{Name: name, Values: values}, nil
}

func (s *Server) handleSectionAggregate(args json.RawMessage) (interface{}, error) {
	var a sectionChannelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Function == "" {
		a.Function = "max"
	}
	agg, err := features.ParseAggregate(a.Function)
	if err != nil {
		return nil, err
	}
	cs, err := a.colorSpace()
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	values, err := img.FunctionChannelOfEachSection(agg, cs, a.Channel)
	if err != nil {
		return nil, err
	}
	name := fmt.Sprintf("%s_%s_%d_of_each_section", agg, cs, a.Channel)
	return &features.Feature{Name: name, Values: values}, nil
}

// === Histogram Handlers ===

type binConfigArgs struct {
	pathArgs
	NumBins   int    `json:"num_bins"`
	BinType   string `json:"bin_type"`
	NormType  string `json:"norm_type"`
	DifType   string `json:"dif_type"`
	PixelType string `json:"pixel_type"`
}

// config applies defaults and parses the option names.
func (a *binConfigArgs) config() (features.BinConfig, error) {
	def := features.DefaultBinConfig()
	if a.NumBins == 0 {
		a.NumBins = def.NumBins
	}
	if a.BinType == "" {
		a.BinType = def.Bin.String()
	}
	if a.NormType == "" {
		a.NormType = def.Norm.String()
	}
	if a.DifType == "" {
		a.DifType = def.Dif.String()
	}
	if a.PixelType == "" {
		a.PixelType = def.Pixel.String()
	}
	return features.ParseBinConfig(a.NumBins, a.BinType, a.NormType, a.DifType, a.PixelType)
}

// BinComparisonResult carries the 36 section distances and the options
// that produced them.
type BinComparisonResult struct {
	NumBins   int       `json:"num_bins"`
	BinType   string    `json:"bin_type"`
	NormType  string    `json:"norm_type"`
	DifType   string    `json:"dif_type"`
	PixelType string    `json:"pixel_type"`
	Distances []float64 `json:"distances"`
}

func (s *Server) handleBinComparison(args json.RawMessage) (interface{}, error) {
	var a binConfigArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	dists, err := img.BinComparison(cfg)
	if err != nil {
		return nil, err
	}
	return &BinComparisonResult{
		NumBins:   cfg.NumBins,
		BinType:   cfg.Bin.String(),
		NormType:  cfg.Norm.String(),
		DifType:   cfg.Dif.String(),
		PixelType: cfg.Pixel.String(),
		Distances: dists,
	}, nil
}

// SectionHistogramsResult carries one histogram per section.
type SectionHistogramsResult struct {
	Buckets    int                  `json:"buckets"`
	Histograms []features.Histogram `json:"histograms"`
}

func (s *Server) handleSectionHistograms(args json.RawMessage) (interface{}, error) {
	var a binConfigArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	hists, err := img.SectionHistograms(cfg)
	if err != nil {
		return nil, err
	}
	return &SectionHistogramsResult{Buckets: cfg.Len(), Histograms: hists}, nil
}

// === Wavelet Handlers ===

var hsvChannelNames = [...]string{"hue", "saturation", "value"}

type waveletArgs struct {
	pathArgs
	Channel int `json:"channel"`
	Layer   int `json:"layer"`
}

// check applies the layer default and rejects an out-of-range channel or
// layer before any pixel is read.
func (a *waveletArgs) check() error {
	if a.Layer == 0 {
		a.Layer = 1
	}
	if a.Channel < 0 || a.Channel >= len(hsvChannelNames) {
		return fmt.Errorf("%w: channel %d outside 0-2", features.ErrInvalidConfig, a.Channel)
	}
	if a.Layer < 1 || a.Layer > features.WaveletLevels {
		return fmt.Errorf("%w: wavelet layer %d outside 1-%d", features.ErrInvalidConfig, a.Layer, features.WaveletLevels)
	}
	return nil
}

// loadWavelet unmarshals and checks wavelet arguments, then loads the image.
func (s *Server) loadWavelet(args json.RawMessage) (*waveletArgs, *features.Image, error) {
	var a waveletArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, nil, err
	}
	if err := a.check(); err != nil {
		return nil, nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, nil, err
	}
	return &a, img, nil
}

func (s *Server) handleWavelet(args json.RawMessage) (interface{}, error) {
	a, img, err := s.loadWavelet(args)
	if err != nil {
		return nil, err
	}
	values, err := img.HSVWaveletFeature(a.Channel, a.Layer)
	if err != nil {
		return nil, err
	}
	name := fmt.Sprintf("%s_wavelet_layer_%d", hsvChannelNames[a.Channel], a.Layer)
	return &features.Feature{Name: name, Values: values}, nil
}

func (s *Server) handleWaveletSum(args json.RawMessage) (interface{}, error) {
	a, img, err := s.loadWavelet(args)
	if err != nil {
		return nil, err
	}

	var values []float64
	switch a.Channel {
	case 0:
		values, err = img.SumHueWaveletFeature()
	case 1:
		values, err = img.SumSaturationWaveletFeature()
	default:
		values, err = img.SumValueWaveletFeature()
	}
	if err != nil {
		return nil, err
	}
	return &features.Feature{Name: "sum_" + hsvChannelNames[a.Channel] + "_wavelet", Values: values}, nil
}

// DepthOfFieldResult carries the depth-of-field ratio and the per-section
// energies it was computed from.
type DepthOfFieldResult struct {
	Channel       string    `json:"channel"`
	DepthOfField  float64   `json:"depth_of_field"`
	SectionEnergy []float64 `json:"section_energy"`
}

func (s *Server) handleDepthOfField(args json.RawMessage) (interface{}, error) {
	a, img, err := s.loadWavelet(args)
	if err != nil {
		return nil, err
	}
	dof, err := img.DepthOfField(a.Channel)
	if err != nil {
		return nil, err
	}
	energy, err := img.SectionDetailEnergy(a.Channel)
	if err != nil {
		return nil, err
	}
	return &DepthOfFieldResult{
		Channel:       hsvChannelNames[a.Channel],
		DepthOfField:  dof[0],
		SectionEnergy: energy,
	}, nil
}

// === Section Inspection Handlers ===

type sectionsOverlayArgs struct {
	pathArgs
	Grid        int    `json:"grid"`
	ShowIndices *bool  `json:"show_indices"`
	LineColor   string `json:"line_color"`
}

func (s *Server) handleSectionsOverlay(args json.RawMessage) (interface{}, error) {
	var a sectionsOverlayArgs
	img, err := s.decodeAndLoad(args, &a, &a.Path)
	if err != nil {
		return nil, err
	}
	if a.Grid == 0 {
		a.Grid = features.DefaultGrid
	}
	if a.LineColor == "" {
		a.LineColor = "#FF0000"
	}
	showIndices := a.ShowIndices == nil || *a.ShowIndices
	return imaging.SectionOverlay(img, a.Grid, showIndices, a.LineColor)
}

type sectionCropArgs struct {
	pathArgs
	Grid  int     `json:"grid"`
	Index int     `json:"index"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleSectionCrop(args json.RawMessage) (interface{}, error) {
	var a sectionCropArgs
	img, err := s.decodeAndLoad(args, &a, &a.Path)
	if err != nil {
		return nil, err
	}
	if a.Grid == 0 {
		a.Grid = features.DefaultGrid
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	return imaging.CropSection(img, a.Grid, a.Index, a.Scale)
}
