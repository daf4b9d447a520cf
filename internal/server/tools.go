package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func hsvChannelProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": "HSV channel: 0 = hue, 1 = saturation, 2 = value",
		"enum":        []int{0, 1, 2},
		"default":     0,
	}
}

func colorSpaceProperties() map[string]interface{} {
	return map[string]interface{}{
		"color_space": map[string]interface{}{
			"type":        "string",
			"description": "Color space each pixel is mapped into before the channel is read",
			"enum":        []string{"rgb", "hsv", "pad"},
			"default":     "hsv",
		},
		"channel": map[string]interface{}{
			"type":        "integer",
			"description": "Channel index within the color space (rgb: r,g,b; hsv: h,s,v; pad: pleasure,arousal,dominance)",
			"enum":        []int{0, 1, 2},
			"default":     0,
		},
	}
}

func binConfigProperties() map[string]interface{} {
	return map[string]interface{}{
		"num_bins": map[string]interface{}{
			"type":        "integer",
			"description": "Buckets per axis. avg bins use num_bins buckets (at most 766), 3d bins use num_bins^3 (num_bins at most 64)",
			"default":     10,
		},
		"bin_type": map[string]interface{}{
			"type":        "string",
			"description": "avg buckets the mean of r, g and b; 3d buckets r, g and b separately",
			"enum":        []string{"avg", "3d"},
			"default":     "avg",
		},
		"norm_type": map[string]interface{}{
			"type":        "string",
			"description": "Histogram normalization",
			"enum":        []string{"sum_to_one", "none", "euclidean"},
			"default":     "sum_to_one",
		},
		"dif_type": map[string]interface{}{
			"type":        "string",
			"description": "Distance between two section histograms. earth_mover requires avg bins",
			"enum":        []string{"sum_of_abs", "euclidean", "earth_mover"},
			"default":     "sum_of_abs",
		},
		"pixel_type": map[string]interface{}{
			"type":        "string",
			"description": "Pixel representation that is binned",
			"enum":        []string{"rgb"},
			"default":     "rgb",
		},
	}
}

// withPath returns props plus the required path property.
func withPath(props map[string]interface{}) map[string]interface{} {
	out := map[string]interface{}{"path": pathProperty()}
	for k, v := range props {
		out[k] = v
	}
	return out
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and the dimensions features are computed on. The decoded image is cached for subsequent feature tools.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": withPath(nil),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the color at a pixel in RGB, HSV and PAD (pleasure, arousal, dominance), exactly as the feature extractors see it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withPath(map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based)",
					},
				}),
				"required": []string{"path", "x", "y"},
			},
		},

		// Whole-image Features
		{
			Name:        "features_extract_all",
			Description: "Compute the complete feature vector: geometry, brightness, per-section color statistics, histogram comparison, wavelet texture and depth of field. Returns each named feature and the flattened vector.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": withPath(nil),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "features_geometry",
			Description: "Return size [width, height], aspect_ratio [width/height] and sum_of_sizes [width+height].",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": withPath(nil),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "features_brightness",
			Description: "Return the mean HSV value over every pixel of the image.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": withPath(nil),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "features_middle",
			Description: "Return the mean HSV hue and saturation of the center section of the 3x3 grid.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": withPath(nil),
				"required":   []string{"path"},
			},
		},

		// Per-section Statistics
		{
			Name:        "features_section_average",
			Description: "Return the mean of one color channel for each of the 9 sections of the 3x3 grid. Sections are numbered column by column.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": withPath(colorSpaceProperties()),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "features_section_aggregate",
			Description: "Return the maximum or minimum of one color channel for each of the 9 sections of the 3x3 grid.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withPath(func() map[string]interface{} {
					props := colorSpaceProperties()
					props["function"] = map[string]interface{}{
						"type":        "string",
						"description": "Reduction applied to each section",
						"enum":        []string{"max", "min"},
						"default":     "max",
					}
					return props
				}()),
				"required": []string{"path"},
			},
		},

		// Histogram Comparison
		{
			Name:        "features_bin_comparison",
			Description: "Build a color histogram for each of the 9 sections and return the 36 pairwise distances, ordered (0,1), (0,2), ..., (7,8).",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": withPath(binConfigProperties()),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "features_section_histograms",
			Description: "Return the normalized color histogram of each of the 9 sections, as used by features_bin_comparison.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": withPath(binConfigProperties()),
				"required":   []string{"path"},
			},
		},

		// Wavelet Texture
		{
			Name:        "features_wavelet",
			Description: "Return the normalized signed Haar detail energy of one HSV channel at one decomposition level, in [-1, 1].",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withPath(map[string]interface{}{
					"channel": hsvChannelProperty(),
					"layer": map[string]interface{}{
						"type":        "integer",
						"description": "Decomposition level: 1 = finest, 3 = coarsest",
						"enum":        []int{1, 2, 3},
						"default":     1,
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "features_wavelet_sum",
			Description: "Return the wavelet feature of one HSV channel summed over levels 1-3, in [-3, 3].",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withPath(map[string]interface{}{
					"channel": hsvChannelProperty(),
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "features_depth_of_field",
			Description: "Return the share of level-3 wavelet detail energy of one HSV channel that falls in the center sections of the 4x4 grid, along with the energy of all 16 sections.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withPath(map[string]interface{}{
					"channel": hsvChannelProperty(),
				}),
				"required": []string{"path"},
			},
		},

		// Section Inspection
		{
			Name:        "sections_overlay",
			Description: "Draw the feature grid onto the image and return it as base64-encoded PNG, with the pixel bounds of every section. Use this to see which pixels each per-section value describes.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withPath(map[string]interface{}{
					"grid": map[string]interface{}{
						"type":        "integer",
						"description": "Sections per side: 3 for section statistics and histograms, 4 for depth of field",
						"default":     3,
					},
					"show_indices": map[string]interface{}{
						"type":        "boolean",
						"description": "Label each section with its index",
						"default":     true,
					},
					"line_color": map[string]interface{}{
						"type":        "string",
						"description": "Boundary color in hex format (#RRGGBB or #RRGGBBAA)",
						"default":     "#FF0000",
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "section_crop",
			Description: "Crop one section of the feature grid and return it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withPath(map[string]interface{}{
					"grid": map[string]interface{}{
						"type":        "integer",
						"description": "Sections per side",
						"default":     3,
					},
					"index": map[string]interface{}{
						"type":        "integer",
						"description": "Section index, numbered column by column from the top-left",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size), at most 16. Default 1.0",
						"default":     1.0,
					},
				}),
				"required": []string{"path", "index"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
