package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// detectionProperties returns the schema fragment shared by every tool that
// runs feature detection: response selection plus extraction parameters.
func detectionProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the image file",
		},
		"response": map[string]interface{}{
			"type":        "string",
			"description": "Response function scoring each pixel (default harris)",
			"enum":        []string{"harris", "shitomasi", "gradient"},
			"default":     "harris",
		},
		"blur_radius": map[string]interface{}{
			"type":        "number",
			"description": "Gaussian noise-reduction radius applied before the response (default 1.0, 0 disables)",
			"default":     1.0,
		},
		"harris_k": map[string]interface{}{
			"type":        "number",
			"description": "Harris sensitivity constant, used only by the harris response (default 0.04)",
			"default":     0.04,
		},
		"window_radius": map[string]interface{}{
			"type":        "integer",
			"description": "Structure-tensor summation radius for corner responses (default 2)",
			"default":     2,
		},
		"threshold": map[string]interface{}{
			"type":        "number",
			"description": "Absolute response threshold a feature must exceed; any nonzero value overrides relative_threshold, 0 or omitted selects relative thresholding",
		},
		"relative_threshold": map[string]interface{}{
			"type":        "number",
			"description": "Threshold as a fraction of the maximum response (default 0.01)",
			"default":     0.01,
		},
		"search_radius": map[string]interface{}{
			"type":        "integer",
			"description": "Half-width of the local-maximum comparison window in pixels (default 3)",
			"default":     3,
		},
		"ignore_border": map[string]interface{}{
			"type":        "integer",
			"description": "Margin in pixels from each edge excluded from feature locations (default 0)",
			"default":     0,
		},
		"border_detection": map[string]interface{}{
			"type":        "boolean",
			"description": "Report maxima whose comparison window is clipped by the image edge (default false)",
			"default":     false,
		},
		"max_features": map[string]interface{}{
			"type":        "integer",
			"description": "Upper bound on reported features; 0 means unlimited (default 0)",
			"default":     0,
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file into the cache and return its dimensions and format.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Response Maps
		{
			Name:        "image_corner_response",
			Description: "Compute a per-pixel corner/edge response map for an image and return its statistics (min, max, mean). Useful for choosing a detection threshold before extracting features.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"response": map[string]interface{}{
						"type":        "string",
						"description": "Response function scoring each pixel (default harris)",
						"enum":        []string{"harris", "shitomasi", "gradient"},
						"default":     "harris",
					},
					"blur_radius": map[string]interface{}{
						"type":        "number",
						"description": "Gaussian noise-reduction radius applied before the response (default 1.0, 0 disables)",
						"default":     1.0,
					},
					"harris_k": map[string]interface{}{
						"type":        "number",
						"description": "Harris sensitivity constant, used only by the harris response (default 0.04)",
						"default":     0.04,
					},
					"window_radius": map[string]interface{}{
						"type":        "integer",
						"description": "Structure-tensor summation radius for corner responses (default 2)",
						"default":     2,
					},
				},
				"required": []string{"path"},
			},
		},

		// Feature Detection
		{
			Name:        "image_detect_features",
			Description: "Detect point features (corners/keypoints) as local maxima of a response map. Scans every pixel and returns feature coordinates with their response strengths, in raster order.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": detectionProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_detect_features_sparse",
			Description: "Detect point features using a cheap threshold pre-filter to build a candidate list, then test only the candidates as local maxima. Faster than image_detect_features on large images with few features; the result is a subset of the dense scan.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": detectionProperties(),
				"required":   []string{"path"},
			},
		},

		// Feature Inspection
		{
			Name:        "image_feature_patch",
			Description: "Extract the square pixel neighborhood around a feature location (the footprint a descriptor would consume) as a PNG, optionally magnified.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "Feature X coordinate",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Feature Y coordinate",
					},
					"radius": map[string]interface{}{
						"type":        "integer",
						"description": "Neighborhood radius in pixels (default 8)",
						"default":     8,
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Magnification factor for the returned patch (default 1.0)",
						"default":     1.0,
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_mark_features",
			Description: "Detect point features and return the source image with cross markers drawn at each feature, colored by response strength (blue = weak, red = strong) unless a fixed marker color is given.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": func() map[string]interface{} {
					props := detectionProperties()
					props["marker_radius"] = map[string]interface{}{
						"type":        "integer",
						"description": "Cross marker arm length in pixels (default 3)",
						"default":     3,
					}
					props["marker_color"] = map[string]interface{}{
						"type":        "string",
						"description": "Fixed marker color as #RRGGBB; empty selects the strength ramp",
						"default":     "",
					}
					return props
				}(),
				"required": []string{"path"},
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
