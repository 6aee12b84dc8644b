package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/feature-tools-mcp/internal/extract"
	"github.com/ironsheep/feature-tools-mcp/internal/imaging"
	"github.com/ironsheep/feature-tools-mcp/internal/response"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_detect_features").
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
//  3. Loads images from cache as needed
//  4. Calls the appropriate imaging/response/extract function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)

	// Response Maps
	case "image_corner_response":
		return s.handleImageCornerResponse(args)

	// Feature Detection
	case "image_detect_features":
		return s.handleImageDetectFeatures(args, false)
	case "image_detect_features_sparse":
		return s.handleImageDetectFeatures(args, true)

	// Feature Inspection
	case "image_feature_patch":
		return s.handleImageFeaturePatch(args)
	case "image_mark_features":
		return s.handleImageMarkFeatures(args)

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

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

// === Detection Parameter Handling ===

// detectArgs carries the shared parameters of every detection-driven tool.
type detectArgs struct {
	Path              string  `json:"path"`
	Response          string  `json:"response"`
	BlurRadius        float64 `json:"blur_radius"`
	HarrisK           float64 `json:"harris_k"`
	WindowRadius      int     `json:"window_radius"`
	Threshold         float64 `json:"threshold"`
	RelativeThreshold float64 `json:"relative_threshold"`
	SearchRadius      int     `json:"search_radius"`
	IgnoreBorder      int     `json:"ignore_border"`
	BorderDetection   bool    `json:"border_detection"`
	MaxFeatures       int     `json:"max_features"`
}

// applyDefaults fills unset parameters. A blur_radius of exactly 0 selects
// the default; pass a negative value to disable blurring.
func (a *detectArgs) applyDefaults() {
	if a.Response == "" {
		a.Response = "harris"
	}
	if a.BlurRadius == 0 {
		a.BlurRadius = 1.0
	}
	if a.WindowRadius == 0 {
		a.WindowRadius = 2
	}
	if a.RelativeThreshold == 0 {
		a.RelativeThreshold = 0.01
	}
	if a.SearchRadius == 0 {
		a.SearchRadius = 3
	}
}

// buildResponseMap computes the selected response function over the image.
func buildResponseMap(img image.Image, a *detectArgs) (*extract.IntensityMap, error) {
	gray := response.Luminance(img, a.BlurRadius)
	switch a.Response {
	case "harris":
		return response.Harris(gray, a.HarrisK, a.WindowRadius), nil
	case "shitomasi":
		return response.ShiTomasi(gray, a.WindowRadius), nil
	case "gradient":
		return response.GradientMagnitude(gray), nil
	default:
		return nil, fmt.Errorf("unknown response function: %s", a.Response)
	}
}

// resolveThreshold turns the threshold parameters into an absolute value:
// a nonzero threshold wins, otherwise relative_threshold scales the maximum
// response (clamped at zero so flat maps report nothing rather than
// everything). A threshold of exactly 0 means "unset", matching the schema
// wording; the strict acceptance gate makes an absolute 0 and a relative
// threshold over a nonpositive map equivalent anyway.
func resolveThreshold(stats response.MapStats, a *detectArgs) float32 {
	if a.Threshold != 0 {
		return float32(a.Threshold)
	}
	if stats.Max <= 0 {
		return 0
	}
	return float32(a.RelativeThreshold * stats.Max)
}

// Feature is a detected point with its response strength.
type Feature struct {
	X        int     `json:"x"`
	Y        int     `json:"y"`
	Strength float64 `json:"strength"`
}

// FeaturesResult contains the outcome of a feature detection run.
type FeaturesResult struct {
	// Features lists accepted local maxima in scan order (raster order for
	// the dense scan, candidate order for the sparse scan), NOT sorted by
	// strength.
	Features []Feature `json:"features"`

	// Count is the number of features detected.
	Count int `json:"count"`

	// Response names the response function that scored the pixels.
	Response string `json:"response"`

	// Threshold is the absolute threshold that was applied.
	Threshold float64 `json:"threshold"`

	// Truncated reports that max_features cut the scan short; the features
	// listed are those found before the bound was hit.
	Truncated bool `json:"truncated"`

	// Stats summarizes the underlying response map.
	Stats response.MapStats `json:"stats"`
}

// detectFeatures runs the full pipeline: response map, threshold
// resolution, extractor construction, extraction, and strength lookup.
func detectFeatures(img image.Image, a *detectArgs, sparse bool) (*FeaturesResult, error) {
	m, err := buildResponseMap(img, a)
	if err != nil {
		return nil, err
	}
	stats := response.Stats(m)
	threshold := resolveThreshold(stats, a)

	cfg := extract.Config{
		Threshold:    threshold,
		IgnoreBorder: a.IgnoreBorder,
		SearchRadius: a.SearchRadius,
	}
	var opts []extract.Option
	if a.BorderDetection {
		opts = append(opts, extract.WithBorderDetection())
	}

	found := extract.NewPointSet()
	if a.MaxFeatures > 0 {
		found = extract.NewBoundedPointSet(a.MaxFeatures)
	}

	truncated := false
	if sparse {
		candidates, err := thresholdCandidates(m, threshold, a.IgnoreBorder)
		if err != nil {
			return nil, err
		}
		err = extract.NewCandidateExtractor(cfg, opts...).Process(m, candidates, found)
		truncated, err = squashTruncation(err)
		if err != nil {
			return nil, err
		}
	} else {
		err = extract.NewDenseExtractor(cfg, opts...).Process(m, nil, found)
		truncated, err = squashTruncation(err)
		if err != nil {
			return nil, err
		}
	}

	features := make([]Feature, found.Len())
	for i := range features {
		p := found.Get(i)
		v, err := m.At(p.X, p.Y)
		if err != nil {
			return nil, err
		}
		features[i] = Feature{X: p.X, Y: p.Y, Strength: float64(v)}
	}

	return &FeaturesResult{
		Features:  features,
		Count:     len(features),
		Response:  a.Response,
		Threshold: float64(threshold),
		Truncated: truncated,
		Stats:     stats,
	}, nil
}

// thresholdCandidates builds the sparse scan's candidate list: every
// processing-rectangle pixel exceeding the threshold, in raster order. This
// is the cheap pre-filter; the extractor applies the full local-maximum
// test afterwards.
func thresholdCandidates(m *extract.IntensityMap, threshold float32, ignoreBorder int) (*extract.PointSet, error) {
	rect, err := extract.ProcessingRect(m.Width(), m.Height(), ignoreBorder)
	if err != nil {
		return nil, err
	}
	candidates := extract.NewPointSet()
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if !m.Valid(x, y) {
				continue
			}
			v, err := m.At(x, y)
			if err != nil {
				return nil, err
			}
			if v > threshold && v != extract.Sentinel {
				if err := candidates.Add(extract.Point{X: x, Y: y}); err != nil {
					return nil, err
				}
			}
		}
	}
	return candidates, nil
}

// squashTruncation converts a max_features overflow into a result flag;
// every other error passes through.
func squashTruncation(err error) (bool, error) {
	if errors.Is(err, extract.ErrResourceExhausted) {
		return true, nil
	}
	return false, err
}

// === Response Map Handlers ===

// CornerResponseResult contains the statistics of a computed response map.
type CornerResponseResult struct {
	Width    int               `json:"width"`
	Height   int               `json:"height"`
	Response string            `json:"response"`
	Stats    response.MapStats `json:"stats"`
}

func (s *Server) handleImageCornerResponse(args json.RawMessage) (interface{}, error) {
	var a detectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	a.applyDefaults()
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	m, err := buildResponseMap(img, &a)
	if err != nil {
		return nil, err
	}
	return &CornerResponseResult{
		Width:    m.Width(),
		Height:   m.Height(),
		Response: a.Response,
		Stats:    response.Stats(m),
	}, nil
}

// === Feature Detection Handlers ===

func (s *Server) handleImageDetectFeatures(args json.RawMessage, sparse bool) (interface{}, error) {
	var a detectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	a.applyDefaults()
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return detectFeatures(img, &a, sparse)
}

// === Feature Inspection Handlers ===

type imageFeaturePatchArgs struct {
	Path   string  `json:"path"`
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Radius int     `json:"radius"`
	Scale  float64 `json:"scale"`
}

func (s *Server) handleImageFeaturePatch(args json.RawMessage) (interface{}, error) {
	var a imageFeaturePatchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Radius == 0 {
		a.Radius = 8
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.FeaturePatch(img, a.X, a.Y, a.Radius, a.Scale)
}

type imageMarkFeaturesArgs struct {
	detectArgs
	MarkerRadius int    `json:"marker_radius"`
	MarkerColor  string `json:"marker_color"`
}

func (s *Server) handleImageMarkFeatures(args json.RawMessage) (interface{}, error) {
	var a imageMarkFeaturesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	a.applyDefaults()
	if a.MarkerRadius == 0 {
		a.MarkerRadius = 3
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	result, err := detectFeatures(img, &a.detectArgs, false)
	if err != nil {
		return nil, err
	}

	points := make([]extract.Point, len(result.Features))
	strengths := make([]float64, len(result.Features))
	for i, f := range result.Features {
		points[i] = extract.Point{X: f.X, Y: f.Y}
		strengths[i] = f.Strength
	}
	return imaging.MarkFeatures(img, points, strengths, a.MarkerRadius, a.MarkerColor)
}
