package server

import (
	"encoding/json"
	"fmt"
	"image"

	"github.com/sonic-skyline/horizon-finder/internal/export"
	"github.com/sonic-skyline/horizon-finder/internal/horizon"
	"github.com/sonic-skyline/horizon-finder/internal/sonify"
)

// ToolCallParams represents the parameters for a tools/call request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "horizon_detect").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified
// tool. The response wraps the tool result in the protocol's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *RPCRequest) *RPCResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &RPCResponse{
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

// executeTool dispatches tool execution to the appropriate handler.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "horizon_detect":
		return s.handleHorizonDetect(args)
	case "horizon_export_csv":
		return s.handleHorizonExportCSV(args)
	case "horizon_render_overlay":
		return s.handleHorizonRenderOverlay(args)
	case "horizon_render_plot":
		return s.handleHorizonRenderPlot(args)
	case "horizon_map_scale":
		return s.handleHorizonMapScale(args)
	case "image_info":
		return s.handleImageInfo(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *RPCResponse {
	return &RPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &RPCError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// settingsArgs are the optional per-call detection overrides. Absent fields
// keep the server's configured value.
type settingsArgs struct {
	LowerThreshold        *int    `json:"lower_threshold"`
	UpperThreshold        *int    `json:"upper_threshold"`
	ApertureSize          *int    `json:"aperture_size"`
	HighPrecisionGradient *bool   `json:"high_precision_gradient"`
	Algorithm             *string `json:"algorithm"`
	MaxJump               *int    `json:"max_jump"`
}

// apply overlays the overrides on the server defaults and validates the
// result.
func (a settingsArgs) apply(base horizon.Settings) (horizon.Settings, error) {
	if a.LowerThreshold != nil {
		base.LowerThreshold = *a.LowerThreshold
	}
	if a.UpperThreshold != nil {
		base.UpperThreshold = *a.UpperThreshold
	}
	if a.ApertureSize != nil {
		base.ApertureSize = *a.ApertureSize
	}
	if a.HighPrecisionGradient != nil {
		base.HighPrecisionGradient = *a.HighPrecisionGradient
	}
	if a.Algorithm != nil {
		algo, err := horizon.ParseAlgorithm(*a.Algorithm)
		if err != nil {
			return base, err
		}
		base.Algorithm = algo
	}
	if a.MaxJump != nil {
		base.MaxJump = *a.MaxJump
	}
	return base, base.Validate()
}

// detect loads the frame at path and runs detection with the overridden
// settings.
func (s *Server) detect(path string, overrides settingsArgs) (image.Image, horizon.Sequence, horizon.Diagnostics, error) {
	settings, err := overrides.apply(s.settings)
	if err != nil {
		return nil, nil, horizon.Diagnostics{}, err
	}
	frame, err := s.cache.Load(path)
	if err != nil {
		return nil, nil, horizon.Diagnostics{}, err
	}
	seq, diag, err := horizon.Detect(frame, settings, nil)
	if err != nil {
		return nil, nil, horizon.Diagnostics{}, err
	}
	return frame, seq, diag, nil
}

// === Detection ===

type horizonDetectArgs struct {
	Path string `json:"path"`
	settingsArgs
}

// DetectResult is the horizon_detect payload.
type DetectResult struct {
	// Heights holds one value per column, measured from the bottom row;
	// -1 marks a column with no accepted horizon.
	Heights     []int               `json:"heights"`
	Diagnostics horizon.Diagnostics `json:"diagnostics"`
}

func (s *Server) handleHorizonDetect(args json.RawMessage) (interface{}, error) {
	var a horizonDetectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	_, seq, diag, err := s.detect(a.Path, a.settingsArgs)
	if err != nil {
		return nil, err
	}
	return &DetectResult{Heights: seq, Diagnostics: diag}, nil
}

// === Export ===

type horizonExportCSVArgs struct {
	Path   string `json:"path"`
	Output string `json:"output"`
	settingsArgs
}

// ExportResult reports a completed file export.
type ExportResult struct {
	Output      string              `json:"output"`
	Diagnostics horizon.Diagnostics `json:"diagnostics"`
}

func (s *Server) handleHorizonExportCSV(args json.RawMessage) (interface{}, error) {
	var a horizonExportCSVArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Output == "" {
		return nil, fmt.Errorf("output path is required")
	}
	_, seq, diag, err := s.detect(a.Path, a.settingsArgs)
	if err != nil {
		return nil, err
	}
	if err := export.SaveImageCSV(a.Output, seq); err != nil {
		return nil, err
	}
	return &ExportResult{Output: a.Output, Diagnostics: diag}, nil
}

type horizonRenderOverlayArgs struct {
	Path      string `json:"path"`
	Color     string `json:"color"`
	Thickness int    `json:"thickness"`
	Output    string `json:"output"`
	settingsArgs
}

func (s *Server) handleHorizonRenderOverlay(args json.RawMessage) (interface{}, error) {
	var a horizonRenderOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	frame, seq, diag, err := s.detect(a.Path, a.settingsArgs)
	if err != nil {
		return nil, err
	}
	opts := export.OverlayOptions{ColorHex: a.Color, Thickness: a.Thickness}
	if a.Output != "" {
		if err := export.SaveOverlay(a.Output, frame, seq, opts); err != nil {
			return nil, err
		}
		return &ExportResult{Output: a.Output, Diagnostics: diag}, nil
	}
	return export.OverlayPNG(frame, seq, opts)
}

type horizonRenderPlotArgs struct {
	Path   string `json:"path"`
	Output string `json:"output"`
	settingsArgs
}

func (s *Server) handleHorizonRenderPlot(args json.RawMessage) (interface{}, error) {
	var a horizonRenderPlotArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Output == "" {
		return nil, fmt.Errorf("output path is required")
	}
	_, seq, diag, err := s.detect(a.Path, a.settingsArgs)
	if err != nil {
		return nil, err
	}
	if err := export.SaveGraph(a.Output, seq, diag.Height, a.Path); err != nil {
		return nil, err
	}
	return &ExportResult{Output: a.Output, Diagnostics: diag}, nil
}

// === Sonification ===

type horizonMapScaleArgs struct {
	Path        string `json:"path"`
	RootNote    *int   `json:"root_note"`
	Octaves     *int   `json:"octaves"`
	HoldMissing bool   `json:"hold_missing"`
	settingsArgs
}

// MapScaleResult is the horizon_map_scale payload.
type MapScaleResult struct {
	Notes   []int          `json:"notes"`
	Scale   []int          `json:"scale"`
	Summary sonify.Summary `json:"summary"`
}

func (s *Server) handleHorizonMapScale(args json.RawMessage) (interface{}, error) {
	var a horizonMapScaleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	root := sonify.MiddleC
	if a.RootNote != nil {
		root = *a.RootNote
	}
	octaves := 2
	if a.Octaves != nil {
		octaves = *a.Octaves
	}
	policy := sonify.SkipMissing
	if a.HoldMissing {
		policy = sonify.HoldLast
	}

	_, seq, _, err := s.detect(a.Path, a.settingsArgs)
	if err != nil {
		return nil, err
	}

	scale := sonify.MajorScale(root, octaves)
	return &MapScaleResult{
		Notes:   sonify.MapToScale(seq, scale, policy),
		Scale:   scale,
		Summary: sonify.Summarize(seq),
	}, nil
}

// === Image information ===

type imagePathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.cache.LoadInfo(a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.cache.LoadDimensions(a.Path)
}
