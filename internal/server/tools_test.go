package server

import (
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"horizon_detect",
		"horizon_export_csv",
		"horizon_render_overlay",
		"horizon_render_plot",
		"horizon_map_scale",
		"image_info",
		"image_dimensions",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
	if len(tools) != len(expectedTools) {
		t.Errorf("Tool count: got %d, want %d", len(tools), len(expectedTools))
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Name == "" {
				t.Error("Tool name is empty")
			}
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema == nil {
				t.Fatal("Tool InputSchema is nil")
			}

			if schemaType := tool.InputSchema["type"]; schemaType != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", schemaType)
			}
			if props, ok := tool.InputSchema["properties"]; !ok || props == nil {
				t.Error("InputSchema missing 'properties'")
			}
		})
	}
}

func TestToolDefinitions_RequiredPath(t *testing.T) {
	// Every tool operates on an image file and must require its path.
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}

			hasPath := false
			for _, r := range required {
				if r == "path" {
					hasPath = true
					break
				}
			}
			if !hasPath {
				t.Error("Tool should require 'path' parameter")
			}
		})
	}
}

func TestToolDefinitions_OutputRequired(t *testing.T) {
	// File-writing tools must require the output path; the overlay tool
	// takes it as optional since it can return base64 instead.
	needOutput := map[string]bool{
		"horizon_export_csv":  true,
		"horizon_render_plot": true,
	}

	for _, tool := range GetToolDefinitions() {
		want, relevant := needOutput[tool.Name]
		if !relevant {
			continue
		}
		t.Run(tool.Name, func(t *testing.T) {
			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}

			hasOutput := false
			for _, r := range required {
				if r == "output" {
					hasOutput = true
					break
				}
			}
			if hasOutput != want {
				t.Errorf("output required: got %v, want %v", hasOutput, want)
			}
		})
	}
}

func TestToolDefinitions_SettingsOverrides(t *testing.T) {
	// The detection-backed tools all expose the same settings overrides.
	detectionTools := []string{
		"horizon_detect",
		"horizon_export_csv",
		"horizon_render_overlay",
		"horizon_render_plot",
		"horizon_map_scale",
	}
	overrides := []string{
		"lower_threshold",
		"upper_threshold",
		"aperture_size",
		"high_precision_gradient",
		"algorithm",
		"max_jump",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}

	for _, name := range detectionTools {
		tool, ok := toolMap[name]
		if !ok {
			t.Errorf("Tool %s not found", name)
			continue
		}
		t.Run(name, func(t *testing.T) {
			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("properties should be a map")
			}
			for _, key := range overrides {
				if _, ok := props[key]; !ok {
					t.Errorf("Missing settings override %s", key)
				}
			}
		})
	}
}

func TestToolDefinitions_AlgorithmEnum(t *testing.T) {
	var detect Tool
	for _, tool := range GetToolDefinitions() {
		if tool.Name == "horizon_detect" {
			detect = tool
			break
		}
	}
	if detect.Name == "" {
		t.Fatal("horizon_detect tool not found")
	}

	props, ok := detect.InputSchema["properties"].(map[string]interface{})
	if !ok {
		t.Fatal("properties should be a map")
	}
	algo, ok := props["algorithm"].(map[string]interface{})
	if !ok {
		t.Fatal("algorithm property should exist and be a map")
	}
	enum, ok := algo["enum"].([]string)
	if !ok {
		t.Fatal("algorithm should have enum")
	}

	enumMap := make(map[string]bool)
	for _, e := range enum {
		enumMap[e] = true
	}
	for _, want := range []string{"top-down", "bottom-up"} {
		if !enumMap[want] {
			t.Errorf("Expected algorithm '%s' not in enum", want)
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := newTestServer(t)
	req := &RPCRequest{JSONRPC: "2.0", ID: 1}

	resp := s.handleToolsList(req)
	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	tools, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}
	if len(tools) != len(GetToolDefinitions()) {
		t.Errorf("Tool count: got %d, want %d", len(tools), len(GetToolDefinitions()))
	}
}
