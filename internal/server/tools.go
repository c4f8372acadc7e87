package server

// Tool describes one callable tool in the catalogue.
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the schema fragment shared by every tool taking an image
// path.
func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// settingsProperties are the optional detection overrides shared by the
// detection-backed tools. Absent fields fall back to the server's configured
// settings.
func settingsProperties() map[string]interface{} {
	return map[string]interface{}{
		"lower_threshold": map[string]interface{}{
			"type":        "integer",
			"description": "Lower hysteresis threshold (0-255). Must not exceed upper_threshold.",
		},
		"upper_threshold": map[string]interface{}{
			"type":        "integer",
			"description": "Upper hysteresis threshold (0-255).",
		},
		"aperture_size": map[string]interface{}{
			"type":        "integer",
			"enum":        []int{3, 5, 7},
			"description": "Sobel aperture size.",
		},
		"high_precision_gradient": map[string]interface{}{
			"type":        "boolean",
			"description": "Use the exact L2 gradient magnitude instead of the faster |gx|+|gy|.",
		},
		"algorithm": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"top-down", "bottom-up"},
			"description": "Column scan variant. top-down keeps the first edge from the sky; bottom-up the first from the ground.",
		},
		"max_jump": map[string]interface{}{
			"type":        "integer",
			"description": "Largest height change allowed between adjacent accepted columns; larger jumps are rejected to -1.",
		},
	}
}

// GetToolDefinitions returns all available tools.
func GetToolDefinitions() []Tool {
	detectProps := settingsProperties()
	detectProps["path"] = pathProperty()

	csvProps := settingsProperties()
	csvProps["path"] = pathProperty()
	csvProps["output"] = map[string]interface{}{
		"type":        "string",
		"description": "Path of the CSV file to write",
	}

	overlayProps := settingsProperties()
	overlayProps["path"] = pathProperty()
	overlayProps["color"] = map[string]interface{}{
		"type":        "string",
		"description": "Line color as #RRGGBB. Default #FF4FC3.",
	}
	overlayProps["thickness"] = map[string]interface{}{
		"type":        "integer",
		"description": "Line thickness in pixels. Default 2.",
	}
	overlayProps["output"] = map[string]interface{}{
		"type":        "string",
		"description": "Optional file to write; when absent the image is returned as base64 PNG.",
	}

	plotProps := settingsProperties()
	plotProps["path"] = pathProperty()
	plotProps["output"] = map[string]interface{}{
		"type":        "string",
		"description": "Path of the graph image to write (extension selects the format).",
	}

	scaleProps := settingsProperties()
	scaleProps["path"] = pathProperty()
	scaleProps["root_note"] = map[string]interface{}{
		"type":        "integer",
		"description": "MIDI note number of the scale root. Default 60 (middle C).",
	}
	scaleProps["octaves"] = map[string]interface{}{
		"type":        "integer",
		"description": "Octaves the scale spans. Default 2.",
	}
	scaleProps["hold_missing"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Repeat the previous note through missing columns instead of skipping them.",
	}

	return []Tool{
		{
			Name:        "horizon_detect",
			Description: "Detect the horizon line in an image. Returns one height per column, measured from the bottom of the frame, with -1 for columns where no horizon was found or accepted, plus detection diagnostics.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": detectProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "horizon_export_csv",
			Description: "Detect the horizon in an image and write the result as CSV, one column,height row per image column.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": csvProps,
				"required":   []string{"path", "output"},
			},
		},
		{
			Name:        "horizon_render_overlay",
			Description: "Detect the horizon and draw it over the source frame. Returns base64 PNG, or writes a file when output is given.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": overlayProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "horizon_render_plot",
			Description: "Detect the horizon and save an XY graph of height versus column.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": plotProps,
				"required":   []string{"path", "output"},
			},
		},
		{
			Name:        "horizon_map_scale",
			Description: "Detect the horizon and map its heights onto a major scale, returning MIDI note numbers and height statistics.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": scaleProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_info",
			Description: "Load an image file and return its dimensions, format and file size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
	}
}
