// Package server exposes horizon detection over a JSON-RPC 2.0 stdio
// protocol so editor assistants and scripting clients can drive the detector
// without linking against it.
//
// # Protocol
//
// The server reads one JSON-RPC request per line on stdin and writes
// responses to stdout. Supported methods:
//   - initialize: protocol handshake
//   - tools/list: enumerate available tools
//   - tools/call: execute a tool with arguments
//   - ping: health check
//
// # Available Tools
//
// Detection:
//   - horizon_detect: detect the horizon in an image file, returning the
//     per-column heights and diagnostics
//
// Export:
//   - horizon_export_csv: write a detection as CSV
//   - horizon_render_overlay: draw the horizon over the frame (base64 PNG
//     or file)
//   - horizon_render_plot: save an XY graph of the detection
//
// Sonification:
//   - horizon_map_scale: map detected heights onto a major scale
//
// Image information:
//   - image_info: load an image and report metadata
//   - image_dimensions: report width and height only
//
// Tool arguments that mirror detection settings are optional and default to
// the server's configured settings. Invalid settings come back as tool
// errors; frames without a detectable horizon come back as data with Missing
// (-1) columns, never as errors.
package server
