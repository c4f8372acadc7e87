// Package horizon locates a single horizon curve in a frame: one height per
// image column, separating an upper (sky) region from a lower (ground) region.
//
// Detection runs as a strictly linear, pure pipeline per frame:
//
//	frame -> edge map -> raw column heights -> smoothed column heights
//
// BuildEdgeMap converts a frame into a binary EdgeMap with a Canny-style
// detector. A ColumnScanner (bottom-up or top-down, selected by Settings)
// reduces the edge map to one raw height per column. Smooth then enforces
// column-to-column continuity by rejecting heights that jump more than a
// configured maximum, and Finder composes the three stages.
//
// # Coordinate System
//
// Columns are 0-based, left to right. Heights are measured in pixels from the
// BOTTOM row of the frame: a height of 0 means the horizon sits on the bottom
// row. The sentinel Missing (-1) marks a column with no usable edge. A
// detected sequence always has exactly one entry per frame column.
//
// # Purity
//
// No function in this package keeps cross-frame state. Temporal continuity is
// the caller's choice: pass the immediately preceding output as the previous
// sequence and the first column may fall back to it. This keeps detection a
// pure function of (frame, settings, previous) so frames can be processed in
// parallel or out of order.
//
// # Error Handling
//
// The only error class is ErrInvalidConfig, for malformed Settings. A frame
// in which no horizon can be found is not an error: the affected columns are
// simply Missing. A zero-width frame yields an empty sequence.
package horizon
