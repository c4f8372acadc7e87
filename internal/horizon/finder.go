package horizon

import "image"

// Diagnostics summarizes a single detection call.
type Diagnostics struct {
	// Width and Height are the frame dimensions in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`

	// EdgePixels is the number of edge pixels in the derived edge map.
	EdgePixels int `json:"edge_pixels"`

	// Accepted is the number of columns carrying a height in the final
	// sequence.
	Accepted int `json:"accepted"`

	// MissingColumns is the number of Missing columns in the final sequence.
	MissingColumns int `json:"missing_columns"`

	// RejectedJumps is the number of columns that had a raw height but were
	// rejected by the continuity filter.
	RejectedJumps int `json:"rejected_jumps"`
}

// Finder composes edge map construction, column scanning and continuity
// smoothing behind one call. A Finder is immutable and safe for concurrent
// use; each detection is a pure function of its arguments.
type Finder struct {
	settings Settings
	scanner  ColumnScanner
}

// NewFinder validates the settings once and returns a Finder bound to them.
func NewFinder(s Settings) (*Finder, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &Finder{settings: s, scanner: scannerFor(s.Algorithm)}, nil
}

// Settings returns the configuration the finder was built with.
func (f *Finder) Settings() Settings {
	return f.settings
}

// Detect locates the horizon in a frame. previous may be nil; when supplied
// it should be the immediately preceding frame's output and only informs the
// first column's fallback. The returned sequence always has one entry per
// frame column; an undetectable horizon shows up as Missing entries, never as
// an error.
func (f *Finder) Detect(frame image.Image, previous Sequence) (Sequence, Diagnostics, error) {
	m, err := BuildEdgeMap(frame, f.settings)
	if err != nil {
		return nil, Diagnostics{}, err
	}
	seq, diag := f.DetectEdges(m, previous)
	return seq, diag, nil
}

// DetectEdges runs the scan and smoothing stages over a caller-supplied edge
// map, bypassing the built-in edge detector.
func (f *Finder) DetectEdges(m *EdgeMap, previous Sequence) (Sequence, Diagnostics) {
	raw := f.scanner.Scan(m)
	out := Smooth(raw, f.settings.MaxJump, previous)

	diag := Diagnostics{
		Width:      m.Width,
		Height:     m.Height,
		EdgePixels: m.EdgeCount(),
	}
	for c := range out {
		if out[c] == Missing {
			diag.MissingColumns++
			if raw[c] != Missing {
				diag.RejectedJumps++
			}
		} else {
			diag.Accepted++
		}
	}
	return out, diag
}

// Detect is the package-level convenience form of Finder.Detect for one-shot
// calls.
func Detect(frame image.Image, s Settings, previous Sequence) (Sequence, Diagnostics, error) {
	f, err := NewFinder(s)
	if err != nil {
		return nil, Diagnostics{}, err
	}
	return f.Detect(frame, previous)
}
