package horizon

// Missing marks a column where no usable horizon edge was found or accepted.
const Missing = -1

// Sequence holds one detected horizon height per frame column, measured in
// pixels from the bottom row. The slice index is the column index, left to
// right, and the length always equals the frame width. Entries are either a
// height in [0, frameHeight-1] or Missing.
type Sequence []int

// Width returns the number of columns in the sequence.
func (s Sequence) Width() int {
	return len(s)
}

// MissingCount returns how many columns carry no accepted height.
func (s Sequence) MissingCount() int {
	n := 0
	for _, h := range s {
		if h == Missing {
			n++
		}
	}
	return n
}

// Accepted returns the non-Missing heights in column order.
func (s Sequence) Accepted() []int {
	out := make([]int, 0, len(s))
	for _, h := range s {
		if h != Missing {
			out = append(out, h)
		}
	}
	return out
}

// Clone returns an independent copy of the sequence.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// EdgeMap is a binary edge grid with the same dimensions as the source frame.
// A true pixel marks a detected intensity discontinuity. Pixels are stored
// row-major in a single slice so whole rows can be walked without pointer
// chasing during column scans.
type EdgeMap struct {
	Width  int
	Height int
	bits   []bool
}

// NewEdgeMap returns an all-false edge map of the given dimensions.
// Non-positive dimensions are treated as zero.
func NewEdgeMap(width, height int) *EdgeMap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &EdgeMap{
		Width:  width,
		Height: height,
		bits:   make([]bool, width*height),
	}
}

// EdgeMapFromRows builds an edge map from a row-major [][]bool grid, for
// callers that derive edges themselves and bypass BuildEdgeMap. Dimensions
// round-trip: the map is len(rows[0]) wide and len(rows) high, including the
// zero-width case. Ragged rows return ErrRaggedRows.
func EdgeMapFromRows(rows [][]bool) (*EdgeMap, error) {
	if len(rows) == 0 {
		return NewEdgeMap(0, 0), nil
	}
	width := len(rows[0])
	m := NewEdgeMap(width, len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, ErrRaggedRows
		}
		copy(m.bits[y*width:], row)
	}
	return m, nil
}

// At reports whether the pixel at column x, row y is an edge.
// Out-of-bounds coordinates are not edges.
func (m *EdgeMap) At(x, y int) bool {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return false
	}
	return m.bits[y*m.Width+x]
}

// Set marks or clears the pixel at column x, row y.
// Out-of-bounds coordinates are ignored.
func (m *EdgeMap) Set(x, y int, v bool) {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return
	}
	m.bits[y*m.Width+x] = v
}

// row returns the backing slice for row y.
func (m *EdgeMap) row(y int) []bool {
	return m.bits[y*m.Width : (y+1)*m.Width]
}

// EdgeCount returns the number of edge pixels in the map.
func (m *EdgeMap) EdgeCount() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}
