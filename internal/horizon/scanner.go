package horizon

// ColumnScanner reduces an edge map to one raw, unsmoothed height per column.
// The returned sequence has exactly EdgeMap.Width entries; columns without an
// edge pixel are Missing. Both variants stop at the first hit per column, so
// there is no tie to break.
type ColumnScanner interface {
	Scan(m *EdgeMap) Sequence
}

// BottomUpScanner is the classic variant: each column is walked from the
// bottom row upward and the first edge pixel wins, so the detected height is
// the edge nearest the ground.
type BottomUpScanner struct{}

// Scan implements ColumnScanner.
func (BottomUpScanner) Scan(m *EdgeMap) Sequence {
	raw := make(Sequence, m.Width)
	for x := 0; x < m.Width; x++ {
		raw[x] = Missing
		for y := m.Height - 1; y >= 0; y-- {
			if m.At(x, y) {
				raw[x] = m.Height - 1 - y
				break
			}
		}
	}
	return raw
}

// TopDownScanner walks the map in row-major order from the top and keeps the
// first edge seen in each column. Skies are typically edge-sparse near the
// top, so most columns resolve within the first rows; the pass stops as soon
// as every column has resolved.
type TopDownScanner struct{}

// Scan implements ColumnScanner.
func (TopDownScanner) Scan(m *EdgeMap) Sequence {
	raw := make(Sequence, m.Width)
	for x := range raw {
		raw[x] = Missing
	}
	resolved := 0
	for y := 0; y < m.Height && resolved < m.Width; y++ {
		height := m.Height - 1 - y
		for x, on := range m.row(y) {
			if on && raw[x] == Missing {
				raw[x] = height
				resolved++
			}
		}
	}
	return raw
}

// scannerFor maps a validated algorithm selector to its implementation.
func scannerFor(a Algorithm) ColumnScanner {
	if a == BottomUp {
		return BottomUpScanner{}
	}
	return TopDownScanner{}
}
