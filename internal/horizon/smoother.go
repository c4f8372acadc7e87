package horizon

// Smooth applies the continuity filter to a raw column sequence, left to
// right. A column is accepted when its raw height is within maxJump of the
// nearest preceding accepted height (the reference carries forward across
// runs of Missing). Columns that jump further are rejected to Missing rather
// than clamped, so the output never contains a fabricated height: every
// accepted value appeared in the raw sequence.
//
// The first column keeps its raw value; when it is Missing and a previous
// frame's sequence is supplied, it falls back to previous[0]. That is the
// only column previous influences.
//
// Missing columns never update the reference, so a single spike followed by
// heights near the old level recovers instead of dragging the line away.
func Smooth(raw Sequence, maxJump int, previous Sequence) Sequence {
	out := make(Sequence, len(raw))
	if len(raw) == 0 {
		return out
	}

	out[0] = raw[0]
	if out[0] == Missing && len(previous) > 0 {
		out[0] = previous[0]
	}

	ref := out[0] // Missing means no accepted value yet
	for c := 1; c < len(raw); c++ {
		h := raw[c]
		if h == Missing {
			out[c] = Missing
			continue
		}
		if ref != Missing && absInt(h-ref) > maxJump {
			out[c] = Missing
			continue
		}
		out[c] = h
		ref = h
	}
	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
