// Package sonify maps detected horizon heights onto pitches in a fixed
// musical scale. It produces note numbers only; rendering them to MIDI or
// audio belongs to downstream tooling.
package sonify

import (
	"gonum.org/v1/gonum/stat"

	"github.com/sonic-skyline/horizon-finder/internal/horizon"
)

// majorIntervals are the semitone offsets of one major-scale octave,
// including the octave itself.
var majorIntervals = []int{0, 2, 4, 5, 7, 9, 11, 12}

// MiddleC is the MIDI note number of C4, the usual scale root.
const MiddleC = 60

// MajorScale returns the MIDI note numbers of a major scale starting at root
// and spanning the given number of octaves. octaves below 1 is treated as 1.
func MajorScale(root, octaves int) []int {
	if octaves < 1 {
		octaves = 1
	}
	notes := []int{root}
	for o := 0; o < octaves; o++ {
		for _, iv := range majorIntervals[1:] {
			notes = append(notes, root+iv)
		}
		root += 12
	}
	return notes
}

// MissingPolicy decides what a Missing column contributes to the note stream.
type MissingPolicy int

const (
	// SkipMissing drops Missing columns entirely.
	SkipMissing MissingPolicy = iota

	// HoldLast repeats the most recent note for a Missing column, holding
	// the pitch through gaps. Missing columns before the first accepted
	// height are dropped either way.
	HoldLast
)

// MapToScale normalizes the sequence's accepted heights onto the note set:
// the lowest height maps to notes[0], the highest to the last note, and the
// rest scale linearly in between. A flat sequence (single distinct height)
// maps everything to notes[0]. The result is one note per emitted column in
// column order; with SkipMissing it may be shorter than the sequence.
func MapToScale(seq horizon.Sequence, notes []int, policy MissingPolicy) []int {
	if len(notes) == 0 {
		return nil
	}
	accepted := seq.Accepted()
	if len(accepted) == 0 {
		return nil
	}

	lo, hi := accepted[0], accepted[0]
	for _, h := range accepted {
		if h < lo {
			lo = h
		}
		if h > hi {
			hi = h
		}
	}
	span := hi - lo
	if span < 1 {
		span = 1
	}

	out := make([]int, 0, len(seq))
	last := 0
	haveLast := false
	for _, h := range seq {
		if h == horizon.Missing {
			if policy == HoldLast && haveLast {
				out = append(out, last)
			}
			continue
		}
		idx := (h - lo) * (len(notes) - 1) / span
		last = notes[idx]
		haveLast = true
		out = append(out, last)
	}
	return out
}

// Summary carries descriptive statistics of a sequence's accepted heights.
type Summary struct {
	Accepted int     `json:"accepted"`
	Min      int     `json:"min"`
	Max      int     `json:"max"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
}

// Summarize computes height statistics used for normalization diagnostics.
// An all-Missing sequence yields the zero Summary.
func Summarize(seq horizon.Sequence) Summary {
	accepted := seq.Accepted()
	if len(accepted) == 0 {
		return Summary{}
	}

	xs := make([]float64, len(accepted))
	lo, hi := accepted[0], accepted[0]
	for i, h := range accepted {
		xs[i] = float64(h)
		if h < lo {
			lo = h
		}
		if h > hi {
			hi = h
		}
	}

	s := Summary{
		Accepted: len(accepted),
		Min:      lo,
		Max:      hi,
		Mean:     stat.Mean(xs, nil),
	}
	if len(xs) > 1 {
		s.StdDev = stat.StdDev(xs, nil)
	}
	return s
}
