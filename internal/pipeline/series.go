package pipeline

import (
	"image"

	"github.com/sonic-skyline/horizon-finder/internal/horizon"
)

// DetectSeries runs the finder over an ordered run of frames, threading each
// output into the next call as its continuity reference. stride submits
// every Nth frame (the sampling cadence); values below 1 mean every frame.
// The caller owns decoding and ordering; after a seek it should simply start
// a new series so no stale reference crosses the cut.
//
// The returned slice holds one sequence per sampled frame, in order.
func DetectSeries(finder *horizon.Finder, frames []image.Image, stride int) ([]horizon.Sequence, error) {
	if stride < 1 {
		stride = 1
	}

	out := make([]horizon.Sequence, 0, (len(frames)+stride-1)/stride)
	var previous horizon.Sequence
	for i := 0; i < len(frames); i += stride {
		seq, _, err := finder.Detect(frames[i], previous)
		if err != nil {
			return nil, err
		}
		out = append(out, seq)
		previous = seq
	}
	return out, nil
}

// DetectEdgeSeries is DetectSeries for callers that derive edge maps
// themselves.
func DetectEdgeSeries(finder *horizon.Finder, maps []*horizon.EdgeMap, stride int) []horizon.Sequence {
	if stride < 1 {
		stride = 1
	}

	out := make([]horizon.Sequence, 0, (len(maps)+stride-1)/stride)
	var previous horizon.Sequence
	for i := 0; i < len(maps); i += stride {
		seq, _ := finder.DetectEdges(maps[i], previous)
		out = append(out, seq)
		previous = seq
	}
	return out
}
