package pipeline

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonic-skyline/horizon-finder/internal/horizon"
	"github.com/sonic-skyline/horizon-finder/internal/imaging"
)

func writeBoundaryPNG(t *testing.T, dir, name string, width, height, skyRows int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		c := color.RGBA{235, 235, 245, 255}
		if y >= skyRows {
			c = color.RGBA{25, 35, 20, 255}
		}
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestWorkerPool_RunsAllJobs(t *testing.T) {
	pool := NewWorkerPool(3)
	pool.Start()
	defer pool.Close()

	var count atomic.Int64
	for i := 0; i < 50; i++ {
		pool.Submit(func() { count.Add(1) })
	}
	pool.Wait()

	assert.Equal(t, int64(50), count.Load())
}

func TestWorkerPool_DefaultWorkers(t *testing.T) {
	pool := NewWorkerPool(0)
	assert.Greater(t, pool.workers, 0)
}

func TestBatchDetector_DetectFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeBoundaryPNG(t, dir, "a.png", 24, 20, 8)
	b := writeBoundaryPNG(t, dir, "b.png", 24, 20, 12)
	missing := filepath.Join(dir, "absent.png")

	finder, err := horizon.NewFinder(horizon.DefaultSettings())
	require.NoError(t, err)

	detector := NewBatchDetector(finder, imaging.NewCache(), 2, nil)
	results := detector.DetectFiles([]string{a, b, missing})
	require.Len(t, results, 3)

	// Results stay index-aligned with the inputs.
	assert.Equal(t, a, results[0].Path)
	assert.Equal(t, b, results[1].Path)
	assert.Equal(t, missing, results[2].Path)

	require.NoError(t, results[0].Err)
	require.NoError(t, results[1].Err)
	assert.Error(t, results[2].Err)

	assert.Equal(t, 24, results[0].Sequence.Width())
	assert.Greater(t, results[0].Diagnostics.Accepted, 0)
}

func TestDetectSeries_ThreadsPrevious(t *testing.T) {
	finder, err := horizon.NewFinder(horizon.DefaultSettings())
	require.NoError(t, err)

	frames := make([]image.Image, 4)
	for i := range frames {
		img := image.NewRGBA(image.Rect(0, 0, 10, 10))
		for y := 0; y < 10; y++ {
			for x := 0; x < 10; x++ {
				img.Set(x, y, color.RGBA{128, 128, 128, 255})
			}
		}
		frames[i] = img
	}

	out, err := DetectSeries(finder, frames, 1)
	require.NoError(t, err)
	require.Len(t, out, 4)
	for _, seq := range out {
		assert.Equal(t, 10, seq.Width())
	}
}

func TestDetectSeries_Stride(t *testing.T) {
	finder, err := horizon.NewFinder(horizon.DefaultSettings())
	require.NoError(t, err)

	frames := make([]image.Image, 7)
	for i := range frames {
		frames[i] = image.NewRGBA(image.Rect(0, 0, 4, 4))
	}

	out, err := DetectSeries(finder, frames, 3)
	require.NoError(t, err)
	assert.Len(t, out, 3) // frames 0, 3, 6
}

func TestDetectEdgeSeries_PreviousInformsFirstColumn(t *testing.T) {
	s := horizon.DefaultSettings()
	s.MaxJump = 50
	finder, err := horizon.NewFinder(s)
	require.NoError(t, err)

	// First map has an edge in column 0; second does not. The second
	// frame's first column should inherit the first frame's height.
	first := horizon.NewEdgeMap(2, 6)
	first.Set(0, 2, true)
	first.Set(1, 2, true)
	second := horizon.NewEdgeMap(2, 6)
	second.Set(1, 2, true)

	out := DetectEdgeSeries(finder, []*horizon.EdgeMap{first, second}, 1)
	require.Len(t, out, 2)
	assert.Equal(t, horizon.Sequence{3, 3}, out[0])
	assert.Equal(t, horizon.Sequence{3, 3}, out[1])
}
