package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonic-skyline/horizon-finder/internal/horizon"
)

func TestSaveGraph(t *testing.T) {
	path := filepath.Join(t.TempDir(), "horizon.png")
	seq := horizon.Sequence{4, 5, horizon.Missing, 6, 7, 7}

	require.NoError(t, SaveGraph(path, seq, 20, "horizon"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSaveGraph_AllMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")
	seq := horizon.Sequence{horizon.Missing, horizon.Missing}

	require.NoError(t, SaveGraph(path, seq, 10, "no horizon"))
	assert.FileExists(t, path)
}

func TestSaveSeriesGraph(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.png")
	frames := []horizon.Sequence{
		{1, 2, 3, 4},
		{2, 3, horizon.Missing, 5},
		{3, 4, 5, 6},
	}

	require.NoError(t, SaveSeriesGraph(path, frames, 12, "series"))
	assert.FileExists(t, path)
}
