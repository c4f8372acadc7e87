// Package pipeline drives the detector over more than one frame: batches of
// independent images processed concurrently, and ordered frame series where
// each output feeds the next call's continuity reference.
package pipeline

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sonic-skyline/horizon-finder/internal/horizon"
	"github.com/sonic-skyline/horizon-finder/internal/imaging"
)

// Result pairs one input file with its detection outcome.
type Result struct {
	Path        string
	Sequence    horizon.Sequence
	Diagnostics horizon.Diagnostics
	Err         error
}

// BatchDetector runs a finder over independent images in parallel. Images in
// a batch have no temporal relationship, so no previous sequence is threaded
// between them; for ordered frames use DetectSeries instead.
type BatchDetector struct {
	finder  *horizon.Finder
	cache   *imaging.Cache
	workers int
	log     *logrus.Logger
}

// NewBatchDetector wires a batch detector. workers below 1 defaults to one
// worker per CPU; log may be nil to disable logging.
func NewBatchDetector(finder *horizon.Finder, cache *imaging.Cache, workers int, log *logrus.Logger) *BatchDetector {
	if cache == nil {
		cache = imaging.NewCache()
	}
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.PanicLevel)
	}
	return &BatchDetector{finder: finder, cache: cache, workers: workers, log: log}
}

// DetectFiles loads and detects every path concurrently. The result slice is
// index-aligned with paths regardless of completion order. Per-file failures
// land in the corresponding Result.Err; DetectFiles itself never fails.
func (b *BatchDetector) DetectFiles(paths []string) []Result {
	results := make([]Result, len(paths))

	pool := NewWorkerPool(b.workers)
	pool.Start()
	defer pool.Close()

	for i, path := range paths {
		i, path := i, path
		pool.Submit(func() {
			results[i] = b.detectOne(path)
		})
	}
	pool.Wait()

	return results
}

func (b *BatchDetector) detectOne(path string) Result {
	start := time.Now()

	frame, err := b.cache.Load(path)
	if err != nil {
		b.log.WithError(err).WithField("path", path).Warn("frame load failed")
		return Result{Path: path, Err: err}
	}

	seq, diag, err := b.finder.Detect(frame, nil)
	if err != nil {
		b.log.WithError(err).WithField("path", path).Warn("detection failed")
		return Result{Path: path, Err: err}
	}

	b.log.WithFields(logrus.Fields{
		"path":     path,
		"accepted": diag.Accepted,
		"missing":  diag.MissingColumns,
		"elapsed":  time.Since(start),
	}).Debug("frame detected")

	return Result{Path: path, Sequence: seq, Diagnostics: diag}
}
