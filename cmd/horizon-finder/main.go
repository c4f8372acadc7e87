package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/sonic-skyline/horizon-finder/internal/config"
	"github.com/sonic-skyline/horizon-finder/internal/export"
	"github.com/sonic-skyline/horizon-finder/internal/horizon"
	"github.com/sonic-skyline/horizon-finder/internal/imaging"
	"github.com/sonic-skyline/horizon-finder/internal/pipeline"
	"github.com/sonic-skyline/horizon-finder/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("horizon-finder %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		}
	}

	log := newLogger()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(log, os.Args[2:])
	case "detect":
		err = runDetect(log, os.Args[2:])
	case "batch":
		err = runBatch(log, os.Args[2:])
	case "series":
		err = runSeries(log, os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func printUsage() {
	fmt.Println("horizon-finder - horizon detection for skyline sonification")
	fmt.Println()
	fmt.Println("Usage: horizon-finder <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  detect <image...>   Detect the horizon in one or more images and")
	fmt.Println("                      write the configured exports")
	fmt.Println("  batch <dir>         Detect the horizon in every image in a directory")
	fmt.Println("  series <dir>        Treat a directory's images as ordered frames: detect")
	fmt.Println("                      with cross-frame continuity and write series exports")
	fmt.Println("  serve               Serve detection tools over JSON-RPC on stdin/stdout")
	fmt.Println()
	fmt.Println("Common options:")
	fmt.Println("  -config <file>      YAML configuration file")
	fmt.Println("  -out <dir>          Directory for exported files")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  HORIZON_LOG_LEVEL=debug    Enable debug logging")
}

// newLogger builds the stderr logger. Stdout stays clean for serve mode's
// protocol traffic.
func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if os.Getenv("HORIZON_LOG_LEVEL") == "debug" {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// loadConfig reads the config file when one is named, falling back to the
// defaults otherwise.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func runServe(log *logrus.Logger, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "YAML configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	settings, err := cfg.Settings()
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"version":   Version,
		"algorithm": settings.Algorithm.String(),
	}).Debug("starting server")

	srv, err := server.New(settings, log)
	if err != nil {
		return err
	}
	return srv.Run()
}

func runDetect(log *logrus.Logger, args []string) error {
	fs := flag.NewFlagSet("detect", flag.ExitOnError)
	configPath := fs.String("config", "", "YAML configuration file")
	outDir := fs.String("out", "", "directory for exported files")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("detect: at least one image path is required")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *outDir != "" {
		cfg.Export.OutputDir = *outDir
	}
	settings, err := cfg.Settings()
	if err != nil {
		return err
	}

	finder, err := horizon.NewFinder(settings)
	if err != nil {
		return err
	}
	cache := imaging.NewCache()

	for _, path := range fs.Args() {
		frame, err := cache.Load(path)
		if err != nil {
			return err
		}
		seq, diag, err := finder.Detect(frame, nil)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"path":     path,
			"accepted": diag.Accepted,
			"missing":  diag.MissingColumns,
		}).Info("detected")

		if err := writeExports(cfg.Export, path, frame, seq, diag); err != nil {
			return err
		}
	}
	return nil
}

func runBatch(log *logrus.Logger, args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	configPath := fs.String("config", "", "YAML configuration file")
	outDir := fs.String("out", "", "directory for exported files")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("batch: exactly one directory is required")
	}
	dir := fs.Arg(0)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *outDir != "" {
		cfg.Export.OutputDir = *outDir
	}
	settings, err := cfg.Settings()
	if err != nil {
		return err
	}

	paths, err := listImages(dir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("batch: no images found in %s", dir)
	}

	finder, err := horizon.NewFinder(settings)
	if err != nil {
		return err
	}
	cache := imaging.NewCache()
	detector := pipeline.NewBatchDetector(finder, cache, cfg.Batch.Workers, log)

	failures := 0
	for _, res := range detector.DetectFiles(paths) {
		if res.Err != nil {
			log.WithError(res.Err).WithField("path", res.Path).Error("detection failed")
			failures++
			continue
		}
		frame, err := cache.Load(res.Path)
		if err != nil {
			return err
		}
		if err := writeExports(cfg.Export, res.Path, frame, res.Sequence, res.Diagnostics); err != nil {
			return err
		}
	}
	if failures > 0 {
		return fmt.Errorf("batch: %d of %d images failed", failures, len(paths))
	}
	return nil
}

func runSeries(log *logrus.Logger, args []string) error {
	fs := flag.NewFlagSet("series", flag.ExitOnError)
	configPath := fs.String("config", "", "YAML configuration file")
	outDir := fs.String("out", "", "directory for exported files")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("series: exactly one directory is required")
	}
	dir := fs.Arg(0)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *outDir != "" {
		cfg.Export.OutputDir = *outDir
	}
	settings, err := cfg.Settings()
	if err != nil {
		return err
	}

	paths, err := listImages(dir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("series: no images found in %s", dir)
	}

	finder, err := horizon.NewFinder(settings)
	if err != nil {
		return err
	}

	// Frames load in name order; DetectSeries threads each frame's output
	// into the next as its continuity reference.
	cache := imaging.NewCache()
	frames := make([]image.Image, len(paths))
	for i, path := range paths {
		if frames[i], err = cache.Load(path); err != nil {
			return err
		}
	}

	seqs, err := pipeline.DetectSeries(finder, frames, cfg.Batch.SampleStride)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"dir":     dir,
		"frames":  len(frames),
		"sampled": len(seqs),
	}).Info("series detected")

	stem := filepath.Base(dir)
	exportDir := cfg.Export.OutputDir
	if exportDir == "" {
		exportDir = "."
	}
	frameHeight := frames[0].Bounds().Dy()

	if cfg.Export.CSV {
		out := filepath.Join(exportDir, stem+"_series.csv")
		if err := export.SaveSeriesCSV(out, seqs); err != nil {
			return err
		}
	}
	if cfg.Export.Graph {
		out := filepath.Join(exportDir, stem+"_series.png")
		if err := export.SaveSeriesGraph(out, seqs, frameHeight, stem); err != nil {
			return err
		}
	}
	return nil
}

// listImages returns the decodable image files directly inside dir, sorted by
// name so series keep their frame order.
func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg", ".gif":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}

// writeExports saves the artifacts enabled in cfg next to the source file's
// base name.
func writeExports(cfg config.ExportConfig, srcPath string, frame image.Image, seq horizon.Sequence, diag horizon.Diagnostics) error {
	stem := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	dir := cfg.OutputDir
	if dir == "" {
		dir = "."
	}

	if cfg.CSV {
		out := filepath.Join(dir, stem+".csv")
		if err := export.SaveImageCSV(out, seq); err != nil {
			return err
		}
	}
	if cfg.Graph {
		out := filepath.Join(dir, stem+"_graph.png")
		if err := export.SaveGraph(out, seq, diag.Height, filepath.Base(srcPath)); err != nil {
			return err
		}
	}
	if cfg.Overlay {
		out := filepath.Join(dir, stem+"_overlay.png")
		opts := export.OverlayOptions{ColorHex: cfg.OverlayColor, Thickness: cfg.OverlayThickness}
		if err := export.SaveOverlay(out, frame, seq, opts); err != nil {
			return err
		}
	}
	return nil
}
