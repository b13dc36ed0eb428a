package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/disintegration/imaging"

	"github.com/openlkas/openlkas/internal/alert"
	"github.com/openlkas/openlkas/internal/lane"
	"github.com/openlkas/openlkas/internal/overlay"
	"github.com/openlkas/openlkas/internal/pipeline"
	"github.com/openlkas/openlkas/internal/source"
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
			fmt.Printf("openlkas %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	var (
		framesDir = flag.String("frames", "", "directory of frame images to replay (required)")
		outDir    = flag.String("out", "", "directory for annotated frames (optional)")
		width     = flag.Int("width", 0, "downscale frames to this width before detection (0 = keep)")
		threshold = flag.Float64("threshold", 0, "drift threshold in pixels (0 = default)")
		quiet     = flag.Bool("quiet", false, "suppress per-frame output")
	)
	flag.Parse()

	// Logging goes to stderr; stdout carries per-frame results.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime)

	if os.Getenv("OPENLKAS_LOG_LEVEL") == "debug" {
		log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
		log.Printf("openlkas v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	if *framesDir == "" {
		fmt.Fprintln(os.Stderr, "usage: openlkas -frames <dir> [-out <dir>] [-width N] [-threshold px] [-quiet]")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *framesDir, *outDir, *width, *threshold, *quiet); err != nil {
		log.Fatalf("openlkas: %v", err)
	}
}

func run(ctx context.Context, framesDir, outDir string, width int, threshold float64, quiet bool) error {
	var opts []source.DirOption
	if width > 0 {
		opts = append(opts, source.WithTargetWidth(width))
	}
	src, err := source.OpenDir(framesDir, opts...)
	if err != nil {
		return err
	}
	log.Printf("replaying %d frames from %s", src.Len(), framesDir)

	cfg := pipeline.DefaultConfig()
	if threshold > 0 {
		cfg.DriftThresholdPx = threshold
	}

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	dispatcher := alert.NewDispatcher(&alert.LogSink{})
	renderOpts := overlay.DefaultOptions()
	renderOpts.DriftThresholdPx = cfg.DriftThresholdPx

	var (
		p       *pipeline.Pipeline
		frameNo int
		skipped int
		alerts  int
	)
	for {
		select {
		case <-ctx.Done():
			log.Printf("interrupted after %d frames", frameNo)
			return nil
		default:
		}

		img, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Printf("skipping frame %d: %v", frameNo, err)
			frameNo++
			skipped++
			continue
		}

		w, h := img.Bounds().Dx(), img.Bounds().Dy()
		if p == nil {
			p, err = pipeline.New(cfg, w, h)
			if err != nil {
				return err
			}
		}

		res, err := p.Process(img)
		if errors.Is(err, pipeline.ErrResolutionChanged) {
			// Recorded drives sometimes switch camera modes mid-stream.
			log.Printf("frame %d: resolution changed to %dx%d, re-deriving region of interest", frameNo, w, h)
			if err := p.SetResolution(w, h); err != nil {
				return err
			}
			res, err = p.Process(img)
		}
		if err != nil {
			log.Printf("skipping frame %d: %v", frameNo, err)
			frameNo++
			skipped++
			continue
		}

		dispatcher.Observe(res.State, res.Drift)
		if res.State == lane.Alerting {
			alerts++
		}

		if !quiet {
			printFrame(frameNo, res)
		}

		if outDir != "" {
			annotated := overlay.Render(img, res, renderOpts)
			name := filepath.Join(outDir, fmt.Sprintf("frame_%06d.png", frameNo))
			if err := imaging.Save(annotated, name); err != nil {
				return fmt.Errorf("failed to save annotated frame: %w", err)
			}
		}

		frameNo++
	}

	log.Printf("done: %d frames, %d skipped, %d alerting", frameNo, skipped, alerts)
	return nil
}

func printFrame(frameNo int, res pipeline.Result) {
	if !res.Estimate.OffsetValid {
		fmt.Printf("frame %6d  state=%-11s offset=---\n", frameNo, res.State)
		return
	}
	fmt.Printf("frame %6d  state=%-11s offset=%+7.1fpx smoothed=%+7.1fpx\n",
		frameNo, res.State, res.Estimate.OffsetPixels, res.Drift.SmoothedOffset)
}
