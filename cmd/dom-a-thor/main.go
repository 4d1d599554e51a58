package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/rnowosielski/dom-a-thor/internal/imaging"
	"github.com/rnowosielski/dom-a-thor/internal/ocr"
	"github.com/rnowosielski/dom-a-thor/internal/pipeline"
	"github.com/rnowosielski/dom-a-thor/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var (
	flagLow      = flag.Int("low", pipeline.DefaultEdgeLowThreshold, "weak-edge gradient cutoff (0-255)")
	flagHigh     = flag.Int("high", pipeline.DefaultEdgeHighThreshold, "strong-edge gradient cutoff (0-255)")
	flagDilate   = flag.Int("dilate", pipeline.DefaultDilationIterations, "gap-closing dilation passes")
	flagMinArea  = flag.Float64("min-area", pipeline.DefaultMinAreaPercent, "minimum rectangle area as % of image area")
	flagInset    = flag.Int("inset", pipeline.DefaultInsetMarginPx, "pixels trimmed inward from detected rectangle edges")
	flagMirrorX  = flag.Bool("mirror-x", false, "flip the result horizontally")
	flagMirrorY  = flag.Bool("mirror-y", false, "flip the result vertically")
	flagFormat   = flag.String("format", "png", "output format: png, jpeg or webp")
	flagOut      = flag.String("out", "", "output file (single input) or output directory")
	flagDebug    = flag.Bool("debug", false, "write a contour overlay PNG next to each output")
	flagCaptions = flag.Bool("captions", false, "print caption text found in the plan margins (needs a tesseract build)")
	flagListen   = flag.String("listen", "", "serve the HTTP API on this address instead of processing files")
	flagVersion  = flag.Bool("version", false, "print version information and exit")
)

func main() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	flag.Parse()

	if *flagVersion {
		fmt.Printf("dom-a-thor %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}

	if *flagListen != "" {
		srv := server.New()
		log.Fatal(srv.Run(*flagListen))
	}

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] image-file-or-url...\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := pipeline.Config{
		EdgeLowThreshold:   *flagLow,
		EdgeHighThreshold:  *flagHigh,
		DilationIterations: *flagDilate,
		MinAreaPercent:     *flagMinArea,
		InsetMarginPx:      *flagInset,
		Debug:              *flagDebug,
	}

	exitCode := 0
	for _, arg := range flag.Args() {
		if err := processInput(arg, cfg); err != nil {
			log.Printf("%s: %v", arg, err)
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

// processInput runs the pipeline on one file or URL and writes the result.
func processInput(input string, cfg pipeline.Config) error {
	img, err := loadInput(input)
	if err != nil {
		return err
	}

	result := pipeline.Process(img, cfg)
	if !result.Cropped() {
		log.Printf("%s: no plan rectangle found, writing scaled original", input)
	}

	if *flagCaptions && result.Cropped() {
		printCaptions(input, result)
	}

	out := imaging.Mirror(result.Image, *flagMirrorX, *flagMirrorY)
	data, _, err := pipeline.Encode(out, *flagFormat)
	if err != nil {
		return err
	}

	path := outputPath(input, *flagFormat)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Printf("%s -> %s (%dx%d)\n", input, path, result.Width, result.Height)

	if result.Debug != nil {
		debugPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".debug.png"
		overlay, err := pipeline.EncodePNG(result.Debug)
		if err != nil {
			return err
		}
		if err := os.WriteFile(debugPath, overlay, 0o644); err != nil {
			return fmt.Errorf("failed to write debug overlay: %w", err)
		}
	}
	return nil
}

func loadInput(input string) (image.Image, error) {
	if isURL(input) {
		return imaging.FetchURL(input)
	}
	return imaging.LoadFile(input)
}

// printCaptions reports margin text around the detected rectangle. The OCR
// step is best-effort: builds without tesseract just note the omission.
func printCaptions(input string, result *pipeline.Result) {
	captions, err := ocr.ExtractCaptions(result.Source, result.Rect, "eng")
	if err != nil {
		if errors.Is(err, ocr.ErrUnavailable) {
			log.Printf("%s: caption OCR skipped: %v", input, err)
			return
		}
		log.Printf("%s: caption OCR failed: %v", input, err)
		return
	}
	for _, c := range captions {
		fmt.Printf("%s: caption %q (confidence %.2f)\n", input, c.Text, c.Confidence)
	}
}

// outputPath derives where the processed image is written: the -out flag
// verbatim for a single input, the -out directory joined with the derived
// name otherwise, and "<name>-plan.<ext>" next to the source by default.
// URL inputs land in the working directory.
func outputPath(input, format string) string {
	ext := "." + format
	if format == "jpg" {
		ext = ".jpeg"
	}

	base := filepath.Base(input)
	if i := strings.IndexAny(base, "?#"); i >= 0 {
		base = base[:i]
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		base = "plan"
	}
	name := base + "-plan" + ext

	switch {
	case *flagOut == "":
		if isURL(input) {
			return name
		}
		return filepath.Join(filepath.Dir(input), name)
	case flag.NArg() == 1 && !isDir(*flagOut):
		return *flagOut
	default:
		return filepath.Join(*flagOut, name)
	}
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
