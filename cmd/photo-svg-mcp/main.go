package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/ironsheep/photo-svg-mcp/internal/config"
	"github.com/ironsheep/photo-svg-mcp/internal/imaging"
	"github.com/ironsheep/photo-svg-mcp/internal/server"
	"github.com/ironsheep/photo-svg-mcp/internal/vectorize"
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
			fmt.Printf("photo-svg-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if len(os.Args) > 1 && os.Args[1] == "convert" {
		if err := runConvert(cfg, os.Args[2:]); err != nil {
			log.Fatalf("Error: %v", err)
		}
		return
	}

	if cfg.Debug() {
		log.Printf("Photo SVG MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	server.Version = Version
	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func printUsage() {
	fmt.Println("photo-svg-mcp - convert images to SVG outlines")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  photo-svg-mcp                         Run the MCP server on stdin/stdout")
	fmt.Println("  photo-svg-mcp convert IN OUT [THRESHOLD] [SIMPLIFICATION]")
	fmt.Println("                                        Convert one image file to SVG")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  PHOTOSVG_LOG_LEVEL=debug       Enable debug logging")
	fmt.Println("  PHOTOSVG_THRESHOLD=128         Default luminance threshold (0-255)")
	fmt.Println("  PHOTOSVG_SIMPLIFICATION=2      Default simplification tolerance (0 disables)")
	fmt.Println("  PHOTOSVG_MAX_DIMENSION=400     Downscale bound in pixels (0 disables)")
	fmt.Println("  PHOTOSVG_BLUR_RADIUS=0         Gaussian blur before thresholding")
}

// runConvert implements "convert IN OUT [THRESHOLD] [SIMPLIFICATION]".
func runConvert(cfg *config.Config, args []string) error {
	if len(args) < 2 || len(args) > 4 {
		return fmt.Errorf("usage: photo-svg-mcp convert IN OUT [THRESHOLD] [SIMPLIFICATION]")
	}
	in, out := args[0], args[1]

	threshold := cfg.Threshold
	if len(args) > 2 {
		v, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid threshold %q: %w", args[2], err)
		}
		threshold = v
	}

	tolerance := cfg.Simplification
	if len(args) > 3 {
		v, err := strconv.ParseFloat(args[3], 64)
		if err != nil || v < 0 {
			return fmt.Errorf("invalid simplification %q", args[3])
		}
		tolerance = v
	}

	img, err := imaging.NewImageCache().Load(in)
	if err != nil {
		return err
	}
	buf, err := imaging.Prepare(img, imaging.PrepareOptions{
		MaxDimension: cfg.MaxDimension,
		BlurRadius:   cfg.BlurRadius,
	})
	if err != nil {
		return err
	}

	doc, err := vectorize.Run(buf, threshold, tolerance)
	if err != nil {
		return fmt.Errorf("error converting image: %w", err)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := vectorize.WriteSVG(f, doc.Contours, doc.Width, doc.Height); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}

	log.Printf("SVG saved to %s (%d paths)", out, len(doc.Contours))
	return nil
}
