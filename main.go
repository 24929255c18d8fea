package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-raycaster/pkg/archive"
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/renderer"
	"github.com/df07/go-raycaster/pkg/scene"
)

// options holds the command line configuration
type options struct {
	Scene      string
	Descriptor string
	Season     string
	Width      int
	Height     int
	Workers    int
	Record     string
	OutputRoot string
}

func main() {
	var opts options

	// Parse command line flags
	flag.StringVar(&opts.Scene, "scene", "garden", "Scene: "+strings.Join(scene.BuiltinNames, ", "))
	flag.StringVar(&opts.Descriptor, "descriptor", "", "JSON scene descriptor (overrides -scene)")
	flag.StringVar(&opts.Season, "season", "summer", "Garden season: spring, summer, autumn or winter")
	flag.IntVar(&opts.Width, "width", 0, "Image width (0 = scene default)")
	flag.IntVar(&opts.Height, "height", 0, "Image height (0 = scene default)")
	flag.IntVar(&opts.Workers, "workers", 0, "Parallel render workers (0 = sequential)")
	flag.StringVar(&opts.Record, "record", "", "Directory to write an archive session into")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()
	opts.OutputRoot = "output"

	// Show help if requested
	if *help {
		fmt.Println("Raycaster")
		fmt.Println("Usage: raycaster [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		fmt.Println("  garden - Pines, oaks and a table; the season changes foliage and grass")
		fmt.Println("  sphere - Red sphere lit from behind the camera")
		fmt.Println("  shadow - Two cubes casting shadows on a wall")
		fmt.Println()
		fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
		return
	}

	fmt.Println("Starting Raycaster...")
	filename, err := run(opts, renderer.NewDefaultLogger())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Render saved as %s\n", filename)
}

// createScene builds the scene named by the options. It returns the name
// used for the output directory.
func createScene(opts options) (*scene.Scene, string, error) {
	season, err := scene.ParseSeason(opts.Season)
	if err != nil {
		return nil, "", err
	}

	var (
		desc    *scene.Descriptor
		baseDir string
	)
	if opts.Descriptor != "" {
		desc, err = scene.LoadDescriptor(opts.Descriptor)
		baseDir = filepath.Dir(opts.Descriptor)
	} else {
		desc, err = scene.NamedDescriptor(opts.Scene, season)
	}
	if err != nil {
		return nil, "", err
	}

	desc = desc.WithResolution(opts.Width, opts.Height)
	textures, err := scene.ResolveTextures(desc, baseDir)
	if err != nil {
		return nil, "", err
	}
	s, err := scene.Build(desc, textures)
	if err != nil {
		return nil, "", err
	}

	// Descriptor files without a name are named after the file
	name := desc.Name
	if name == "garden" {
		name = fmt.Sprintf("garden-%s", season)
	}
	return s, name, nil
}

// run renders one frame and writes it as a PNG, returning the file name
func run(opts options, logger core.Logger) (string, error) {
	selectedScene, name, err := createScene(opts)
	if err != nil {
		return "", err
	}

	// Create output directory for this scene
	outputDir := filepath.Join(opts.OutputRoot, name)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	raycaster := renderer.NewRaycaster(renderer.Config{Workers: opts.Workers}, logger)
	buffer := raycaster.Render(selectedScene.View.Eye, selectedScene, true)
	buffer.Normalize()

	stats := raycaster.Stats()
	fmt.Printf("Render completed in %v\n", stats.Elapsed)
	fmt.Printf("Hit ratio: %.1f%%, volume hits %d of %d tests\n",
		100*stats.HitRatio(), stats.VolumeHits, stats.VolumeTests)

	// Create timestamped filename
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, buffer.ToRGBA()); err != nil {
		return "", fmt.Errorf("failed to save PNG: %w", err)
	}

	if opts.Record != "" {
		if err := recordFrame(opts, name, buffer); err != nil {
			return "", err
		}
	}
	return filename, nil
}

// recordFrame writes a one-frame archive session
func recordFrame(opts options, name string, buffer *renderer.ImageBuffer) (err error) {
	writer, manifest, err := archive.NewWriter(opts.Record, name, nil)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := writer.Close(); err == nil {
			err = closeErr
		}
	}()

	payload, err := json.Marshal(map[string]interface{}{
		"scene":      opts.Scene,
		"season":     opts.Season,
		"descriptor": opts.Descriptor,
		"width":      buffer.Columns(),
		"height":     buffer.Rows(),
	})
	if err != nil {
		return err
	}
	if err := writer.AppendEvent("render", payload); err != nil {
		return err
	}
	if err := writer.AppendFrame(0, buffer.Columns(), buffer.Rows(), buffer.Bytes()); err != nil {
		return err
	}
	fmt.Printf("Recorded session %s in %s\n", manifest.SessionID, writer.Directory())
	return nil
}
