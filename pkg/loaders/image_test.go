package loaders

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-raycaster/pkg/core"
)

// writeTestPNG encodes a 2x2 image: white, red / green, blue
func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
}

func checkColor(t *testing.T, name string, got, expected core.Vec3, tolerance float64) {
	t.Helper()
	if abs(got.X-expected.X) > tolerance ||
		abs(got.Y-expected.Y) > tolerance ||
		abs(got.Z-expected.Z) > tolerance {
		t.Errorf("%s: expected %v, got %v", name, expected, got)
	}
}

// TestLoadImage creates a test PNG and verifies loading
func TestLoadImage(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "test.png")
	writeTestPNG(t, testFile)

	imageData, err := LoadImage(testFile)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}

	if imageData.Width != 2 || imageData.Height != 2 {
		t.Errorf("Expected 2x2 image, got %dx%d", imageData.Width, imageData.Height)
	}
	if imageData.Format != "png" {
		t.Errorf("Expected png format, got %q", imageData.Format)
	}
	if len(imageData.Pixels) != 4 {
		t.Fatalf("Expected 4 pixels, got %d", len(imageData.Pixels))
	}

	checkColor(t, "Top-left (white)", imageData.Pixels[0], core.NewVec3(1, 1, 1), 0.01)
	checkColor(t, "Top-right (red)", imageData.Pixels[1], core.NewVec3(1, 0, 0), 0.01)
	checkColor(t, "Bottom-left (green)", imageData.Pixels[2], core.NewVec3(0, 1, 0), 0.01)
	checkColor(t, "Bottom-right (blue)", imageData.Pixels[3], core.NewVec3(0, 0, 1), 0.01)
}

func TestLoadTexture_ScalesTo255(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "grass.png")
	writeTestPNG(t, testFile)

	texture, err := LoadTexture(testFile)
	if err != nil {
		t.Fatalf("LoadTexture failed: %v", err)
	}

	checkColor(t, "texel (1,0)", texture.RGB(1, 0), core.NewVec3(255, 0, 0), 0.5)
	checkColor(t, "texel (1,1)", texture.RGB(1, 1), core.NewVec3(0, 0, 255), 0.5)
}

// TestLoadImageNotFound verifies error handling for missing files
func TestLoadImageNotFound(t *testing.T) {
	_, err := LoadImage("nonexistent.png")
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestDecodeImage_InvalidData(t *testing.T) {
	_, err := DecodeImage(bytes.NewReader([]byte("not an image")))
	if err == nil {
		t.Error("Expected decode error for garbage input, got nil")
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
