package main

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-raycaster/pkg/archive"
	"github.com/df07/go-raycaster/pkg/scene"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name         string
		opts         options
		expectedName string
		expectError  error
	}{
		{"garden default season", options{Scene: "garden"}, "garden-summer", nil},
		{"garden in fall", options{Scene: "garden", Season: "fall"}, "garden-autumn", nil},
		{"sphere scene", options{Scene: "sphere"}, "sphere", nil},
		{"shadow scene", options{Scene: "shadow"}, "shadow", nil},
		{"unknown scene", options{Scene: "cornell"}, "", scene.ErrUnknownScene},
		{"unknown season", options{Scene: "garden", Season: "monsoon"}, "", scene.ErrUnknownSeason},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, name, err := createScene(tt.opts)
			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Errorf("Expected %v, got %v", tt.expectError, err)
				}
				if s != nil {
					t.Errorf("Expected nil scene, got %v", s)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if name != tt.expectedName {
				t.Errorf("Expected name %q, got %q", tt.expectedName, name)
			}
			if s.ShapeCount() == 0 || s.Camera == nil {
				t.Errorf("Expected a populated scene with a camera")
			}
		})
	}
}

func TestCreateScene_Descriptor(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "unnamed.json")
	content := `{"camera": {"position": [0, 0, 10]}, "shapes": [{"kind": "sphere", "radius": 1}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write descriptor: %v", err)
	}

	s, name, err := createScene(options{Scene: "sphere", Descriptor: path, Width: 12, Height: 8})
	if err != nil {
		t.Fatalf("createScene() error: %v", err)
	}
	if name != "Unnamed" {
		t.Errorf("Expected name from the file, got %q", name)
	}
	if s.View.Columns != 12 || s.View.Rows != 8 {
		t.Errorf("Expected 12x8, got %dx%d", s.View.Columns, s.View.Rows)
	}

	if _, _, err := createScene(options{Descriptor: filepath.Join(dir, "missing.json")}); err == nil {
		t.Error("Expected error for missing descriptor")
	}
}

func TestRun(t *testing.T) {
	root := t.TempDir()
	opts := options{
		Scene:      "shadow",
		Width:      24,
		Height:     16,
		Workers:    2,
		Record:     filepath.Join(root, "sessions"),
		OutputRoot: filepath.Join(root, "output"),
	}

	filename, err := run(opts, nil)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if filepath.Dir(filename) != filepath.Join(opts.OutputRoot, "shadow") {
		t.Errorf("Unexpected output location %q", filename)
	}

	file, err := os.Open(filename)
	if err != nil {
		t.Fatalf("Failed to open render: %v", err)
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Failed to decode render: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 24 || b.Dy() != 16 {
		t.Errorf("Expected 24x16, got %dx%d", b.Dx(), b.Dy())
	}

	sessions, err := filepath.Glob(filepath.Join(opts.Record, "shadow-*"))
	if err != nil || len(sessions) != 1 {
		t.Fatalf("Expected one recorded session, got %v (%v)", sessions, err)
	}
	reader, err := archive.OpenReader(sessions[0])
	if err != nil {
		t.Fatalf("OpenReader() error: %v", err)
	}
	frames, err := reader.Frames()
	if err != nil {
		t.Fatalf("Frames() error: %v", err)
	}
	if len(frames) != 1 || len(frames[0].RGB) != 24*16*3 {
		t.Errorf("Expected one 24x16 frame in the session")
	}
}

func TestCreateScene_SampleDescriptors(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("scenes", "*.json"))
	if err != nil {
		t.Fatalf("Glob() error: %v", err)
	}
	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			s, _, err := createScene(options{Descriptor: file, Width: 30, Height: 20})
			if err != nil {
				t.Fatalf("createScene(%s) error: %v", file, err)
			}
			if s.ShapeCount() == 0 {
				t.Error("Expected shapes")
			}
		})
	}
}
