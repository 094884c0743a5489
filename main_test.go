package main

import (
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"default scene", "default", false},
		{"cylinders scene", "cylinders", false},
		{"sphere-grid scene", "sphere-grid", false},

		// Scene files by name and by path
		{"reference by name", "reference", false},
		{"glass-columns by name", "glass-columns", false},
		{"direct scene file path", filepath.Join("scenes", "reference.wrt"), false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"missing scene file", filepath.Join("scenes", "nonexistent.wrt"), true},
		{"wrong extension", filepath.Join("scenes", "reference.pbrt"), true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.sceneType)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if s != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s', got %T", tt.sceneType, s)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if s.Width <= 0 || s.Height <= 0 {
				t.Errorf("Scene resolution should be positive, got %dx%d", s.Width, s.Height)
			}
			if s.GetPrimitiveCount() == 0 {
				t.Errorf("Scene '%s' has no shapes", tt.sceneType)
			}
		})
	}
}

func TestFindSceneFile(t *testing.T) {
	if path := findSceneFile("reference"); filepath.Base(path) != "reference.wrt" {
		t.Errorf("Expected reference.wrt, got %q", path)
	}
	for _, name := range []string{"nonexistent", "../scenes/reference", "default"} {
		if path := findSceneFile(name); path != "" {
			t.Errorf("Expected no scene file for %q, got %q", name, path)
		}
	}
}

func TestCreateOutputDir(t *testing.T) {
	tests := []struct {
		name      string
		sceneType string
		expected  string
	}{
		{"built-in scene", "default", filepath.Join("output", "default")},
		{"scene file by name", "glass-columns", filepath.Join("output", "glass-columns")},
		{"scene file path", filepath.Join("scenes", "reference.wrt"), filepath.Join("output", "reference")},
		{"nested scene file path", filepath.Join("scenes", "subdir", "my-scene.wrt"), filepath.Join("output", "my-scene")},
		{"empty", "", filepath.Join("output", "scene")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := createOutputDir(tt.sceneType); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestSideBySide(t *testing.T) {
	left := image.NewRGBA(image.Rect(0, 0, 4, 3))
	right := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			left.Set(x, y, color.RGBA{255, 0, 0, 255})
			right.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}

	img := sideBySide(left, right).Image()
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 3 {
		t.Fatalf("Expected 8x3 comparison, got %dx%d", b.Dx(), b.Dy())
	}
	if r, _, b, _ := img.At(1, 1).RGBA(); r>>8 != 255 || b>>8 != 0 {
		t.Errorf("Expected render on the left, got r=%d b=%d", r>>8, b>>8)
	}
	if r, _, b, _ := img.At(6, 1).RGBA(); r>>8 != 0 || b>>8 != 255 {
		t.Errorf("Expected reference on the right, got r=%d b=%d", r>>8, b>>8)
	}
}

func TestCompareWithReference_SizeMismatch(t *testing.T) {
	dir := t.TempDir()
	reference := filepath.Join(dir, "reference.png")
	small := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if err := sideBySide(small, small).SavePNG(reference); err != nil {
		t.Fatal(err)
	}

	err := compareWithReference(small, reference, 0.01, filepath.Join(dir, "compare.png"))
	if err == nil || !strings.Contains(err.Error(), "size mismatch") {
		t.Errorf("Expected size mismatch error, got %v", err)
	}
}
