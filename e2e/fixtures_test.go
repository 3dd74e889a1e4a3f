//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
)

// FixtureImage describes one gallery entry written by CreateGallery
type FixtureImage struct {
	ID          string   `json:"id"`
	Filename    string   `json:"filename"`
	Path        string   `json:"path"`
	Category    string   `json:"category"`
	DateAdded   string   `json:"dateAdded"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags"`

	// Missing skips writing the image file
	Missing bool `json:"-"`
}

// DefaultGallery is the fixture most tests use
var DefaultGallery = []FixtureImage{
	{ID: "1", Filename: "sunset.png", Path: "images/sunset.png", Category: "nature", DateAdded: "2024-03-01", Description: "Sunset over the sea", Tags: []string{"sky", "sea"}},
	{ID: "2", Filename: "burger.png", Path: "images/burger.png", Category: "food", DateAdded: "2024-01-10", Tags: []string{"lunch"}},
	{ID: "3", Filename: "alps.png", Path: "images/alps.png", Category: "nature", DateAdded: "2023-07-20", Tags: []string{"mountain"}},
	{ID: "4", Filename: "ghost.png", Path: "images/ghost.png", Category: "misc", DateAdded: "2022-10-31", Tags: []string{}, Missing: true},
}

// CreateTestWorkspace creates a temporary directory used as $HOME
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// CreateGallery writes gallery.json and the image files into the workspace
// and returns the metadata path
func (tf *TUITestFramework) CreateGallery(images []FixtureImage) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}

	categories := []string{}
	seen := map[string]bool{}
	for i, img := range images {
		if !seen[img.Category] {
			seen[img.Category] = true
			categories = append(categories, img.Category)
		}
		if img.Missing {
			continue
		}
		if err := writePNG(filepath.Join(tf.workspace, img.Path), i); err != nil {
			return "", err
		}
	}

	doc := struct {
		Images     []FixtureImage `json:"images"`
		Categories []string       `json:"categories"`
	}{images, categories}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(tf.workspace, "gallery.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write gallery: %w", err)
	}
	return path, nil
}

func writePNG(path string, seed int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	img := image.NewRGBA(image.Rect(0, 0, 32, 24))
	for x := 0; x < 32; x++ {
		for y := 0; y < 24; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 8), G: uint8(seed * 60), B: uint8(y * 10), A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
