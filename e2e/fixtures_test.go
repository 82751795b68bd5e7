//go:build e2e && unix

package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
)

// CreateTestWorkspace creates a temporary directory to scan
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tf.workspace = tf.t.TempDir()
	return tf.workspace, nil
}

// CreateImage writes a small solid PNG into the workspace
func (tf *TUITestFramework) CreateImage(name string, c color.Color) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}
	path := filepath.Join(tf.workspace, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, c)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return path, nil
}

// CreateFile writes an arbitrary file into the workspace
func (tf *TUITestFramework) CreateFile(name, contents string) (string, error) {
	path := filepath.Join(tf.workspace, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	return path, os.WriteFile(path, []byte(contents), 0644)
}

// seedImages creates three solid images that sort red, green, blue
func seedImages(tf *TUITestFramework) ([]string, error) {
	var paths []string
	for _, img := range []struct {
		name string
		c    color.Color
	}{
		{"a_red.png", color.RGBA{R: 255, A: 255}},
		{"b_green.png", color.RGBA{G: 255, A: 255}},
		{"c_blue.png", color.RGBA{B: 255, A: 255}},
	} {
		p, err := tf.CreateImage(img.name, img.c)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}
