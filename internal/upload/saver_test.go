// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package upload

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveKeepsBytesVerbatim(t *testing.T) {
	s := NewSaver(t.TempDir())

	data := encodeTestJPEG(t, 8, 8)
	rel, err := s.Save(bytes.NewReader(data), "Original Photo.JPG", "projects")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rel, "projects/"), "rel path %q", rel)
	assert.True(t, strings.HasSuffix(rel, ".jpg"), "extension kept lowercase: %q", rel)
	assert.NotContains(t, rel, "Original", "original name must not leak into storage")

	stored, err := os.ReadFile(filepath.Join(s.baseDir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, data, stored)
}

func TestSaveUniquePaths(t *testing.T) {
	s := NewSaver(t.TempDir())
	data := encodeTestPNG(t, 4, 4)

	a, err := s.Save(bytes.NewReader(data), "logo.png", "settings")
	require.NoError(t, err)
	b, err := s.Save(bytes.NewReader(data), "logo.png", "settings")
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "same source name must not collide")
}

func TestSaveCompressedResizesLargeImages(t *testing.T) {
	s := NewSaver(t.TempDir())

	data := encodeTestJPEG(t, 3000, 2000)
	rel, err := s.SaveCompressed(bytes.NewReader(data), "huge.jpg", "projects")
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(s.baseDir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.LessOrEqual(t, cfg.Width, MaxWidth)
	assert.LessOrEqual(t, cfg.Height, MaxHeight)
}

func TestSaveCompressedKeepsSmallImages(t *testing.T) {
	s := NewSaver(t.TempDir())

	data := encodeTestPNG(t, 100, 80)
	rel, err := s.SaveCompressed(bytes.NewReader(data), "small.png", "news")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(rel, ".png"))

	f, err := os.Open(filepath.Join(s.baseDir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 80, cfg.Height)
}

func TestSaveCompressedStoresSVGVerbatim(t *testing.T) {
	s := NewSaver(t.TempDir())

	doc := []byte(`<svg xmlns="http://www.w3.org/2000/svg"><rect/></svg>`)
	rel, err := s.SaveCompressed(bytes.NewReader(doc), "logo.svg", "settings")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(rel, ".svg"))

	stored, err := os.ReadFile(filepath.Join(s.baseDir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, doc, stored)
}

func TestSaveCompressedRejectsGarbage(t *testing.T) {
	s := NewSaver(t.TempDir())

	_, err := s.SaveCompressed(bytes.NewReader([]byte("garbage")), "x.jpg", "projects")
	assert.Error(t, err)
}

func TestSaverRejectsTraversal(t *testing.T) {
	s := NewSaver(t.TempDir())
	data := encodeTestJPEG(t, 4, 4)

	for _, sub := range []string{"../escape", "a/../../b", "/abs"} {
		_, err := s.Save(bytes.NewReader(data), "x.jpg", sub)
		assert.Error(t, err, "subdir %q", sub)
	}
}

func TestRemove(t *testing.T) {
	s := NewSaver(t.TempDir())
	data := encodeTestJPEG(t, 4, 4)

	rel, err := s.Save(bytes.NewReader(data), "x.jpg", "projects")
	require.NoError(t, err)

	require.NoError(t, s.Remove(rel))
	_, statErr := os.Stat(filepath.Join(s.baseDir, filepath.FromSlash(rel)))
	assert.True(t, os.IsNotExist(statErr))

	// removing twice is fine
	assert.NoError(t, s.Remove(rel))
}
