// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package upload

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder
)

// Compression targets for SaveCompressed.
const (
	MaxWidth    = 1920
	MaxHeight   = 1080
	JPEGQuality = 85
)

// Saver writes validated uploads under a base directory, one
// subdirectory per entity kind (projects, news, settings).
type Saver struct {
	baseDir string
}

// NewSaver returns a Saver rooted at baseDir.
func NewSaver(baseDir string) *Saver {
	return &Saver{baseDir: baseDir}
}

// Save stores the file verbatim under subDir with a random UUID
// filename, keeping the original extension. It returns the path
// relative to the base directory, using forward slashes.
func (s *Saver) Save(f io.Reader, originalName, subDir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.New().String() + ext

	dir, err := s.resolveDir(subDir)
	if err != nil {
		return "", err
	}

	target := filepath.Join(dir, name)
	out, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}

	if _, err := io.Copy(out, f); err != nil {
		out.Close()
		os.Remove(target) // drop the partial file
		return "", fmt.Errorf("writing upload: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("closing upload file: %w", err)
	}

	return filepath.ToSlash(filepath.Join(subDir, name)), nil
}

// SaveCompressed stores an image under subDir with a random UUID
// filename, resized to fit within 1920x1080 and recompressed. SVG
// files are stored verbatim since they are resolution independent.
// Raster formats without a pure Go encoder (WebP) come out as JPEG.
func (s *Saver) SaveCompressed(f io.Reader, originalName, subDir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == ".svg" {
		return s.Save(f, originalName, subDir)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("reading upload: %w", err)
	}

	format := detectFormat(data)
	if format == "" {
		return "", fmt.Errorf("unsupported image format")
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decoding image: %w", err)
	}

	img = applyOrientation(img, readExifOrientation(bytes.NewReader(data)))

	bounds := img.Bounds()
	if bounds.Dx() > MaxWidth || bounds.Dy() > MaxHeight {
		img = imaging.Fit(img, MaxWidth, MaxHeight, imaging.Lanczos)
	}

	encoded, outExt, err := encodeImage(img, format)
	if err != nil {
		return "", fmt.Errorf("encoding image: %w", err)
	}

	dir, err := s.resolveDir(subDir)
	if err != nil {
		return "", err
	}

	name := uuid.New().String() + outExt
	target := filepath.Join(dir, name)
	if err := os.WriteFile(target, encoded, 0o644); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("saving image: %w", err)
	}

	return filepath.ToSlash(filepath.Join(subDir, name)), nil
}

// Remove deletes a previously saved file given its relative path.
// Missing files are not an error.
func (s *Saver) Remove(relPath string) error {
	dir, err := s.resolveDir(filepath.Dir(relPath))
	if err != nil {
		return err
	}
	target := filepath.Join(dir, filepath.Base(relPath))
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing upload: %w", err)
	}
	return nil
}

// resolveDir validates subDir against path traversal, creates it, and
// returns the absolute directory path.
func (s *Saver) resolveDir(subDir string) (string, error) {
	clean := filepath.Clean(subDir)
	if strings.Contains(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid upload subdirectory")
	}

	absBase, err := filepath.Abs(s.baseDir)
	if err != nil {
		return "", fmt.Errorf("resolving upload directory: %w", err)
	}

	target := filepath.Join(absBase, clean)
	rel, err := filepath.Rel(absBase, target)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("invalid upload subdirectory")
	}

	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("creating upload directory: %w", err)
	}
	return target, nil
}

// readExifOrientation reads the EXIF orientation tag, defaulting to 1.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return orientation
}

// applyOrientation normalizes an image per its EXIF orientation value.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

// encodeImage encodes img in the given format and returns the bytes
// plus the extension of the output file. WebP input is re-encoded as
// JPEG since pure Go has no WebP encoder.
func encodeImage(img image.Image, format string) ([]byte, string, error) {
	var buf bytes.Buffer
	switch format {
	case "png":
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), ".png", nil
	case "gif":
		if err := gif.Encode(&buf, img, nil); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), ".gif", nil
	default: // jpeg, webp
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), ".jpg", nil
	}
}

// detectFormat detects the image format from raw bytes. TIFF input is
// rejected (CVE-2023-36308 in disintegration/imaging).
func detectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	if strings.Contains(contentType, "tiff") {
		return ""
	}
	switch {
	case strings.Contains(contentType, "jpeg"):
		return "jpeg"
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "gif"):
		return "gif"
	case strings.Contains(contentType, "webp"):
		return "webp"
	default:
		return ""
	}
}
