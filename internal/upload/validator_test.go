// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package upload

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeTestJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func encodeTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// testContentType mimics the Content-Type a browser would declare for
// the given filename.
func testContentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}

func validate(t *testing.T, v *Validator, data []byte, name string) error {
	t.Helper()
	return v.Validate(bytes.NewReader(data), name, testContentType(name), int64(len(data)))
}

func TestValidateAcceptsRealImages(t *testing.T) {
	v := NewValidator(MaxImageSize)

	assert.NoError(t, validate(t, v, encodeTestJPEG(t, 4, 4), "photo.jpg"))
	assert.NoError(t, validate(t, v, encodeTestJPEG(t, 4, 4), "photo.jpeg"))
	assert.NoError(t, validate(t, v, encodeTestPNG(t, 4, 4), "logo.png"))
}

func TestValidateAcceptsSVG(t *testing.T) {
	v := NewValidator(MaxLogoSize)

	docs := [][]byte{
		[]byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`),
		[]byte(`<?xml version="1.0"?><svg></svg>`),
		[]byte("<!-- logo -->\n<svg></svg>"),
	}
	for _, d := range docs {
		assert.NoError(t, validate(t, v, d, "logo.svg"), "doc: %s", d)
	}
}

func TestValidateRejectsFakeSVG(t *testing.T) {
	v := NewValidator(MaxLogoSize)

	err := validate(t, v, []byte("<html><body>not svg</body></html>"), "logo.svg")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestValidateRejectsBadExtension(t *testing.T) {
	v := NewValidator(MaxImageSize)

	for _, name := range []string{"shell.php", "archive.zip", "noext", "image.tiff"} {
		err := validate(t, v, encodeTestJPEG(t, 4, 4), name)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "name %q", name)
	}
}

func TestValidateRejectsMismatchedContent(t *testing.T) {
	v := NewValidator(MaxImageSize)

	// PNG bytes behind a .jpg name
	err := validate(t, v, encodeTestPNG(t, 4, 4), "sneaky.jpg")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	// plain text behind a .png name
	err = validate(t, v, []byte("#!/bin/sh\nrm -rf /"), "script.png")
	require.ErrorAs(t, err, &verr)
}

func TestValidateRejectsDeclaredContentType(t *testing.T) {
	v := NewValidator(MaxImageSize)

	// genuine jpeg bytes, but the upload declares a non-image type
	data := encodeTestJPEG(t, 4, 4)
	for _, ct := range []string{"", "application/octet-stream", "text/html"} {
		err := v.Validate(bytes.NewReader(data), "photo.jpg", ct, int64(len(data)))
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "content type %q", ct)
		assert.Contains(t, verr.Reason, "declared content type")
	}

	// parameters after the media type are ignored
	assert.NoError(t, v.Validate(bytes.NewReader(data), "photo.jpg",
		"image/jpeg; charset=binary", int64(len(data))))
}

func TestValidateRejectsOversize(t *testing.T) {
	v := NewValidator(1024)

	data := encodeTestJPEG(t, 64, 64)
	err := v.Validate(bytes.NewReader(data), "big.jpg", "image/jpeg", int64(len(data)))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "limit")
}

func TestValidateRejectsEmpty(t *testing.T) {
	v := NewValidator(MaxImageSize)

	err := v.Validate(bytes.NewReader(nil), "empty.jpg", "image/jpeg", 0)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestValidateRewindsFile(t *testing.T) {
	v := NewValidator(MaxImageSize)

	data := encodeTestJPEG(t, 4, 4)
	r := bytes.NewReader(data)
	require.NoError(t, v.Validate(r, "photo.jpg", "image/jpeg", int64(len(data))))

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, data, rest, "file must be rewound after validation")
}

func TestValidateMany(t *testing.T) {
	v := NewValidator(MaxImageSize)

	good := encodeTestJPEG(t, 4, 4)
	files := make([]NamedFile, 0, MaxFilesPerRequest+1)
	for i := 0; i <= MaxFilesPerRequest; i++ {
		files = append(files, NamedFile{
			File: bytes.NewReader(good), Filename: "a.jpg",
			ContentType: "image/jpeg", Size: int64(len(good)),
		})
	}

	err := v.ValidateMany(files)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	assert.NoError(t, v.ValidateMany(files[:MaxFilesPerRequest]))
}

func TestValidateManyFirstFailureAborts(t *testing.T) {
	v := NewValidator(MaxImageSize)

	good := encodeTestJPEG(t, 4, 4)
	bad := []byte("not an image")
	err := v.ValidateMany([]NamedFile{
		{File: bytes.NewReader(good), Filename: "a.jpg",
			ContentType: "image/jpeg", Size: int64(len(good))},
		{File: bytes.NewReader(bad), Filename: "b.jpg",
			ContentType: "image/jpeg", Size: int64(len(bad))},
	})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "b.jpg", verr.Filename)
}
