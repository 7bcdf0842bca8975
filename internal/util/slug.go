// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util holds small helpers shared across packages.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalid  = regexp.MustCompile(`[^a-z0-9]+`)
	slugPattern  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	slugMaxLen   = 100
	diacriticsRm = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Slugify converts an arbitrary title into a URL slug. Cyrillic and
// other non-Latin input is transliterated first, so "Жилой комплекс"
// becomes "zhiloi-kompleks".
func Slugify(s string) string {
	s = unidecode.Unidecode(s)
	if out, _, err := transform.String(diacriticsRm, s); err == nil {
		s = out
	}
	s = strings.ToLower(s)
	s = slugInvalid.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > slugMaxLen {
		s = strings.Trim(s[:slugMaxLen], "-")
	}
	return s
}

// IsValidSlug reports whether s is a well-formed slug: lowercase
// alphanumerics separated by single hyphens.
func IsValidSlug(s string) bool {
	return s != "" && len(s) <= slugMaxLen && slugPattern.MatchString(s)
}
