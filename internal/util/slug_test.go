// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Emerald Towers", "emerald-towers"},
		{"  Hello,  World!  ", "hello-world"},
		{"Жилой комплекс", "zhiloi-kompleks"},
		{"Café résumé", "cafe-resume"},
		{"already-a-slug", "already-a-slug"},
		{"ALL CAPS", "all-caps"},
		{"", ""},
		{"---", ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlugifyTruncates(t *testing.T) {
	long := strings.Repeat("word ", 50)
	got := Slugify(long)
	if len(got) > 100 {
		t.Errorf("slug too long: %d chars", len(got))
	}
	if strings.HasSuffix(got, "-") {
		t.Errorf("truncated slug ends with hyphen: %q", got)
	}
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"a", "abc", "abc-def", "a1-b2-c3"}
	for _, s := range valid {
		if !IsValidSlug(s) {
			t.Errorf("%q should be valid", s)
		}
	}

	invalid := []string{"", "-abc", "abc-", "a--b", "ABC", "a_b", "a b", "жк"}
	for _, s := range invalid {
		if IsValidSlug(s) {
			t.Errorf("%q should be invalid", s)
		}
	}
}
