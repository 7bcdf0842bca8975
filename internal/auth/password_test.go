// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("unexpected hash format: %s", hash)
	}

	if !CheckPassword("correct horse battery", hash) {
		t.Error("correct password did not verify")
	}
	if CheckPassword("wrong password!", hash) {
		t.Error("wrong password verified")
	}
}

func TestHashPassword_TooShort(t *testing.T) {
	if _, err := HashPassword("short"); err != ErrPasswordTooShort {
		t.Errorf("want ErrPasswordTooShort, got %v", err)
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	a, err := HashPassword("same password")
	if err != nil {
		t.Fatal(err)
	}
	b, err := HashPassword("same password")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two hashes of the same password must differ")
	}
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	for _, h := range []string{"", "plaintext", "$argon2id$v=19$garbage", "$bcrypt$whatever"} {
		if CheckPassword("anything", h) {
			t.Errorf("malformed hash %q verified", h)
		}
	}
}

func TestNeedsRehash(t *testing.T) {
	hash, err := HashPassword("a strong password")
	if err != nil {
		t.Fatal(err)
	}
	if NeedsRehash(hash) {
		t.Error("freshly created hash should not need a rehash")
	}
	if !NeedsRehash("$argon2id$v=19$m=4096,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$c2FsdHNhbHRzYWx0c2FsdA") {
		t.Error("weak parameters should need a rehash")
	}
	if !NeedsRehash("not-a-hash") {
		t.Error("malformed hash should need a rehash")
	}
}
