// Copyright (c) 2025-2026 Standart Construction
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "testing"

func TestProjectClassValid(t *testing.T) {
	valid := []ProjectClass{ClassEconomy, ClassComfort, ClassBusiness, ClassPremium, ClassElite}
	for _, c := range valid {
		if !c.Valid() {
			t.Errorf("class %q should be valid", c)
		}
	}

	for _, c := range []ProjectClass{"", "luxury", "Economy", "ECONOMY"} {
		if c.Valid() {
			t.Errorf("class %q should be invalid", c)
		}
	}
}

func TestProjectStatusValid(t *testing.T) {
	valid := []ProjectStatus{StatusCurrent, StatusCompleted, StatusPlanned}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("status %q should be valid", s)
		}
	}

	for _, s := range []ProjectStatus{"", "archived", "Current"} {
		if s.Valid() {
			t.Errorf("status %q should be invalid", s)
		}
	}
}
