// Copyright (c) 2026 Twofa Team
// Twofa - two-factor token entry
// This source code is licensed under the MIT license found in the LICENSE file.
package i18n

import (
	"testing"
)

func TestInitAndAvailableLocales(t *testing.T) {
	Init("en")
	if GetLang() != "en" {
		t.Fatalf("expected lang 'en', got %q", GetLang())
	}

	av := GetAvailableLocales()
	for _, k := range []string{"en", "de"} {
		if _, ok := av[k]; !ok {
			t.Fatalf("expected available locale %q to be present", k)
		}
	}
	if name := av["de"]; name != "Deutsch" {
		t.Fatalf("unexpected display name for de: %q", name)
	}
	if got := SortedLocales(); len(got) != 2 || got[0] != "de" || got[1] != "en" {
		t.Fatalf("unexpected sorted locales: %v", got)
	}
}

func TestT_BasicAndFormatting(t *testing.T) {
	Init("en")

	if got := T("twofa.error.invalid_token"); got != "Token is invalid" {
		t.Fatalf("expected 'Token is invalid', got %q", got)
	}
	if got := T("twofa.error.invalid_token_hint"); got != "Enter a valid token." {
		t.Fatalf("unexpected hint: %q", got)
	}

	// fmt-style formatting via non-map args
	if got := T("twofa.status.length", 3, 6); got != "3/6 characters" {
		t.Fatalf("unexpected formatted translation: %q", got)
	}

	SetLang("de")
	defer SetLang("en")
	if GetLang() != "de" {
		t.Fatalf("expected lang 'de', got %q", GetLang())
	}
	if got := T("twofa.error.invalid_token"); got != "Token ist ungültig" {
		t.Fatalf("expected German translation, got %q", got)
	}
}

func TestT_UnknownIDFallsBackToID(t *testing.T) {
	Init("en")
	if got := T("no.such.message"); got != "no.such.message" {
		t.Fatalf("expected fallback to id, got %q", got)
	}
}
