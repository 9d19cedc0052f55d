package utils

import (
	"strings"
	"testing"
)

func TestNewSlugShape(t *testing.T) {
	got := NewSlug("How to Train Your Dragon")

	if !strings.HasPrefix(got, "how-to-train-your-dragon-") {
		t.Fatalf("expected slugified title prefix, got %q", got)
	}

	suffix := got[strings.LastIndex(got, "-")+1:]
	if len(suffix) != 6 {
		t.Fatalf("expected a 6 character suffix, got %q", suffix)
	}
	for _, r := range suffix {
		if !strings.ContainsRune(base36, r) {
			t.Fatalf("suffix %q contains non-base36 character %q", suffix, r)
		}
	}
}

func TestNewSlugDiffersPerCall(t *testing.T) {
	a := NewSlug("same title")
	b := NewSlug("same title")

	if a == b {
		t.Fatalf("expected distinct slugs for the same title, both %q", a)
	}
}
