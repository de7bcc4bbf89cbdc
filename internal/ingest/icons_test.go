package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadIconSet(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"space_exploration.svg", "medicine.svg"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("<svg/>"), 0o644); err != nil {
			t.Fatalf("write icon: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("not an icon"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	set, err := LoadIconSet(dir, nil)
	if err != nil {
		t.Fatalf("LoadIconSet: %v", err)
	}
	if set.Len() != 2 {
		t.Fatalf("Len = %d, want 2", set.Len())
	}
	url, ok := set.Resolve("space_exploration")
	if !ok || url != "/images/categories/space_exploration.svg" {
		t.Fatalf("Resolve(space_exploration) = %q, %v", url, ok)
	}
}

func TestIconSetParentFallback(t *testing.T) {
	set := NewIconSet(map[string]string{
		"space_exploration": "/images/categories/space_exploration.svg",
	})

	url, ok := set.Resolve("space_exploration.moon_landing")
	if !ok || url != "/images/categories/space_exploration.svg" {
		t.Fatalf("parent fallback = %q, %v", url, ok)
	}

	if _, ok := set.Resolve("cinema_film.silent_era"); ok {
		t.Fatalf("unknown category should not resolve")
	}
	if _, ok := set.Resolve(""); ok {
		t.Fatalf("empty category should not resolve")
	}
}

func TestLoadIconSetMissingDir(t *testing.T) {
	set, err := LoadIconSet("", nil)
	if err != nil {
		t.Fatalf("LoadIconSet: %v", err)
	}
	if set.Len() != 0 {
		t.Fatalf("Len = %d, want 0", set.Len())
	}
}
