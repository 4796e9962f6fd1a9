package snapshots

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestReadManifestMissingFile(t *testing.T) {
	m := readManifest(t.TempDir())
	if m.Version != 1 {
		t.Fatalf("expected default version 1, got %d", m.Version)
	}
	if m.Seasons == nil || len(m.Seasons) != 0 {
		t.Fatalf("expected empty seasons map, got %v", m.Seasons)
	}
}

func TestReadManifestCorruptFileFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "manifest.json"), []byte("{nope"), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	m := readManifest(dir)
	if m.Version != 1 || len(m.Seasons) != 0 {
		t.Fatalf("expected default manifest, got %+v", m)
	}
}

func TestWriteAndReadManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := defaultManifest()
	refreshed := time.Date(2025, time.January, 2, 3, 4, 5, 0, time.UTC)
	m.Seasons[seasonKey(5)] = refreshed

	if err := writeManifest(dir, m); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	loaded := readManifest(dir)
	if got := loaded.Seasons["5"]; !got.Equal(refreshed) {
		t.Fatalf("expected refresh time preserved, got %v", got)
	}
	if loaded.GeneratedAt.IsZero() {
		t.Fatalf("expected generated timestamp set")
	}
}
