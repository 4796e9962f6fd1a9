package snapshots

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Manifest tracks when each season snapshot was last refreshed.
type Manifest struct {
	Version     int                  `json:"version"`
	GeneratedAt time.Time            `json:"generatedAt"`
	Seasons     map[string]time.Time `json:"seasons"`
}

func defaultManifest() Manifest {
	return Manifest{
		Version: 1,
		Seasons: map[string]time.Time{},
	}
}

func readManifest(basePath string) Manifest {
	f, err := os.Open(filepath.Join(basePath, "manifest.json"))
	if err != nil {
		return defaultManifest()
	}
	defer f.Close()

	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest()
	}
	if m.Seasons == nil {
		m.Seasons = map[string]time.Time{}
	}
	return m
}

func writeManifest(basePath string, m Manifest) error {
	m.GeneratedAt = time.Now().UTC()
	path := filepath.Join(basePath, "manifest.json")
	tmp := path + ".tmp"
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func seasonKey(seasonID int) string {
	return strconv.Itoa(seasonID)
}
