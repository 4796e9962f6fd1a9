package snapshots

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FSStore persists season snapshots as JSON files under basePath, with a
// manifest recording per-season refresh times. Writes go through a temp
// file and rename so readers never observe a partial snapshot.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed snapshot store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// BasePath exposes the store root path (primarily for testing).
func (s *FSStore) BasePath() string {
	if s == nil {
		return ""
	}
	return s.basePath
}

// Load reads a season's snapshot from disk.
func (s *FSStore) Load(seasonID int) (Snapshot, error) {
	if s == nil {
		return Snapshot{}, errors.New("snapshot store not configured")
	}

	f, err := os.Open(SeasonSnapshotPath(s.basePath, seasonID))
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, ErrNotFound
		}
		return Snapshot{}, err
	}
	defer f.Close()

	var snap Snapshot
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return Snapshot{}, err
	}
	if snap.SeasonID == 0 {
		snap.SeasonID = seasonID
	}
	return snap, nil
}

// Save writes a season's snapshot and updates the manifest. An unchanged
// payload skips the rewrite but still refreshes the manifest timestamp.
func (s *FSStore) Save(snapshot Snapshot) error {
	if s == nil {
		return errors.New("snapshot store not configured")
	}
	if snapshot.SeasonID == 0 {
		return fmt.Errorf("snapshot season id required")
	}

	target := SeasonSnapshotPath(s.basePath, snapshot.SeasonID)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return s.updateManifest(snapshot)
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		return err
	}

	return s.updateManifest(snapshot)
}

func (s *FSStore) updateManifest(snapshot Snapshot) error {
	m := readManifest(s.basePath)
	m.Seasons[seasonKey(snapshot.SeasonID)] = snapshot.RefreshedAt
	return writeManifest(s.basePath, m)
}
