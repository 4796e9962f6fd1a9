package snapshots

import (
	"fmt"
	"path/filepath"
)

// SeasonSnapshotPath builds the path to a season's snapshot file.
func SeasonSnapshotPath(basePath string, seasonID int) string {
	return filepath.Join(basePath, "seasons", fmt.Sprintf("season-%d.json", seasonID))
}
