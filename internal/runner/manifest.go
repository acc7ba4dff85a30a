package runner

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"doccompare/internal/types"
)

// ManifestFileName is the machine-readable run summary written next to the
// root folder's contents.
const ManifestFileName = "run_summary.json"

type manifest struct {
	types.RunStats
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

// WriteManifest writes the run statistics as JSON into folder and returns
// the manifest path. The manifest mirrors the console summary so downstream
// tooling does not have to scrape it.
func WriteManifest(folder string, stats *types.RunStats) (string, error) {
	path := filepath.Join(folder, ManifestFileName)

	payload, err := json.MarshalIndent(manifest{
		RunStats:       *stats,
		ElapsedSeconds: stats.Elapsed.Seconds(),
	}, "", "  ")
	if err != nil {
		return "", types.NewAppError(types.ErrInternal, "unable to encode run summary", err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0644); err != nil {
		return "", types.NewAppError(types.ErrFilesystem,
			fmt.Sprintf("unable to write run summary %s", path), err)
	}
	return path, nil
}
