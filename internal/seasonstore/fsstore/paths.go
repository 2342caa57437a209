package fsstore

import (
	"fmt"
	"path/filepath"
)

const (
	seasonsDir       = "seasons"
	combinedFileName = "combined.json"
	manifestFileName = "manifest.json"
)

// SeasonPath builds the path to a season's cleaned record file.
func SeasonPath(basePath string, season int) string {
	return filepath.Join(basePath, seasonsDir, fmt.Sprintf("%d.json", season))
}

// CombinedPath builds the path to the multi-season collection.
func CombinedPath(basePath string) string {
	return filepath.Join(basePath, combinedFileName)
}

// ManifestPath builds the path to the store manifest.
func ManifestPath(basePath string) string {
	return filepath.Join(basePath, manifestFileName)
}
