package fsstore

import (
	"encoding/json"
	"os"
	"time"
)

// Manifest tracks which seasons are on disk and when they were last written.
type Manifest struct {
	Version     int          `json:"version"`
	GeneratedAt time.Time    `json:"generatedAt"`
	Seasons     []SeasonMeta `json:"seasons"`
	Combined    CombinedMeta `json:"combined"`
}

// SeasonMeta describes one stored season.
type SeasonMeta struct {
	Season      int       `json:"season"`
	Records     int       `json:"records"`
	LastWritten time.Time `json:"lastWritten"`
}

// CombinedMeta describes the stored multi-season collection.
type CombinedMeta struct {
	Seasons     []int     `json:"seasons"`
	Records     int       `json:"records"`
	LastWritten time.Time `json:"lastWritten"`
}

func defaultManifest() Manifest {
	return Manifest{
		Version:     1,
		GeneratedAt: time.Now().UTC(),
		Seasons:     []SeasonMeta{},
		Combined:    CombinedMeta{Seasons: []int{}},
	}
}

// ReadManifest loads the manifest under basePath. A missing or unreadable
// manifest yields an empty one alongside the error.
func ReadManifest(basePath string) (Manifest, error) {
	f, err := os.Open(ManifestPath(basePath))
	if err != nil {
		return defaultManifest(), err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(), err
	}
	return m, nil
}

func writeManifest(basePath string, m Manifest) error {
	m.GeneratedAt = time.Now().UTC()
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(ManifestPath(basePath), data)
}

func (m *Manifest) upsertSeason(meta SeasonMeta) {
	for i := range m.Seasons {
		if m.Seasons[i].Season == meta.Season {
			m.Seasons[i] = meta
			return
		}
	}
	m.Seasons = append(m.Seasons, meta)
}
