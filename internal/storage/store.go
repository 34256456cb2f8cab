// Package storage persists simulation runs under a data directory, one
// subdirectory per run holding metadata and the detected trace.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/san-kum/spinsim/internal/ensemble"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID           string    `json:"id"`
	Sequence     string    `json:"sequence"`
	Timestamp    time.Time `json:"timestamp"`
	Distribution string    `json:"distribution"`
	Width        float64   `json:"width"`
	Samples      int       `json:"samples"`
	Points       int       `json:"points"`
	EchoTime     float64   `json:"echo_time"`
	EchoAmp      float64   `json:"echo_amp"`
}

type runData struct {
	Time []float64 `json:"time"`
	Sx   []float64 `json:"sx"`
	Sy   []float64 `json:"sy"`
	Sz   []float64 `json:"sz"`
}

// Save stores a run and returns its id.
func (s *Store) Save(name string, dist ensemble.Distribution, echoTime, echoAmp float64, result *ensemble.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", sanitize(name), time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:           runID,
		Sequence:     name,
		Timestamp:    time.Now(),
		Distribution: string(dist.Kind),
		Width:        dist.Width,
		Samples:      dist.Samples,
		Points:       result.Points(),
		EchoTime:     echoTime,
		EchoAmp:      echoAmp,
	}
	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	data := runData{Time: result.Time, Sx: result.Sx, Sy: result.Sy, Sz: result.Sz}
	if err := writeJSON(filepath.Join(runDir, "trace.json"), data); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrace reads a stored run back as a result.
func (s *Store) LoadTrace(runID string) (*ensemble.Result, error) {
	raw, err := os.ReadFile(filepath.Join(s.baseDir, runID, "trace.json"))
	if err != nil {
		return nil, err
	}
	var data runData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &ensemble.Result{Time: data.Time, Sx: data.Sx, Sy: data.Sy, Sz: data.Sz}, nil
}

func writeJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// sanitize keeps run ids filesystem safe.
func sanitize(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
