// Package export persists integration results as a run directory with
// metadata and one CSV per sampler key.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/waveprop/internal/field"
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
	ID          string    `json:"id"`
	Scenario    string    `json:"scenario"`
	Timestamp   time.Time `json:"timestamp"`
	Stepper     string    `json:"stepper"`
	Step        float64   `json:"step"`
	PStart      float64   `json:"p_start"`
	PEnd        float64   `json:"p_end"`
	SamplerKeys []string  `json:"sampler_keys"`
}

// Save writes metadata.json plus <key>.csv per sampler result. Each CSV
// row is one sampled propagation coordinate followed by the real parts
// of the field values at that coordinate.
func (s *Store) Save(scenario, stepperKind string, step, pStart, pEnd float64, results map[string]*field.Field) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	keys := make([]string, 0, len(results))
	for key := range results {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	meta := RunMetadata{
		ID:          runID,
		Scenario:    scenario,
		Timestamp:   time.Now(),
		Stepper:     stepperKind,
		Step:        step,
		PStart:      pStart,
		PEnd:        pEnd,
		SamplerKeys: keys,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	for _, key := range keys {
		if err := writeResultCSV(filepath.Join(runDir, key+".csv"), results[key]); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func writeResultCSV(path string, result *field.Field) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if len(result.Dims) == 0 {
		return w.Write([]string{strconv.FormatFloat(real(result.Data.Data[0]), 'f', 6, 64)})
	}

	axis := result.Dims[0]
	inner := result.Data.Size() / axis.Size()

	header := []string{axis.Name}
	if len(result.Dims) > 1 {
		for j := 0; j < inner; j++ {
			header = append(header, fmt.Sprintf("%s%d", result.Dims[1].Name, j))
		}
	} else {
		header = append(header, "value")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := 0; i < axis.Size(); i++ {
		row := []string{strconv.FormatFloat(axis.Grid[i], 'f', 6, 64)}
		if len(result.Dims) > 1 {
			for j := 0; j < inner; j++ {
				row = append(row, strconv.FormatFloat(real(result.Data.Data[i*inner+j]), 'f', 6, 64))
			}
		} else {
			row = append(row, strconv.FormatFloat(real(result.Data.Data[i]), 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// List returns metadata for every saved run, newest last.
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
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}
