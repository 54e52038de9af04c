package trace

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Store persists recorded runs under a base directory, one subdirectory per
// run holding metadata.json and values.csv.
type Store struct {
	baseDir string
}

func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Timestamp  time.Time `json:"timestamp"`
	FrameMs    float64   `json:"frame_ms"`
	DurationMs float64   `json:"duration_ms"`
	MaxSpeed   float64   `json:"max_speed"`
	Axes       []string  `json:"axes"`
	Frames     int       `json:"frames"`
}

func (s *Store) Save(name string, frameMs, durationMs, maxSpeed float64, rec *Recorder) (string, error) {
	runID := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Name:       name,
		Timestamp:  time.Now(),
		FrameMs:    frameMs,
		DurationMs: durationMs,
		MaxSpeed:   maxSpeed,
		Axes:       rec.Names(),
		Frames:     rec.Len(),
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

	csvFile, err := os.Create(filepath.Join(runDir, "values.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := rec.WriteCSV(csvFile); err != nil {
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

// LoadSeries reads a saved values.csv back into per-axis series keyed by
// the header names, plus the shared time column.
func (s *Store) LoadSeries(runID string) (map[string][]float64, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "values.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 1 {
		return map[string][]float64{}, []float64{}, nil
	}

	header := records[0]
	if len(header) < 1 || header[0] != "time_ms" {
		return nil, nil, fmt.Errorf("trace: malformed csv header in run %s", runID)
	}

	times := make([]float64, 0, len(records)-1)
	series := make(map[string][]float64, len(header)-1)
	for _, name := range header[1:] {
		series[name] = make([]float64, 0, len(records)-1)
	}

	for _, record := range records[1:] {
		if len(record) != len(header) {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		times = append(times, t)

		for i, name := range header[1:] {
			v, err := strconv.ParseFloat(record[i+1], 64)
			if err != nil {
				v = 0
			}
			series[name] = append(series[name], v)
		}
	}

	return series, times, nil
}
