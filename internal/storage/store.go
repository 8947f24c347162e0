package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/fepmorph/internal/anim"
)

// Store keeps one directory per render run.
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
	ID         string    `json:"id"`
	Scheme     string    `json:"scheme"`
	Input      string    `json:"input"`
	Timestamp  time.Time `json:"timestamp"`
	Limit      float64   `json:"limit"`
	ShowWaters bool      `json:"show_waters"`
	Samples    int       `json:"samples"`
	Frames     int       `json:"frames"`
	OutputDir  string    `json:"output_dir"`
	Prefix     string    `json:"prefix"`
	Channels   []string  `json:"channels"`
	Archive    string    `json:"archive,omitempty"`
}

// Save writes metadata.json and channels.csv for a finished run and returns
// the run ID. ID and Timestamp of meta are filled in.
func (s *Store) Save(meta RunMetadata, result *anim.Result) (string, error) {
	meta.Timestamp = time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Scheme, meta.Timestamp.UnixMilli())
	meta.Frames = result.Frames
	meta.Channels = channelNames(result)

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
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

	csvFile, err := os.Create(filepath.Join(runDir, "channels.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(append([]string{"index", "lambda"}, meta.Channels...)); err != nil {
		return "", err
	}
	for i, lam := range result.Lambdas {
		index := i
		if i < len(result.Indices) {
			index = result.Indices[i]
		}
		row := []string{strconv.Itoa(index), strconv.FormatFloat(lam, 'f', 6, 64)}
		for _, name := range meta.Channels {
			vals := result.Channels[name]
			v := 0.0
			if i < len(vals) {
				v = vals[i]
			}
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

func channelNames(result *anim.Result) []string {
	names := make([]string, 0, len(result.Channels))
	for name := range result.Channels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns every readable run, oldest first.
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
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

// LoadChannels reads channels.csv back into the lambda column and one series
// per channel.
func (s *Store) LoadChannels(runID string) ([]float64, map[string][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "channels.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("run %s: empty channels file", runID)
	}

	header := records[0]
	if len(header) < 2 || header[0] != "index" || header[1] != "lambda" {
		return nil, nil, fmt.Errorf("run %s: unexpected channels header %v", runID, header)
	}
	lambdas := make([]float64, 0, len(records)-1)
	series := make(map[string][]float64, len(header)-2)
	for _, rec := range records[1:] {
		if _, err := strconv.Atoi(rec[0]); err != nil {
			return nil, nil, fmt.Errorf("run %s: %w", runID, err)
		}
		for j, field := range rec[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("run %s: %w", runID, err)
			}
			if j == 0 {
				lambdas = append(lambdas, v)
			} else {
				series[header[j+1]] = append(series[header[j+1]], v)
			}
		}
	}
	return lambdas, series, nil
}
