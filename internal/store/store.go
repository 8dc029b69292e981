// Package store persists run artifacts to the local filesystem: metadata,
// the monitoring table, the immutable operator grids and every vorticity
// snapshot, each addressable by name under the run directory.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/activeflow/internal/config"
	"github.com/san-kum/activeflow/internal/sim"
	"github.com/san-kum/activeflow/internal/spectral"
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
	Scheme       string    `json:"scheme"`
	Timestamp    time.Time `json:"timestamp"`
	Seed         int64     `json:"seed"`
	DomainLength float64   `json:"domain_length"`
	Points       int       `json:"points"`
	Courant      float64   `json:"courant"`
	Tau          float64   `json:"tau"`
	Iterations   int       `json:"iterations"`
	FinalTime    float64   `json:"final_time"`
	Snapshots    int       `json:"snapshots"`
}

var monitorHeader = []string{"iteration", "simulation_time", "tau", "max_velocity", "energy_at_k1"}

func (s *Store) Save(cfg *config.Config, grid *spectral.Grid, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", cfg.Scheme, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:           runID,
		Scheme:       cfg.Scheme,
		Timestamp:    time.Now(),
		Seed:         cfg.Seed,
		DomainLength: cfg.DomainLength,
		Points:       cfg.Points,
		Courant:      cfg.Courant,
		Tau:          cfg.Tau,
		Iterations:   cfg.Iterations,
		FinalTime:    result.FinalTime,
		Snapshots:    len(result.Snapshots),
	}
	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	if err := s.writeMonitor(runDir, result.Monitor); err != nil {
		return "", err
	}

	operators := map[string][][]float64{
		"x_grid": grid.X,
		"y_grid": grid.Y,
		"k_x":    grid.Kx,
		"k_y":    grid.Ky,
	}
	for name, data := range operators {
		path := filepath.Join(runDir, "arrays", "operators", name+".csv")
		if err := writeRealArray(path, data); err != nil {
			return "", err
		}
	}

	for _, snap := range result.Snapshots {
		name := fmt.Sprintf("vorticity_%07d.csv", snap.Iteration)
		path := filepath.Join(runDir, "arrays", "snapshots", name)
		if err := writeComplexArray(path, snap.Vorticity); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) writeMonitor(runDir string, monitor []sim.MonitorRecord) error {
	dir := filepath.Join(runDir, "tables")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	file, err := os.Create(filepath.Join(dir, "monitoring.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write(monitorHeader); err != nil {
		return err
	}
	for _, rec := range monitor {
		row := []string{
			strconv.Itoa(rec.Iteration),
			strconv.FormatFloat(rec.Time, 'g', -1, 64),
			strconv.FormatFloat(rec.Tau, 'g', -1, 64),
			strconv.FormatFloat(rec.MaxSpeed, 'g', -1, 64),
			strconv.FormatFloat(rec.EnergyK1, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
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

// LoadMonitor reads a run's monitoring table back into records.
func (s *Store) LoadMonitor(runID string) ([]sim.MonitorRecord, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "tables", "monitoring.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return []sim.MonitorRecord{}, nil
	}

	monitor := make([]sim.MonitorRecord, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 5 {
			continue
		}
		iteration, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		simTime, _ := strconv.ParseFloat(record[1], 64)
		tau, _ := strconv.ParseFloat(record[2], 64)
		maxSpeed, _ := strconv.ParseFloat(record[3], 64)
		energy, _ := strconv.ParseFloat(record[4], 64)
		monitor = append(monitor, sim.MonitorRecord{
			Iteration: iteration,
			Time:      simTime,
			Tau:       tau,
			MaxSpeed:  maxSpeed,
			EnergyK1:  energy,
		})
	}
	return monitor, nil
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

func writeRealArray(path string, data [][]float64) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	row := make([]string, 0)
	for i := range data {
		row = row[:0]
		for _, v := range data[i] {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeComplexArray(path string, data spectral.Field) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	row := make([]string, 0)
	for i := range data {
		row = row[:0]
		for _, v := range data[i] {
			row = append(row, strconv.FormatComplex(v, 'g', -1, 128))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
