package store

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/activeflow/internal/config"
	"github.com/san-kum/activeflow/internal/sim"
	"github.com/san-kum/activeflow/internal/spectral"
)

func testResult(t *testing.T) (*config.Config, *spectral.Grid, *sim.Result) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Points = 4
	cfg.Iterations = 200

	grid, err := spectral.NewGrid(cfg.DomainLength, cfg.Points)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}

	snap := spectral.NewField(cfg.Points)
	snap[1][2] = complex(0.5, -1.25)

	result := &sim.Result{
		Monitor: []sim.MonitorRecord{
			{Iteration: 0, Time: 0, Tau: 1e-4, MaxSpeed: 0, EnergyK1: 0},
			{Iteration: 100, Time: 0.01, Tau: 2e-4, MaxSpeed: 3.5, EnergyK1: 1.25e-3},
			{Iteration: 200, Time: 0.03, Tau: 2.5e-4, MaxSpeed: 4.1, EnergyK1: 2.5e-3},
		},
		Snapshots: []sim.Snapshot{{Iteration: 0, Vorticity: snap}},
		Steps:     201,
		FinalTime: 0.03,
	}
	return cfg, grid, result
}

func TestSaveLayout(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	cfg, grid, result := testResult(t)
	runID, err := s.Save(cfg, grid, result)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("Save returned an empty run ID")
	}

	for _, rel := range []string{
		"metadata.json",
		filepath.Join("tables", "monitoring.csv"),
		filepath.Join("arrays", "operators", "x_grid.csv"),
		filepath.Join("arrays", "operators", "y_grid.csv"),
		filepath.Join("arrays", "operators", "k_x.csv"),
		filepath.Join("arrays", "operators", "k_y.csv"),
		filepath.Join("arrays", "snapshots", "vorticity_0000000.csv"),
	} {
		if _, err := os.Stat(filepath.Join(s.baseDir, runID, rel)); err != nil {
			t.Errorf("missing artifact %s: %v", rel, err)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	cfg, grid, result := testResult(t)
	runID, err := s.Save(cfg, grid, result)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	meta, err := s.Load(runID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if meta.ID != runID {
		t.Errorf("meta.ID = %q, want %q", meta.ID, runID)
	}
	if meta.Scheme != cfg.Scheme || meta.Points != cfg.Points {
		t.Errorf("meta = {Scheme: %q, Points: %d}, want {%q, %d}",
			meta.Scheme, meta.Points, cfg.Scheme, cfg.Points)
	}
	if meta.FinalTime != result.FinalTime || meta.Snapshots != 1 {
		t.Errorf("meta = {FinalTime: %g, Snapshots: %d}, want {%g, 1}",
			meta.FinalTime, meta.Snapshots, result.FinalTime)
	}

	monitor, err := s.LoadMonitor(runID)
	if err != nil {
		t.Fatalf("LoadMonitor failed: %v", err)
	}
	if len(monitor) != len(result.Monitor) {
		t.Fatalf("monitor rows = %d, want %d", len(monitor), len(result.Monitor))
	}
	for i, want := range result.Monitor {
		got := monitor[i]
		if got.Iteration != want.Iteration ||
			math.Abs(got.Tau-want.Tau) > 1e-15 ||
			math.Abs(got.EnergyK1-want.EnergyK1) > 1e-15 {
			t.Errorf("row %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestList(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	runs, err := s.List()
	if err != nil {
		t.Fatalf("List on empty store failed: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("empty store listed %d runs", len(runs))
	}

	cfg, grid, result := testResult(t)
	runID, err := s.Save(cfg, grid, result)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	runs, err = s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != runID {
		t.Errorf("List = %+v, want a single run %q", runs, runID)
	}
}

func TestListMissingBaseDir(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "never-created"))
	runs, err := s.List()
	if err != nil {
		t.Fatalf("List should tolerate a missing base dir, got %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}
