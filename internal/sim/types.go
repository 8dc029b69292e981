package sim

import "github.com/san-kum/activeflow/internal/spectral"

// Config controls a single run of the driver.
type Config struct {
	Tau           float64
	Iterations    int
	MonitorEvery  int
	SnapshotEvery int
}

// MonitorRecord is one row of the convergence table, appended every
// MonitorEvery iterations.
type MonitorRecord struct {
	Iteration int
	Time      float64
	Tau       float64
	MaxSpeed  float64
	EnergyK1  float64
}

// Snapshot pairs an iteration with a copy of the spectral vorticity field.
// Snapshots are never mutated after creation.
type Snapshot struct {
	Iteration int
	Vorticity spectral.Field
}

// Result accumulates everything a run hands to the caller for persistence.
type Result struct {
	Monitor   []MonitorRecord
	Snapshots []Snapshot
	Steps     int
	FinalTime float64
}

// Observer receives monitoring records as the run produces them, together
// with the real-space vorticity at that instant. Observers must not block:
// the stepping loop calls them synchronously.
type Observer interface {
	OnMonitor(rec MonitorRecord, vorticity [][]float64)
}
