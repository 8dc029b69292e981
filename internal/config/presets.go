package config

import "math"

// Presets mirror the reference sweep: a pi-sided 128^2 domain at injection
// ratios 1, 2 and 5, and a 4pi-sided 512^2 production variant.
var Presets = map[string]*Config{
	"reference": presetWith(math.Pi, 128, 1),
	"ratio2":    presetWith(math.Pi, 128, 2),
	"ratio5":    presetWith(math.Pi, 128, 5),
	"large":     presetWith(4*math.Pi, 512, 2),
}

func presetWith(length float64, points int, vRatio float64) *Config {
	cfg := DefaultConfig()
	cfg.DomainLength = length
	cfg.Points = points
	cfg.Iterations = 1000000
	cfg.Physical.VRatio = vRatio
	return cfg
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
