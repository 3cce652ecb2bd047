package autopas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/TimurEke/AutoPas/options"
)

func TestLoadConfigFileParsesScalarFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autopas.cfg")
	if err := os.WriteFile(path, []byte(ExampleConfigFile), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	a, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if a.boxMax != [3]float64{10, 10, 10} {
		t.Errorf("expected boxMax {10,10,10}, got %v", a.boxMax)
	}
	if a.cutoff != 2.5 {
		t.Errorf("expected cutoff 2.5, got %v", a.cutoff)
	}
	if a.tuningStrategyOption != options.TuningFullSearch {
		t.Errorf("expected tuning strategy full-search, got %v", a.tuningStrategyOption)
	}
}

func TestLoadConfigFileExpandsAllowedCellSizeFactors(t *testing.T) {
	contents := ExampleConfigFile + "\n"
	path := filepath.Join(t.TempDir(), "autopas.cfg")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	a, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	want := []float64{0.8, 0.9, 1.0, 1.1, 1.2}
	if len(a.allowedCellSizeFactors) != len(want) {
		t.Fatalf("expected %d allowed cell size factors, got %v", len(want), a.allowedCellSizeFactors)
	}
	for i, v := range want {
		if a.allowedCellSizeFactors[i] != v {
			t.Errorf("index %d: expected %v, got %v", i, v, a.allowedCellSizeFactors[i])
		}
	}
}

func TestLoadConfigFileRejectsUnknownTuningStrategy(t *testing.T) {
	contents := `[Simulation]
BoxMaxX = 1
BoxMaxY = 1
BoxMaxZ = 1
Cutoff = 1.0
VerletSkin = 0.1

[Tuning]
Strategy = not-a-real-strategy
`
	path := filepath.Join(t.TempDir(), "autopas.cfg")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if _, err := LoadConfigFile(path); err == nil {
		t.Error("expected an error for an unrecognized Tuning.Strategy")
	}
}
