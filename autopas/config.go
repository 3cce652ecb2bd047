package autopas

import (
	"fmt"

	"gopkg.in/gcfg.v1"

	"github.com/TimurEke/AutoPas/apierror"
	"github.com/TimurEke/AutoPas/options"
)

// ExampleConfigFile documents the gcfg-flavored ini file LoadConfigFile
// reads, the way the pack's render/io/config.go ships an
// ExampleRenderFile constant alongside its config struct.
const ExampleConfigFile = `[Simulation]

BoxMinX = 0
BoxMinY = 0
BoxMinZ = 0
BoxMaxX = 10
BoxMaxY = 10
BoxMaxZ = 10

Cutoff = 2.5
VerletSkin = 0.2
VerletRebuildFrequency = 10
VerletClusterSize = 4
Threads = 4

[Tuning]

# One of full-search, full-search-mpi, predictive, bayesian-search,
# active-harmony.
Strategy = full-search
SelectorStrategy = fastestMean
NumSamples = 3
TuningInterval = 100

# Sequence-format range string (options.ExpandFloat64Sequence):
# a comma list, a "start..end[:step]" range, or a mix of both.
AllowedCellSizeFactors = 0.8..1.2:0.1
`

type fileConfig struct {
	Simulation struct {
		BoxMinX, BoxMinY, BoxMinZ float64
		BoxMaxX, BoxMaxY, BoxMaxZ float64
		Cutoff                    float64
		VerletSkin                float64
		VerletRebuildFrequency    int
		VerletClusterSize         int
		Threads                   int
	}
	Tuning struct {
		Strategy               string
		SelectorStrategy       string
		NumSamples             int
		TuningInterval         int
		AllowedCellSizeFactors string
	}
}

// LoadConfigFile builds an AutoPas façade from a gcfg-flavored ini file
// (spec §6 "Consumed from user code"): box, cutoff, skin and tuning
// parameters are read from the file, the way the pack's render/io and
// design/io config.go files load a simulation's run parameters.
// Tuning.AllowedCellSizeFactors is a sequence-format range string,
// expanded through options.ExpandFloat64Sequence the way the pack's
// ExpandSequenceFormat turns a compact range string into an explicit
// list. The caller still owns the functor and must call Init itself,
// since a functor's physics is never something a config file can name.
func LoadConfigFile(path string) (*AutoPas, error) {
	var fc fileConfig
	if err := gcfg.ReadFileInto(&fc, path); err != nil {
		return nil, fmt.Errorf("LoadConfigFile: %w", err)
	}

	a := New()
	a.SetBoxMin([3]float64{fc.Simulation.BoxMinX, fc.Simulation.BoxMinY, fc.Simulation.BoxMinZ})
	a.SetBoxMax([3]float64{fc.Simulation.BoxMaxX, fc.Simulation.BoxMaxY, fc.Simulation.BoxMaxZ})
	a.SetCutoff(fc.Simulation.Cutoff)
	a.SetVerletSkin(fc.Simulation.VerletSkin)
	if fc.Simulation.VerletRebuildFrequency > 0 {
		a.SetVerletRebuildFrequency(fc.Simulation.VerletRebuildFrequency)
	}
	if fc.Simulation.VerletClusterSize > 0 {
		a.SetVerletClusterSize(fc.Simulation.VerletClusterSize)
	}
	if fc.Simulation.Threads > 0 {
		a.SetThreads(fc.Simulation.Threads)
	}

	strategy, err := parseTuningStrategy(fc.Tuning.Strategy)
	if err != nil {
		return nil, err
	}
	a.SetTuningStrategyOption(strategy)

	if fc.Tuning.SelectorStrategy != "" {
		sel, err := parseSelectorStrategy(fc.Tuning.SelectorStrategy)
		if err != nil {
			return nil, err
		}
		a.SetSelectorStrategy(sel)
	}
	if fc.Tuning.NumSamples > 0 {
		a.SetNumSamples(fc.Tuning.NumSamples)
	}
	if fc.Tuning.TuningInterval > 0 {
		a.SetTuningInterval(fc.Tuning.TuningInterval)
	}
	if fc.Tuning.AllowedCellSizeFactors != "" {
		factors, err := options.ExpandFloat64Sequence(fc.Tuning.AllowedCellSizeFactors)
		if err != nil {
			return nil, fmt.Errorf("LoadConfigFile: Tuning.AllowedCellSizeFactors: %w", err)
		}
		a.SetAllowedCellSizeFactors(factors)
	}
	return a, nil
}

func parseTuningStrategy(s string) (options.TuningStrategyOption, error) {
	switch s {
	case "", options.TuningFullSearch.String():
		return options.TuningFullSearch, nil
	case options.TuningFullSearchMPI.String():
		return options.TuningFullSearchMPI, nil
	case options.TuningPredictive.String():
		return options.TuningPredictive, nil
	case options.TuningBayesian.String():
		return options.TuningBayesian, nil
	case options.TuningActiveHarmony.String():
		return options.TuningActiveHarmony, nil
	default:
		return 0, apierror.NewExternal("LoadConfigFile: unknown Tuning.Strategy %q", s)
	}
}

func parseSelectorStrategy(s string) (options.SelectorStrategyOption, error) {
	switch s {
	case options.FastestAbs.String():
		return options.FastestAbs, nil
	case options.FastestMean.String():
		return options.FastestMean, nil
	default:
		return 0, apierror.NewExternal("LoadConfigFile: unknown Tuning.SelectorStrategy %q", s)
	}
}
