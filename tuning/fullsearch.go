package tuning

import (
	"github.com/TimurEke/AutoPas/apierror"
	"github.com/TimurEke/AutoPas/options"
)

// FullSearch enumerates the whole compatible search space, collects
// numSamples evidence per configuration, then commits to the min-mean
// (or min-absolute) winner (spec §4.6 "FullSearch").
type FullSearch struct {
	full       []Configuration
	space      []Configuration
	idx        int
	numSamples int
	selector   options.SelectorStrategyOption
	evidence   map[Configuration][]Evidence
}

// NewFullSearch builds a FullSearch strategy over space, which must
// already be filtered by compatibility (see BuildSearchSpace).
func NewFullSearch(space []Configuration, numSamples int, selector options.SelectorStrategyOption) *FullSearch {
	if len(space) == 0 {
		apierror.External("FullSearch: the configuration space is empty after filtering by compatibility")
	}
	cp := append([]Configuration(nil), space...)
	return &FullSearch{
		full:       cp,
		space:      append([]Configuration(nil), cp...),
		numSamples: numSamples,
		selector:   selector,
		evidence:   make(map[Configuration][]Evidence),
	}
}

func (s *FullSearch) CurrentConfiguration() Configuration { return s.space[s.idx] }

func (s *FullSearch) AddEvidence(ns int64, iteration int) {
	cfg := s.CurrentConfiguration()
	s.evidence[cfg] = append(s.evidence[cfg], Evidence{Iteration: iteration, Ns: ns})
}

// Tune advances to the next configuration once numSamples evidence has
// been collected for the current one; once every configuration has been
// sampled it collapses the space to the single winner and reports done.
func (s *FullSearch) Tune(lastWasInvalid bool) bool {
	if lastWasInvalid {
		s.space = append(s.space[:s.idx], s.space[s.idx+1:]...)
		if len(s.space) == 0 {
			apierror.External("FullSearch: every configuration turned out invalid this phase")
		}
		if s.idx >= len(s.space) {
			s.idx = 0
		}
		return true
	}
	if len(s.evidence[s.CurrentConfiguration()]) < s.numSamples {
		return true
	}
	s.idx++
	if s.idx < len(s.space) {
		return true
	}
	best := s.pickBest()
	s.space = []Configuration{best}
	s.idx = 0
	return false
}

func (s *FullSearch) pickBest() Configuration {
	if len(s.evidence) == 0 {
		apierror.Internal("FullSearch.pickBest called with no evidence collected")
	}
	var best Configuration
	bestScore := int64(-1)
	for _, cfg := range s.space {
		samples := s.evidence[cfg]
		if len(samples) == 0 {
			continue
		}
		var score int64
		switch s.selector {
		case options.FastestAbs:
			score = samples[0].Ns
			for _, e := range samples {
				if e.Ns < score {
					score = e.Ns
				}
			}
		default: // FastestMean
			var sum int64
			for _, e := range samples {
				sum += e.Ns
			}
			score = sum / int64(len(samples))
		}
		if bestScore < 0 || score < bestScore {
			bestScore = score
			best = cfg
		}
	}
	return best
}

func (s *FullSearch) RemoveN3Option(opt options.Newton3Option) {
	filter := func(list []Configuration) []Configuration {
		out := list[:0]
		for _, c := range list {
			if c.Newton3 != opt {
				out = append(out, c)
			}
		}
		return out
	}
	s.full = filter(s.full)
	s.space = filter(s.space)
	if s.idx >= len(s.space) {
		s.idx = 0
	}
}

func (s *FullSearch) Reset(iteration int) {
	s.space = append([]Configuration(nil), s.full...)
	s.idx = 0
	s.evidence = make(map[Configuration][]Evidence)
}

var _ Strategy = (*FullSearch)(nil)
