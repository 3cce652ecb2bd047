package tuning

import "github.com/TimurEke/AutoPas/options"

// ExternalBackend is the thin interface an outside optimizer plugs into
// ActiveHarmonyStrategy through. The original's Active Harmony
// integration talks to an external tuning server over a wire protocol
// that is explicitly a collaborator, not core (spec §1); this wrapper
// lets any external optimizer that can answer a suggest/report exchange
// stand in for it, without the core depending on a specific RPC stack.
type ExternalBackend interface {
	// Suggest asks the backend for the next configuration to try out of
	// space.
	Suggest(space []Configuration) Configuration
	// Report tells the backend how long the suggested configuration
	// actually took.
	Report(cfg Configuration, ns int64)
	// Done reports whether the backend considers its search finished.
	Done() bool
}

// ActiveHarmonyStrategy adapts an ExternalBackend to the Strategy
// contract (spec §4.6).
type ActiveHarmonyStrategy struct {
	backend ExternalBackend
	full    []Configuration
	space   []Configuration
	current Configuration
}

func NewActiveHarmonyStrategy(backend ExternalBackend, space []Configuration) *ActiveHarmonyStrategy {
	s := &ActiveHarmonyStrategy{backend: backend, full: append([]Configuration(nil), space...), space: append([]Configuration(nil), space...)}
	s.current = backend.Suggest(s.space)
	return s
}

func (s *ActiveHarmonyStrategy) CurrentConfiguration() Configuration { return s.current }

func (s *ActiveHarmonyStrategy) AddEvidence(ns int64, iteration int) {
	s.backend.Report(s.current, ns)
}

func (s *ActiveHarmonyStrategy) Tune(lastWasInvalid bool) bool {
	if lastWasInvalid {
		filtered := s.space[:0]
		for _, c := range s.space {
			if c != s.current {
				filtered = append(filtered, c)
			}
		}
		s.space = filtered
	}
	if s.backend.Done() {
		return false
	}
	s.current = s.backend.Suggest(s.space)
	return true
}

func (s *ActiveHarmonyStrategy) RemoveN3Option(opt options.Newton3Option) {
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
}

func (s *ActiveHarmonyStrategy) Reset(iteration int) {
	s.space = append([]Configuration(nil), s.full...)
	s.current = s.backend.Suggest(s.space)
}

var _ Strategy = (*ActiveHarmonyStrategy)(nil)
