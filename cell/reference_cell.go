package cell

import (
	"sync"

	"github.com/TimurEke/AutoPas/functor"
	"github.com/TimurEke/AutoPas/particle"
	"github.com/TimurEke/AutoPas/soa"
)

// ParticleStore is the single backing vector ReferenceCells index into
// (spec §9 "Reference vs owned particle storage": "a cell that borrows
// references into a central vector"). It exposes a Dirty flag: once set,
// every ReferenceCell's index list is stale and must be rebuilt in bulk
// before the next iteration (spec §4.2, ReferenceLinkedCells).
type ParticleStore struct {
	mu        sync.Mutex
	particles []particle.Particle
	dirty     bool
}

// NewParticleStore builds an empty backing store.
func NewParticleStore() *ParticleStore {
	return &ParticleStore{}
}

// Append adds p to the store and marks it dirty, returning p's index.
func (s *ParticleStore) Append(p particle.Particle) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.particles = append(s.particles, p)
	s.dirty = true
	return len(s.particles) - 1
}

// At returns the particle at index i.
func (s *ParticleStore) At(i int) particle.Particle { return s.particles[i] }

// Len returns the number of particles in the store.
func (s *ParticleStore) Len() int { return len(s.particles) }

// All returns the backing slice directly; callers must not retain it
// across a call that mutates the store.
func (s *ParticleStore) All() []particle.Particle { return s.particles }

// Dirty reports whether the store has changed membership since the last
// ClearDirty call.
func (s *ParticleStore) Dirty() bool { return s.dirty }

// ClearDirty marks the store as no longer dirty, called once every
// ReferenceCell's index list has been rebuilt against the current
// membership.
func (s *ParticleStore) ClearDirty() { s.dirty = false }

// Compact rewrites the backing vector keeping only the particles for
// which keep returns true, and marks the store dirty. Returns the
// mapping from old index to new index (-1 if removed), so callers that
// hold onto indices elsewhere (e.g. neighbor lists) can translate them.
func (s *ParticleStore) Compact(keep func(particle.Particle) bool) []int {
	oldToNew := make([]int, len(s.particles))
	out := s.particles[:0]
	for i, p := range s.particles {
		if keep(p) {
			oldToNew[i] = len(out)
			out = append(out, p)
		} else {
			oldToNew[i] = -1
		}
	}
	s.particles = out
	s.dirty = true
	return oldToNew
}

// ReferenceCell is a cell that borrows indices into a shared
// ParticleStore instead of owning copies, avoiding a copy on every
// whole-domain resort (spec §9). It has no dirty flag of its own:
// Rebuild() must be called whenever the store reports Dirty() before the
// cell's index list can be trusted.
type ReferenceCell struct {
	store   *ParticleStore
	indices []int
	buf     *soa.Buffer
}

// NewReferenceCell builds an empty reference cell over store.
func NewReferenceCell(store *ParticleStore) *ReferenceCell {
	return &ReferenceCell{store: store}
}

// AddIndex records that the particle at store index idx belongs to this
// cell.
func (c *ReferenceCell) AddIndex(idx int) {
	c.indices = append(c.indices, idx)
}

// Reset clears this cell's index list (used when rebuilding in bulk).
func (c *ReferenceCell) Reset() { c.indices = c.indices[:0] }

// Size returns the number of particles (including dummies) referenced by
// this cell.
func (c *ReferenceCell) Size() int { return len(c.indices) }

// Iterate calls f for every non-dummy particle referenced by this cell,
// unless includeDummies is set.
func (c *ReferenceCell) Iterate(includeDummies bool, f func(particle.Particle)) {
	for _, idx := range c.indices {
		p := c.store.At(idx)
		if p.IsDummy() && !includeDummies {
			continue
		}
		f(p)
	}
}

// Particles materializes the referenced particles as a slice, for code
// that needs AoS-style random access (e.g. CellFunctor's inner loops).
func (c *ReferenceCell) Particles() []particle.Particle {
	out := make([]particle.Particle, len(c.indices))
	for i, idx := range c.indices {
		out[i] = c.store.At(idx)
	}
	return out
}

// LoadSoA gathers f's required attributes from the referenced particles
// into a fresh SoA buffer.
func (c *ReferenceCell) LoadSoA(f functor.Functor) *soa.Buffer {
	c.buf = soa.NewBuffer()
	c.buf.Load(c.Particles(), f.RequiredAttributes())
	return c.buf
}

func (c *ReferenceCell) SoABuffer() *soa.Buffer { return c.buf }

// ExtractSoA scatters f's computed attributes back to the referenced
// particles and detaches the buffer.
func (c *ReferenceCell) ExtractSoA(f functor.Functor) {
	if c.buf == nil {
		return
	}
	c.buf.Extract(c.Particles(), f.ComputedAttributes())
	c.buf = nil
}
