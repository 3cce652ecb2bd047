/*Package cell implements the bounded particle collection containers are
built from: a mutable, thread-safe bag of particles with an attached SoA
buffer (spec §3 "Cell", §4.1).
*/
package cell

import (
	"sort"
	"sync"

	"github.com/TimurEke/AutoPas/functor"
	"github.com/TimurEke/AutoPas/particle"
	"github.com/TimurEke/AutoPas/soa"
)

// Cell is a thread-safe bag of particles plus a lazily-attached SoA
// buffer. Concurrent Add is safe under the internal mutex (spec §4.1,
// §5). While the SoA buffer is live the AoS contents are considered
// stale for the attributes the functor marked computed, until Extract
// scatters them back.
type Cell struct {
	mu        sync.Mutex
	particles []particle.Particle
	buf       *soa.Buffer
}

// New builds an empty cell.
func New() *Cell {
	return &Cell{}
}

// Add appends p to the cell. Safe for concurrent use.
func (c *Cell) Add(p particle.Particle) {
	c.mu.Lock()
	c.particles = append(c.particles, p)
	c.mu.Unlock()
}

// Size returns the total number of particles in the cell, including
// dummies.
func (c *Cell) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.particles)
}

// ActiveSize returns the number of non-dummy particles in the cell.
func (c *Cell) ActiveSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, p := range c.particles {
		if !p.IsDummy() {
			n++
		}
	}
	return n
}

// Particles returns the cell's backing slice directly. Callers that only
// read (a traversal's AoS inner loop) may use this without locking,
// matching the single-writer-per-task contract of spec §5; callers that
// mutate membership must go through Add / Clear / Compact instead.
func (c *Cell) Particles() []particle.Particle {
	return c.particles
}

// Iterate calls f for every particle in the cell in insertion order.
// Dummies are skipped unless includeDummies is true (spec §3: "iterators
// skip [dummies] unless explicitly requested").
func (c *Cell) Iterate(includeDummies bool, f func(particle.Particle)) {
	for _, p := range c.particles {
		if p.IsDummy() && !includeDummies {
			continue
		}
		f(p)
	}
}

// Clear empties the cell and drops any attached SoA buffer.
func (c *Cell) Clear() {
	c.mu.Lock()
	c.particles = c.particles[:0]
	c.buf = nil
	c.mu.Unlock()
}

// RemoveDummies compacts out every dummy particle, preserving relative
// order of the survivors.
func (c *Cell) RemoveDummies() {
	out := c.particles[:0]
	for _, p := range c.particles {
		if !p.IsDummy() {
			out = append(out, p)
		}
	}
	c.particles = out
}

// Compact removes every particle for which remove returns true,
// preserving the relative order of the survivors, and returns the
// removed particles. Used by container.Update to pull drifted and
// departed particles out of a cell in one pass (spec §8 invariant 5).
func (c *Cell) Compact(remove func(particle.Particle) bool) []particle.Particle {
	c.mu.Lock()
	defer c.mu.Unlock()
	var removed []particle.Particle
	out := c.particles[:0]
	for _, p := range c.particles {
		if remove(p) {
			removed = append(removed, p)
		} else {
			out = append(out, p)
		}
	}
	c.particles = out
	return removed
}

// SortByAxis stably sorts the cell's particles by the given coordinate
// (0=x, 1=y, 2=z), ascending. Used by VerletClusterLists to build
// z-sorted towers (spec §3 "Cluster / ClusterTower"); does not change
// membership.
func (c *Cell) SortByAxis(axis int) {
	sort.SliceStable(c.particles, func(i, j int) bool {
		return c.particles[i].GetPosition()[axis] < c.particles[j].GetPosition()[axis]
	})
}

// LoadSoA gathers the attributes f declares as required into a fresh SoA
// buffer attached to the cell, returning it (spec §4.1).
func (c *Cell) LoadSoA(f functor.Functor) *soa.Buffer {
	c.buf = soa.NewBuffer()
	c.buf.Load(c.particles, f.RequiredAttributes())
	return c.buf
}

// SoABuffer returns the cell's currently-attached SoA buffer, or nil if
// LoadSoA hasn't been called since the last Clear/ExtractSoA.
func (c *Cell) SoABuffer() *soa.Buffer { return c.buf }

// ExtractSoA scatters the attributes f declares as computed from the
// attached SoA buffer back into the cell's particles, then detaches the
// buffer (spec §4.1).
func (c *Cell) ExtractSoA(f functor.Functor) {
	if c.buf == nil {
		return
	}
	c.buf.Extract(c.particles, f.ComputedAttributes())
	c.buf = nil
}
