/*Package container implements the five spatial storage strategies spec
§4.2 names: DirectSum, LinkedCells, ReferenceLinkedCells, VerletLists and
VerletClusterLists. LinkedCells and VerletLists wrap a cellblock.Grid,
ReferenceLinkedCells a bare cellblock.Geometry, DirectSum one owned and
one halo cell, and VerletClusterLists its own cluster towers. DirectSum,
LinkedCells and ReferenceLinkedCells run a traversal.Traversal per
configuration; VerletLists and VerletClusterLists iterate their own
neighbor structures. Alongside that: a neighbor.IDSet for O(1)
updateHalo lookups, and the skin/drift rebuild protocol common to every
Verlet-style variant.
*/
package container

import (
	"github.com/TimurEke/AutoPas/functor"
	"github.com/TimurEke/AutoPas/options"
	"github.com/TimurEke/AutoPas/particle"
)

// Container is the storage-strategy contract spec §4.2 lists: add,
// addHalo, updateHalo, deleteHalo, update (drift compaction),
// isUpdateNeeded, iterate, regionIterate, iteratePairwise and
// rebuildNeighborLists.
type Container interface {
	// Add inserts an owned particle. A position outside [boxMin,boxMax)
	// is a programmer error (spec §4.2 "Failure semantics").
	Add(p particle.Particle)

	// AddHalo inserts a halo particle. A position inside [boxMin,boxMax)
	// is a programmer error.
	AddHalo(p particle.Particle)

	// UpdateHalo looks up the halo particle with p's id via the
	// container's neighbor.IDSet and, if found, overwrites its position,
	// velocity and force with p's; returns whether a match was found.
	UpdateHalo(p particle.Particle) bool

	// DeleteHalo clears every halo particle and the associated IDSet.
	DeleteHalo()

	// IterateHalo calls f for every halo particle (spec §6 "Iterator
	// behavior flags").
	IterateHalo(f func(particle.Particle))

	// Update re-sorts owned particles into the cells matching their
	// current position (a particle may have drifted across a cell
	// boundary since the last build) and returns every particle that
	// drifted outside [boxMin,boxMax) entirely, removing them from the
	// container (spec §8 invariant 5: each leaver reported exactly once).
	Update() []particle.Particle

	// IsUpdateNeeded reports whether any owned particle has drifted more
	// than skin/2 since the neighbor structure was last built, or the
	// rebuild-frequency counter has reached zero (spec §4.5).
	IsUpdateNeeded() bool

	// Iterate calls f for every owned particle, skipping dummies unless
	// includeDummies is set.
	Iterate(includeDummies bool, f func(particle.Particle))

	// RegionIterate calls f for every owned particle whose position lies
	// in the closed interval [lo,hi], skipping dummies unless
	// includeDummies is set (spec §8 invariant 6).
	RegionIterate(lo, hi [3]float64, includeDummies bool, f func(particle.Particle))

	// IteratePairwise runs one pairwise traversal under the given
	// functor, data layout and Newton-3 policy (spec §4.2, §4.3).
	// An incompatible traversal/layout/Newton-3 combination is
	// unrecoverable (spec §4.2 "Failure semantics").
	IteratePairwise(f functor.Functor, traversalType options.TraversalOption, layout options.DataLayoutOption, newton3 bool)

	// RebuildNeighborLists rebuilds whatever per-particle neighbor
	// structure this container variant relies on (a no-op for DirectSum
	// and LinkedCells, which have none); idempotent if nothing has moved
	// since the previous rebuild (spec §8 invariant 4).
	RebuildNeighborLists()

	ContainerType() options.ContainerOption
}
