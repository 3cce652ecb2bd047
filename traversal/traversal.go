/*Package traversal implements the scheduling orders spec §4.4 lists
under TraversalOption: c08, c18, sliced, balancedSliced and the trivial
direct-sum traversal. Each is pure coordinate math over a
*cellblock.Geometry plus two caller-supplied closures, so the exact same
scheduling code drives both owned-storage cell.Cell grids and
reference-storage cell.ReferenceCell grids (spec §9
"reference vs owned particle storage") without duplication. Verlet-list
and cluster traversals are not here: their task lists are built from
neighbor-list/tower state private to package container, so those
traversals are defined there, against this package's Traversal
interface.
*/
package traversal

import "github.com/TimurEke/AutoPas/options"

// Traversal is the contract every scheduling order satisfies (spec
// §4.4). A container calls InitTraversal once, then
// TraverseParticlePairs, then EndTraversal, for each call to
// iteratePairwise.
type Traversal interface {
	// IsApplicable reports whether this traversal can run at all given
	// the container's current geometry (e.g. c08 needs every owned
	// dimension to be at least 1 cell wide, sliced needs at least as
	// many owned slabs along its cut axis as it has threads to be
	// useful).
	IsApplicable() bool

	// InitTraversal runs any data-layout conversion needed before the
	// pairwise loop (SoA load).
	InitTraversal()

	// TraverseParticlePairs runs every self-cell and cell-pair task this
	// traversal schedules.
	TraverseParticlePairs()

	// EndTraversal runs any data-layout conversion needed after the
	// pairwise loop (SoA extract).
	EndTraversal()

	DataLayout() options.DataLayoutOption
	UseNewton3() bool
	TraversalType() options.TraversalOption
}
