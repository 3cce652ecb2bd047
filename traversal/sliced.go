package traversal

import (
	"sync"

	"github.com/TimurEke/AutoPas/cellblock"
	"github.com/TimurEke/AutoPas/cellfunctor"
	"github.com/TimurEke/AutoPas/options"
	"github.com/TimurEke/AutoPas/thread"
)

// SlicedTraversal is spec §4.4's sliced scheduling order: the owned
// x-axis is cut into one contiguous slab per worker. c08Offsets never
// step backward on axis 0, so a worker only ever needs to write into
// the single cell column just past its own slab; that one shared
// boundary per worker pair is protected by a dedicated mutex ("wall
// locking"), everything else in a slab is exclusive to its worker.
type SlicedTraversal struct {
	Geom   *cellblock.Geometry
	CellAt func(c [3]int) cellfunctor.CellAccessor
	AllCells func() []cellfunctor.CellAccessor
	CF     *cellfunctor.CellFunctor
	Pool   *thread.Pool
}

func NewSliced(geom *cellblock.Geometry, cellAt func([3]int) cellfunctor.CellAccessor, allCells func() []cellfunctor.CellAccessor, cf *cellfunctor.CellFunctor, pool *thread.Pool) *SlicedTraversal {
	return &SlicedTraversal{Geom: geom, CellAt: cellAt, AllCells: allCells, CF: cf, Pool: pool}
}

// IsApplicable requires at least as many owned cells along axis 0 as
// the traversal has slabs, so every slab is non-empty.
func (t *SlicedTraversal) IsApplicable() bool {
	od := t.Geom.OwnedDims()
	return od[0] >= t.Pool.Workers() && od[1] >= 1 && od[2] >= 1
}

func (t *SlicedTraversal) InitTraversal() { t.CF.LoadCells(t.AllCells()) }
func (t *SlicedTraversal) EndTraversal()  { t.CF.ExtractCells(t.AllCells()) }

func (t *SlicedTraversal) TraverseParticlePairs() {
	runSliced(t.Geom, t.CellAt, t.CF, uniformSlabs(t.Geom.OwnedDims()[0], t.Pool.Workers()))
}

func (t *SlicedTraversal) DataLayout() options.DataLayoutOption  { return t.CF.Layout }
func (t *SlicedTraversal) UseNewton3() bool                       { return t.CF.Newton3 }
func (t *SlicedTraversal) TraversalType() options.TraversalOption { return options.TraversalSliced }

// uniformSlabs splits owned x-coordinates [1,n] into `slabs` contiguous,
// roughly equal ranges (inclusive bounds, 1-indexed owned coordinates).
func uniformSlabs(n, slabs int) [][2]int {
	if slabs > n {
		slabs = n
	}
	if slabs < 1 {
		slabs = 1
	}
	base, rem := n/slabs, n%slabs
	out := make([][2]int, 0, slabs)
	start := 1
	for w := 0; w < slabs; w++ {
		size := base
		if w < rem {
			size++
		}
		out = append(out, [2]int{start, start + size - 1})
		start += size
	}
	return out
}

// runSliced fans a goroutine out per slab range. A column only needs to
// lock when it is a slab's first or last x-coordinate, since those are
// the only columns any cellPairBoth call can reach across a slab
// boundary in either direction (spec §4.4 "sliced"/"wall locking").
func runSliced(geom *cellblock.Geometry, cellAt func([3]int) cellfunctor.CellAccessor, cf *cellfunctor.CellFunctor, xRanges [][2]int) {
	if len(xRanges) < 1 {
		return
	}
	od := geom.OwnedDims()
	boundaries := make([]sync.Mutex, len(xRanges)-1)
	// A halo cell behind a column is paired from that column without
	// Newton-3, so only the owned side is written.
	ownedOnly := *cf
	ownedOnly.Newton3 = false

	var wg sync.WaitGroup
	wg.Add(len(xRanges))
	for slab := range xRanges {
		slab := slab
		go func() {
			defer wg.Done()
			lo, hi := xRanges[slab][0], xRanges[slab][1]
			for z := 1; z <= od[2]; z++ {
				for y := 1; y <= od[1]; y++ {
					for x := lo; x <= hi; x++ {
						c := [3]int{x, y, z}
						var needed []int
						if x == lo && slab > 0 {
							needed = append(needed, slab-1)
						}
						if x == hi && slab+1 < len(xRanges) {
							needed = append(needed, slab)
						}
						for _, b := range needed {
							boundaries[b].Lock()
						}
						cf.SelfCell(cellAt(c))
						for _, off := range c08Offsets {
							if b := [3]int{c[0] - off[0], c[1] - off[1], c[2] - off[2]}; geom.InGridBounds(b) && !geom.IsOwnedCoord(b) {
								ownedOnly.CellPair(cellAt(c), cellAt(b))
							}
							n := [3]int{c[0] + off[0], c[1] + off[1], c[2] + off[2]}
							if !geom.InGridBounds(n) {
								continue
							}
							cellPairBoth(cf, cellAt(c), cellAt(n), geom.IsOwnedCoord(n))
						}
						for i := len(needed) - 1; i >= 0; i-- {
							boundaries[needed[i]].Unlock()
						}
					}
				}
			}
		}()
	}
	wg.Wait()
}
