package traversal

import "github.com/TimurEke/AutoPas/cellblock"

// ownedCoords lists every owned (non-halo) cell coordinate in a
// Geometry, in ascending x,y,z order, matching cellblock.Grid's own
// enumeration so task index i always names the same cell regardless of
// which storage (owned or reference) backs it.
func ownedCoords(geom *cellblock.Geometry) [][3]int {
	od := geom.OwnedDims()
	out := make([][3]int, 0, od[0]*od[1]*od[2])
	for z := 1; z <= od[2]; z++ {
		for y := 1; y <= od[1]; y++ {
			for x := 1; x <= od[0]; x++ {
				out = append(out, [3]int{x, y, z})
			}
		}
	}
	return out
}

// colorMod buckets c into one of m^3 colors by each axis's residue mod
// m. Two different cells sharing a color differ by a multiple of m in
// every axis where they agree is impossible; they differ by at least m
// in some axis. A stencil whose offsets never exceed m-1 in any
// component therefore has disjoint write sets within one color (spec
// §4.4, §5): c08's unit-magnitude offsets need only m=2, c18's unit
// offsets in both directions use m=3.
func colorMod(c [3]int, m int) int {
	return (c[0] % m) + m*((c[1]%m)+m*(c[2]%m))
}

func numColors(m int) int { return m * m * m }

// runColored schedules selfCell(c) plus cellPair(c, c+offset) for every
// owned cell c and every offset in offsets, and cellPair(c, c-offset)
// where c-offset is a halo cell, grouped into numColors(mod)
// colors via colorMod so that same-colored tasks never touch the same
// cell and can run concurrently (spec §4.4, §5 "colored task
// schedule").
func runColored(geom *cellblock.Geometry, pool poolLike, offsets [][3]int, mod int, selfCell func(c [3]int), cellPair func(c1, c2 [3]int)) {
	owned := ownedCoords(geom)
	byColor := make([][]int, numColors(mod))
	for i, c := range owned {
		color := colorMod(c, mod)
		byColor[color] = append(byColor[color], i)
	}
	pool.ForEachColor(byColor, func(taskIdx int) {
		c := owned[taskIdx]
		selfCell(c)
		for _, off := range offsets {
			// Halo cells are never base cells, so a halo cell behind c is
			// paired from c as well.
			if b := [3]int{c[0] - off[0], c[1] - off[1], c[2] - off[2]}; geom.InGridBounds(b) && !geom.IsOwnedCoord(b) {
				cellPair(c, b)
			}
			n := [3]int{c[0] + off[0], c[1] + off[1], c[2] + off[2]}
			if !geom.InGridBounds(n) {
				continue
			}
			cellPair(c, n)
		}
	})
}

// poolLike is the slice of thread.Pool this package needs, kept as an
// interface so tests can drive runColored with a trivial sequential
// stand-in.
type poolLike interface {
	ForEachColor(tasksByColor [][]int, run func(taskIdx int))
}
