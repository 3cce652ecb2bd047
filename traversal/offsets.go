package traversal

// c08Offsets are the 13 forward neighbor offsets a c08 base cell pairs
// against, the half-shell that together with the self-pair covers every
// unordered neighbor pair exactly once when walked from every owned
// cell (spec §4.4 "c08").
var c08Offsets = [][3]int{
	{1, 0, 0}, {0, 1, 0}, {0, 0, 1},
	{1, 1, 0}, {1, -1, 0},
	{1, 0, 1}, {1, 0, -1},
	{0, 1, 1}, {0, 1, -1},
	{1, 1, 1}, {1, 1, -1}, {1, -1, 1}, {1, -1, -1},
}

// c18Offsets is the other 13-neighbor half-shell, chosen z first, then
// y, then x: every offset with dz=1, then dy=1 within dz=0, then
// (1,0,0). It covers the same unordered neighbor pairs as c08Offsets
// from a differently shaped base step (spec §4.4 "c18").
var c18Offsets = [][3]int{
	{-1, -1, 1}, {0, -1, 1}, {1, -1, 1},
	{-1, 0, 1}, {0, 0, 1}, {1, 0, 1},
	{-1, 1, 1}, {0, 1, 1}, {1, 1, 1},
	{-1, 1, 0}, {0, 1, 0}, {1, 1, 0},
	{1, 0, 0},
}

// colorOf buckets a halo-inclusive base-cell coordinate into one of 8
// colors by the parity of each axis, the coloring c08's 2-cell-wide
// offset reach requires for its disjoint-write-set guarantee (spec
// §4.4, §5).
func colorOf(c [3]int) int {
	color := 0
	if c[0]%2 != 0 {
		color |= 1
	}
	if c[1]%2 != 0 {
		color |= 2
	}
	if c[2]%2 != 0 {
		color |= 4
	}
	return color
}
