/*Package soa implements the structure-of-arrays buffer cells attach to
satisfy functor.Functor's SoA* methods (spec §4.1, §9 "SoA buffers").

Adapted from lib/particles/particles.go: that package modeled a particle
snapshot as Particles = map[string]Field, where Field is a small interface
(Len/Data/Transfer/CreateDestination) implemented once per primitive array
type (Uint32, Uint64, Float32, Float64). Buffer below is the same shape,
retargeted from string-named snapshot fields to
particle.AttributeHandle-keyed simulation fields, and restricted to the
two concrete column types the core actually needs (float64 positions/
velocities/forces, int64 ids/type ids) rather than four.
*/
package soa

import "fmt"

// Field is one column of a Buffer. Every concrete column type below
// implements it, the way lib/particles.Field was implemented once per
// primitive array type.
type Field interface {
	// Len returns the number of rows in this column.
	Len() int
	// Resize grows or shrinks the column to exactly n rows, preserving
	// existing values at matching indices.
	Resize(n int)
}

// Float64Column is a Field over []float64, used for position/velocity/
// force/old-force components.
type Float64Column struct {
	Data []float64
}

func NewFloat64Column(n int) *Float64Column {
	return &Float64Column{Data: make([]float64, n)}
}

func (c *Float64Column) Len() int { return len(c.Data) }
func (c *Float64Column) Resize(n int) {
	if cap(c.Data) >= n {
		c.Data = c.Data[:n]
		return
	}
	grown := make([]float64, n)
	copy(grown, c.Data)
	c.Data = grown
}

// Int64Column is a Field over []int64, used for ids, type ids, and the
// packed ownership state.
type Int64Column struct {
	Data []int64
}

func NewInt64Column(n int) *Int64Column {
	return &Int64Column{Data: make([]int64, n)}
}

func (c *Int64Column) Len() int { return len(c.Data) }
func (c *Int64Column) Resize(n int) {
	if cap(c.Data) >= n {
		c.Data = c.Data[:n]
		return
	}
	grown := make([]int64, n)
	copy(grown, c.Data)
	c.Data = grown
}

var (
	_ Field = (*Float64Column)(nil)
	_ Field = (*Int64Column)(nil)
)

func mustFloat64(f Field, attr interface{}) *Float64Column {
	c, ok := f.(*Float64Column)
	if !ok {
		panic(fmt.Sprintf("soa: attribute %v is not a Float64Column", attr))
	}
	return c
}

func mustInt64(f Field, attr interface{}) *Int64Column {
	c, ok := f.(*Int64Column)
	if !ok {
		panic(fmt.Sprintf("soa: attribute %v is not an Int64Column", attr))
	}
	return c
}
