package soa

import "github.com/TimurEke/AutoPas/particle"

// Buffer is the columnar counterpart of a slice of particles: one Field
// per requested attribute, all the same length. A cell attaches a Buffer
// lazily — it is nil until LoadSoA is called (spec §4.1).
type Buffer struct {
	columns map[particle.AttributeHandle]Field
	size    int
}

// NewBuffer allocates an empty buffer with no columns.
func NewBuffer() *Buffer {
	return &Buffer{columns: make(map[particle.AttributeHandle]Field)}
}

// Len returns the number of rows (particles) currently loaded.
func (b *Buffer) Len() int { return b.size }

func isFloatAttribute(a particle.AttributeHandle) bool {
	switch a {
	case particle.AttrPositionX, particle.AttrPositionY, particle.AttrPositionZ,
		particle.AttrVelocityX, particle.AttrVelocityY, particle.AttrVelocityZ,
		particle.AttrForceX, particle.AttrForceY, particle.AttrForceZ,
		particle.AttrOldForceX, particle.AttrOldForceY, particle.AttrOldForceZ:
		return true
	default:
		return false
	}
}

// Column returns the raw []float64 backing a float attribute, allocating
// the column first if it doesn't exist yet.
func (b *Buffer) Column(attr particle.AttributeHandle) []float64 {
	f, ok := b.columns[attr]
	if !ok {
		f = NewFloat64Column(b.size)
		b.columns[attr] = f
	}
	return mustFloat64(f, attr).Data
}

// IntColumn returns the raw []int64 backing an integer attribute (id,
// type id, ownership state), allocating it first if needed.
func (b *Buffer) IntColumn(attr particle.AttributeHandle) []int64 {
	f, ok := b.columns[attr]
	if !ok {
		f = NewInt64Column(b.size)
		b.columns[attr] = f
	}
	return mustInt64(f, attr).Data
}

func getAttr(p particle.Particle, attr particle.AttributeHandle) float64 {
	switch attr {
	case particle.AttrPositionX:
		return p.GetPosition()[0]
	case particle.AttrPositionY:
		return p.GetPosition()[1]
	case particle.AttrPositionZ:
		return p.GetPosition()[2]
	case particle.AttrVelocityX:
		return p.GetVelocity()[0]
	case particle.AttrVelocityY:
		return p.GetVelocity()[1]
	case particle.AttrVelocityZ:
		return p.GetVelocity()[2]
	case particle.AttrForceX:
		return p.GetForce()[0]
	case particle.AttrForceY:
		return p.GetForce()[1]
	case particle.AttrForceZ:
		return p.GetForce()[2]
	case particle.AttrOldForceX:
		return p.GetOldForce()[0]
	case particle.AttrOldForceY:
		return p.GetOldForce()[1]
	case particle.AttrOldForceZ:
		return p.GetOldForce()[2]
	default:
		panic("soa: not a float attribute")
	}
}

func setAttr(p particle.Particle, attr particle.AttributeHandle, v float64) {
	switch attr {
	case particle.AttrPositionX:
		r := p.GetPosition()
		r[0] = v
		p.SetPosition(r)
	case particle.AttrPositionY:
		r := p.GetPosition()
		r[1] = v
		p.SetPosition(r)
	case particle.AttrPositionZ:
		r := p.GetPosition()
		r[2] = v
		p.SetPosition(r)
	case particle.AttrVelocityX:
		r := p.GetVelocity()
		r[0] = v
		p.SetVelocity(r)
	case particle.AttrVelocityY:
		r := p.GetVelocity()
		r[1] = v
		p.SetVelocity(r)
	case particle.AttrVelocityZ:
		r := p.GetVelocity()
		r[2] = v
		p.SetVelocity(r)
	case particle.AttrForceX:
		r := p.GetForce()
		r[0] = v
		p.SetForce(r)
	case particle.AttrForceY:
		r := p.GetForce()
		r[1] = v
		p.SetForce(r)
	case particle.AttrForceZ:
		r := p.GetForce()
		r[2] = v
		p.SetForce(r)
	case particle.AttrOldForceX:
		r := p.GetOldForce()
		r[0] = v
		p.SetOldForce(r)
	case particle.AttrOldForceY:
		r := p.GetOldForce()
		r[1] = v
		p.SetOldForce(r)
	case particle.AttrOldForceZ:
		r := p.GetOldForce()
		r[2] = v
		p.SetOldForce(r)
	default:
		panic("soa: not a float attribute")
	}
}

func getIntAttr(p particle.Particle, attr particle.AttributeHandle) int64 {
	switch attr {
	case particle.AttrID:
		return p.GetID()
	case particle.AttrTypeID:
		return p.GetTypeID()
	case particle.AttrOwnershipState:
		return int64(p.GetOwnershipState())
	default:
		panic("soa: not an int attribute")
	}
}

func setIntAttr(p particle.Particle, attr particle.AttributeHandle, v int64) {
	switch attr {
	case particle.AttrID:
		p.SetID(v)
	case particle.AttrTypeID:
		p.SetTypeID(v)
	case particle.AttrOwnershipState:
		p.SetOwnershipState(particle.Ownership(v))
	default:
		panic("soa: not an int attribute")
	}
}

// Load gathers the requested attributes from particles into fresh
// columns, replacing anything previously loaded.
func (b *Buffer) Load(particles []particle.Particle, attrs []particle.AttributeHandle) {
	b.columns = make(map[particle.AttributeHandle]Field)
	b.size = len(particles)

	for _, attr := range attrs {
		if isFloatAttribute(attr) {
			col := NewFloat64Column(b.size)
			for i, p := range particles {
				col.Data[i] = getAttr(p, attr)
			}
			b.columns[attr] = col
		} else {
			col := NewInt64Column(b.size)
			for i, p := range particles {
				col.Data[i] = getIntAttr(p, attr)
			}
			b.columns[attr] = col
		}
	}
}

// Extract scatters the requested attributes from the buffer back into
// particles. Only attrs present in the buffer (i.e. requested by the
// matching Load, or a functor's ComputedAttributes) are written; spec
// §4.1's invariant ("Load then Extract is the identity on attributes not
// marked computed") holds because callers pass exactly
// functor.ComputedAttributes() here, never the full requested set.
func (b *Buffer) Extract(particles []particle.Particle, attrs []particle.AttributeHandle) {
	if len(particles) != b.size {
		panic("soa: Extract called with a different particle count than Load")
	}
	for _, attr := range attrs {
		f, ok := b.columns[attr]
		if !ok {
			continue
		}
		if isFloatAttribute(attr) {
			col := mustFloat64(f, attr)
			for i, p := range particles {
				setAttr(p, attr, col.Data[i])
			}
		} else {
			col := mustInt64(f, attr)
			for i, p := range particles {
				setIntAttr(p, attr, col.Data[i])
			}
		}
	}
}

// HasColumn reports whether attr was loaded into this buffer.
func (b *Buffer) HasColumn(attr particle.AttributeHandle) bool {
	_, ok := b.columns[attr]
	return ok
}
