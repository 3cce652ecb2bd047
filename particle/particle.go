/*Package particle defines the capability contract a user's particle type
must satisfy to be driven by AutoPas, plus a minimal concrete
implementation (Basic) the core's own tests and helpers use.
*/
package particle

import "fmt"

// Ownership tags exactly one state a particle is in at any time (spec §3
// invariant: "exactly one ownership tag at any time").
type Ownership int8

const (
	OwnedState Ownership = iota
	HaloState
	DummyState
)

func (o Ownership) String() string {
	switch o {
	case OwnedState:
		return "owned"
	case HaloState:
		return "halo"
	case DummyState:
		return "dummy"
	default:
		return fmt.Sprintf("Ownership(%d)", int8(o))
	}
}

// AttributeHandle names one column of the SoA buffer (spec §4.1, §9).
type AttributeHandle int

const (
	AttrID AttributeHandle = iota
	AttrTypeID
	AttrPositionX
	AttrPositionY
	AttrPositionZ
	AttrVelocityX
	AttrVelocityY
	AttrVelocityZ
	AttrForceX
	AttrForceY
	AttrForceZ
	AttrOldForceX
	AttrOldForceY
	AttrOldForceZ
	AttrOwnershipState
	numAttributeHandles
)

// NumAttributeHandles is the number of distinct SoA columns the core
// knows how to allocate.
func NumAttributeHandles() int { return int(numAttributeHandles) }

// Particle is the capability a user's particle type must expose (spec §6,
// "Consumed from user code: Particle capability"). The core never
// constructs a concrete particle type itself except via Basic; every
// container and traversal is written purely against this interface.
type Particle interface {
	GetID() int64
	SetID(id int64)

	GetTypeID() int64
	SetTypeID(id int64)

	GetPosition() [3]float64
	SetPosition(r [3]float64)

	GetVelocity() [3]float64
	SetVelocity(v [3]float64)

	GetForce() [3]float64
	SetForce(f [3]float64)
	AddForce(df [3]float64)
	ResetForce()

	GetOldForce() [3]float64
	SetOldForce(f [3]float64)

	GetOwnershipState() Ownership
	SetOwnershipState(o Ownership)

	IsOwned() bool
	IsHalo() bool
	IsDummy() bool
}

// Basic is the kernel-agnostic common subset of particle state the core
// itself depends on (spec §3 "Particle (capability, not a concrete
// type)"). Richer user particle types (a Lennard-Jones molecule, an SPH
// particle) embed Basic for its storage and Particle implementation and
// add their own physics-specific fields on top, the way the original's
// MoleculeLJ/SPHParticle types derive from a common ParticleBase.
type Basic struct {
	id, typeID     int64
	r, v, f, fOld  [3]float64
	ownershipState Ownership
}

// NewBasic builds an owned particle at position r with zero velocity and
// force. Halo/dummy particles are produced by calling SetOwnershipState
// after construction, or via NewHalo/NewDummy below.
func NewBasic(id int64, r [3]float64) *Basic {
	return &Basic{id: id, r: r, ownershipState: OwnedState}
}

// NewHalo builds a halo particle at position r carrying the id of its
// owned twin on a neighboring rank/region.
func NewHalo(id int64, r [3]float64) *Basic {
	return &Basic{id: id, r: r, ownershipState: HaloState}
}

// NewDummy builds a dummy particle parked at an out-of-domain sentinel
// position, used to pad fixed-width cluster structures (spec §3).
func NewDummy(sentinel [3]float64) *Basic {
	return &Basic{id: -1, r: sentinel, ownershipState: DummyState}
}

func (p *Basic) GetID() int64     { return p.id }
func (p *Basic) SetID(id int64)   { p.id = id }
func (p *Basic) GetTypeID() int64 { return p.typeID }
func (p *Basic) SetTypeID(id int64) { p.typeID = id }

func (p *Basic) GetPosition() [3]float64   { return p.r }
func (p *Basic) SetPosition(r [3]float64)  { p.r = r }
func (p *Basic) GetVelocity() [3]float64   { return p.v }
func (p *Basic) SetVelocity(v [3]float64)  { p.v = v }
func (p *Basic) GetForce() [3]float64      { return p.f }
func (p *Basic) SetForce(f [3]float64)     { p.f = f }
func (p *Basic) AddForce(df [3]float64) {
	p.f[0] += df[0]
	p.f[1] += df[1]
	p.f[2] += df[2]
}
func (p *Basic) ResetForce() { p.f = [3]float64{} }

func (p *Basic) GetOldForce() [3]float64  { return p.fOld }
func (p *Basic) SetOldForce(f [3]float64) { p.fOld = f }

func (p *Basic) GetOwnershipState() Ownership    { return p.ownershipState }
func (p *Basic) SetOwnershipState(o Ownership)   { p.ownershipState = o }

func (p *Basic) IsOwned() bool { return p.ownershipState == OwnedState }
func (p *Basic) IsHalo() bool  { return p.ownershipState == HaloState }
func (p *Basic) IsDummy() bool { return p.ownershipState == DummyState }

var _ Particle = (*Basic)(nil)

// DummySentinel is the out-of-domain position new dummy particles are
// parked at so no real particle is ever within cutoff of one (spec §4.2,
// VerletClusterLists invariant).
var DummySentinel = [3]float64{
	1.7976931348623157e+300, // a very large, but finite, float64
	1.7976931348623157e+300,
	1.7976931348623157e+300,
}
