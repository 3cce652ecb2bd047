/*Thermostat implements the velocity-rescaling thermostat the original
keeps alongside the core simulation loop (spec §8 scenario C); it is
supplemental to the core tuning/container machinery, so it is exposed as
two standalone functions rather than threaded through AutoPas itself -
callers call CalcTemperature once per step and ApplyScaling only when they
choose to thermostat.
*/
package autopas

import (
	"math"

	"github.com/TimurEke/AutoPas/particle"
)

// CalcTemperature computes the kinetic temperature of particles in
// reduced units (kB = 1), T = 2*KE / dims, where dims is the number of
// translational degrees of freedom (3*N for N unconstrained particles in
// three dimensions).
func CalcTemperature(particles []particle.Particle, dims int) float64 {
	if dims <= 0 {
		return 0
	}
	var ke float64
	for _, p := range particles {
		v := p.GetVelocity()
		mass := 1.0
		if m, ok := p.(massive); ok {
			mass = m.GetMass()
		}
		ke += mass * (v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	}
	return ke / float64(dims)
}

// massive is satisfied by a particle type that tracks its own mass; a
// plain particle.Basic has none, so CalcTemperature falls back to unit
// mass for it.
type massive interface {
	GetMass() float64
}

// ApplyScaling rescales every particle's velocity toward target from
// current, moving at most delta per call (spec §8 scenario C: "the
// thermostat never overshoots target by more than the configured
// delta"). current must be the value CalcTemperature just returned for
// the same particles.
func ApplyScaling(particles []particle.Particle, current, target, delta float64) {
	if current <= 0 {
		return
	}
	next := target
	if math.Abs(target-current) > delta {
		if target > current {
			next = current + delta
		} else {
			next = current - delta
		}
	}
	scale := math.Sqrt(next / current)
	for _, p := range particles {
		v := p.GetVelocity()
		p.SetVelocity([3]float64{v[0] * scale, v[1] * scale, v[2] * scale})
	}
}
