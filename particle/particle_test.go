package particle

import "testing"

func TestBasicOwnership(t *testing.T) {
	p := NewBasic(1, [3]float64{1, 2, 3})
	if !p.IsOwned() || p.IsHalo() || p.IsDummy() {
		t.Errorf("expected a freshly constructed Basic to be owned")
	}

	h := NewHalo(2, [3]float64{4, 5, 6})
	if !h.IsHalo() {
		t.Errorf("expected NewHalo to produce a halo particle")
	}

	d := NewDummy(DummySentinel)
	if !d.IsDummy() {
		t.Errorf("expected NewDummy to produce a dummy particle")
	}
	if d.GetPosition() != DummySentinel {
		t.Errorf("expected dummy particle to sit at the sentinel position")
	}
}

func TestBasicForceAccumulation(t *testing.T) {
	p := NewBasic(1, [3]float64{0, 0, 0})
	p.AddForce([3]float64{1, 2, 3})
	p.AddForce([3]float64{1, 1, 1})
	got := p.GetForce()
	want := [3]float64{2, 3, 4}
	if got != want {
		t.Errorf("expected accumulated force %v, got %v", want, got)
	}

	p.ResetForce()
	if p.GetForce() != ([3]float64{}) {
		t.Errorf("expected ResetForce to zero the force vector")
	}
}

func TestBasicSettersGetters(t *testing.T) {
	p := NewBasic(7, [3]float64{1, 1, 1})
	p.SetTypeID(3)
	p.SetVelocity([3]float64{0.5, 0.5, 0.5})
	p.SetOldForce([3]float64{9, 9, 9})
	p.SetOwnershipState(HaloState)

	if p.GetTypeID() != 3 {
		t.Errorf("expected TypeID 3, got %d", p.GetTypeID())
	}
	if p.GetVelocity() != ([3]float64{0.5, 0.5, 0.5}) {
		t.Errorf("unexpected velocity %v", p.GetVelocity())
	}
	if p.GetOldForce() != ([3]float64{9, 9, 9}) {
		t.Errorf("unexpected old force %v", p.GetOldForce())
	}
	if !p.IsHalo() {
		t.Errorf("expected SetOwnershipState(HaloState) to flip IsHalo")
	}
}
