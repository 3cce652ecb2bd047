package cell

import (
	"testing"

	"github.com/TimurEke/AutoPas/particle"
)

func TestParticleStoreDirtyFlag(t *testing.T) {
	s := NewParticleStore()
	if s.Dirty() {
		t.Errorf("expected a fresh store to not be dirty")
	}
	s.Append(particle.NewBasic(1, [3]float64{}))
	if !s.Dirty() {
		t.Errorf("expected Append to mark the store dirty")
	}
	s.ClearDirty()
	if s.Dirty() {
		t.Errorf("expected ClearDirty to clear the flag")
	}
}

func TestReferenceCellIterate(t *testing.T) {
	s := NewParticleStore()
	i0 := s.Append(particle.NewBasic(1, [3]float64{}))
	i1 := s.Append(particle.NewBasic(2, [3]float64{}))
	s.Append(particle.NewBasic(3, [3]float64{})) // not referenced by rc

	rc := NewReferenceCell(s)
	rc.AddIndex(i0)
	rc.AddIndex(i1)

	if rc.Size() != 2 {
		t.Fatalf("expected 2 referenced particles, got %d", rc.Size())
	}
	var ids []int64
	rc.Iterate(false, func(p particle.Particle) { ids = append(ids, p.GetID()) })
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Errorf("unexpected referenced particle ids: %v", ids)
	}
}

func TestParticleStoreCompact(t *testing.T) {
	s := NewParticleStore()
	s.Append(particle.NewBasic(1, [3]float64{10, 0, 0})) // outside
	s.Append(particle.NewBasic(2, [3]float64{1, 0, 0}))  // inside
	s.Append(particle.NewBasic(3, [3]float64{2, 0, 0}))  // inside

	mapping := s.Compact(func(p particle.Particle) bool {
		return p.GetPosition()[0] < 5
	})

	if s.Len() != 2 {
		t.Fatalf("expected 2 particles after compaction, got %d", s.Len())
	}
	if mapping[0] != -1 {
		t.Errorf("expected removed particle to map to -1, got %d", mapping[0])
	}
	if mapping[1] != 0 || mapping[2] != 1 {
		t.Errorf("unexpected compaction mapping: %v", mapping)
	}
}
