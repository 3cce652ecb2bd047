package cell

import (
	"sync"
	"testing"

	"github.com/TimurEke/AutoPas/particle"
)

func TestAddConcurrentSafe(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	const n = 200
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			c.Add(particle.NewBasic(id, [3]float64{float64(id), 0, 0}))
		}(int64(i))
	}
	wg.Wait()
	if c.Size() != n {
		t.Fatalf("expected %d particles, got %d", n, c.Size())
	}
}

func TestIterateSkipsDummiesByDefault(t *testing.T) {
	c := New()
	c.Add(particle.NewBasic(1, [3]float64{}))
	c.Add(particle.NewDummy(particle.DummySentinel))
	c.Add(particle.NewBasic(2, [3]float64{}))

	seen := 0
	c.Iterate(false, func(p particle.Particle) { seen++ })
	if seen != 2 {
		t.Errorf("expected 2 non-dummy particles, saw %d", seen)
	}

	seen = 0
	c.Iterate(true, func(p particle.Particle) { seen++ })
	if seen != 3 {
		t.Errorf("expected 3 particles including dummies, saw %d", seen)
	}
}

func TestSortByAxisStable(t *testing.T) {
	c := New()
	c.Add(particle.NewBasic(1, [3]float64{3, 0, 0}))
	c.Add(particle.NewBasic(2, [3]float64{1, 0, 0}))
	c.Add(particle.NewBasic(3, [3]float64{2, 0, 0}))
	c.SortByAxis(0)

	var ids []int64
	c.Iterate(true, func(p particle.Particle) { ids = append(ids, p.GetID()) })
	want := []int64{2, 3, 1}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, ids)
		}
	}
}

func TestRemoveDummies(t *testing.T) {
	c := New()
	c.Add(particle.NewBasic(1, [3]float64{}))
	c.Add(particle.NewDummy(particle.DummySentinel))
	c.RemoveDummies()
	if c.Size() != 1 {
		t.Errorf("expected 1 particle after RemoveDummies, got %d", c.Size())
	}
}
