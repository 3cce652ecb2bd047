/*Package neighbor contains the particle-id lookup table containers use to
answer "is there already a halo particle with this id" (updateHalo, spec
§4.2) in expected O(1) instead of an O(N) cell scan.

Adapted from lib/cuckoo/cuckoo.go, which sketched the shape of the problem
("O(N) sorting for datasets where you know the index an object must take")
as a bare Interface{Length,Index,Save,Put} with no working implementation.
IDSet below is the completed version, specialized to the one thing the
container layer actually needs: id -> location, with open addressing
instead of true two-table cuckoo hashing (a single probe sequence is
enough at the load factors containers operate under, and avoids the
whole-table-rehash-on-collision behavior cuckoo hashing requires).
*/
package neighbor

// entry is a single slot in the table. empty slots have occupied == false.
type entry struct {
	id       int64
	location int
	occupied bool
	tombstone bool
}

// IDSet maps particle id -> an opaque integer location (typically a cell
// index or a slice offset) using open addressing with linear probing.
type IDSet struct {
	slots []entry
	count int
}

// NewIDSet builds an IDSet with room for at least capacityHint entries
// before it needs to grow.
func NewIDSet(capacityHint int) *IDSet {
	size := 8
	for size < capacityHint*2 {
		size *= 2
	}
	return &IDSet{slots: make([]entry, size)}
}

func (s *IDSet) hash(id int64) int {
	u := uint64(id)
	u ^= u >> 33
	u *= 0xff51afd7ed558ccd
	u ^= u >> 33
	return int(u % uint64(len(s.slots)))
}

// Put records that particle id lives at location, overwriting any
// previous location recorded for that id.
func (s *IDSet) Put(id int64, location int) {
	if s.count*2 >= len(s.slots) {
		s.grow()
	}
	i := s.hash(id)
	firstTombstone := -1
	for {
		e := &s.slots[i]
		if !e.occupied {
			target := i
			if firstTombstone >= 0 {
				target = firstTombstone
			}
			s.slots[target] = entry{id: id, location: location, occupied: true}
			s.count++
			return
		}
		if e.tombstone && firstTombstone < 0 {
			firstTombstone = i
		}
		if !e.tombstone && e.id == id {
			e.location = location
			return
		}
		i = (i + 1) % len(s.slots)
	}
}

// Lookup returns the location recorded for id and true, or (0, false) if
// no halo particle with that id is known. This is the lookup updateHalo
// uses to decide whether to update in place or report "not found" so the
// caller can addHalo instead (spec §4.2).
func (s *IDSet) Lookup(id int64) (int, bool) {
	i := s.hash(id)
	for probes := 0; probes < len(s.slots); probes++ {
		e := &s.slots[i]
		if !e.occupied {
			return 0, false
		}
		if !e.tombstone && e.id == id {
			return e.location, true
		}
		i = (i + 1) % len(s.slots)
	}
	return 0, false
}

// Delete removes id from the set, e.g. when deleteHalo() clears the halo
// region (spec §4.2).
func (s *IDSet) Delete(id int64) {
	i := s.hash(id)
	for probes := 0; probes < len(s.slots); probes++ {
		e := &s.slots[i]
		if !e.occupied {
			return
		}
		if !e.tombstone && e.id == id {
			e.tombstone = true
			s.count--
			return
		}
		i = (i + 1) % len(s.slots)
	}
}

// Len returns the number of live entries.
func (s *IDSet) Len() int { return s.count }

func (s *IDSet) grow() {
	old := s.slots
	s.slots = make([]entry, len(old)*2)
	s.count = 0
	for _, e := range old {
		if e.occupied && !e.tombstone {
			s.Put(e.id, e.location)
		}
	}
}
