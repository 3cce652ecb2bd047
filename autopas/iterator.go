package autopas

// IteratorBehavior selects which ownership states ForEach, ForEachInRegion
// and GetNumberOfParticles visit (spec §6 "Iterator behavior flags").
type IteratorBehavior int

const (
	Owned IteratorBehavior = iota
	Halo
	OwnedOrHalo
	OwnedOrHaloOrDummy
)

// includesDummies reports whether this behavior should see dummy
// particles (the padding VerletClusterLists pads clusters with).
func (b IteratorBehavior) includesDummies() bool {
	return b == OwnedOrHaloOrDummy
}

// includesOwned/includesHalo filter the callback a ForEach* call passes
// down to the container, since the Container contract only distinguishes
// owned-plus-dummies from everything.
func (b IteratorBehavior) includesOwned() bool {
	return b == Owned || b == OwnedOrHalo || b == OwnedOrHaloOrDummy
}

func (b IteratorBehavior) includesHalo() bool {
	return b == Halo || b == OwnedOrHalo || b == OwnedOrHaloOrDummy
}
