/*Package mpi is the thin distributed-tuning transport FullSearchMPI needs
(spec §4.6): rank/size identity, a barrier, a min-reduction that also
elects which rank produced the minimum, and a broadcast. The default
build uses StubGroup, an in-process simulation with no external
dependency; building with the "mpi" tag switches to a cgo binding against
a real MPI implementation, grounded on the teacher's lib/mpi/mpi.go.
*/
package mpi

// Comm is the communicator capability FullSearchMPI drives the
// distributed search over (spec §4.6 "FullSearchMPI"): a blocking
// barrier signals readiness (there is no non-blocking barrier variant),
// Allreduce(MIN) with a rank-carrying payload
// elects the global winner, and the winning rank broadcasts the winning
// configuration's encoded bytes.
type Comm interface {
	// Rank returns this communicator's rank, in [0,Size()).
	Rank() int
	// Size returns the number of ranks in this communicator.
	Size() int
	// Barrier blocks until every rank has called Barrier on this
	// communicator's current generation.
	Barrier()
	// AllreduceMinRanked returns the minimum value across every rank's
	// value and the rank that contributed it, identically on every rank.
	AllreduceMinRanked(value int64) (min int64, winnerRank int)
	// Bcast returns root's data on every rank, including root itself.
	Bcast(data []byte, root int) []byte
}

// PartitionRange splits [0,n) into Size() contiguous chunks, remainder
// distributed to the low ranks, and returns this rank's [lo,hi) (spec
// §4.6: "the search space is partitioned across ranks by contiguous
// index range, remainder distributed to low ranks").
func PartitionRange(c Comm, n int) (lo, hi int) {
	size := c.Size()
	base := n / size
	rem := n % size
	rank := c.Rank()
	lo = rank*base + min(rank, rem)
	hi = lo + base
	if rank < rem {
		hi++
	}
	return lo, hi
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
