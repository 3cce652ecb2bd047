package tuning

import (
	"bytes"
	"encoding/binary"

	"github.com/TimurEke/AutoPas/apierror"
	"github.com/TimurEke/AutoPas/mpi"
	"github.com/TimurEke/AutoPas/options"
)

// FullSearchMPI partitions the search space across MPI ranks by
// contiguous index range, each rank runs its own FullSearch over its
// slice, then a blocking-barrier-gated Allreduce(MIN) with a
// rank-carrying payload elects the global winner and the winning rank
// broadcasts the winning configuration (spec §4.6 "FullSearchMPI").
type FullSearchMPI struct {
	comm  mpi.Comm
	local *FullSearch
	won   bool
	final Configuration
}

// NewFullSearchMPI partitions space across comm's ranks and builds a
// local FullSearch over this rank's slice.
func NewFullSearchMPI(comm mpi.Comm, space []Configuration, numSamples int, selector options.SelectorStrategyOption) *FullSearchMPI {
	lo, hi := mpi.PartitionRange(comm, len(space))
	if lo >= hi {
		apierror.External("FullSearchMPI: rank %d was assigned an empty slice of a %d-element search space across %d ranks",
			comm.Rank(), len(space), comm.Size())
	}
	return &FullSearchMPI{comm: comm, local: NewFullSearch(space[lo:hi], numSamples, selector)}
}

func (s *FullSearchMPI) CurrentConfiguration() Configuration {
	if s.won {
		return s.final
	}
	return s.local.CurrentConfiguration()
}

func (s *FullSearchMPI) AddEvidence(ns int64, iteration int) { s.local.AddEvidence(ns, iteration) }

func (s *FullSearchMPI) RemoveN3Option(opt options.Newton3Option) { s.local.RemoveN3Option(opt) }

// Tune runs the local FullSearch to completion, then performs the
// cross-rank election: a barrier signals every rank is done measuring
// its slice, an Allreduce(MIN) over each rank's best local score (with
// the rank packed into the payload) finds the global winner, and that
// winner broadcasts its Configuration's encoding to every other rank.
func (s *FullSearchMPI) Tune(lastWasInvalid bool) bool {
	if s.won {
		return false
	}
	if s.local.Tune(lastWasInvalid) {
		return true
	}

	localBest := s.local.CurrentConfiguration()
	localScore := s.local.evidence[localBest]
	var bestNs int64 = 1<<62
	if len(localScore) > 0 {
		var sum int64
		bestNs = localScore[0].Ns
		for _, e := range localScore {
			sum += e.Ns
			if e.Ns < bestNs {
				bestNs = e.Ns
			}
		}
		if s.local.selector != options.FastestAbs {
			bestNs = sum / int64(len(localScore))
		}
	}

	s.comm.Barrier()
	_, winnerRank := s.comm.AllreduceMinRanked(bestNs)

	var payload []byte
	if s.comm.Rank() == winnerRank {
		payload = encodeConfiguration(localBest)
	}
	received := s.comm.Bcast(payload, winnerRank)
	s.final = decodeConfiguration(received)
	s.won = true
	return false
}

func (s *FullSearchMPI) Reset(iteration int) {
	s.won = false
	s.local.Reset(iteration)
}

func encodeConfiguration(c Configuration) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, int32(c.Container))
	binary.Write(&buf, binary.LittleEndian, int32(c.Traversal))
	binary.Write(&buf, binary.LittleEndian, int32(c.DataLayout))
	binary.Write(&buf, binary.LittleEndian, int32(c.Newton3))
	binary.Write(&buf, binary.LittleEndian, c.CellSizeFactor)
	return buf.Bytes()
}

func decodeConfiguration(data []byte) Configuration {
	var container, traversal, layout, newton3 int32
	var cellSize float64
	buf := bytes.NewReader(data)
	binary.Read(buf, binary.LittleEndian, &container)
	binary.Read(buf, binary.LittleEndian, &traversal)
	binary.Read(buf, binary.LittleEndian, &layout)
	binary.Read(buf, binary.LittleEndian, &newton3)
	binary.Read(buf, binary.LittleEndian, &cellSize)
	return Configuration{
		Container:      options.ContainerOption(container),
		Traversal:      options.TraversalOption(traversal),
		DataLayout:     options.DataLayoutOption(layout),
		Newton3:        options.Newton3Option(newton3),
		CellSizeFactor: cellSize,
	}
}

var _ Strategy = (*FullSearchMPI)(nil)
