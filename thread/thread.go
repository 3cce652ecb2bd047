/*Package thread contains the fork-join primitive every traversal is built
on top of, plus the process-wide worker-count knob the teacher exposed as
lib/thread.go's SetThreads.
*/
package thread

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/TimurEke/AutoPas/apierror"
)

// SetThreads sets the number of OS threads the Go scheduler is allowed to
// run on simultaneously, mirroring lib/thread.go's SetThreads. n == -1
// means "use every core on the node".
func SetThreads(n int) {
	if n == -1 {
		n = runtime.NumCPU()
	}
	if n > runtime.NumCPU() {
		apierror.External(
			"%d threads requested, but this machine only has %d cores. "+
				"Pass -1 to use every core on the node.", n, runtime.NumCPU())
	}
	runtime.GOMAXPROCS(n)
}

// NumThreads returns the number of goroutines a fork-join call will use by
// default: GOMAXPROCS.
func NumThreads() int {
	return runtime.GOMAXPROCS(0)
}

// Pool runs indexed fork-join work across a fixed number of workers. It is
// the one concurrency primitive every traversal in package traversal is
// built from (spec §5: "a single call to iteratePairwise fans out into a
// set of tasks; each task is handled by one thread").
type Pool struct {
	workers int
}

// NewPool builds a Pool with the given worker count. workers <= 0 means
// "use NumThreads()".
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = NumThreads()
	}
	return &Pool{workers: workers}
}

// Workers returns the number of workers this pool fans out over.
func (p *Pool) Workers() int { return p.workers }

// ForEach calls f(i) for every i in [0,n), fanned out across the pool's
// workers, and blocks until every call has returned. No ordering is
// guaranteed across calls to f from different workers (spec §5).
func (p *Pool) ForEach(n int, f func(i int)) {
	if n <= 0 {
		return
	}
	workers := p.workers
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var next int64 = -1
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				i := int(atomic.AddInt64(&next, 1))
				if i >= n {
					return
				}
				f(i)
			}
		}()
	}
	wg.Wait()
}

// ForEachColor runs a colored task schedule: tasks sharing a color are
// guaranteed to have disjoint write sets (spec §4.4, §5) and so may run
// concurrently; colors themselves run one after another. tasksByColor[c]
// is the list of task indices of color c; run is invoked with the task
// index.
func (p *Pool) ForEachColor(tasksByColor [][]int, run func(taskIdx int)) {
	for _, tasks := range tasksByColor {
		color := tasks
		p.ForEach(len(color), func(i int) {
			run(color[i])
		})
	}
}

// Slabs divides [0,n) into at most `workers` contiguous, roughly equal
// slices — the partition the sliced traversal cuts the domain's longest
// axis into (spec §4.4).
func (p *Pool) Slabs(n int) [][2]int {
	workers := p.workers
	if workers > n {
		workers = n
	}
	if workers <= 0 {
		workers = 1
	}
	base := n / workers
	rem := n % workers
	out := make([][2]int, 0, workers)
	start := 0
	for w := 0; w < workers; w++ {
		size := base
		if w < rem {
			size++
		}
		out = append(out, [2]int{start, start + size})
		start += size
	}
	return out
}
