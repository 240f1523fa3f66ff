package renderer

import (
	"math/rand"
	"sync"
	"sync/atomic"
)

// rowTask is one scanline of work. Each task carries its own random
// stream so workers never share mutable RNG state.
type rowTask struct {
	row    int
	random *rand.Rand
}

// workerPool fans scanline tasks out to a fixed set of goroutines.
// Rows map to disjoint slices of the framebuffer, so workers never
// write the same pixel; the only cross-worker mutable state is the
// completed-row counter, updated atomically. Increment order across
// rows is irrelevant, only the running count is reported.
type workerPool struct {
	numWorkers int
	tasks      chan rowTask
	wg         sync.WaitGroup
	completed  atomic.Int64
}

func newWorkerPool(numWorkers, queueDepth int) *workerPool {
	return &workerPool{
		numWorkers: numWorkers,
		tasks:      make(chan rowTask, queueDepth),
	}
}

// start launches the workers. renderRow does the actual work; onRowDone
// is called with the updated completion count after every row.
func (wp *workerPool) start(renderRow func(rowTask), onRowDone func(completed int64)) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go func() {
			defer wp.wg.Done()
			for task := range wp.tasks {
				renderRow(task)
				done := wp.completed.Add(1)
				if onRowDone != nil {
					onRowDone(done)
				}
			}
		}()
	}
}

func (wp *workerPool) submit(task rowTask) {
	wp.tasks <- task
}

// wait closes the queue and joins all workers
func (wp *workerPool) wait() {
	close(wp.tasks)
	wp.wg.Wait()
}
