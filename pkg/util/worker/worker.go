package worker

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/opencost/filterkit/pkg/collections"
)

// Worker is a transformation function from input type T to output type U.
type Worker[T any, U any] func(T) U

// WorkerPool is a pool of go routines executing a Worker on supplied inputs via
// the Run function.
type WorkerPool[T any, U any] interface {
	// Run queues input for a worker. The result is sent on onComplete when it is not nil.
	// An error is returned once the pool has been shut down.
	Run(input T, onComplete chan<- U) error

	// Shutdown stops all of the workers once the queued inputs have been processed.
	Shutdown()
}

// job is a queued input, or a stop sentinel when stop is set.
type job[T any, U any] struct {
	input      T
	onComplete chan<- U
	stop       bool
}

type queuedWorkerPool[T any, U any] struct {
	queue   *collections.BlockingQueue[job[T, U]]
	work    Worker[T, U]
	workers int

	// lock orders every enqueue against the stop sentinels so no job lands behind them
	lock       sync.Mutex
	isShutdown bool
}

// NewWorkerPool starts workers go routines running work.
func NewWorkerPool[T any, U any](workers int, work Worker[T, U]) WorkerPool[T, U] {
	if workers < 1 {
		workers = 1
	}

	pool := &queuedWorkerPool[T, U]{
		queue:   collections.NewBlockingQueue[job[T, U]](),
		work:    work,
		workers: workers,
	}

	for i := 0; i < workers; i++ {
		go pool.run()
	}

	return pool
}

func (wp *queuedWorkerPool[T, U]) Run(input T, onComplete chan<- U) error {
	wp.lock.Lock()
	defer wp.lock.Unlock()

	if wp.isShutdown {
		return fmt.Errorf("worker pool is shut down")
	}

	wp.queue.Enqueue(job[T, U]{input: input, onComplete: onComplete})
	return nil
}

func (wp *queuedWorkerPool[T, U]) Shutdown() {
	wp.lock.Lock()
	defer wp.lock.Unlock()

	if wp.isShutdown {
		return
	}
	wp.isShutdown = true

	for i := 0; i < wp.workers; i++ {
		wp.queue.Enqueue(job[T, U]{stop: true})
	}
}

func (wp *queuedWorkerPool[T, U]) run() {
	for {
		next := wp.queue.Dequeue()
		if next.stop {
			return
		}

		result := wp.work(next.input)
		if next.onComplete != nil {
			next.onComplete <- result
		}
	}
}

// OrderedGroup collects the results of a fixed number of inputs in the order they were
// pushed. Push is not safe for concurrent use.
type OrderedGroup[T any, U any] struct {
	pool    WorkerPool[T, U]
	results []U
	count   int
	wg      sync.WaitGroup
}

// NewOrderedGroup creates a group of capacity size running on pool.
func NewOrderedGroup[T any, U any](pool WorkerPool[T, U], size int) *OrderedGroup[T, U] {
	return &OrderedGroup[T, U]{
		pool:    pool,
		results: make([]U, size),
	}
}

// Push runs input on the pool, recording its result at the next index.
func (og *OrderedGroup[T, U]) Push(input T) error {
	index := og.count
	if index >= len(og.results) {
		return fmt.Errorf("ordered group is full: capacity %d", len(og.results))
	}

	onComplete := make(chan U, 1)
	if err := og.pool.Run(input, onComplete); err != nil {
		return err
	}

	og.count++
	og.wg.Add(1)

	go func() {
		defer og.wg.Done()
		og.results[index] = <-onComplete
	}()

	return nil
}

// Wait blocks until every pushed input has completed and returns the results of the
// pushed inputs, in push order.
func (og *OrderedGroup[T, U]) Wait() []U {
	og.wg.Wait()
	return og.results[:og.count]
}

// OptimalWorkerCount is the number of CPUs available to the process.
func OptimalWorkerCount() int {
	return runtime.GOMAXPROCS(0)
}

// ConcurrentDo runs work over inputs on a temporary pool and returns the results in input
// order.
func ConcurrentDo[T any, U any](workers int, work Worker[T, U], inputs []T) ([]U, error) {
	pool := NewWorkerPool(workers, work)
	defer pool.Shutdown()

	group := NewOrderedGroup(pool, len(inputs))
	for _, input := range inputs {
		if err := group.Push(input); err != nil {
			return nil, err
		}
	}

	return group.Wait(), nil
}
