package collections

import "sync"

// BlockingQueue is a FIFO queue backed by a slice. Dequeue blocks while the queue is empty,
// which makes it suitable for feeding a pool of worker goroutines.
type BlockingQueue[T any] struct {
	lock     sync.Mutex
	nonEmpty *sync.Cond
	items    []T
}

// NewBlockingQueue returns an empty BlockingQueue.
func NewBlockingQueue[T any]() *BlockingQueue[T] {
	q := &BlockingQueue[T]{}
	q.nonEmpty = sync.NewCond(&q.lock)
	return q
}

// Enqueue pushes an item onto the back of the queue and wakes a waiting consumer.
func (q *BlockingQueue[T]) Enqueue(item T) {
	q.lock.Lock()
	defer q.lock.Unlock()

	q.items = append(q.items, item)
	q.nonEmpty.Signal()
}

// Dequeue removes and returns the item at the front of the queue, blocking until one is
// available.
func (q *BlockingQueue[T]) Dequeue() T {
	q.lock.Lock()
	defer q.lock.Unlock()

	// loop to ensure only one waiter wins each item
	for len(q.items) == 0 {
		q.nonEmpty.Wait()
	}

	var zero T
	item := q.items[0]

	// zero the head to release the reference
	q.items[0] = zero
	q.items = q.items[1:]
	return item
}

// Length returns the number of queued items.
func (q *BlockingQueue[T]) Length() int {
	q.lock.Lock()
	defer q.lock.Unlock()

	return len(q.items)
}
