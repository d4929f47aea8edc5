package worker

import (
	"runtime"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPoolShutdown(t *testing.T) {
	const workers = 3

	routines := runtime.NumGoroutine()

	wp := NewWorkerPool(workers, func(any) any { return nil })
	wp.Shutdown()

	deadline := time.Now().Add(5 * time.Second)
	for runtime.NumGoroutine() > routines && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	if runtime.NumGoroutine() > routines {
		t.Errorf("Go routines after shutdown: %d > Go routines at start of test: %d", runtime.NumGoroutine(), routines)
	}

	if err := wp.Run(1, nil); err == nil {
		t.Errorf("expected an error running on a shut down pool")
	}
}

func TestWorkerPoolRunRacingShutdown(t *testing.T) {
	for i := 0; i < 200; i++ {
		wp := NewWorkerPool(2, func(i int) int { return i * 2 })

		onComplete := make(chan int, 1)
		accepted := make(chan error, 1)
		go func() {
			accepted <- wp.Run(i, onComplete)
		}()
		go wp.Shutdown()

		if err := <-accepted; err != nil {
			continue
		}

		// an accepted input must still be processed by a worker
		select {
		case result := <-onComplete:
			if result != i*2 {
				t.Fatalf("expected %d; found %d", i*2, result)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("input %d accepted but never processed", i)
		}
	}
}

func TestOrderedWorkGroup(t *testing.T) {
	const workers = 4
	const tasks = 20

	// later inputs finish first to exercise ordering
	work := func(i int) int {
		time.Sleep(time.Duration(tasks-i) * time.Millisecond)
		return i * i
	}

	pool := NewWorkerPool(workers, work)
	defer pool.Shutdown()

	group := NewOrderedGroup(pool, tasks)
	for i := 0; i < tasks; i++ {
		if err := group.Push(i); err != nil {
			t.Fatal(err)
		}
	}

	results := group.Wait()
	if len(results) != tasks {
		t.Fatalf("expected %d results; found %d", tasks, len(results))
	}
	for i, r := range results {
		if r != i*i {
			t.Errorf("Expected Results[%d] to equal %d; found %d", i, i*i, r)
		}
	}

	if err := group.Push(tasks); err == nil {
		t.Errorf("expected an error pushing past capacity")
	}
}

func TestOrderedWorkGroupPartial(t *testing.T) {
	pool := NewWorkerPool(2, func(s string) int { return len(s) })
	defer pool.Shutdown()

	group := NewOrderedGroup(pool, 10)
	for _, s := range []string{"a", "bb", "ccc"} {
		if err := group.Push(s); err != nil {
			t.Fatal(err)
		}
	}

	results := group.Wait()
	if len(results) != 3 || results[0] != 1 || results[1] != 2 || results[2] != 3 {
		t.Fatalf("unexpected results: %v", results)
	}
}

func TestConcurrentDo(t *testing.T) {
	var calls atomic.Int32

	inputs := []int{5, 4, 3, 2, 1}
	results, err := ConcurrentDo(OptimalWorkerCount(), func(i int) int {
		calls.Add(1)
		return i + 10
	}, inputs)
	if err != nil {
		t.Fatal(err)
	}

	for i, r := range results {
		if r != inputs[i]+10 {
			t.Errorf("Expected Results[%d] to equal %d; found %d", i, inputs[i]+10, r)
		}
	}
	if calls.Load() != int32(len(inputs)) {
		t.Errorf("expected %d calls; found %d", len(inputs), calls.Load())
	}
}
