package log

import "sync"

// counter tracks how many times each deduped log format has been seen.
type counter struct {
	mu   sync.Mutex
	seen map[string]int
}

func newCounter() *counter {
	return &counter{seen: map[string]int{}}
}

func (ctr *counter) count(key string) int {
	ctr.mu.Lock()
	defer ctr.mu.Unlock()
	return ctr.seen[key]
}

func (ctr *counter) increment(key string) int {
	ctr.mu.Lock()
	defer ctr.mu.Unlock()
	ctr.seen[key]++
	return ctr.seen[key]
}

// reset forgets every format seen so far.
func (ctr *counter) reset() {
	ctr.mu.Lock()
	defer ctr.mu.Unlock()
	ctr.seen = map[string]int{}
}
