package compute

import (
	"fmt"
	"runtime"
	"sync"
)

// DefaultMinChunk is the smallest slice of work handed to one worker.
const DefaultMinChunk = 16

type CPUBackend struct {
	workers  int
	minChunk int
}

func NewCPUBackend() *CPUBackend {
	return NewCPUBackendWorkers(runtime.NumCPU())
}

func NewCPUBackendWorkers(workers int) *CPUBackend {
	if workers < 1 {
		workers = 1
	}
	return &CPUBackend{
		workers:  workers,
		minChunk: DefaultMinChunk,
	}
}

func (c *CPUBackend) Name() string    { return fmt.Sprintf("cpu (%d workers)", c.workers) }
func (c *CPUBackend) Available() bool { return c.workers > 1 }
func (c *CPUBackend) Cleanup()        {}
func (c *CPUBackend) Workers() int    { return c.workers }

func (c *CPUBackend) Dispatch(n int, k Kernel) {
	if n <= 0 {
		return
	}

	workers := c.workers
	if n/c.minChunk < workers {
		workers = n / c.minChunk
	}
	if workers <= 1 {
		Serial{}.Dispatch(n, k)
		return
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		if start >= n {
			break
		}
		end := start + chunkSize
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				k(i)
			}
		}(start, end)
	}

	wg.Wait()
}
