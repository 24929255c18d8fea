package renderer

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// poolQueueSize bounds the number of bands submitted per frame
const poolQueueSize = 256

// RowPool renders bands of rows in parallel. Workers are reused across
// frames; each Run call is joined with its own WaitGroup.
type RowPool struct {
	pool       worker.DynamicWorkerPool
	numWorkers int

	mu     sync.Mutex
	nextID int
}

// NewRowPool creates a pool with the given number of workers (0 = CPU count)
func NewRowPool(numWorkers int) *RowPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &RowPool{
		pool:       worker.NewDynamicWorkerPool(numWorkers, poolQueueSize, 1*time.Second),
		numWorkers: numWorkers,
	}
}

// NumWorkers returns the number of workers in the pool
func (p *RowPool) NumWorkers() int {
	return p.numWorkers
}

// Bands splits rows into contiguous [start, end) ranges, a few per worker
func (p *RowPool) Bands(rows int) [][2]int {
	count := p.numWorkers * 4
	if count > poolQueueSize {
		count = poolQueueSize
	}
	if count > rows {
		count = rows
	}
	if count <= 0 {
		return nil
	}

	bands := make([][2]int, 0, count)
	size, extra := rows/count, rows%count
	start := 0
	for i := 0; i < count; i++ {
		end := start + size
		if i < extra {
			end++
		}
		bands = append(bands, [2]int{start, end})
		start = end
	}
	return bands
}

// Run calls fn once per band and blocks until every band is done.
// fn receives the band index along with its row range.
func (p *RowPool) Run(rows int, fn func(band, start, end int)) {
	var wg sync.WaitGroup
	for i, band := range p.Bands(rows) {
		wg.Add(1)
		index, start, end := i, band[0], band[1]
		p.pool.SubmitTask(worker.Task{
			ID: p.taskID(),
			Do: func() (any, error) {
				defer wg.Done()
				fn(index, start, end)
				return nil, nil
			},
		})
	}
	wg.Wait()
}

func (p *RowPool) taskID() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextID++
	return p.nextID
}
