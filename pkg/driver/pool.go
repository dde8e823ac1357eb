package driver

import (
	"context"
	"fmt"
	"io"
	"log"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"tscheck/pkg/config"
)

// BatchOptions configures CheckFiles.
type BatchOptions struct {
	Workers    int                // <= 0 means runtime.NumCPU()
	Suppressor *config.Suppressor // optional diagnostic filter
	Logger     *log.Logger        // optional progress log
}

// FileResult is the outcome for one input path. Err is set when the file
// could not be read; Result is then empty.
type FileResult struct {
	Path     string
	Result   Result
	Symbols  []Symbol
	Err      error
	WorkerID int
	Duration time.Duration
}

// PoolStats summarizes a batch run.
type PoolStats struct {
	WorkerCount   int
	TotalJobs     int
	CompletedJobs int
	FailedJobs    int
	TotalTime     time.Duration
	AverageTime   time.Duration
}

type checkJob struct {
	index int
	path  string
}

type checkResult struct {
	index int
	file  FileResult
}

// checkPool is a fixed set of workers, each checking files with its own
// Session so no checker state is shared between files.
type checkPool struct {
	numWorkers int
	opts       BatchOptions

	jobQueue   chan *checkJob
	resultChan chan *checkResult

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	started    int32 // atomic
	stopped    int32 // atomic
	activeJobs int32 // atomic

	stats      PoolStats
	statsMutex sync.RWMutex
}

func newCheckPool(opts BatchOptions) *checkPool {
	numWorkers := opts.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	return &checkPool{numWorkers: numWorkers, opts: opts}
}

func (cp *checkPool) start(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&cp.started, 0, 1) {
		return fmt.Errorf("check pool already started")
	}
	cp.ctx, cp.cancel = context.WithCancel(ctx)
	cp.jobQueue = make(chan *checkJob, cp.numWorkers)
	cp.resultChan = make(chan *checkResult, cp.numWorkers)
	cp.stats = PoolStats{WorkerCount: cp.numWorkers}

	for i := 0; i < cp.numWorkers; i++ {
		cp.wg.Add(1)
		go cp.run(i)
	}
	return nil
}

func (cp *checkPool) submit(job *checkJob) error {
	if atomic.LoadInt32(&cp.started) == 0 {
		return fmt.Errorf("check pool not started")
	}
	if atomic.LoadInt32(&cp.stopped) == 1 {
		return fmt.Errorf("check pool stopped")
	}
	select {
	case cp.jobQueue <- job:
		atomic.AddInt32(&cp.activeJobs, 1)
		cp.statsMutex.Lock()
		cp.stats.TotalJobs++
		cp.statsMutex.Unlock()
		return nil
	case <-cp.ctx.Done():
		return cp.ctx.Err()
	}
}

// shutdown closes the queue, waits for the workers and closes the results.
func (cp *checkPool) shutdown() {
	if !atomic.CompareAndSwapInt32(&cp.stopped, 0, 1) {
		return
	}
	close(cp.jobQueue)
	cp.wg.Wait()
	cp.cancel()
	close(cp.resultChan)
}

func (cp *checkPool) getStats() PoolStats {
	cp.statsMutex.RLock()
	defer cp.statsMutex.RUnlock()
	return cp.stats
}

func (cp *checkPool) run(id int) {
	defer cp.wg.Done()
	for {
		select {
		case job, ok := <-cp.jobQueue:
			if !ok {
				return
			}
			result := cp.process(id, job)

			cp.statsMutex.Lock()
			if result.file.Err == nil {
				cp.stats.CompletedJobs++
			} else {
				cp.stats.FailedJobs++
			}
			cp.stats.TotalTime += result.file.Duration
			if done := cp.stats.CompletedJobs + cp.stats.FailedJobs; done > 0 {
				cp.stats.AverageTime = cp.stats.TotalTime / time.Duration(done)
			}
			cp.statsMutex.Unlock()
			atomic.AddInt32(&cp.activeJobs, -1)

			select {
			case cp.resultChan <- result:
			case <-cp.ctx.Done():
				return
			}
		case <-cp.ctx.Done():
			return
		}
	}
}

func (cp *checkPool) process(id int, job *checkJob) *checkResult {
	startTime := time.Now()
	file := FileResult{Path: job.path, WorkerID: id}

	session := NewSession()
	session.SetLogger(cp.opts.Logger)
	res, err := session.CheckFile(job.path)
	if err != nil {
		file.Err = err
	} else {
		file.Result = Filter(res, cp.opts.Suppressor)
		file.Symbols = session.Symbols()
	}
	file.Duration = time.Since(startTime)
	return &checkResult{index: job.index, file: file}
}

// CheckFiles checks every path concurrently, each with an independent
// checker, and returns the results in input order. When ctx is cancelled the
// results gathered so far are returned together with ctx.Err(), and the
// entries for files that were never checked carry that error.
func CheckFiles(ctx context.Context, paths []string, opts BatchOptions) ([]FileResult, PoolStats, error) {
	results := make([]FileResult, len(paths))
	if len(paths) == 0 {
		return results, PoolStats{}, nil
	}

	pool := newCheckPool(opts)
	if err := pool.start(ctx); err != nil {
		return nil, PoolStats{}, err
	}

	go func() {
		defer pool.shutdown()
		for i, path := range paths {
			if err := pool.submit(&checkJob{index: i, path: path}); err != nil {
				return
			}
		}
	}()

	seen := make([]bool, len(paths))
	for r := range pool.resultChan {
		results[r.index] = r.file
		seen[r.index] = true
	}

	var err error
	for i, ok := range seen {
		if ok {
			continue
		}
		if err = ctx.Err(); err == nil {
			err = fmt.Errorf("check pool stopped before %s was checked", paths[i])
		}
		results[i] = FileResult{Path: paths[i], Err: err}
	}
	return results, pool.getStats(), err
}
