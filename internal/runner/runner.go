// Package runner executes a list of independent simulation tasks across a
// bounded worker pool. Tasks are batched into chunks so long task lists
// amortize dispatch overhead, and results stream back as they complete.
package runner

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Task is one simulation to run. Index is the task's position in the
// submitted list; Payload carries whatever the Simulation needs (a compiled
// circuit, shot count, ...).
type Task struct {
	Index   int
	NQubits int
	Payload interface{}
}

// Result is what a Simulation reports back.
type Result struct {
	NQubits int
	Elapsed time.Duration
	Payload interface{}
}

// Simulation runs one task. Implementations must be safe for concurrent
// use; each invocation receives its own Task.
type Simulation func(ctx context.Context, task Task) (Result, error)

// Outcome pairs a finished task with its result or error.
type Outcome struct {
	Task   Task
	Result Result
	Err    error
}

// ErrNoTasks is returned when an empty task list is submitted.
var ErrNoTasks = errors.New("runner: no tasks")

// DefaultWorkers returns the pool size used when none is configured:
// 80% of the CPUs, but at least 2.
func DefaultWorkers() int {
	n := int(0.8 * float64(runtime.NumCPU()))
	if n < 2 {
		n = 2
	}
	return n
}

// ChunkSize returns how many tasks each worker receives per batch:
// ceil(tasks/workers), at least 1.
func ChunkSize(tasks, workers int) int {
	if tasks <= 0 || workers <= 0 {
		return 1
	}
	c := tasks / workers
	if tasks%workers > 0 {
		c++
	}
	if c < 1 {
		c = 1
	}
	return c
}

// Pool runs simulations with a fixed worker count.
type Pool struct {
	workers int
	log     *zap.Logger
}

// Option configures a Pool.
type Option func(*Pool)

// WithWorkers overrides the worker count.
func WithWorkers(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(p *Pool) {
		if log != nil {
			p.log = log
		}
	}
}

// NewPool builds a pool with DefaultWorkers unless overridden.
func NewPool(opts ...Option) *Pool {
	p := &Pool{workers: DefaultWorkers(), log: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Workers returns the configured worker count.
func (p *Pool) Workers() int { return p.workers }

// RunUnordered executes all tasks and streams outcomes in completion order.
// The returned channel closes once every task has been accounted for. A
// failing task produces an Outcome with Err set and does not stop its
// siblings; cancelling the context stops dispatch and drains the workers.
func (p *Pool) RunUnordered(ctx context.Context, tasks []Task, sim Simulation) (<-chan Outcome, error) {
	if len(tasks) == 0 {
		return nil, ErrNoTasks
	}
	if sim == nil {
		return nil, errors.New("runner: nil simulation")
	}

	chunk := ChunkSize(len(tasks), p.workers)
	p.log.Info("starting simulation pool",
		zap.Int("cpus", runtime.NumCPU()),
		zap.Int("workers", p.workers),
		zap.Int("tasks", len(tasks)),
		zap.Int("chunksize", chunk))

	chunks := make(chan []Task)
	out := make(chan Outcome, len(tasks))

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for batch := range chunks {
				for _, task := range batch {
					if ctx.Err() != nil {
						out <- Outcome{Task: task, Err: ctx.Err()}
						continue
					}
					res, err := sim(ctx, task)
					out <- Outcome{Task: task, Result: res, Err: err}
				}
			}
		}()
	}

	go func() {
		defer close(out)
		for i := 0; i < len(tasks); i += chunk {
			end := i + chunk
			if end > len(tasks) {
				end = len(tasks)
			}
			select {
			case chunks <- tasks[i:end]:
			case <-ctx.Done():
				// Report the undispatched remainder as cancelled.
				for _, task := range tasks[i:end] {
					out <- Outcome{Task: task, Err: ctx.Err()}
				}
				for j := end; j < len(tasks); j++ {
					out <- Outcome{Task: tasks[j], Err: ctx.Err()}
				}
				close(chunks)
				wg.Wait()
				return
			}
		}
		close(chunks)
		wg.Wait()
	}()

	return out, nil
}

// RunOrdered executes all tasks and returns results in task order. The
// first error cancels the remaining work.
func (p *Pool) RunOrdered(ctx context.Context, tasks []Task, sim Simulation) ([]Result, error) {
	if len(tasks) == 0 {
		return nil, ErrNoTasks
	}
	if sim == nil {
		return nil, errors.New("runner: nil simulation")
	}

	p.log.Info("starting ordered simulation run",
		zap.Int("workers", p.workers),
		zap.Int("tasks", len(tasks)))

	results := make([]Result, len(tasks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			res, err := sim(gctx, task)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// RunSerial executes tasks one at a time on the calling goroutine. It keeps
// the same contract as the pool variants and exists for debugging: errors
// surface immediately with full context instead of being interleaved.
func RunSerial(ctx context.Context, tasks []Task, sim Simulation, log *zap.Logger) ([]Result, error) {
	if len(tasks) == 0 {
		return nil, ErrNoTasks
	}
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("running simulations serially", zap.Int("tasks", len(tasks)))

	results := make([]Result, 0, len(tasks))
	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := sim(ctx, task)
		if err != nil {
			return nil, err
		}
		log.Info("simulated",
			zap.Int("nqubits", res.NQubits),
			zap.Duration("elapsed", res.Elapsed))
		results = append(results, res)
	}
	return results, nil
}
