// Package worker runs fire-and-forget jobs off the request path with a
// bounded queue and a per-job timeout.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tripbid/pkg/logger"
)

type Job struct {
	Name    string
	Timeout time.Duration
	Run     func(ctx context.Context) error
}

type Config struct {
	Workers        int
	QueueSize      int
	DefaultTimeout time.Duration
}

type Pool struct {
	jobs           chan Job
	defaultTimeout time.Duration
	log            *logger.Logger

	mu      sync.RWMutex
	closed  bool
	running sync.WaitGroup
}

func NewPool(config Config, log *logger.Logger) *Pool {
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.DefaultTimeout <= 0 {
		config.DefaultTimeout = 5 * time.Second
	}

	p := &Pool{
		jobs:           make(chan Job, config.QueueSize),
		defaultTimeout: config.DefaultTimeout,
		log:            log,
	}

	for i := 0; i < config.Workers; i++ {
		p.running.Add(1)
		go p.work()
	}

	return p
}

// Submit queues job without blocking. When the queue is full the job runs on
// its own goroutine so it is still attempted. Jobs submitted after Close are
// dropped and reported as false.
func (p *Pool) Submit(job Job) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		p.log.WithField("job", job.Name).Warn("Worker pool closed, dropping job")
		return false
	}

	select {
	case p.jobs <- job:
	default:
		p.running.Add(1)
		go func() {
			defer p.running.Done()
			p.execute(job)
		}()
	}

	return true
}

// Close stops accepting jobs and waits for queued and running jobs to finish.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	p.running.Wait()
}

func (p *Pool) work() {
	defer p.running.Done()
	for job := range p.jobs {
		p.execute(job)
	}
}

func (p *Pool) execute(job Job) {
	timeout := job.Timeout
	if timeout <= 0 {
		timeout = p.defaultTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := p.safeRun(ctx, job); err != nil {
		p.log.WithField("job", job.Name).WithError(err).Warn("Async job failed")
	}
}

func (p *Pool) safeRun(ctx context.Context, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return job.Run(ctx)
}
