// Package concurrency provides a bounded worker pool for background
// deliveries.
package concurrency

import "sync"

// Task is one unit of work submitted to the pool.
type Task func()

// GoRoutinePool runs tasks on a fixed set of workers behind a bounded queue.
// Submission never blocks: when the queue is full or the pool is stopped the
// task is refused and the caller decides what to do with it.
type GoRoutinePool struct {
	queue chan Task
	stop  chan struct{}
	wg    sync.WaitGroup
}

// Queue slots per worker.
const queuePerWorker = 16

// NewGoRoutinePool starts numWorkers goroutines ready to accept tasks.
func NewGoRoutinePool(numWorkers int) *GoRoutinePool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	p := &GoRoutinePool{
		queue: make(chan Task, numWorkers*queuePerWorker),
		stop:  make(chan struct{}),
	}
	p.wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go p.worker()
	}
	return p
}

// Schedule submits a task for execution. Returns false without running the
// task when the pool is stopped or the queue is saturated.
func (p *GoRoutinePool) Schedule(task Task) bool {
	select {
	case <-p.stop:
		return false
	default:
	}
	select {
	case p.queue <- task:
		return true
	default:
		return false
	}
}

// Stop shuts the pool down. Tasks already accepted are run to completion;
// Stop returns after the last one finishes.
func (p *GoRoutinePool) Stop() {
	close(p.stop)
	p.wg.Wait()
}

func (p *GoRoutinePool) worker() {
	defer p.wg.Done()
	for {
		select {
		case task := <-p.queue:
			task()
		case <-p.stop:
			// Drain whatever was accepted before the stop signal.
			for {
				select {
				case task := <-p.queue:
					task()
				default:
					return
				}
			}
		}
	}
}
