package concurrency

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestPoolRunsTasks(t *testing.T) {
	pool := NewGoRoutinePool(4)
	defer pool.Stop()

	const numTasks = 50
	var count int32
	var wg sync.WaitGroup
	wg.Add(numTasks)
	for i := 0; i < numTasks; i++ {
		if !pool.Schedule(func() {
			atomic.AddInt32(&count, 1)
			wg.Done()
		}) {
			t.Fatalf("Schedule refused task %d on a running pool", i)
		}
	}
	wg.Wait()

	if got := atomic.LoadInt32(&count); got != numTasks {
		t.Errorf("Tasks run: expected %d, got %d", numTasks, got)
	}
}

func TestPoolStopDrainsAcceptedTasks(t *testing.T) {
	pool := NewGoRoutinePool(2)

	const numTasks = 20
	var count int32
	accepted := 0
	for i := 0; i < numTasks; i++ {
		if pool.Schedule(func() { atomic.AddInt32(&count, 1) }) {
			accepted++
		}
	}
	pool.Stop()

	if got := int(atomic.LoadInt32(&count)); got != accepted {
		t.Errorf("Stop returned with %d of %d accepted tasks run.", got, accepted)
	}
}

func TestPoolScheduleAfterStop(t *testing.T) {
	pool := NewGoRoutinePool(1)
	pool.Stop()

	if pool.Schedule(func() { t.Error("task ran on a stopped pool") }) {
		t.Error("Schedule on a stopped pool expected to report false.")
	}
}

func TestPoolScheduleSaturated(t *testing.T) {
	pool := NewGoRoutinePool(1)
	defer pool.Stop()

	// Park the single worker so nothing is consumed, then fill the queue.
	block := make(chan struct{})
	started := make(chan struct{})
	pool.Schedule(func() { close(started); <-block })
	<-started

	refused := false
	for i := 0; i < cap(pool.queue)+1; i++ {
		if !pool.Schedule(func() {}) {
			refused = true
			break
		}
	}
	close(block)

	if !refused {
		t.Error("Schedule expected to report false once the queue is full.")
	}
}
