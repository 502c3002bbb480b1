package performance

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPoolRunsTasks(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Start()
	defer pool.Stop()

	var counter atomic.Int64
	var wg sync.WaitGroup
	const tasks = 100

	for i := 0; i < tasks; i++ {
		wg.Add(1)
		ok := pool.Submit(func() {
			counter.Add(1)
			wg.Done()
		})
		if !ok {
			t.Fatal("submit refused")
		}
	}
	wg.Wait()

	if counter.Load() != tasks {
		t.Errorf("ran %d tasks, want %d", counter.Load(), tasks)
	}

	stats := pool.Stats()
	if stats.TasksTotal != tasks {
		t.Errorf("TasksTotal = %d, want %d", stats.TasksTotal, tasks)
	}
	if !stats.Running {
		t.Error("pool should be running")
	}
}

func TestWorkerPoolSubmitWhenStopped(t *testing.T) {
	pool := NewWorkerPool(2)
	if pool.Submit(func() {}) {
		t.Error("submit should fail before Start")
	}

	pool.Start()
	pool.Stop()
	if pool.Submit(func() {}) {
		t.Error("submit should fail after Stop")
	}
}

func TestWorkerPoolSubmitWait(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Start()
	defer pool.Stop()

	ran := false
	if !pool.SubmitWait(func() { ran = true }) {
		t.Fatal("SubmitWait refused")
	}
	if !ran {
		t.Error("task did not run")
	}
}

func TestWorkerPoolDefaultWorkers(t *testing.T) {
	pool := NewWorkerPool(0)
	if pool.Stats().Workers <= 0 {
		t.Errorf("Workers = %d, want positive", pool.Stats().Workers)
	}
}

// BenchmarkWorkerPool benchmarks the worker pool performance.
func BenchmarkWorkerPool(b *testing.B) {
	pool := NewWorkerPool(4)
	pool.Start()
	defer pool.Stop()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var wg sync.WaitGroup
		wg.Add(1)
		pool.Submit(func() {
			// Simulate some work
			time.Sleep(time.Microsecond)
			wg.Done()
		})
		wg.Wait()
	}
}

// BenchmarkWorkerPoolParallel benchmarks parallel task submission.
func BenchmarkWorkerPoolParallel(b *testing.B) {
	pool := NewWorkerPool(8)
	pool.Start()
	defer pool.Stop()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			done := make(chan struct{})
			pool.Submit(func() {
				close(done)
			})
			<-done
		}
	})
}
