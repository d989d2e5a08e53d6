package workerpool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolDrainsInOrder(t *testing.T) {
	const n = 50
	jobs := make([]Job, n)
	for i := range jobs {
		jobs[i] = Job{FrameNumber: i, Data: i}
	}

	var mu sync.Mutex
	var drained []int
	p := New(jobs, func(frameNumber int, result interface{}) {
		mu.Lock()
		defer mu.Unlock()
		drained = append(drained, frameNumber)
		if result.(int) != frameNumber {
			t.Errorf("sink got result %v for frame %d", result, frameNumber)
		}
	})

	p.Run(4, func(workerID int, job Job) interface{} {
		// Out-of-order completion: later-numbered jobs finish faster.
		time.Sleep(time.Duration(n-job.FrameNumber) * time.Microsecond)
		return job.Data
	})

	if len(drained) != n {
		t.Fatalf("drained %d frames, want %d", len(drained), n)
	}
	for i, f := range drained {
		if f != i {
			t.Fatalf("drained[%d] = %d, want %d (out of order)", i, f, i)
		}
	}
}

func TestPoolAbortStopsEarly(t *testing.T) {
	jobs := make([]Job, 1000)
	for i := range jobs {
		jobs[i] = Job{FrameNumber: i}
	}
	var processed int32
	p := New(jobs, func(int, interface{}) {})

	p.Run(2, func(workerID int, job Job) interface{} {
		if job.FrameNumber == 5 {
			p.Abort()
		}
		atomic.AddInt32(&processed, 1)
		return nil
	})

	if !p.Aborted() {
		t.Error("pool not marked aborted")
	}
	if got := atomic.LoadInt32(&processed); got >= int32(len(jobs)) {
		t.Errorf("processed %d jobs, want fewer than %d after abort", got, len(jobs))
	}
}
