package complexity

import (
	"runtime"
	"runtime/metrics"
	"sync/atomic"
	"time"
)

const (
	heapObjects = "/memory/classes/heap/objects:bytes"
	heapEvery   = time.Millisecond
)

// heapWatch records the high-water mark of heap object bytes above the
// level seen when it started. Objects not yet swept count as live, so a
// run too short to be sampled still reports what it allocated since the
// last collection.
type heapWatch struct {
	base int64
	peak atomic.Int64
	stop chan struct{}
	done chan struct{}
}

func heapBytes() int64 {
	s := []metrics.Sample{{Name: heapObjects}}
	metrics.Read(s)
	if s[0].Value.Kind() != metrics.KindUint64 {
		return 0
	}
	return int64(s[0].Value.Uint64())
}

func watchHeap() *heapWatch {
	runtime.GC()
	w := &heapWatch{
		base: heapBytes(),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go func() {
		defer close(w.done)
		tick := time.NewTicker(heapEvery)
		defer tick.Stop()
		for {
			select {
			case <-w.stop:
				return
			case <-tick.C:
				w.observe()
			}
		}
	}()
	return w
}

func (w *heapWatch) observe() {
	cur := heapBytes() - w.base
	for {
		old := w.peak.Load()
		if cur <= old || w.peak.CompareAndSwap(old, cur) {
			return
		}
	}
}

// Stop takes a last sample, ends the watcher and returns the peak.
func (w *heapWatch) Stop() int64 {
	w.observe()
	close(w.stop)
	<-w.done
	return w.peak.Load()
}
