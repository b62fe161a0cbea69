package executor

import (
	"sync"
	"time"

	"github.com/prometheus/procfs"
)

// sampler polls the resident set size of one process until stopped.
type sampler struct {
	stop chan struct{}
	done chan struct{}

	mu      sync.Mutex
	samples []int64
	err     error
}

func startSampler(pid int, every time.Duration) *sampler {
	s := &sampler{stop: make(chan struct{}), done: make(chan struct{})}
	go s.run(pid, every)
	return s
}

func (s *sampler) run(pid int, every time.Duration) {
	defer close(s.done)
	fs, err := procfs.NewDefaultFS()
	if err != nil {
		s.setErr(err)
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		if rss, err := residentBytes(fs, pid); err == nil {
			s.mu.Lock()
			s.samples = append(s.samples, rss)
			s.mu.Unlock()
		} else {
			s.setErr(err)
		}
		select {
		case <-s.stop:
			return
		case <-ticker.C:
		}
	}
}

func residentBytes(fs procfs.FS, pid int) (int64, error) {
	p, err := fs.Proc(pid)
	if err != nil {
		return 0, err
	}
	st, err := p.Stat()
	if err != nil {
		return 0, err
	}
	return int64(st.ResidentMemory()), nil
}

func (s *sampler) setErr(err error) {
	s.mu.Lock()
	if s.err == nil {
		s.err = err
	}
	s.mu.Unlock()
}

// finish stops polling and waits at most timeout for the poller to exit.
// It returns the samples taken so far and the first sampling error.
func (s *sampler) finish(timeout time.Duration) ([]int64, error) {
	close(s.stop)
	select {
	case <-s.done:
	case <-time.After(timeout):
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.samples...), s.err
}
