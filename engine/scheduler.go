package engine

import (
	"sync"
	"time"
)

// FrameScheduler paces the render loop at the display refresh interval.
//
// It holds at most one pending frame callback, which fires on the next refresh and must be
// re-requested to keep the loop going, and a queue of posted tasks. Posted tasks may come from any
// goroutine; they run on the scheduler goroutine before the frame of the same refresh.
type FrameScheduler interface {
	// RequestFrame schedules fn for the next refresh, replacing any frame already pending.
	//
	// Parameters:
	//   - fn: the frame callback
	RequestFrame(fn func())

	// Post queues fn to run on the scheduler goroutine at the next refresh. Safe for concurrent use.
	//
	// Parameters:
	//   - fn: the task to run
	Post(fn func())

	// Pending reports whether a frame callback is waiting for the next refresh.
	Pending() bool

	// Step runs one refresh: polls host events, drains posted tasks, then fires the pending frame.
	//
	// Returns:
	//   - bool: false when the host reported that it closed
	Step() bool

	// Run blocks, stepping once per refresh interval until quit is closed, the host closes or
	// alive returns false after a step.
	//
	// Parameters:
	//   - quit: closing this channel ends the loop (nil never fires)
	//   - alive: checked after every step, nil means always alive
	Run(quit <-chan struct{}, alive func() bool)

	// Interval returns the refresh interval.
	//
	// Returns:
	//   - time.Duration: the interval between steps
	Interval() time.Duration
}

// frameScheduler is the implementation of the FrameScheduler interface.
type frameScheduler struct {
	mu *sync.Mutex

	interval time.Duration
	poll     func() bool

	frame func()
	tasks []func()
}

var _ FrameScheduler = &frameScheduler{}

// NewFrameScheduler creates a FrameScheduler stepping at the given interval.
//
// Parameters:
//   - interval: the refresh interval, 1/60s when <= 0
//   - poll: polls host events once per step and reports whether the host is still open (nil polls nothing)
//
// Returns:
//   - FrameScheduler: the newly created scheduler
func NewFrameScheduler(interval time.Duration, poll func() bool) FrameScheduler {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &frameScheduler{
		mu:       &sync.Mutex{},
		interval: interval,
		poll:     poll,
	}
}

func (s *frameScheduler) RequestFrame(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.frame = fn
}

func (s *frameScheduler) Post(fn func()) {
	if fn == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = append(s.tasks, fn)
}

func (s *frameScheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.frame != nil
}

func (s *frameScheduler) Step() bool {
	if s.poll != nil && !s.poll() {
		return false
	}

	s.mu.Lock()
	tasks := s.tasks
	s.tasks = nil
	s.mu.Unlock()

	for _, task := range tasks {
		task()
	}

	// The frame is taken before it runs so it can request its successor.
	s.mu.Lock()
	frame := s.frame
	s.frame = nil
	s.mu.Unlock()

	if frame != nil {
		frame()
	}
	return true
}

func (s *frameScheduler) Run(quit <-chan struct{}, alive func() bool) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-quit:
			return
		case <-ticker.C:
			if !s.Step() {
				return
			}
			if alive != nil && !alive() {
				return
			}
		}
	}
}

func (s *frameScheduler) Interval() time.Duration {
	return s.interval
}
