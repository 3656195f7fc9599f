package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRequestFrameKeepsSinglePending(t *testing.T) {
	s := NewFrameScheduler(time.Millisecond, nil)
	var calls []string

	s.RequestFrame(func() { calls = append(calls, "first") })
	s.RequestFrame(func() { calls = append(calls, "second") })
	assert.True(t, s.Pending())

	assert.True(t, s.Step())
	assert.Equal(t, []string{"second"}, calls)
	assert.False(t, s.Pending())

	s.Step()
	assert.Equal(t, []string{"second"}, calls, "frames are not repeated unless re-requested")
}

func TestFrameCanRequestSuccessor(t *testing.T) {
	s := NewFrameScheduler(time.Millisecond, nil)
	count := 0
	var frame func()
	frame = func() {
		count++
		s.RequestFrame(frame)
	}
	s.RequestFrame(frame)

	for range 5 {
		s.Step()
	}
	assert.Equal(t, 5, count)
	assert.True(t, s.Pending())
}

func TestPostIsConcurrentSafe(t *testing.T) {
	s := NewFrameScheduler(time.Millisecond, nil)
	var mu sync.Mutex
	count := 0

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				s.Post(func() {
					mu.Lock()
					count++
					mu.Unlock()
				})
			}
		}()
	}
	wg.Wait()
	s.Post(nil)

	s.Step()
	assert.Equal(t, 800, count)
}

func TestStepStopsWhenHostCloses(t *testing.T) {
	ran := false
	s := NewFrameScheduler(time.Millisecond, func() bool { return false })
	s.RequestFrame(func() { ran = true })

	assert.False(t, s.Step())
	assert.False(t, ran)
}

func TestRunStopsWhenNotAlive(t *testing.T) {
	s := NewFrameScheduler(time.Millisecond, nil)
	steps := 0
	s.Run(nil, func() bool {
		steps++
		return steps < 3
	})
	assert.Equal(t, 3, steps)
}

func TestDefaultInterval(t *testing.T) {
	assert.Equal(t, time.Second/60, NewFrameScheduler(0, nil).Interval())
	assert.Equal(t, time.Second/144, NewFrameScheduler(time.Second/144, nil).Interval())
}
