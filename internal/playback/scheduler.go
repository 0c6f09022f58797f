package playback

import (
	"sync"
	"time"
)

// FrameScheduler runs a callback once on the next frame.
type FrameScheduler interface {
	RequestFrame(fn func()) (cancel func())
}

// DefaultFrameInterval approximates a 60Hz display.
const DefaultFrameInterval = 16 * time.Millisecond

// TimerScheduler schedules frames on a fixed interval.
type TimerScheduler struct {
	Interval time.Duration
}

func NewTimerScheduler(interval time.Duration) *TimerScheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &TimerScheduler{Interval: interval}
}

func (s *TimerScheduler) RequestFrame(fn func()) func() {
	t := time.AfterFunc(s.Interval, fn)
	return func() { t.Stop() }
}

// ManualScheduler holds frames until Step is called.
type ManualScheduler struct {
	mu      sync.Mutex
	nextID  int
	pending map[int]func()
	order   []int
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{pending: make(map[int]func())}
}

func (m *ManualScheduler) RequestFrame(fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.pending[id] = fn
	m.order = append(m.order, id)
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.pending, id)
	}
}

// Step runs the frames that were pending when it was called and returns how
// many ran. Frames requested during Step wait for the next call.
func (m *ManualScheduler) Step() int {
	m.mu.Lock()
	var due []func()
	for _, id := range m.order {
		if fn, ok := m.pending[id]; ok {
			due = append(due, fn)
			delete(m.pending, id)
		}
	}
	m.order = nil
	m.mu.Unlock()

	for _, fn := range due {
		fn()
	}
	return len(due)
}

// Run steps up to n frames, stopping early once nothing is pending.
func (m *ManualScheduler) Run(n int) int {
	ran := 0
	for i := 0; i < n; i++ {
		if m.Step() == 0 {
			break
		}
		ran++
	}
	return ran
}

func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}
