package reader

import (
	"math"
	"sync"
	"time"
)

const (
	DefaultLongPressDelay = 500 * time.Millisecond
	DefaultMoveThreshold  = 8.0
)

// Timer is a stoppable pending callback.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// LongPress tells a press-and-hold apart from a tap or a drag. It handles
// mouse and touch input the same way.
type LongPress struct {
	delay     time.Duration
	threshold float64
	afterFunc AfterFunc

	mu       sync.Mutex
	pressed  bool
	fired    bool
	startX   float64
	startY   float64
	timer    Timer
	sequence uint64
}

func NewLongPress(delay time.Duration, threshold float64, af AfterFunc) *LongPress {
	if delay <= 0 {
		delay = DefaultLongPressDelay
	}
	if threshold <= 0 {
		threshold = DefaultMoveThreshold
	}
	if af == nil {
		af = realAfterFunc
	}
	return &LongPress{delay: delay, threshold: threshold, afterFunc: af}
}

// Press records the start position and arms the hold timer.
func (g *LongPress) Press(x, y float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.disarmLocked()
	g.pressed = true
	g.fired = false
	g.startX, g.startY = x, y
	g.sequence++
	seq := g.sequence
	g.timer = g.afterFunc(g.delay, func() { g.fire(seq) })
}

func (g *LongPress) fire(seq uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.pressed || seq != g.sequence {
		return
	}
	g.fired = true
	g.timer = nil
}

// Move disarms the gesture once the pointer travels past the threshold
// before the hold completes.
func (g *LongPress) Move(x, y float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.pressed || g.fired {
		return
	}
	if math.Hypot(x-g.startX, y-g.startY) > g.threshold {
		g.disarmLocked()
	}
}

// Release ends the gesture and reports whether it was a long press.
func (g *LongPress) Release() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	fired := g.pressed && g.fired
	g.disarmLocked()
	return fired
}

// Cancel abandons any gesture in progress.
func (g *LongPress) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.disarmLocked()
}

// Armed reports whether a press is being held.
func (g *LongPress) Armed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pressed
}

func (g *LongPress) disarmLocked() {
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.pressed = false
	g.fired = false
	g.sequence++
}
