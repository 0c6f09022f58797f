package playback

import (
	"context"
	"errors"
	"math"
	"sync"
)

// ErrPlayAborted is returned by SimulatedSource.Play when Pause or Close
// interrupts a pending play request.
var ErrPlayAborted = errors.New("playback: play request aborted")

// SimulatedSource is an in-memory Source whose time only moves on Advance.
type SimulatedSource struct {
	mu       sync.Mutex
	url      string
	duration float64
	known    bool
	current  float64
	rate     float64
	playing  bool
	closed   bool
	playErr  error
	gate     chan struct{}
	epoch    int
	plays    int
	pauses   int
	nextSub  int
	subs     map[int]func(SourceEvent)
}

func NewSimulatedSource(url string, duration float64) *SimulatedSource {
	return &SimulatedSource{
		url:      url,
		duration: duration,
		rate:     1,
		subs:     make(map[int]func(SourceEvent)),
	}
}

// RefusePlay makes subsequent Play calls fail with err.
func (s *SimulatedSource) RefusePlay(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playErr = err
}

// Hold makes Play block until Release is called.
func (s *SimulatedSource) Hold() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gate = make(chan struct{})
}

func (s *SimulatedSource) Release() {
	s.mu.Lock()
	gate := s.gate
	s.gate = nil
	s.mu.Unlock()
	if gate != nil {
		close(gate)
	}
}

func (s *SimulatedSource) URL() string { return s.url }

func (s *SimulatedSource) Preload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.known = true
	d := s.duration
	s.mu.Unlock()
	s.emit(SourceEvent{Type: SourceLoadedMetadata, Time: d})
	return nil
}

func (s *SimulatedSource) Play(ctx context.Context) error {
	s.mu.Lock()
	s.plays++
	epoch := s.epoch
	gate := s.gate
	s.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.epoch != epoch {
		return ErrPlayAborted
	}
	if s.playErr != nil {
		return s.playErr
	}
	s.playing = true
	return nil
}

func (s *SimulatedSource) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pauses++
	s.epoch++
	s.playing = false
}

func (s *SimulatedSource) Seek(seconds float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = math.Max(0, math.Min(seconds, s.duration))
}

func (s *SimulatedSource) SetRate(rate float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rate = rate
}

func (s *SimulatedSource) CurrentTime() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *SimulatedSource) Duration() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.known {
		return math.NaN()
	}
	return s.duration
}

func (s *SimulatedSource) Subscribe(fn func(SourceEvent)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *SimulatedSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.epoch++
	s.playing = false
	return nil
}

// Advance moves playback forward by dt seconds of wall time, scaled by the
// playback rate, and emits timeupdate or ended.
func (s *SimulatedSource) Advance(dt float64) {
	s.mu.Lock()
	if !s.playing {
		s.mu.Unlock()
		return
	}
	s.current += dt * s.rate
	ev := SourceEvent{Type: SourceTimeUpdate}
	if s.current >= s.duration {
		s.current = s.duration
		s.playing = false
		ev.Type = SourceEnded
	}
	ev.Time = s.current
	s.mu.Unlock()
	s.emit(ev)
}

func (s *SimulatedSource) emit(ev SourceEvent) {
	s.mu.Lock()
	fns := make([]func(SourceEvent), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

func (s *SimulatedSource) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

func (s *SimulatedSource) Rate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rate
}

func (s *SimulatedSource) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Calls reports how many times Play and Pause were invoked.
func (s *SimulatedSource) Calls() (plays, pauses int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plays, s.pauses
}

func (s *SimulatedSource) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
