// Package playback drives article audio and keeps the highlighted word in
// step with it.
package playback

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/highshore/one-cup-eng-sub002/internal/textindex"
)

// Viewport reports and adjusts what part of the article is on screen.
type Viewport interface {
	Visible(word textindex.WordRef) bool
	ScrollIntoView(word textindex.WordRef)
}

// Snapshot is an immutable view of the clock, published after every change.
type Snapshot struct {
	State       State               `json:"state"`
	Playing     bool                `json:"isPlaying"`
	URL         string              `json:"url,omitempty"`
	CurrentTime float64             `json:"currentTime"`
	Duration    float64             `json:"duration"`
	Progress    float64             `json:"progress"`
	Speed       float64             `json:"speed"`
	Highlight   textindex.Highlight `json:"highlight"`
}

type Options struct {
	Factory   SourceFactory
	Scheduler FrameScheduler
	Viewport  Viewport
	Logger    *logrus.Logger
	// OnUpdate receives every published snapshot. It is called without the
	// clock's lock held.
	OnUpdate func(Snapshot)
}

// Clock owns at most one audio source and a per-frame tick loop that runs
// only while audio is playing.
type Clock struct {
	mu        sync.Mutex
	factory   SourceFactory
	scheduler FrameScheduler
	viewport  Viewport
	log       *logrus.Entry
	onUpdate  func(Snapshot)

	src         Source
	unsubscribe func()
	cancelFrame func()
	frameGen    uint64
	ctx         context.Context
	cancel      context.CancelFunc
	srcGen      uint64
	playGen     uint64
	pending     sync.WaitGroup

	state   State
	playing bool
	current float64
	rate    float64

	highlighter *textindex.Highlighter
	highlight   textindex.Highlight
	lastWord    textindex.WordRef
	hasLast     bool
}

func NewClock(opts Options) *Clock {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = NewTimerScheduler(DefaultFrameInterval)
	}
	return &Clock{
		factory:   opts.Factory,
		scheduler: scheduler,
		viewport:  opts.Viewport,
		log:       logger.WithField("component", "playback"),
		onUpdate:  opts.OnUpdate,
		state:     StateIdle,
		rate:      1,
	}
}

// SetHighlighter installs the alignment tables of the current article. A nil
// highlighter disables word tracking.
func (c *Clock) SetHighlighter(h *textindex.Highlighter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.highlighter = h
	c.highlight = textindex.Highlight{TimestampIndex: -1}
	c.hasLast = false
}

// Load attaches the source at url. Loading the URL that is already attached
// is a no-op; any other source is detached first.
func (c *Clock) Load(ctx context.Context, url string) error {
	c.mu.Lock()
	if c.src != nil && c.src.URL() == url {
		c.mu.Unlock()
		return nil
	}
	if c.factory == nil {
		c.mu.Unlock()
		return fmt.Errorf("load %s: %w", url, ErrNoSource)
	}
	c.detachLocked()

	src, err := c.factory(url)
	if err != nil {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.notify(snap)
		return fmt.Errorf("load %s: %w", url, err)
	}
	next, err := Transition(c.state, EventLoad)
	if err != nil {
		c.mu.Unlock()
		return err
	}

	c.srcGen++
	gen := c.srcGen
	c.src = src
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.unsubscribe = src.Subscribe(func(ev SourceEvent) { c.handleEvent(gen, ev) })
	src.SetRate(c.rate)
	c.state = next
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if err := src.Preload(ctx); err != nil {
		c.log.WithFields(logrus.Fields{"url": url, "error": err}).Warn("Failed to preload audio metadata")
	}
	c.notify(snap)
	return nil
}

// TogglePlayPause pauses synchronously when playing. Otherwise it requests
// playback in the background; a refused request reverts to paused and is
// logged rather than returned.
func (c *Clock) TogglePlayPause() error {
	c.mu.Lock()
	if c.src == nil {
		c.mu.Unlock()
		return ErrNoSource
	}

	if c.playing {
		c.pauseLocked()
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.notify(snap)
		return nil
	}

	next, err := Transition(c.state, EventPlay)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.state = next
	c.playing = true
	c.playGen++
	gen, src, ctx := c.playGen, c.src, c.ctx
	c.pending.Add(1)
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
	go c.requestPlay(ctx, src, gen)
	return nil
}

// Play starts playback unless it is already playing.
func (c *Clock) Play() error {
	c.mu.Lock()
	playing := c.playing
	c.mu.Unlock()
	if playing {
		return nil
	}
	return c.TogglePlayPause()
}

func (c *Clock) requestPlay(ctx context.Context, src Source, gen uint64) {
	defer c.pending.Done()
	err := src.Play(ctx)

	c.mu.Lock()
	if gen != c.playGen || src != c.src {
		// A pause or unload overtook the request. A play that still went
		// through must not leave the source running behind a paused clock.
		if err == nil && src == c.src && !c.playing {
			src.Pause()
		}
		c.mu.Unlock()
		return
	}
	if err != nil {
		c.playing = false
		if next, terr := Transition(c.state, EventReject); terr == nil {
			c.state = next
		}
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.log.WithFields(logrus.Fields{"url": src.URL(), "error": err}).Warn("Audio playback was refused")
		c.notify(snap)
		return
	}
	c.scheduleLocked()
	c.mu.Unlock()
}

// Settle blocks until every pending play request has resolved.
func (c *Clock) Settle() {
	c.pending.Wait()
}

// Tick runs once per frame while playing. It publishes the source time and
// reschedules itself only if playback is still running.
func (c *Clock) Tick() {
	c.mu.Lock()
	c.tickLocked()
}

// frame runs a scheduled tick unless the frame was cancelled or replaced
// after it fired.
func (c *Clock) frame(gen uint64) {
	c.mu.Lock()
	if gen != c.frameGen {
		c.mu.Unlock()
		return
	}
	c.tickLocked()
}

// tickLocked is called with c.mu held and releases it.
func (c *Clock) tickLocked() {
	if !c.playing || c.src == nil {
		c.stopFrameLocked()
		c.mu.Unlock()
		return
	}
	c.current = c.src.CurrentTime()
	target, moved := c.trackLocked()
	c.scheduleLocked()
	vp := c.viewport
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if moved {
		scrollIfHidden(vp, target)
	}
	c.notify(snap)
}

// Seek jumps to fraction (0..1) of the duration and publishes the new time
// immediately.
func (c *Clock) Seek(fraction float64) error {
	c.mu.Lock()
	if c.src == nil {
		c.mu.Unlock()
		return ErrNoSource
	}
	d := c.durationLocked()
	if d == 0 {
		c.mu.Unlock()
		return errors.New("playback: duration unknown")
	}
	fraction = math.Max(0, math.Min(1, fraction))
	c.mu.Unlock()
	return c.SeekTo(fraction * d)
}

// SeekTo jumps to an absolute time in seconds.
func (c *Clock) SeekTo(seconds float64) error {
	c.mu.Lock()
	if c.src == nil {
		c.mu.Unlock()
		return ErrNoSource
	}
	seconds = math.Max(0, seconds)
	if d := c.durationLocked(); d > 0 {
		seconds = math.Min(seconds, d)
	}
	c.src.Seek(seconds)
	c.current = seconds
	target, moved := c.trackLocked()
	vp := c.viewport
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if moved {
		scrollIfHidden(vp, target)
	}
	c.notify(snap)
	return nil
}

// SetSpeed changes the playback rate. The rate carries over to sources
// loaded later.
func (c *Clock) SetSpeed(rate float64) error {
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return fmt.Errorf("playback: invalid speed %v", rate)
	}
	c.mu.Lock()
	c.rate = rate
	if c.src != nil {
		c.src.SetRate(rate)
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
	return nil
}

// Unload detaches listeners, pauses, releases the source and cancels any
// pending frame.
func (c *Clock) Unload() {
	c.mu.Lock()
	c.detachLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
}

func (c *Clock) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Clock) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

// FramePending reports whether a tick is scheduled.
func (c *Clock) FramePending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancelFrame != nil
}

func (c *Clock) handleEvent(gen uint64, ev SourceEvent) {
	c.mu.Lock()
	if gen != c.srcGen || c.src == nil {
		c.mu.Unlock()
		return
	}
	switch ev.Type {
	case SourceTimeUpdate:
		if !c.playing {
			c.current = ev.Time
		}
	case SourceEnded:
		c.endLocked()
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
}

// endLocked rewinds to the start and leaves the source loaded.
func (c *Clock) endLocked() {
	c.stopFrameLocked()
	c.playing = false
	c.playGen++
	if next, err := Transition(c.state, EventEnd); err == nil {
		c.state = next
	}
	c.src.Seek(0)
	c.current = 0
	c.hasLast = false
	c.highlight = textindex.Highlight{TimestampIndex: -1}
	if next, err := Transition(c.state, EventReset); err == nil {
		c.state = next
	}
}

func (c *Clock) pauseLocked() {
	c.src.Pause()
	c.playing = false
	c.playGen++
	c.stopFrameLocked()
	if next, err := Transition(c.state, EventPause); err == nil {
		c.state = next
	}
}

func (c *Clock) detachLocked() {
	c.stopFrameLocked()
	c.playGen++
	if c.src == nil {
		c.state = StateIdle
		return
	}
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	if c.cancel != nil {
		c.cancel()
	}
	c.src.Pause()
	if err := c.src.Close(); err != nil {
		c.log.WithFields(logrus.Fields{"url": c.src.URL(), "error": err}).Warn("Failed to release audio source")
	}
	c.src = nil
	c.playing = false
	c.current = 0
	c.hasLast = false
	c.highlight = textindex.Highlight{TimestampIndex: -1}
	c.state, _ = Transition(c.state, EventUnload)
}

func (c *Clock) scheduleLocked() {
	c.stopFrameLocked()
	gen := c.frameGen
	c.cancelFrame = c.scheduler.RequestFrame(func() { c.frame(gen) })
}

// stopFrameLocked cancels the pending frame and invalidates any frame that
// already fired and is waiting for the lock.
func (c *Clock) stopFrameLocked() {
	c.frameGen++
	if c.cancelFrame != nil {
		c.cancelFrame()
		c.cancelFrame = nil
	}
}

// trackLocked updates the highlight and reports whether the active word
// changed.
func (c *Clock) trackLocked() (textindex.WordRef, bool) {
	if c.highlighter == nil {
		return textindex.WordRef{}, false
	}
	h := c.highlighter.At(c.current, c.durationLocked())
	c.highlight = h
	if !h.Active || (c.hasLast && h.Word == c.lastWord) {
		return textindex.WordRef{}, false
	}
	c.lastWord = h.Word
	c.hasLast = true
	return h.Word, true
}

func scrollIfHidden(vp Viewport, word textindex.WordRef) {
	if vp == nil || vp.Visible(word) {
		return
	}
	vp.ScrollIntoView(word)
}

// durationLocked returns 0 while the duration is unknown.
func (c *Clock) durationLocked() float64 {
	if c.src == nil {
		return 0
	}
	d := c.src.Duration()
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return 0
	}
	return d
}

func (c *Clock) snapshotLocked() Snapshot {
	s := Snapshot{
		State:       c.state,
		Playing:     c.playing,
		CurrentTime: c.current,
		Speed:       c.rate,
		Highlight:   c.highlight,
	}
	if c.src != nil {
		s.URL = c.src.URL()
		s.Duration = c.durationLocked()
	}
	if s.Duration > 0 {
		s.Progress = c.current / s.Duration * 100
	}
	return s
}

func (c *Clock) notify(s Snapshot) {
	if c.onUpdate != nil {
		c.onUpdate(s)
	}
}
