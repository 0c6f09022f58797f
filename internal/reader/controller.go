package reader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"github.com/highshore/one-cup-eng-sub002/internal/boundary"
	"github.com/highshore/one-cup-eng-sub002/internal/definition"
	"github.com/highshore/one-cup-eng-sub002/internal/metrics"
	"github.com/highshore/one-cup-eng-sub002/internal/playback"
	"github.com/highshore/one-cup-eng-sub002/internal/textindex"
	"github.com/highshore/one-cup-eng-sub002/models"
)

var (
	// ErrNoArticle is returned by operations that need an open article.
	ErrNoArticle = errors.New("reader: no article open")
	// ErrNoAudio is returned when audio mode is requested for an article
	// without narration.
	ErrNoAudio = errors.New("reader: article has no audio")
)

// LayoutFunc lays out a rendered view for hit testing.
type LayoutFunc func(root *html.Node) boundary.Layout

// DefaultLayout lays text out on a 10x20 grid, 80 columns wide.
func DefaultLayout(root *html.Node) boundary.Layout {
	return boundary.NewGridLayout(root, 10, 20, 80)
}

// Options configure a Controller. Zero values fall back to defaults, except
// BreakWidth where zero is a valid width and a negative value selects
// textindex.DefaultBreakWidth.
type Options struct {
	Definitions          *definition.Service
	Audio                playback.SourceFactory
	Scheduler            playback.FrameScheduler
	Viewport             playback.Viewport
	Document             Document
	Preferences          Preferences
	Layout               LayoutFunc
	Limits               boundary.Limits
	LongPressDelay       time.Duration
	MoveThreshold        float64
	TranslationWarnAfter int
	BreakWidth           int
	AfterFunc            AfterFunc
	Logger               *logrus.Logger
	// OnTranslationWarning is called when the reliance warning should show.
	OnTranslationWarning func()
}

// Controller is the state of one reading view.
type Controller struct {
	log          *logrus.Entry
	clock        *playback.Clock
	session      *definition.Session
	modal        *ModalScope
	gesture      *LongPress
	translations *Translations
	layout       LayoutFunc
	limits       boundary.Limits
	breakWidth   int
	onWarning    func()

	mu          sync.Mutex
	article     *models.Article
	highlighter *textindex.Highlighter
	mode        Mode
	opened      bool
}

func NewController(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	layout := opts.Layout
	if layout == nil {
		layout = DefaultLayout
	}
	limits := opts.Limits
	if limits.MaxLength == 0 {
		limits = boundary.DefaultLimits()
	}
	breakWidth := opts.BreakWidth
	if breakWidth < 0 {
		breakWidth = textindex.DefaultBreakWidth
	}
	svc := opts.Definitions
	if svc == nil {
		svc = definition.NewService(nil, nil, nil, "", logger)
	}

	return &Controller{
		log: logger.WithField("component", "reader"),
		clock: playback.NewClock(playback.Options{
			Factory:   opts.Audio,
			Scheduler: opts.Scheduler,
			Viewport:  opts.Viewport,
			Logger:    logger,
		}),
		session:      definition.NewSession(svc, logger, nil),
		modal:        NewModalScope(opts.Document),
		gesture:      NewLongPress(opts.LongPressDelay, opts.MoveThreshold, opts.AfterFunc),
		translations: NewTranslations(opts.TranslationWarnAfter, opts.Preferences),
		layout:       layout,
		limits:       limits,
		breakWidth:   breakWidth,
		onWarning:    opts.OnTranslationWarning,
		mode:         ModeNormal,
	}
}

// Open shows article, discarding all state of the previous one.
func (c *Controller) Open(article *models.Article) {
	article.Normalize()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.teardownLocked()
	c.article = article
	c.highlighter = textindex.NewHighlighter(article, c.breakWidth)
	c.mode = ModeNormal
	c.translations.Reset()
	if !c.opened {
		c.opened = true
		metrics.ActiveReadingSessions.Inc()
	}

	al := c.highlighter.Alignment()
	c.log.WithFields(logrus.Fields{
		"article_id": article.ID,
		"exact":      al.Exact,
		"delta":      al.Delta,
	}).Debug("Article opened")
}

// Close tears the view down: playback stops, the modal closes and every
// document listener is released.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.teardownLocked()
	c.article = nil
	c.highlighter = nil
	c.mode = ModeNormal
	if c.opened {
		c.opened = false
		metrics.ActiveReadingSessions.Dec()
	}
}

func (c *Controller) teardownLocked() {
	c.gesture.Cancel()
	c.clock.Unload()
	c.clock.Settle()
	c.modal.Close()
	c.session.Close()
}

func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Clock exposes the playback controls of audio mode.
func (c *Controller) Clock() *playback.Clock { return c.clock }

// Highlighter returns the alignment tables of the open article.
func (c *Controller) Highlighter() *textindex.Highlighter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.highlighter
}

func (c *Controller) ToggleQuickRead(ctx context.Context) error {
	return c.apply(ctx, EventToggleQuickRead)
}

func (c *Controller) ToggleAudio(ctx context.Context) error {
	return c.apply(ctx, EventToggleAudio)
}

// apply moves between modes. Leaving audio mode always unloads playback;
// entering it loads the article's narration, and a failed load keeps the
// current mode.
func (c *Controller) apply(ctx context.Context, ev ModeEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.article == nil {
		return ErrNoArticle
	}
	next, err := NextMode(c.mode, ev)
	if err != nil {
		return err
	}
	if next == ModeAudio && !c.article.HasAudio() {
		return ErrNoAudio
	}

	if c.mode == ModeAudio {
		c.clock.Unload()
		c.clock.Settle()
	}
	c.gesture.Cancel()

	if next == ModeAudio {
		c.clock.SetHighlighter(c.highlighter)
		if err := c.clock.Load(ctx, c.article.Audio.URL); err != nil {
			return fmt.Errorf("enter audio mode: %w", err)
		}
	}
	c.log.WithFields(logrus.Fields{"from": c.mode, "to": next}).Debug("Reading mode changed")
	c.mode = next
	return nil
}

// Render builds the current view of the article.
func (c *Controller) Render() (*html.Node, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renderLocked()
}

func (c *Controller) renderLocked() (*html.Node, error) {
	if c.article == nil {
		return nil, ErrNoArticle
	}
	in := viewInput{
		english: c.article.Content.English,
		korean:  c.article.Content.Korean,
		mode:    c.mode,
		index:   c.highlighter.Index(),
		visible: c.translations.Visible,
	}
	if c.mode == ModeAudio {
		in.highlight = c.clock.Snapshot().Highlight
	}
	return render(in), nil
}

// PointerDown starts a long-press. Audio mode uses taps instead, so the
// gesture is ignored there.
func (c *Controller) PointerDown(x, y float64) {
	if c.Mode() == ModeAudio {
		return
	}
	c.gesture.Press(x, y)
}

func (c *Controller) PointerMove(x, y float64) {
	c.gesture.Move(x, y)
}

// PointerUp ends a press. A completed long-press looks up the word under the
// release point; it returns that word, or "" when nothing was looked up.
func (c *Controller) PointerUp(ctx context.Context, x, y float64) string {
	if !c.gesture.Release() {
		return ""
	}
	if c.Mode() == ModeAudio {
		return ""
	}
	word, _ := c.LookupAt(ctx, x, y)
	return word
}

// LookupAt resolves the word at (x, y) and opens the definition modal for
// it. Words the acceptance rule rejects are ignored.
func (c *Controller) LookupAt(ctx context.Context, x, y float64) (string, bool) {
	c.mu.Lock()
	root, err := c.renderLocked()
	if err != nil {
		c.mu.Unlock()
		return "", false
	}
	articleID := c.article.ID
	c.mu.Unlock()

	res := boundary.ExtractWordAtPoint(root, c.layout(root), x, y)
	if !boundary.Accept(res.Word, c.limits) {
		return "", false
	}
	sentence := boundary.SentenceAt(boundary.FlattenText(res.Paragraph), res.Start)
	c.OpenDefinition(ctx, articleID, res.Word, sentence)
	return res.Word, true
}

// OpenDefinition shows the modal for word and starts both lookups.
func (c *Controller) OpenDefinition(ctx context.Context, articleID, word, sentence string) string {
	c.modal.Open(c.session.Close)
	return c.session.Start(ctx, articleID, word, sentence)
}

// CloseDefinition closes the modal and releases the page.
func (c *Controller) CloseDefinition() {
	c.modal.Close()
	c.session.Close()
}

// Definition returns the modal state.
func (c *Controller) Definition() definition.State {
	return c.session.State()
}

// WaitDefinition blocks until in-flight lookups have returned.
func (c *Controller) WaitDefinition() {
	c.session.Wait()
}

// ModalOpen reports whether the definition modal holds the page.
func (c *Controller) ModalOpen() bool {
	return c.modal.IsOpen()
}

// Click handles a tap at (x, y). In audio mode a tap on a character seeks
// to it and starts playback.
func (c *Controller) Click(x, y float64) (bool, error) {
	c.mu.Lock()
	if c.mode != ModeAudio {
		c.mu.Unlock()
		return false, nil
	}
	root, err := c.renderLocked()
	c.mu.Unlock()
	if err != nil {
		return false, err
	}
	caret, ok := c.layout(root).CaretAt(x, y)
	if !ok {
		return false, nil
	}
	return c.ClickNode(root, caret.Node)
}

// ClickNode seeks to the character span enclosing target. A target outside
// any character span is ignored.
func (c *Controller) ClickNode(root, target *html.Node) (bool, error) {
	c.mu.Lock()
	if c.mode != ModeAudio || c.highlighter == nil {
		c.mu.Unlock()
		return false, nil
	}
	h := c.highlighter
	c.mu.Unlock()

	index, ok := boundary.IntAttr(target, root, CharIndexAttr)
	if !ok {
		return false, nil
	}
	at, ok := h.SeekTime(index)
	if !ok {
		return false, nil
	}
	if err := c.clock.SeekTo(at); err != nil {
		return false, err
	}
	if !c.clock.Playing() {
		if err := c.clock.Play(); err != nil {
			return false, err
		}
	}
	return true, nil
}

// ToggleTranslation shows or hides the Korean text of paragraph p.
func (c *Controller) ToggleTranslation(p int) (visible, warned bool, err error) {
	c.mu.Lock()
	if c.article == nil {
		c.mu.Unlock()
		return false, false, ErrNoArticle
	}
	if p < 0 || p >= len(c.article.Content.English) {
		c.mu.Unlock()
		return false, false, fmt.Errorf("reader: paragraph %d out of range", p)
	}
	c.mu.Unlock()

	visible, warned = c.translations.Toggle(p)
	if warned && c.onWarning != nil {
		c.onWarning()
	}
	return visible, warned, nil
}

// DismissTranslationWarning stops the reliance warning for good.
func (c *Controller) DismissTranslationWarning() error {
	return c.translations.Dismiss()
}

// TranslationVisible reports whether paragraph p shows its Korean text.
func (c *Controller) TranslationVisible(p int) bool {
	return c.translations.Visible(p)
}
