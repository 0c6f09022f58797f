// Package wordbook loads a user's saved words and the dictionary detail of
// each word in the background.
package wordbook

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/highshore/one-cup-eng-sub002/internal/jobs"
	"github.com/highshore/one-cup-eng-sub002/internal/metrics"
	"github.com/highshore/one-cup-eng-sub002/internal/worker"
	"github.com/highshore/one-cup-eng-sub002/models"
)

// DefaultWatchdog bounds how long a word may stay in the loading state.
const DefaultWatchdog = 5 * time.Second

// maxAttempts is how many fetches a word gets per refresh.
const maxAttempts = 2

// SavedWordStore reads the saved word list.
type SavedWordStore interface {
	GetSavedWords(ctx context.Context, userID string) ([]models.SavedWord, error)
}

// Submitter queues background jobs.
type Submitter interface {
	SubmitJob(job worker.Job) error
}

// Timer is a stoppable pending callback.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Options configure a Loader.
type Options struct {
	Store     SavedWordStore
	Fetch     jobs.Fetcher
	Pool      Submitter
	Watchdog  time.Duration
	AfterFunc AfterFunc
	Logger    *logrus.Logger
}

// State is a snapshot of the wordbook.
type State struct {
	UserID  string                       `json:"userId"`
	Words   []models.SavedWord           `json:"words"`
	Details map[string]models.WordDetail `json:"details"`
	Loading map[string]bool              `json:"loading"`
	Failed  map[string]bool              `json:"failed"`
}

type wordState struct {
	generation uint64
	loading    bool
	attempts   int
	failed     bool
	watchdog   Timer
	detail     *models.WordDetail
}

// Loader owns the saved-word list of one user at a time and one loading
// flag per word.
type Loader struct {
	store     SavedWordStore
	fetch     jobs.Fetcher
	pool      Submitter
	watchdog  time.Duration
	afterFunc AfterFunc
	log       *logrus.Entry

	mu     sync.Mutex
	userID string
	words  []models.SavedWord
	state  map[string]*wordState
	gen    uint64
}

func NewLoader(opts Options) *Loader {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	wd := opts.Watchdog
	if wd <= 0 {
		wd = DefaultWatchdog
	}
	af := opts.AfterFunc
	if af == nil {
		af = realAfterFunc
	}
	return &Loader{
		store:     opts.Store,
		fetch:     opts.Fetch,
		pool:      opts.Pool,
		watchdog:  wd,
		afterFunc: af,
		log:       logger.WithField("component", "wordbook"),
		state:     map[string]*wordState{},
	}
}

func key(word string) string { return strings.ToLower(word) }

// Refresh reloads the list for userID and starts a detail fetch for every
// word that has no detail yet and is not already loading. Switching users
// drops everything known about the previous one.
func (l *Loader) Refresh(ctx context.Context, userID string) error {
	words, err := l.store.GetSavedWords(ctx, userID)
	if err != nil {
		return err
	}

	l.mu.Lock()
	if userID != l.userID {
		l.resetLocked()
		l.userID = userID
	}
	l.words = words

	present := map[string]bool{}
	var start []string
	for _, w := range words {
		k := key(w.Word)
		if k == "" || present[k] {
			continue
		}
		present[k] = true
		ws, ok := l.state[k]
		if !ok {
			ws = &wordState{}
			l.state[k] = ws
		}
		if ws.detail != nil || ws.loading {
			continue
		}
		ws.attempts = 0
		ws.failed = false
		start = append(start, k)
	}
	for k, ws := range l.state {
		if !present[k] {
			stopTimer(ws)
			delete(l.state, k)
		}
	}
	for _, k := range start {
		l.startLocked(k)
	}
	l.mu.Unlock()
	return nil
}

func (l *Loader) resetLocked() {
	for _, ws := range l.state {
		stopTimer(ws)
	}
	l.state = map[string]*wordState{}
	l.words = nil
}

// startLocked marks word loading, arms its watchdog and queues its fetch.
func (l *Loader) startLocked(word string) {
	ws := l.state[word]
	l.gen++
	gen := l.gen
	ws.generation = gen
	ws.loading = true
	ws.attempts++
	stopTimer(ws)
	ws.watchdog = l.afterFunc(l.watchdog, func() { l.expire(word, gen) })

	job := &jobs.WordDetailJob{
		Word:       word,
		Generation: gen,
		Fetch:      l.fetch,
		OnResult:   l.commit,
	}
	if l.pool == nil {
		go func() { _ = job.Execute(context.Background()) }()
		return
	}
	if err := l.pool.SubmitJob(job); err != nil {
		stopTimer(ws)
		ws.loading = false
		ws.failed = true
		metrics.WordDetailFetches.WithLabelValues("rejected").Inc()
		l.log.WithFields(logrus.Fields{"word": word, "error": err}).Warn("Could not queue word detail fetch")
	}
}

// expire clears a loading flag the fetch never settled.
func (l *Loader) expire(word string, gen uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ws, ok := l.state[word]
	if !ok || ws.generation != gen || !ws.loading {
		return
	}
	ws.loading = false
	ws.watchdog = nil
	metrics.WordDetailFetches.WithLabelValues("timeout").Inc()
	l.log.WithFields(logrus.Fields{"word": word, "timeout": l.watchdog}).Warn("Word detail fetch timed out")
}

// commit stores a fetch result if the word is still listed and no newer
// fetch of it has started. A failed first attempt is retried once.
func (l *Loader) commit(word string, gen uint64, entries []models.DictionaryEntry, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ws, ok := l.state[word]
	if !ok || ws.generation != gen {
		metrics.WordDetailFetches.WithLabelValues("stale").Inc()
		return
	}
	stopTimer(ws)
	ws.loading = false

	if err != nil {
		if ws.attempts < maxAttempts {
			metrics.WordDetailFetches.WithLabelValues("retry").Inc()
			l.startLocked(word)
			return
		}
		ws.failed = true
		metrics.WordDetailFetches.WithLabelValues("failed").Inc()
		l.log.WithFields(logrus.Fields{"word": word, "error": err}).Warn("Word detail fetch failed")
		return
	}
	if entries == nil {
		entries = []models.DictionaryEntry{}
	}
	ws.failed = false
	ws.detail = &models.WordDetail{Word: word, Entries: entries}
	metrics.WordDetailFetches.WithLabelValues("ok").Inc()
}

func stopTimer(ws *wordState) {
	if ws.watchdog != nil {
		ws.watchdog.Stop()
		ws.watchdog = nil
	}
}

// State returns a snapshot of the list, details and flags.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	st := State{
		UserID:  l.userID,
		Words:   append([]models.SavedWord(nil), l.words...),
		Details: map[string]models.WordDetail{},
		Loading: map[string]bool{},
		Failed:  map[string]bool{},
	}
	for k, ws := range l.state {
		if ws.detail != nil {
			st.Details[k] = *ws.detail
		}
		if ws.loading {
			st.Loading[k] = true
		}
		if ws.failed {
			st.Failed[k] = true
		}
	}
	return st
}

// Close stops every watchdog.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, ws := range l.state {
		stopTimer(ws)
	}
}
