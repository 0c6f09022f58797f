package definition

import (
	"context"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/highshore/one-cup-eng-sub002/internal/metrics"
	"github.com/highshore/one-cup-eng-sub002/models"
)

// State is what a definition modal shows. Each branch has its own loading
// flag; a branch that resolved is never reset by the other.
type State struct {
	RequestID         string                   `json:"requestId"`
	ArticleID         string                   `json:"articleId"`
	Word              string                   `json:"word"`
	Sentence          string                   `json:"sentence"`
	AIDefinition      string                   `json:"aiDefinition"`
	AILoading         bool                     `json:"aiLoading"`
	DictionaryEntries []models.DictionaryEntry `json:"dictionaryEntry"`
	DictionaryLoading bool                     `json:"dictionaryLoading"`
}

// Open reports whether the state belongs to a lookup.
func (st State) Open() bool { return st.RequestID != "" }

// Done reports whether both branches have resolved.
func (st State) Done() bool { return !st.AILoading && !st.DictionaryLoading }

// Session is the state of one definition modal. Starting a lookup replaces
// the previous one; results of a replaced lookup are discarded.
type Session struct {
	svc      *Service
	log      *logrus.Entry
	onChange func(State)
	// notifyMu orders deliveries to onChange.
	notifyMu sync.Mutex

	mu      sync.Mutex
	current State
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewSession creates an empty session. onChange, when set, is called after
// every change with the state current at delivery time, one call at a time,
// so a later call never shows an older state than an earlier one.
func NewSession(svc *Service, logger *logrus.Logger, onChange func(State)) *Session {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Session{svc: svc, log: logger.WithField("component", "definition_session"), onChange: onChange}
}

// Start begins a lookup of word and returns its request id. Both branches
// run concurrently.
func (s *Session) Start(ctx context.Context, articleID, word, sentence string) string {
	id := uuid.NewString()
	lookupCtx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.current = State{
		RequestID:         id,
		ArticleID:         articleID,
		Word:              word,
		Sentence:          sentence,
		AILoading:         true,
		DictionaryLoading: true,
	}
	s.wg.Add(2)
	s.mu.Unlock()
	s.notify()

	go func() {
		defer s.wg.Done()
		text := s.svc.AIDefinition(lookupCtx, articleID, word, sentence)
		s.commit(id, word, func(st *State) {
			st.AIDefinition = text
			st.AILoading = false
		})
	}()
	go func() {
		defer s.wg.Done()
		entries := s.svc.DictionaryEntries(lookupCtx, word)
		s.commit(id, word, func(st *State) {
			st.DictionaryEntries = entries
			st.DictionaryLoading = false
		})
	}()
	return id
}

// commit applies a branch result only if the modal still shows the lookup
// that produced it.
func (s *Session) commit(id, word string, apply func(*State)) {
	s.mu.Lock()
	if s.current.RequestID != id || s.current.Word != word {
		current := s.current.Word
		s.mu.Unlock()
		metrics.DefinitionLookups.WithLabelValues("session", "stale").Inc()
		s.log.WithFields(logrus.Fields{"word": word, "current_word": current}).Debug("Discarding stale definition result")
		return
	}
	apply(&s.current)
	if s.current.Done() && s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()
	s.notify()
}

// Close clears the modal. In-flight branches are cancelled and their
// results dropped.
func (s *Session) Close() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.current = State{}
	s.mu.Unlock()
	s.notify()
}

// State returns the current modal state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Wait blocks until every started branch has returned.
func (s *Session) Wait() {
	s.wg.Wait()
}

func (s *Session) notify() {
	if s.onChange == nil {
		return
	}
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.onChange(s.State())
}
