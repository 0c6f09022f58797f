// Package definition resolves a word in context to an AI-written meaning
// and a dictionary entry.
package definition

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/highshore/one-cup-eng-sub002/internal/metrics"
	"github.com/highshore/one-cup-eng-sub002/models"
)

// Completer is the AI completion endpoint.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Dictionary is the dictionary lookup endpoint. (nil, nil) means no entry.
type Dictionary interface {
	Lookup(ctx context.Context, word string) ([]models.DictionaryEntry, error)
}

// MeaningCache persists AI definitions per article and lower-cased word.
type MeaningCache interface {
	GetCachedDefinition(ctx context.Context, articleID, word string) (string, bool, error)
	PutCachedDefinition(ctx context.Context, articleID, word, definition string) error
}

var fallbackMessages = map[string]string{
	"ko": "뜻을 불러오지 못했습니다. 잠시 후 다시 시도해 주세요.",
	"en": "Could not load a definition. Please try again later.",
}

var languageNames = map[string]string{
	"ko": "Korean",
	"en": "English",
}

// FallbackMessage is the text shown in place of an AI definition that could
// not be produced.
func FallbackMessage(locale string) string {
	if msg, ok := fallbackMessages[locale]; ok {
		return msg
	}
	return fallbackMessages["en"]
}

// Service runs both definition branches.
type Service struct {
	ai     Completer
	dict   Dictionary
	cache  MeaningCache
	locale string
	log    *logrus.Entry
}

// NewService creates a service. Any collaborator may be nil; its branch then
// degrades the same way a failing call does.
func NewService(ai Completer, dict Dictionary, cache MeaningCache, locale string, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	if locale == "" {
		locale = "ko"
	}
	return &Service{
		ai:     ai,
		dict:   dict,
		cache:  cache,
		locale: locale,
		log:    logger.WithField("component", "definition"),
	}
}

// Locale returns the target language code of AI definitions.
func (s *Service) Locale() string { return s.locale }

// Prompt builds the completion prompt for word in sentence.
func Prompt(word, sentence, locale string) string {
	lang, ok := languageNames[locale]
	if !ok {
		lang = "English"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are helping an English learner read an article.\n")
	fmt.Fprintf(&sb, "Word: %q\n", word)
	if sentence != "" {
		fmt.Fprintf(&sb, "Sentence: %q\n", sentence)
	}
	fmt.Fprintf(&sb, "Give one concise definition of the word as it is used in this sentence, written in %s. ", lang)
	fmt.Fprintf(&sb, "Answer with the definition only, in one or two short sentences.")
	return sb.String()
}

// AIDefinition returns the cached definition or asks the completion
// endpoint and caches its answer. Every failure yields the localized
// fallback message.
func (s *Service) AIDefinition(ctx context.Context, articleID, word, sentence string) string {
	key := strings.ToLower(word)
	entry := s.log.WithFields(logrus.Fields{"word": key, "article_id": articleID})
	start := time.Now()
	defer func() { metrics.DefinitionLatency.WithLabelValues("ai").Observe(time.Since(start).Seconds()) }()

	if s.cache != nil && articleID != "" {
		cached, ok, err := s.cache.GetCachedDefinition(ctx, articleID, key)
		if err != nil {
			entry.WithField("error", err).Warn("Meaning cache read failed")
		} else if ok {
			metrics.DefinitionLookups.WithLabelValues("ai", "cache_hit").Inc()
			return cached
		}
	}

	if s.ai == nil {
		metrics.DefinitionLookups.WithLabelValues("ai", "failed").Inc()
		entry.Warn("No completion endpoint configured")
		return FallbackMessage(s.locale)
	}
	text, err := s.ai.Complete(ctx, Prompt(word, sentence, s.locale))
	if err != nil {
		metrics.DefinitionLookups.WithLabelValues("ai", "failed").Inc()
		entry.WithField("error", err).Warn("AI definition failed")
		return FallbackMessage(s.locale)
	}
	metrics.DefinitionLookups.WithLabelValues("ai", "ok").Inc()

	if s.cache != nil && articleID != "" {
		if err := s.cache.PutCachedDefinition(ctx, articleID, key, text); err != nil {
			entry.WithField("error", err).Warn("Meaning cache write failed")
		}
	}
	return text
}

// DictionaryEntries returns the dictionary entries for word, or nil when
// there are none or the lookup failed.
func (s *Service) DictionaryEntries(ctx context.Context, word string) []models.DictionaryEntry {
	start := time.Now()
	defer func() { metrics.DefinitionLatency.WithLabelValues("dictionary").Observe(time.Since(start).Seconds()) }()

	if s.dict == nil {
		return nil
	}
	entries, err := s.dict.Lookup(ctx, word)
	if err != nil {
		metrics.DefinitionLookups.WithLabelValues("dictionary", "failed").Inc()
		s.log.WithFields(logrus.Fields{"word": word, "error": err}).Warn("Dictionary lookup failed")
		return nil
	}
	if len(entries) == 0 {
		metrics.DefinitionLookups.WithLabelValues("dictionary", "empty").Inc()
		return nil
	}
	metrics.DefinitionLookups.WithLabelValues("dictionary", "ok").Inc()
	return entries
}

// Lookup runs both branches concurrently and waits for both.
func (s *Service) Lookup(ctx context.Context, articleID, word, sentence string) models.DefinitionResult {
	res := models.DefinitionResult{Word: word, SentenceContext: sentence}
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		res.AIDefinition = s.AIDefinition(ctx, articleID, word, sentence)
	}()
	go func() {
		defer wg.Done()
		res.DictionaryEntries = s.DictionaryEntries(ctx, word)
	}()
	wg.Wait()
	return res
}
