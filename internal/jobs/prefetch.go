package jobs

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/highshore/one-cup-eng-sub002/internal/worker"
	"github.com/highshore/one-cup-eng-sub002/models"
)

// Submitter queues background jobs.
type Submitter interface {
	SubmitJob(job worker.Job) error
}

// Prefetcher queues a detail fetch for a word nobody is waiting on, so a
// later lookup finds it in the dictionary cache.
type Prefetcher struct {
	pool  Submitter
	fetch Fetcher
	log   *logrus.Entry
}

func NewPrefetcher(pool Submitter, fetch Fetcher, logger *logrus.Logger) *Prefetcher {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Prefetcher{pool: pool, fetch: fetch, log: logger.WithField("component", "prefetch")}
}

// Prefetch queues the fetch and gives up quietly when the queue is full.
func (p *Prefetcher) Prefetch(word string) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" || p.pool == nil || p.fetch == nil {
		return
	}
	job := &WordDetailJob{
		Word:  word,
		Fetch: p.fetch,
		OnResult: func(word string, _ uint64, entries []models.DictionaryEntry, err error) {
			if err == nil {
				p.log.WithFields(logrus.Fields{"word": word, "entries": len(entries)}).Debug("Word detail prefetched")
			}
		},
	}
	if err := p.pool.SubmitJob(job); err != nil {
		p.log.WithFields(logrus.Fields{"word": word, "error": err}).Warn("Could not queue prefetch")
	}
}
