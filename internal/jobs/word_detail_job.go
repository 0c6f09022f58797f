package jobs

import (
	"context"
	"fmt"
	"strconv"

	"github.com/highshore/one-cup-eng-sub002/models"
)

// Fetcher resolves the dictionary detail of a word.
type Fetcher func(ctx context.Context, word string) ([]models.DictionaryEntry, error)

// WordDetailJob fetches the detail of one saved word. The result, error
// included, is handed to OnResult together with the generation the job was
// created for, so the receiver can drop results it no longer wants.
type WordDetailJob struct {
	Word       string
	Generation uint64
	Fetch      Fetcher
	OnResult   func(word string, generation uint64, entries []models.DictionaryEntry, err error)
}

// ID returns the unique identifier of the job.
func (j *WordDetailJob) ID() string {
	return "word-detail:" + j.Word + ":" + strconv.FormatUint(j.Generation, 10)
}

// Type returns the type of the job.
func (j *WordDetailJob) Type() string {
	return "WORD_DETAIL"
}

// Execute fetches the word and reports the outcome. The returned error is
// only for the worker's log; OnResult has already seen it.
func (j *WordDetailJob) Execute(ctx context.Context) error {
	if j.Fetch == nil {
		return fmt.Errorf("word detail job %s has no fetcher", j.ID())
	}
	entries, err := j.Fetch(ctx, j.Word)
	if j.OnResult != nil {
		j.OnResult(j.Word, j.Generation, entries, err)
	}
	if err != nil {
		return fmt.Errorf("failed to fetch detail of %q: %w", j.Word, err)
	}
	return nil
}
