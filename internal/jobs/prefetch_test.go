package jobs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/highshore/one-cup-eng-sub002/internal/worker"
	"github.com/highshore/one-cup-eng-sub002/models"
)

type recordingPool struct {
	jobs []worker.Job
	err  error
}

func (p *recordingPool) SubmitJob(job worker.Job) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, job)
	return nil
}

func TestPrefetcherQueuesNormalizedWord(t *testing.T) {
	pool := &recordingPool{}
	var fetched []string
	p := NewPrefetcher(pool, func(_ context.Context, w string) ([]models.DictionaryEntry, error) {
		fetched = append(fetched, w)
		return nil, nil
	}, nil)

	p.Prefetch("  Cat ")
	p.Prefetch("   ")
	require.Len(t, pool.jobs, 1)
	assert.Equal(t, "word-detail:cat:0", pool.jobs[0].ID())

	require.NoError(t, pool.jobs[0].Execute(context.Background()))
	assert.Equal(t, []string{"cat"}, fetched)
}

func TestPrefetcherIgnoresFullQueue(t *testing.T) {
	pool := &recordingPool{err: worker.ErrQueueFull}
	p := NewPrefetcher(pool, func(context.Context, string) ([]models.DictionaryEntry, error) { return nil, nil }, nil)
	assert.NotPanics(t, func() { p.Prefetch("cat") })
	assert.Empty(t, pool.jobs)
}
