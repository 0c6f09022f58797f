package definition

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/highshore/one-cup-eng-sub002/models"
)

type fakeAI struct {
	mu      sync.Mutex
	answers map[string]string
	err     error
	gates   map[string]chan struct{}
	prompts []string
}

func newFakeAI() *fakeAI {
	return &fakeAI{answers: map[string]string{}, gates: map[string]chan struct{}{}}
}

// hold blocks completions whose prompt mentions word until the returned
// function is called.
func (f *fakeAI) hold(word string) func() {
	gate := make(chan struct{})
	f.mu.Lock()
	f.gates[word] = gate
	f.mu.Unlock()
	return func() { close(gate) }
}

func (f *fakeAI) Complete(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	var word string
	for w := range f.answers {
		if strings.Contains(prompt, `"`+w+`"`) {
			word = w
		}
	}
	gate := f.gates[word]
	err := f.err
	answer := f.answers[word]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return "", err
	}
	return answer, nil
}

type fakeDict struct {
	entries map[string][]models.DictionaryEntry
	err     error
}

func (f *fakeDict) Lookup(_ context.Context, word string) ([]models.DictionaryEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entries[word], nil
}

type memCache struct {
	mu   sync.Mutex
	data map[string]string
	gets int
}

func newMemCache() *memCache { return &memCache{data: map[string]string{}} }

func (m *memCache) GetCachedDefinition(_ context.Context, articleID, word string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	v, ok := m.data[articleID+"/"+word]
	return v, ok, nil
}

func (m *memCache) PutCachedDefinition(_ context.Context, articleID, word, def string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[articleID+"/"+word] = def
	return nil
}

func TestAIDefinitionCachesByLowerCasedWord(t *testing.T) {
	ai := newFakeAI()
	ai.answers["Cat"] = "고양이"
	cache := newMemCache()
	svc := NewService(ai, nil, cache, "ko", nil)

	got := svc.AIDefinition(context.Background(), "a1", "Cat", "The Cat sat.")
	assert.Equal(t, "고양이", got)
	assert.Equal(t, "고양이", cache.data["a1/cat"])
	require.Len(t, ai.prompts, 1)
	assert.Contains(t, ai.prompts[0], "The Cat sat.")
	assert.Contains(t, ai.prompts[0], "Korean")

	got = svc.AIDefinition(context.Background(), "a1", "CAT", "")
	assert.Equal(t, "고양이", got)
	assert.Len(t, ai.prompts, 1, "second lookup is served from the cache")
}

func TestAIDefinitionFallback(t *testing.T) {
	ai := newFakeAI()
	ai.err = errors.New("status 500")
	cache := newMemCache()
	svc := NewService(ai, nil, cache, "ko", nil)

	got := svc.AIDefinition(context.Background(), "a1", "cat", "")
	assert.Equal(t, FallbackMessage("ko"), got)
	assert.Empty(t, cache.data, "failures are not cached")

	noAI := NewService(nil, nil, nil, "en", nil)
	assert.Equal(t, FallbackMessage("en"), noAI.AIDefinition(context.Background(), "a1", "cat", ""))
	assert.Equal(t, FallbackMessage("en"), FallbackMessage("fr"))
}

func TestDictionaryEntriesSoftFailure(t *testing.T) {
	entry := models.DictionaryEntry{Word: "cat"}
	svc := NewService(nil, &fakeDict{entries: map[string][]models.DictionaryEntry{"cat": {entry}}}, nil, "ko", nil)
	assert.Equal(t, []models.DictionaryEntry{entry}, svc.DictionaryEntries(context.Background(), "cat"))
	assert.Nil(t, svc.DictionaryEntries(context.Background(), "dog"))

	failing := NewService(nil, &fakeDict{err: errors.New("502")}, nil, "ko", nil)
	assert.Nil(t, failing.DictionaryEntries(context.Background(), "cat"))
}

func TestLookupRunsBothBranches(t *testing.T) {
	ai := newFakeAI()
	ai.answers["cat"] = "고양이"
	entry := models.DictionaryEntry{Word: "cat"}
	svc := NewService(ai, &fakeDict{entries: map[string][]models.DictionaryEntry{"cat": {entry}}}, newMemCache(), "ko", nil)

	res := svc.Lookup(context.Background(), "a1", "cat", "The cat sat.")
	assert.Equal(t, "cat", res.Word)
	assert.Equal(t, "The cat sat.", res.SentenceContext)
	assert.Equal(t, "고양이", res.AIDefinition)
	assert.Equal(t, []models.DictionaryEntry{entry}, res.DictionaryEntries)
}
