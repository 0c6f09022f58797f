package db

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/highshore/one-cup-eng-sub002/models"
)

// fakePostgrest answers the handful of queries the store issues.
type fakePostgrest struct {
	mu      sync.Mutex
	rows    map[string]string
	counts  map[string]string
	posts   map[string][]json.RawMessage
	queries []string
}

func newFakePostgrest() *fakePostgrest {
	return &fakePostgrest{
		rows:   map[string]string{},
		counts: map[string]string{},
		posts:  map[string][]json.RawMessage{},
	}
}

func (f *fakePostgrest) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	table := r.URL.Path[len("/rest/v1/"):]
	f.queries = append(f.queries, r.Method+" "+table+"?"+r.URL.RawQuery)

	switch r.Method {
	case http.MethodPost:
		body, _ := io.ReadAll(r.Body)
		f.posts[table] = append(f.posts[table], body)
		w.WriteHeader(http.StatusCreated)
	case http.MethodHead:
		w.Header().Set("Content-Range", "*/"+f.counts[table])
		w.WriteHeader(http.StatusOK)
	default:
		key := table + "?" + r.URL.Query().Get("id") + r.URL.Query().Get("user_id") + r.URL.Query().Get("word")
		body, ok := f.rows[key]
		if !ok {
			body, ok = f.rows[table]
		}
		if !ok {
			body = "[]"
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

type prefixResolver struct{}

func (prefixResolver) PublicURL(path string) string { return "https://cdn.test/" + path }

func newTestStore(t *testing.T, fake *fakePostgrest) *Store {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	client, err := NewPostgrestClient(srv.URL, "service-key")
	require.NoError(t, err)
	return NewStore(client, prefixResolver{}, nil)
}

func TestGetArticle(t *testing.T) {
	fake := newFakePostgrest()
	fake.rows["articles?eq.a1"] = `[{"id":"a1","title":{"english":"Cats","korean":"고양이"},` +
		`"content":{"english":["The cat sat.","It was happy."],"korean":["고양이가 앉았다."]},` +
		`"audio":{"url":"audio/a1.mp3","timestamps":[{"start":0,"end":0.1,"character":"T"}]}}]`
	store := newTestStore(t, fake)

	a, err := store.GetArticle(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, "Cats", a.Title.English)
	assert.Equal(t, []string{"고양이가 앉았다.", ""}, a.Content.Korean)
	require.NotNil(t, a.Audio)
	assert.Equal(t, "https://cdn.test/audio/a1.mp3", a.Audio.URL)
	assert.NotNil(t, a.Audio.Characters)
	assert.Empty(t, a.Audio.Characters)
	assert.Len(t, a.Audio.Timestamps, 1)
}

func TestGetArticleNotFound(t *testing.T) {
	store := newTestStore(t, newFakePostgrest())
	_, err := store.GetArticle(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCachedDefinition(t *testing.T) {
	fake := newFakePostgrest()
	fake.rows["article_meanings?eq.cat"] = `[{"article_id":"a1","word":"cat","definition":"고양이"}]`
	store := newTestStore(t, fake)

	def, ok, err := store.GetCachedDefinition(context.Background(), "a1", "cat")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "고양이", def)

	_, ok, err = store.GetCachedDefinition(context.Background(), "a1", "dog")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.PutCachedDefinition(context.Background(), "a1", "dog", "개"))
	require.Len(t, fake.posts["article_meanings"], 1)
	var m models.Meaning
	require.NoError(t, json.Unmarshal(fake.posts["article_meanings"][0], &m))
	assert.Equal(t, models.Meaning{ArticleID: "a1", Word: "dog", Definition: "개"}, m)
}

func TestSaveWord(t *testing.T) {
	fake := newFakePostgrest()
	fake.rows["saved_words?eq.u1"] = `[{"user_id":"u1","words":[{"word":"cat","added_at":"2026-01-01T00:00:00Z"}]}]`
	store := newTestStore(t, fake)
	store.now = func() time.Time { return time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC) }

	words, err := store.SaveWord(context.Background(), "u1", models.SavedWord{Word: "Cat"})
	require.NoError(t, err)
	assert.Len(t, words, 1)
	assert.Empty(t, fake.posts["saved_words"])

	words, err = store.SaveWord(context.Background(), "u1", models.SavedWord{Word: "dog", ArticleID: "a1"})
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), words[1].AddedAt)
	require.Len(t, fake.posts["saved_words"], 1)

	empty, err := store.GetSavedWords(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestHomeStats(t *testing.T) {
	fake := newFakePostgrest()
	fake.counts["articles"] = "12"
	fake.counts["meetups"] = "3"
	fake.counts["members"] = "40"
	store := newTestStore(t, fake)

	stats, err := store.HomeStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.HomeStats{ArticleCount: 12, MeetupCount: 3, MemberCount: 40}, stats)
}

func TestFeaturedTopics(t *testing.T) {
	fake := newFakePostgrest()
	fake.rows["articles"] = `[{"id":"a1","title":{"english":"Cats"},"created_at":"2026-03-01T00:00:00Z"}]`
	store := newTestStore(t, fake)

	topics, err := store.FeaturedTopics(context.Background(), 6)
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, "a1", topics[0].ID)
	assert.NotNil(t, topics[0].Topics)
	assert.Contains(t, fake.queries[len(fake.queries)-1], "limit=6")
}

func TestCanceledContext(t *testing.T) {
	store := newTestStore(t, newFakePostgrest())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := store.GetArticle(ctx, "a1")
	assert.ErrorIs(t, err, context.Canceled)
}
