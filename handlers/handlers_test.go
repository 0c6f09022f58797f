package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/highshore/one-cup-eng-sub002/internal/db"
	"github.com/highshore/one-cup-eng-sub002/internal/textindex"
	"github.com/highshore/one-cup-eng-sub002/internal/wordbook"
	"github.com/highshore/one-cup-eng-sub002/models"
)

type fakeStore struct {
	articles map[string]*models.Article
	stats    models.HomeStats
	topics   []models.TopicSummary
	limit    int
	saved    map[string][]models.SavedWord
	err      error
}

func (f *fakeStore) GetArticle(_ context.Context, id string) (*models.Article, error) {
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.articles[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	cp := *a
	cp.Normalize()
	return &cp, nil
}

func (f *fakeStore) HomeStats(context.Context) (models.HomeStats, error) {
	return f.stats, f.err
}

func (f *fakeStore) FeaturedTopics(_ context.Context, limit int) ([]models.TopicSummary, error) {
	f.limit = limit
	return f.topics, f.err
}

func (f *fakeStore) GetSavedWords(_ context.Context, uid string) ([]models.SavedWord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.saved[uid], nil
}

func (f *fakeStore) SaveWord(_ context.Context, uid string, w models.SavedWord) ([]models.SavedWord, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.saved[uid] = append(f.saved[uid], w)
	return f.saved[uid], nil
}

type fakeDefinitions struct {
	calls []string
}

func (f *fakeDefinitions) Lookup(_ context.Context, articleID, word, sentence string) models.DefinitionResult {
	f.calls = append(f.calls, articleID+"|"+word+"|"+sentence)
	return models.DefinitionResult{
		Word:              word,
		SentenceContext:   sentence,
		AIDefinition:      "고양이",
		DictionaryEntries: []models.DictionaryEntry{{Word: word}},
	}
}

type fakeWordbooks struct{ err error }

func (f *fakeWordbooks) Refresh(_ context.Context, uid string) (wordbook.State, error) {
	if f.err != nil {
		return wordbook.State{}, f.err
	}
	return wordbook.State{
		UserID:  uid,
		Words:   []models.SavedWord{{Word: "cat"}},
		Details: map[string]models.WordDetail{},
		Loading: map[string]bool{"cat": true},
		Failed:  map[string]bool{},
	}, nil
}

type fakePrefetch struct{ words []string }

func (f *fakePrefetch) Prefetch(word string) { f.words = append(f.words, word) }

type fixture struct {
	app      *fiber.App
	store    *fakeStore
	defs     *fakeDefinitions
	prefetch *fakePrefetch
}

func newFixture() *fixture {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	f := &fixture{
		store: &fakeStore{
			articles: map[string]*models.Article{
				"a1": {ID: "a1", Content: models.ArticleContent{English: []string{"The cat sat.", "It was happy."}}},
			},
			stats:  models.HomeStats{ArticleCount: 12, MeetupCount: 3, MemberCount: 40},
			topics: []models.TopicSummary{{ID: "a1", Topics: []string{"pets"}}},
			saved:  map[string][]models.SavedWord{},
		},
		defs:     &fakeDefinitions{},
		prefetch: &fakePrefetch{},
	}
	h := NewApplicationHandler(Dependencies{
		Articles:    f.store,
		Home:        f.store,
		SavedWords:  f.store,
		Definitions: f.defs,
		Wordbooks:   &fakeWordbooks{},
		Prefetch:    f.prefetch,
		Logger:      logger,
		BreakWidth:  textindex.DefaultBreakWidth,
	})
	f.app = fiber.New()
	h.Register(f.app)
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string) (int, http.Header, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, resp.Header, raw
}

// envelope decodes the data field of a success response into v.
func envelope(t *testing.T, raw []byte, v interface{}) {
	t.Helper()
	var env struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &env))
	require.Equal(t, "success", env.Status, string(raw))
	require.NoError(t, json.Unmarshal(env.Data, v))
}

func TestHealthMetricsAndDocs(t *testing.T) {
	f := newFixture()

	status, _, body := f.do(t, "GET", "/health", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	status, _, body = f.do(t, "GET", "/metrics", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), "go_goroutines")

	status, _, body = f.do(t, "GET", "/swagger/doc.json", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), "/api/v1/articles/{id}/definitions")
}

func TestHomeEndpoints(t *testing.T) {
	f := newFixture()

	status, hdr, body := f.do(t, "GET", "/api/home-stats", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "no-store", hdr.Get("Cache-Control"))
	assert.JSONEq(t, `{"articleCount":12,"meetupCount":3,"memberCount":40}`, string(body))

	status, hdr, body = f.do(t, "GET", "/api/home-topics", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "no-store", hdr.Get("Cache-Control"))
	assert.Equal(t, DefaultTopicLimit, f.store.limit)
	var topics []models.TopicSummary
	require.NoError(t, json.Unmarshal(body, &topics))
	require.Len(t, topics, 1)
	assert.Equal(t, []string{"pets"}, topics[0].Topics)

	f.store.err = errors.New("connection refused")
	for _, path := range []string{"/api/home-stats", "/api/home-topics"} {
		status, hdr, body = f.do(t, "GET", path, "")
		assert.Equal(t, fiber.StatusInternalServerError, status, path)
		assert.Equal(t, "no-store", hdr.Get("Cache-Control"), path)
		assert.JSONEq(t, `{"error":"connection refused"}`, string(body), path)
	}
}

func TestGetArticle(t *testing.T) {
	f := newFixture()

	status, _, body := f.do(t, "GET", "/api/v1/articles/a1", "")
	require.Equal(t, fiber.StatusOK, status)
	var article models.Article
	envelope(t, body, &article)
	assert.Equal(t, "a1", article.ID)
	assert.Equal(t, []string{"", ""}, article.Content.Korean)

	status, _, body = f.do(t, "GET", "/api/v1/articles/nope", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.JSONEq(t, `{"status":"error","message":"Article not found"}`, string(body))

	f.store.err = errors.New("timeout")
	status, _, _ = f.do(t, "GET", "/api/v1/articles/a1", "")
	assert.Equal(t, fiber.StatusInternalServerError, status)
}

func TestReadingIndexAndQuickRead(t *testing.T) {
	f := newFixture()

	status, _, body := f.do(t, "GET", "/api/v1/articles/a1/reading-index", "")
	require.Equal(t, fiber.StatusOK, status)
	var ix ReadingIndexResponse
	envelope(t, body, &ix)
	assert.Equal(t, 1, ix.BreakWidth)
	assert.Equal(t, []int{0, 13}, ix.Offsets)
	require.Len(t, ix.WordRanges, 2)
	assert.Equal(t, textindex.Range{Start: 4, End: 6}, ix.WordRanges[0][1])
	assert.Equal(t, textindex.Range{Start: 13, End: 14}, ix.WordRanges[1][0])
	assert.False(t, ix.Alignment.Exact, "no narration")

	status, _, body = f.do(t, "GET", "/api/v1/articles/a1/quick-read", "")
	require.Equal(t, fiber.StatusOK, status)
	var qr QuickReadResponse
	envelope(t, body, &qr)
	require.Len(t, qr.Paragraphs, 2)
	assert.Equal(t, textindex.Segment{Lead: "T", Rest: "he"}, qr.Paragraphs[0][0])
	assert.Equal(t, "The cat sat.", textindex.Plain(qr.Paragraphs[0]))
}

func TestExtractWord(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name   string
		body   string
		status int
		want   ExtractWordResponse
	}{
		{"inside a word", `{"paragraph":0,"offset":5}`, fiber.StatusOK, ExtractWordResponse{Word: "cat", Sentence: "The cat sat."}},
		{"trailing punctuation", `{"paragraph":0,"offset":11}`, fiber.StatusOK, ExtractWordResponse{Word: "sat", Sentence: "The cat sat."}},
		{"second paragraph", `{"paragraph":1,"offset":8}`, fiber.StatusOK, ExtractWordResponse{Word: "happy", Sentence: "It was happy."}},
		{"past the end", `{"paragraph":0,"offset":40}`, fiber.StatusOK, ExtractWordResponse{}},
		{"negative offset", `{"paragraph":0,"offset":-1}`, fiber.StatusBadRequest, ExtractWordResponse{}},
		{"missing paragraph", `{"paragraph":5,"offset":0}`, fiber.StatusBadRequest, ExtractWordResponse{}},
		{"malformed", `{"paragraph":`, fiber.StatusBadRequest, ExtractWordResponse{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _, body := f.do(t, "POST", "/api/v1/articles/a1/words/extract", tt.body)
			require.Equal(t, tt.status, status, string(body))
			if status != fiber.StatusOK {
				return
			}
			var got ExtractWordResponse
			envelope(t, body, &got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookupDefinition(t *testing.T) {
	f := newFixture()

	status, _, body := f.do(t, "POST", "/api/v1/articles/a1/definitions", `{"word":" cat, ","sentence":"The cat sat."}`)
	require.Equal(t, fiber.StatusOK, status, string(body))
	var res models.DefinitionResult
	envelope(t, body, &res)
	assert.Equal(t, "cat", res.Word)
	assert.Equal(t, "고양이", res.AIDefinition)
	require.Len(t, res.DictionaryEntries, 1)
	assert.Equal(t, []string{"a1|cat|The cat sat."}, f.defs.calls)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"missing word", "/api/v1/articles/a1/definitions", `{"sentence":"x"}`, fiber.StatusBadRequest},
		{"two words", "/api/v1/articles/a1/definitions", `{"word":"the cat"}`, fiber.StatusUnprocessableEntity},
		{"too long", "/api/v1/articles/a1/definitions", `{"word":"` + strings.Repeat("a", 31) + `"}`, fiber.StatusUnprocessableEntity},
		{"punctuation only", "/api/v1/articles/a1/definitions", `{"word":"..."}`, fiber.StatusUnprocessableEntity},
		{"unknown article", "/api/v1/articles/nope/definitions", `{"word":"cat"}`, fiber.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _, body := f.do(t, "POST", tt.path, tt.body)
			assert.Equal(t, tt.status, status, string(body))
		})
	}
	assert.Len(t, f.defs.calls, 1, "rejected requests never reach the service")
}

func TestSavedWords(t *testing.T) {
	f := newFixture()

	status, _, body := f.do(t, "POST", "/api/v1/users/u1/saved-words", `{"word":"Happy!","articleId":"a1"}`)
	require.Equal(t, fiber.StatusCreated, status, string(body))
	var words []models.SavedWord
	envelope(t, body, &words)
	require.Len(t, words, 1)
	assert.Equal(t, "Happy", words[0].Word)
	assert.Equal(t, "a1", words[0].ArticleID)
	assert.Equal(t, []string{"Happy"}, f.prefetch.words)

	status, _, body = f.do(t, "GET", "/api/v1/users/u1/saved-words", "")
	require.Equal(t, fiber.StatusOK, status)
	envelope(t, body, &words)
	assert.Len(t, words, 1)

	status, _, _ = f.do(t, "POST", "/api/v1/users/u1/saved-words", `{"word":"two words"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	status, _, _ = f.do(t, "POST", "/api/v1/users/u1/saved-words", `{}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	f.store.err = errors.New("down")
	status, _, _ = f.do(t, "GET", "/api/v1/users/u1/saved-words", "")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Len(t, f.prefetch.words, 1)
}

func TestWordbook(t *testing.T) {
	f := newFixture()

	status, _, body := f.do(t, "GET", "/api/v1/users/u1/wordbook", "")
	require.Equal(t, fiber.StatusOK, status)
	var st wordbook.State
	envelope(t, body, &st)
	assert.Equal(t, "u1", st.UserID)
	assert.True(t, st.Loading["cat"])
}

func TestRoutesNeedTheirDependencies(t *testing.T) {
	app := fiber.New()
	NewApplicationHandler(Dependencies{}).Register(app)

	for _, path := range []string{"/api/home-stats", "/api/v1/articles/a1", "/api/v1/users/u1/wordbook"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, path)
	}
}
