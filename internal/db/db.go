// Package db is the content store: articles, cached AI meanings, saved
// words and home page aggregates, read through Supabase PostgREST.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	postgrest "github.com/supabase-community/postgrest-go"

	"github.com/highshore/one-cup-eng-sub002/models"
)

// ErrNotFound is returned when the requested article does not exist.
var ErrNotFound = errors.New("db: record not found")

const (
	articlesTable   = "articles"
	meaningsTable   = "article_meanings"
	savedWordsTable = "saved_words"
	meetupsTable    = "meetups"
	membersTable    = "members"
)

// URLResolver turns a storage object path into a public URL.
type URLResolver interface {
	PublicURL(path string) string
}

// Store reads and writes the content tables.
type Store struct {
	client   *postgrest.Client
	resolver URLResolver
	log      *logrus.Entry
	now      func() time.Time
}

// NewPostgrestClient connects to the project's REST endpoint with the
// service key.
func NewPostgrestClient(supabaseURL, key string) (*postgrest.Client, error) {
	if supabaseURL == "" || key == "" {
		return nil, fmt.Errorf("supabase URL and key must be set")
	}
	client := postgrest.NewClient(strings.TrimRight(supabaseURL, "/")+"/rest/v1", "", map[string]string{
		"apikey":        key,
		"Authorization": fmt.Sprintf("Bearer %s", key),
	})
	if client.ClientError != nil {
		return nil, fmt.Errorf("failed to initialize PostgREST client: %w", client.ClientError)
	}
	return client, nil
}

// NewStore creates a store. resolver may be nil, in which case audio URLs
// are returned as stored.
func NewStore(client *postgrest.Client, resolver URLResolver, logger *logrus.Logger) *Store {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Store{
		client:   client,
		resolver: resolver,
		log:      logger.WithField("component", "db"),
		now:      time.Now,
	}
}

// GetArticle loads one article. Absent audio sub-fields come back as empty
// sequences and storage paths are resolved to public URLs.
func (s *Store) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []models.Article
	_, err := s.client.From(articlesTable).
		Select("*", "", false).
		Eq("id", id).
		Limit(1, "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch article %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("article %s: %w", id, ErrNotFound)
	}

	article := rows[0]
	article.Normalize()
	if article.Audio != nil && s.resolver != nil && article.Audio.URL != "" && !isAbsolute(article.Audio.URL) {
		article.Audio.URL = s.resolver.PublicURL(article.Audio.URL)
	}
	return &article, nil
}

func isAbsolute(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}

// GetCachedDefinition returns the cached AI definition for a lower-cased
// word of an article.
func (s *Store) GetCachedDefinition(ctx context.Context, articleID, word string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	var rows []models.Meaning
	_, err := s.client.From(meaningsTable).
		Select("*", "", false).
		Eq("article_id", articleID).
		Eq("word", word).
		Limit(1, "").
		ExecuteTo(&rows)
	if err != nil {
		return "", false, fmt.Errorf("failed to read meaning %q of %s: %w", word, articleID, err)
	}
	if len(rows) == 0 || rows[0].Definition == "" {
		return "", false, nil
	}
	return rows[0].Definition, true, nil
}

// PutCachedDefinition stores or replaces the definition of a word.
func (s *Store) PutCachedDefinition(ctx context.Context, articleID, word, definition string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	row := models.Meaning{ArticleID: articleID, Word: word, Definition: definition}
	_, _, err := s.client.From(meaningsTable).
		Insert(row, true, "article_id,word", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to cache meaning %q of %s: %w", word, articleID, err)
	}
	return nil
}

// GetSavedWords returns a user's saved words, empty when the user has none.
func (s *Store) GetSavedWords(ctx context.Context, userID string) ([]models.SavedWord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []models.SavedWords
	_, err := s.client.From(savedWordsTable).
		Select("*", "", false).
		Eq("user_id", userID).
		Limit(1, "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch saved words of %s: %w", userID, err)
	}
	if len(rows) == 0 || rows[0].Words == nil {
		return []models.SavedWord{}, nil
	}
	return rows[0].Words, nil
}

// SaveWord appends a word to a user's list. Saving a word already on the
// list is a no-op.
func (s *Store) SaveWord(ctx context.Context, userID string, word models.SavedWord) ([]models.SavedWord, error) {
	words, err := s.GetSavedWords(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, w := range words {
		if strings.EqualFold(w.Word, word.Word) {
			return words, nil
		}
	}
	if word.AddedAt.IsZero() {
		word.AddedAt = s.now().UTC()
	}
	words = append(words, word)

	doc := models.SavedWords{UserID: userID, Words: words}
	_, _, err = s.client.From(savedWordsTable).
		Insert(doc, true, "user_id", "minimal", "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to save word %q for %s: %w", word.Word, userID, err)
	}
	return words, nil
}

// HomeStats counts articles, meetups and members.
func (s *Store) HomeStats(ctx context.Context) (models.HomeStats, error) {
	var stats models.HomeStats
	for _, c := range []struct {
		table string
		dst   *int64
	}{
		{articlesTable, &stats.ArticleCount},
		{meetupsTable, &stats.MeetupCount},
		{membersTable, &stats.MemberCount},
	} {
		if err := ctx.Err(); err != nil {
			return models.HomeStats{}, err
		}
		_, count, err := s.client.From(c.table).Select("id", "exact", true).Execute()
		if err != nil {
			return models.HomeStats{}, fmt.Errorf("failed to count %s: %w", c.table, err)
		}
		*c.dst = count
	}
	return stats, nil
}

// FeaturedTopics returns up to limit featured article summaries, newest
// first.
func (s *Store) FeaturedTopics(ctx context.Context, limit int) ([]models.TopicSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, _, err := s.client.From(articlesTable).
		Select("id,title,topics,image_url,created_at", "", false).
		Eq("featured", "true").
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch featured articles: %w", err)
	}

	var rows []models.Article
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode featured articles: %w", err)
	}
	topics := make([]models.TopicSummary, 0, len(rows))
	for _, a := range rows {
		t := a.Topics
		if t == nil {
			t = []string{}
		}
		topics = append(topics, models.TopicSummary{
			ID:        a.ID,
			Title:     a.Title,
			Topics:    t,
			ImageURL:  a.ImageURL,
			CreatedAt: a.CreatedAt,
		})
	}
	return topics, nil
}
