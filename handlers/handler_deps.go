package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/highshore/one-cup-eng-sub002/internal/boundary"
	"github.com/highshore/one-cup-eng-sub002/internal/textindex"
	"github.com/highshore/one-cup-eng-sub002/internal/wordbook"
	"github.com/highshore/one-cup-eng-sub002/models"
)

var validate = validator.New()

// ArticleStore reads articles.
type ArticleStore interface {
	GetArticle(ctx context.Context, id string) (*models.Article, error)
}

// HomeStore serves the home page aggregates.
type HomeStore interface {
	HomeStats(ctx context.Context) (models.HomeStats, error)
	FeaturedTopics(ctx context.Context, limit int) ([]models.TopicSummary, error)
}

// SavedWordStore reads and appends saved words.
type SavedWordStore interface {
	GetSavedWords(ctx context.Context, userID string) ([]models.SavedWord, error)
	SaveWord(ctx context.Context, userID string, word models.SavedWord) ([]models.SavedWord, error)
}

// DefinitionService resolves a word to its AI definition and dictionary
// entries.
type DefinitionService interface {
	Lookup(ctx context.Context, articleID, word, sentence string) models.DefinitionResult
}

// Wordbooks refreshes a user's saved-word details.
type Wordbooks interface {
	Refresh(ctx context.Context, userID string) (wordbook.State, error)
}

// Prefetcher warms the dictionary detail of a newly saved word.
type Prefetcher interface {
	Prefetch(word string)
}

// Dependencies are the collaborators of the handlers. Nil stores disable
// the routes that need them.
type Dependencies struct {
	Articles    ArticleStore
	Home        HomeStore
	SavedWords  SavedWordStore
	Definitions DefinitionService
	Wordbooks   Wordbooks
	Prefetch    Prefetcher
	Logger      *logrus.Logger
	Limits      boundary.Limits
	BreakWidth  int
	TopicLimit  int
}

// ApplicationHandler holds shared dependencies for handlers.
type ApplicationHandler struct {
	Dependencies
}

// DefaultTopicLimit is how many featured topics the home page shows.
const DefaultTopicLimit = 6

// NewApplicationHandler creates a new ApplicationHandler with the given dependencies.
func NewApplicationHandler(deps Dependencies) *ApplicationHandler {
	if deps.Logger == nil {
		deps.Logger = logrus.New()
	}
	if deps.Limits.MaxLength == 0 {
		deps.Limits = boundary.DefaultLimits()
	}
	if deps.BreakWidth < 0 {
		deps.BreakWidth = textindex.DefaultBreakWidth
	}
	if deps.TopicLimit <= 0 {
		deps.TopicLimit = DefaultTopicLimit
	}
	return &ApplicationHandler{Dependencies: deps}
}
