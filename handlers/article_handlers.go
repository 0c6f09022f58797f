package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/highshore/one-cup-eng-sub002/internal/boundary"
	"github.com/highshore/one-cup-eng-sub002/internal/db"
	"github.com/highshore/one-cup-eng-sub002/internal/textindex"
	"github.com/highshore/one-cup-eng-sub002/models"
	"github.com/highshore/one-cup-eng-sub002/utils"
)

// ReadingIndexResponse exposes the alignment tables of an article.
type ReadingIndexResponse struct {
	ArticleID        string              `json:"articleId"`
	BreakWidth       int                 `json:"breakWidth"`
	Offsets          []int               `json:"offsets"`
	WordRanges       [][]textindex.Range `json:"wordRanges"`
	CharacterMapSize int                 `json:"characterMapSize"`
	Alignment        textindex.Alignment `json:"alignment"`
}

// QuickReadResponse carries the emphasized segments of every paragraph.
type QuickReadResponse struct {
	ArticleID  string                `json:"articleId"`
	Paragraphs [][]textindex.Segment `json:"paragraphs"`
}

// ExtractWordRequest locates a character in an English paragraph.
type ExtractWordRequest struct {
	Paragraph int `json:"paragraph" validate:"min=0"`
	Offset    int `json:"offset" validate:"min=0"`
}

// ExtractWordResponse is the word at the requested offset and its sentence.
// An empty word means nothing usable was there.
type ExtractWordResponse struct {
	Word     string `json:"word"`
	Sentence string `json:"sentence"`
}

// DefinitionRequest asks for the meaning of word as used in sentence.
type DefinitionRequest struct {
	Word     string `json:"word" validate:"required"`
	Sentence string `json:"sentence"`
}

// loadArticle fetches the article named by the :id parameter and renders the
// error response itself when that fails.
func (h *ApplicationHandler) loadArticle(c *fiber.Ctx) (*models.Article, error) {
	id := c.Params("id")
	article, err := h.Articles.GetArticle(c.UserContext(), id)
	if errors.Is(err, db.ErrNotFound) {
		h.Logger.Infof("Article %s not found", id)
		return nil, utils.RespondWithError(c, fiber.StatusNotFound, "Article not found")
	}
	if err != nil {
		h.Logger.WithFields(logrus.Fields{"article_id": id, "error": err}).Error("Failed to load article")
		return nil, utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not retrieve article: %v", err))
	}
	return article, nil
}

// GetArticle godoc
// @Summary Get an article
// @Description Returns the article with its paragraphs and narration metadata.
// @Tags articles
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} models.Article
// @Failure 404 {object} ErrorResponse "Article not found"
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/articles/{id} [get]
func (h *ApplicationHandler) GetArticle(c *fiber.Ctx) error {
	article, err := h.loadArticle(c)
	if article == nil {
		return err
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, article)
}

// GetReadingIndex godoc
// @Summary Alignment tables of an article
// @Description Paragraph offsets, word ranges and narration alignment quality.
// @Tags articles
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} ReadingIndexResponse
// @Failure 404 {object} ErrorResponse "Article not found"
// @Router /api/v1/articles/{id}/reading-index [get]
func (h *ApplicationHandler) GetReadingIndex(c *fiber.Ctx) error {
	article, err := h.loadArticle(c)
	if article == nil {
		return err
	}
	hl := textindex.NewHighlighter(article, h.BreakWidth)
	ix := hl.Index()
	return utils.RespondWithJSON(c, fiber.StatusOK, ReadingIndexResponse{
		ArticleID:        article.ID,
		BreakWidth:       ix.BreakWidth(),
		Offsets:          ix.Offsets(),
		WordRanges:       ix.WordRanges(),
		CharacterMapSize: hl.CharacterMap().Len(),
		Alignment:        hl.Alignment(),
	})
}

// GetQuickRead godoc
// @Summary Quick-read segments
// @Description Splits every paragraph into words with an emphasized lead.
// @Tags articles
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} QuickReadResponse
// @Failure 404 {object} ErrorResponse "Article not found"
// @Router /api/v1/articles/{id}/quick-read [get]
func (h *ApplicationHandler) GetQuickRead(c *fiber.Ctx) error {
	article, err := h.loadArticle(c)
	if article == nil {
		return err
	}
	paragraphs := make([][]textindex.Segment, len(article.Content.English))
	for i, p := range article.Content.English {
		paragraphs[i] = textindex.QuickRead(p)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, QuickReadResponse{ArticleID: article.ID, Paragraphs: paragraphs})
}

// ExtractWord godoc
// @Summary Word at a character offset
// @Description Resolves the word touching offset in an English paragraph. Candidates the lookup rule rejects come back empty.
// @Tags articles
// @Accept json
// @Produce json
// @Param id path string true "Article ID"
// @Param request body ExtractWordRequest true "Paragraph and offset"
// @Success 200 {object} ExtractWordResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Article not found"
// @Router /api/v1/articles/{id}/words/extract [post]
func (h *ApplicationHandler) ExtractWord(c *fiber.Ctx) error {
	payload := new(ExtractWordRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Validation failed",
			"errors":  utils.FormatValidationErrors(err),
		})
	}

	article, err := h.loadArticle(c)
	if article == nil {
		return err
	}
	if payload.Paragraph >= len(article.Content.English) {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Paragraph %d does not exist", payload.Paragraph))
	}

	text := article.Content.English[payload.Paragraph]
	resp := ExtractWordResponse{}
	if word := boundary.WordAt(text, payload.Offset); boundary.Accept(word, h.Limits) {
		resp.Word = word
		resp.Sentence = boundary.SentenceAt(text, payload.Offset)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, resp)
}

// LookupDefinition godoc
// @Summary Define a word in context
// @Description Runs the AI definition and the dictionary lookup concurrently. Either branch degrades on its own.
// @Tags articles
// @Accept json
// @Produce json
// @Param id path string true "Article ID"
// @Param request body DefinitionRequest true "Word and sentence"
// @Success 200 {object} models.DefinitionResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Article not found"
// @Failure 422 {object} ErrorResponse "Not a lookup word"
// @Router /api/v1/articles/{id}/definitions [post]
func (h *ApplicationHandler) LookupDefinition(c *fiber.Ctx) error {
	payload := new(DefinitionRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Validation failed",
			"errors":  utils.FormatValidationErrors(err),
		})
	}

	word := boundary.TrimPunctuation(utils.SanitizeInput(payload.Word))
	if !boundary.Accept(word, h.Limits) {
		return utils.RespondWithError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("%q is not a word that can be looked up", payload.Word))
	}

	article, err := h.loadArticle(c)
	if article == nil {
		return err
	}

	h.Logger.WithFields(logrus.Fields{"article_id": article.ID, "word": word}).Debug("Looking up definition")
	result := h.Definitions.Lookup(c.UserContext(), article.ID, word, utils.SanitizeInput(payload.Sentence))
	return utils.RespondWithJSON(c, fiber.StatusOK, result)
}
