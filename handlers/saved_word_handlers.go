package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/highshore/one-cup-eng-sub002/internal/boundary"
	"github.com/highshore/one-cup-eng-sub002/models"
	"github.com/highshore/one-cup-eng-sub002/utils"
)

// SaveWordRequest adds a word to a user's list.
type SaveWordRequest struct {
	Word      string `json:"word" validate:"required"`
	ArticleID string `json:"articleId"`
}

// GetSavedWords godoc
// @Summary List saved words
// @Tags words
// @Produce json
// @Param uid path string true "User ID"
// @Success 200 {array} models.SavedWord
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/users/{uid}/saved-words [get]
func (h *ApplicationHandler) GetSavedWords(c *fiber.Ctx) error {
	uid := c.Params("uid")
	words, err := h.SavedWords.GetSavedWords(c.UserContext(), uid)
	if err != nil {
		h.Logger.WithFields(logrus.Fields{"user_id": uid, "error": err}).Error("Failed to load saved words")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not retrieve saved words: %v", err))
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, words)
}

// SaveWord godoc
// @Summary Save a word
// @Description Appends a word to the user's list. Saving a listed word again changes nothing.
// @Tags words
// @Accept json
// @Produce json
// @Param uid path string true "User ID"
// @Param request body SaveWordRequest true "Word to save"
// @Success 201 {array} models.SavedWord
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Not a lookup word"
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/users/{uid}/saved-words [post]
func (h *ApplicationHandler) SaveWord(c *fiber.Ctx) error {
	uid := c.Params("uid")
	payload := new(SaveWordRequest)
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
		return utils.RespondWithError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("%q is not a word that can be saved", payload.Word))
	}

	words, err := h.SavedWords.SaveWord(c.UserContext(), uid, models.SavedWord{
		Word:      word,
		ArticleID: utils.SanitizeInput(payload.ArticleID),
	})
	if err != nil {
		h.Logger.WithFields(logrus.Fields{"user_id": uid, "word": word, "error": err}).Error("Failed to save word")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not save word: %v", err))
	}
	if h.Prefetch != nil {
		h.Prefetch.Prefetch(word)
	}
	h.Logger.WithFields(logrus.Fields{"user_id": uid, "word": word}).Info("Word saved")
	return utils.RespondWithJSON(c, fiber.StatusCreated, words)
}

// GetWordbook godoc
// @Summary Saved words with their dictionary details
// @Description Refreshes the user's wordbook. Details still loading are flagged; poll again to pick them up.
// @Tags words
// @Produce json
// @Param uid path string true "User ID"
// @Success 200 {object} wordbook.State
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/users/{uid}/wordbook [get]
func (h *ApplicationHandler) GetWordbook(c *fiber.Ctx) error {
	uid := c.Params("uid")
	state, err := h.Wordbooks.Refresh(c.UserContext(), uid)
	if err != nil {
		h.Logger.WithFields(logrus.Fields{"user_id": uid, "error": err}).Error("Failed to refresh wordbook")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not load wordbook: %v", err))
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, state)
}
