package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/highshore/one-cup-eng-sub002/utils"
)

// GetHomeStats godoc
// @Summary Home page counters
// @Description Counts articles, meetups and members. Responses are never cached.
// @Tags home
// @Produce json
// @Success 200 {object} models.HomeStats
// @Failure 500 {object} map[string]string "{error: message}"
// @Router /api/home-stats [get]
func (h *ApplicationHandler) GetHomeStats(c *fiber.Ctx) error {
	stats, err := h.Home.HomeStats(c.UserContext())
	if err != nil {
		h.Logger.WithField("error", err).Error("Failed to load home stats")
	}
	return utils.RespondUncached(c, stats, err)
}

// GetHomeTopics godoc
// @Summary Featured topics
// @Description Returns the newest featured articles as topic cards. Responses are never cached.
// @Tags home
// @Produce json
// @Success 200 {array} models.TopicSummary
// @Failure 500 {object} map[string]string "{error: message}"
// @Router /api/home-topics [get]
func (h *ApplicationHandler) GetHomeTopics(c *fiber.Ctx) error {
	topics, err := h.Home.FeaturedTopics(c.UserContext(), h.TopicLimit)
	if err != nil {
		h.Logger.WithField("error", err).Error("Failed to load featured topics")
	}
	return utils.RespondUncached(c, topics, err)
}
