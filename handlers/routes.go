package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "github.com/highshore/one-cup-eng-sub002/docs" // registers the OpenAPI document
)

// ErrorResponse defines a common structure for error responses.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Register mounts every route whose dependencies are present.
func (h *ApplicationHandler) Register(app *fiber.App) {
	app.Get("/health", h.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := app.Group("/api")
	if h.Home != nil {
		api.Get("/home-stats", h.GetHomeStats)
		api.Get("/home-topics", h.GetHomeTopics)
	}

	apiV1 := api.Group("/v1")
	if h.Articles != nil {
		article := apiV1.Group("/articles/:id")
		article.Get("", h.GetArticle)
		article.Get("/reading-index", h.GetReadingIndex)
		article.Get("/quick-read", h.GetQuickRead)
		article.Post("/words/extract", h.ExtractWord)
		if h.Definitions != nil {
			article.Post("/definitions", h.LookupDefinition)
		}
	}

	user := apiV1.Group("/users/:uid")
	if h.SavedWords != nil {
		user.Get("/saved-words", h.GetSavedWords)
		user.Post("/saved-words", h.SaveWord)
	}
	if h.Wordbooks != nil {
		user.Get("/wordbook", h.GetWordbook)
	}
}

// Health godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *ApplicationHandler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}
