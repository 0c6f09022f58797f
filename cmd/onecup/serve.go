package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/highshore/one-cup-eng-sub002/config"
	"github.com/highshore/one-cup-eng-sub002/handlers"
	"github.com/highshore/one-cup-eng-sub002/internal/jobs"
	"github.com/highshore/one-cup-eng-sub002/internal/worker"
	"github.com/highshore/one-cup-eng-sub002/internal/wordbook"
	"github.com/highshore/one-cup-eng-sub002/middleware"
	"github.com/highshore/one-cup-eng-sub002/utils"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(load func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the reading API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			logger := config.NewLogger(cfg.Log.Level)
			return serve(cfg, logger)
		},
	}
}

func serve(cfg *config.Config, logger *logrus.Logger) error {
	svc, err := newServices(cfg, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	dispatcher := worker.NewDispatcher(cfg.Wordbook.Workers, cfg.Wordbook.Queue, logger)
	dispatcher.Run()
	defer dispatcher.Stop()

	wordbooks := wordbook.NewRegistry(wordbook.Options{
		Store:    svc.store,
		Fetch:    svc.dict.Lookup,
		Pool:     dispatcher,
		Watchdog: cfg.Wordbook.Watchdog,
		Logger:   logger,
	})
	defer wordbooks.Close()

	h := handlers.NewApplicationHandler(handlers.Dependencies{
		Articles:    svc.store,
		Home:        svc.store,
		SavedWords:  svc.store,
		Definitions: svc.definitions,
		Wordbooks:   wordbooks,
		Prefetch:    jobs.NewPrefetcher(dispatcher, svc.dict.Lookup, logger),
		Logger:      logger,
		Limits:      readingLimits(cfg.Reading),
		BreakWidth:  cfg.Reading.ParagraphBreakWidth,
	})

	app := fiber.New(fiber.Config{
		AppName:      "onecup",
		ErrorHandler: errorHandler(logger),
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(middleware.RequestLogger(logger))
	app.Use(middleware.Metrics())
	h.Register(app)

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.HTTP.Addr).Info("Starting reading API")
		errCh <- app.Listen(cfg.HTTP.Addr)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-sigChan:
		logger.WithField("signal", sig.String()).Info("Shutting down reading API")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		return err
	}
	logger.Info("Reading API shut down gracefully")
	return nil
}

// errorHandler renders errors that escaped the handlers in the common error
// envelope.
func errorHandler(logger *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			logger.WithFields(logrus.Fields{"uri": c.OriginalURL(), "error": err}).Error("Unhandled error")
		}
		return utils.RespondWithError(c, code, err.Error())
	}
}
