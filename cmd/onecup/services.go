package main

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/highshore/one-cup-eng-sub002/config"
	"github.com/highshore/one-cup-eng-sub002/internal/aiclient"
	"github.com/highshore/one-cup-eng-sub002/internal/boundary"
	"github.com/highshore/one-cup-eng-sub002/internal/db"
	"github.com/highshore/one-cup-eng-sub002/internal/definition"
	"github.com/highshore/one-cup-eng-sub002/internal/dictionary"
	"github.com/highshore/one-cup-eng-sub002/internal/reader"
)

// services are the collaborators shared by the commands.
type services struct {
	cfg         *config.Config
	log         *logrus.Logger
	store       *db.Store
	redis       *redis.Client
	dict        *dictionary.Client
	definitions *definition.Service
}

func newServices(cfg *config.Config, logger *logrus.Logger) (*services, error) {
	supaClient, err := config.NewSupabaseClient(cfg.Supabase)
	if err != nil {
		return nil, err
	}
	pg, err := db.NewPostgrestClient(cfg.Supabase.URL, cfg.Supabase.Key)
	if err != nil {
		return nil, err
	}
	s := &services{
		cfg:   cfg,
		log:   logger,
		store: db.NewStore(pg, db.NewStorageResolver(supaClient, cfg.Supabase.AudioBucket), logger),
	}

	var cache *dictionary.Cache
	if cfg.Redis.Addr != "" {
		s.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cache = dictionary.NewCache(s.redis, cfg.Redis.TTL, logger)
		logger.WithField("addr", cfg.Redis.Addr).Info("Dictionary cache enabled")
	}
	s.dict = dictionary.NewClient(dictionary.Config{
		BaseURL: cfg.Dictionary.BaseURL,
		Timeout: cfg.Dictionary.Timeout,
	}, cache, logger)

	ai, err := aiclient.NewAIClient(aiclient.Config{
		BaseURL: cfg.OpenAI.BaseURL,
		APIKey:  cfg.OpenAI.APIKey,
		Model:   cfg.OpenAI.Model,
		Timeout: cfg.OpenAI.Timeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize AI client: %w", err)
	}
	if cfg.OpenAI.APIKey == "" {
		logger.Warn("No OpenAI API key configured; AI definitions will fall back")
	}
	s.definitions = definition.NewService(ai, s.dict, s.store, cfg.Locale, logger)
	return s, nil
}

func readingLimits(rc config.ReadingConfig) boundary.Limits {
	if rc.MaxWordLength <= 0 {
		return boundary.DefaultLimits()
	}
	return boundary.Limits{MaxLength: rc.MaxWordLength}
}

// readerOptions carries the configured reading thresholds into a
// controller's options.
func readerOptions(rc config.ReadingConfig) reader.Options {
	return reader.Options{
		Limits:               readingLimits(rc),
		LongPressDelay:       rc.LongPress,
		MoveThreshold:        rc.MoveThreshold,
		TranslationWarnAfter: rc.TranslationWarnAfter,
		BreakWidth:           rc.ParagraphBreakWidth,
	}
}

func (s *services) Close() {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.log.WithField("error", err).Warn("Failed to close Redis client")
		}
	}
}
