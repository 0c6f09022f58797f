package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/highshore/one-cup-eng-sub002/config"
	"github.com/highshore/one-cup-eng-sub002/internal/boundary"
	"github.com/highshore/one-cup-eng-sub002/internal/reader"
	"github.com/highshore/one-cup-eng-sub002/models"
)

func TestReaderOptionsCarryReadingConfig(t *testing.T) {
	rc := config.ReadingConfig{
		MaxWordLength:        20,
		LongPress:            300 * time.Millisecond,
		MoveThreshold:        4,
		TranslationWarnAfter: 2,
		ParagraphBreakWidth:  0,
	}

	opts := readerOptions(rc)

	assert.Equal(t, boundary.Limits{MaxLength: 20}, opts.Limits)
	assert.Equal(t, 300*time.Millisecond, opts.LongPressDelay)
	assert.Equal(t, 4.0, opts.MoveThreshold)
	assert.Equal(t, 2, opts.TranslationWarnAfter)
	assert.Zero(t, opts.BreakWidth)
	assert.Equal(t, boundary.DefaultLimits(), readingLimits(config.ReadingConfig{}))
}

func TestConfiguredWarningThresholdReachesController(t *testing.T) {
	opts := readerOptions(config.ReadingConfig{TranslationWarnAfter: 2, ParagraphBreakWidth: 1})
	warnings := 0
	opts.OnTranslationWarning = func() { warnings++ }
	c := reader.NewController(opts)
	t.Cleanup(c.Close)
	c.Open(&models.Article{ID: "a1", Content: models.ArticleContent{
		English: []string{"The cat sat.", "It was happy."},
		Korean:  []string{"고양이가 앉았다.", "행복했다."},
	}})

	_, warned, err := c.ToggleTranslation(0)
	require.NoError(t, err)
	assert.False(t, warned)
	_, warned, err = c.ToggleTranslation(1)
	require.NoError(t, err)
	assert.True(t, warned, "second expansion reaches the configured threshold")
	assert.Equal(t, 1, warnings)
}
