package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "ko", cfg.Locale)
	assert.Equal(t, 30, cfg.Reading.MaxWordLength)
	assert.Equal(t, 500*time.Millisecond, cfg.Reading.LongPress)
	assert.Equal(t, 8.0, cfg.Reading.MoveThreshold)
	assert.Equal(t, 3, cfg.Reading.TranslationWarnAfter)
	assert.Equal(t, 1, cfg.Reading.ParagraphBreakWidth)
	assert.Equal(t, 5*time.Second, cfg.Wordbook.Watchdog)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ONECUP_OPENAI_API_KEY", "sk-test")
	t.Setenv("ONECUP_READING_MAX_WORD_LENGTH", "12")
	t.Setenv("ONECUP_REDIS_ADDR", "localhost:6379")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, 12, cfg.Reading.MaxWordLength)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "onecup.yaml")
	require.NoError(t, os.WriteFile(path, []byte("locale: en\nwordbook:\n  workers: 2\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, 2, cfg.Wordbook.Workers)
	assert.Equal(t, 64, cfg.Wordbook.Queue)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
