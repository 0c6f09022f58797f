package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full service configuration.
type Config struct {
	HTTP       HTTPConfig       `mapstructure:"http"`
	Log        LogConfig        `mapstructure:"log"`
	Supabase   SupabaseConfig   `mapstructure:"supabase"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Locale     string           `mapstructure:"locale"`
	Wordbook   WordbookConfig   `mapstructure:"wordbook"`
	Reading    ReadingConfig    `mapstructure:"reading"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type SupabaseConfig struct {
	URL         string `mapstructure:"url"`
	Key         string `mapstructure:"key"`
	AudioBucket string `mapstructure:"audio_bucket"`
}

type OpenAIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type DictionaryConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// RedisConfig configures the dictionary response cache. An empty Addr
// disables it.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type WordbookConfig struct {
	Workers  int           `mapstructure:"workers"`
	Queue    int           `mapstructure:"queue"`
	Watchdog time.Duration `mapstructure:"watchdog"`
}

// ReadingConfig holds the tuned thresholds of the reading view.
type ReadingConfig struct {
	MaxWordLength        int           `mapstructure:"max_word_length"`
	LongPress            time.Duration `mapstructure:"long_press"`
	MoveThreshold        float64       `mapstructure:"move_threshold"`
	TranslationWarnAfter int           `mapstructure:"translation_warn_after"`
	ParagraphBreakWidth  int           `mapstructure:"paragraph_break_width"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("supabase.audio_bucket", "audio")
	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.timeout", 20*time.Second)
	v.SetDefault("dictionary.base_url", "https://api.dictionaryapi.dev/api/v2/entries/en")
	v.SetDefault("dictionary.timeout", 10*time.Second)
	v.SetDefault("redis.ttl", 24*time.Hour)
	v.SetDefault("locale", "ko")
	v.SetDefault("wordbook.workers", 4)
	v.SetDefault("wordbook.queue", 64)
	v.SetDefault("wordbook.watchdog", 5*time.Second)
	v.SetDefault("reading.max_word_length", 30)
	v.SetDefault("reading.long_press", 500*time.Millisecond)
	v.SetDefault("reading.move_threshold", 8)
	v.SetDefault("reading.translation_warn_after", 3)
	v.SetDefault("reading.paragraph_break_width", 1)

	// Unmarshal only sees env values for keys viper already knows.
	for _, key := range []string{"supabase.url", "supabase.key", "openai.api_key", "redis.addr", "redis.password"} {
		v.SetDefault(key, "")
	}
	v.SetDefault("redis.db", 0)
}

// Load reads configuration from ONECUP_* environment variables and, when
// path is not empty, a config file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Example: ONECUP_OPENAI_API_KEY
	v.SetEnvPrefix("ONECUP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
