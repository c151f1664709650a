
// Package config loads runtime configuration from defaults, an optional
// config.yaml, environment variables (PAIRPEDIA_ prefix) and flags, in that
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Timeout         time.Duration `mapstructure:"timeout"`
	UserAgent       string        `mapstructure:"user_agent"`
	PoliteDelay     time.Duration `mapstructure:"polite_delay"`
	WikiPoliteDelay time.Duration `mapstructure:"wiki_polite_delay"`
}

type CacheConfig struct {
	Dir     string `mapstructure:"dir"`
	TTLDays int    `mapstructure:"ttl_days"`
}

type DiscoveryConfig struct {
	APIURL        string        `mapstructure:"api_url"`
	PageSize      int           `mapstructure:"page_size"`
	MemberCap     int           `mapstructure:"member_cap"`
	RetryAttempts int           `mapstructure:"retry_attempts"`
	RetryBackoff  time.Duration `mapstructure:"retry_backoff"`
	PageSleep     time.Duration `mapstructure:"page_sleep"`
}

type MatcherConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	MinChars int    `mapstructure:"min_chars"`
}

type SourcesConfig struct {
	WikipediaBaseURL string `mapstructure:"wikipedia_base_url"`
	WikipediaRestURL string `mapstructure:"wikipedia_rest_url"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
	File        string `mapstructure:"file"`
}

type Config struct {
	HTTP      HTTPConfig      `mapstructure:"http"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Discovery DiscoveryConfig `mapstructure:"discovery"`
	Matcher   MatcherConfig   `mapstructure:"matcher"`
	Sources   SourcesConfig   `mapstructure:"sources"`
	Log       LogConfig       `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.timeout", 20*time.Second)
	v.SetDefault("http.user_agent", "pairpedia/0.1 (research; contact: local)")
	v.SetDefault("http.polite_delay", time.Second)
	v.SetDefault("http.wiki_polite_delay", 800*time.Millisecond)

	v.SetDefault("cache.dir", "data/cache")
	v.SetDefault("cache.ttl_days", 30)

	v.SetDefault("discovery.api_url", "https://en.wikipedia.org/w/api.php")
	v.SetDefault("discovery.page_size", 200)
	v.SetDefault("discovery.member_cap", 500)
	v.SetDefault("discovery.retry_attempts", 4)
	v.SetDefault("discovery.retry_backoff", 1500*time.Millisecond)
	v.SetDefault("discovery.page_sleep", 300*time.Millisecond)

	v.SetDefault("matcher.base_url", "https://grokipedia.com")
	v.SetDefault("matcher.min_chars", 600)

	v.SetDefault("sources.wikipedia_base_url", "https://en.wikipedia.org")
	v.SetDefault("sources.wikipedia_rest_url", "https://en.wikipedia.org/api/rest_v1/page/html")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", true)
	v.SetDefault("log.file", "logs/pairpedia.log")
}

// Load reads configuration into a Config. cfgFile may be empty, in which
// case ./config.yaml is used when present; a missing file is not an error.
func Load(cfgFile string) (*Config, error) {
	// .env first so viper sees its variables
	_ = godotenv.Load()

	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("PAIRPEDIA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// no config file is fine, defaults and env apply
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
