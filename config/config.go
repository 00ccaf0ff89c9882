package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the chat backend
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Fetcher FetcherConfig `mapstructure:"fetcher"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Memory  MemoryConfig  `mapstructure:"memory"`
	Redis   RedisConfig   `mapstructure:"redis"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// LLMConfig contains the hosted model provider settings
type LLMConfig struct {
	Provider    string        `mapstructure:"provider"` // openai
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	TopP        float64       `mapstructure:"top_p"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// FetcherConfig contains page-fetching settings
type FetcherConfig struct {
	StaticTimeout  time.Duration `mapstructure:"static_timeout"`
	RenderTimeout  time.Duration `mapstructure:"render_timeout"`
	MinStaticChars int           `mapstructure:"min_static_chars"`
}

// CacheConfig contains the on-disk page cache settings
type CacheConfig struct {
	Dir       string        `mapstructure:"dir"`
	Freshness time.Duration `mapstructure:"freshness"`
}

// MemoryConfig contains session-history settings
type MemoryConfig struct {
	Store    string        `mapstructure:"store"` // inmemory or redis
	MaxTurns int           `mapstructure:"max_turns"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RedisConfig is used when memory.store is "redis"
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LoadConfig reads configuration from an optional file plus EDDIEBOT_*
// environment variables. Defaults are complete, so a missing config file is
// not an error; an explicit path that cannot be read is fatal.
func LoadConfig(path string) *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("json")

	viper.SetDefault("server.address", ":8000")
	viper.SetDefault("llm.provider", "openai")
	viper.SetDefault("llm.base_url", "https://api.openai.com/v1")
	viper.SetDefault("llm.model", "gpt-4o-mini")
	viper.SetDefault("llm.temperature", 0.2)
	viper.SetDefault("llm.top_p", 0.9)
	viper.SetDefault("llm.timeout", 60*time.Second)
	viper.SetDefault("fetcher.static_timeout", 10*time.Second)
	viper.SetDefault("fetcher.render_timeout", 25*time.Second)
	viper.SetDefault("fetcher.min_static_chars", 500)
	viper.SetDefault("cache.dir", "cache")
	viper.SetDefault("cache.freshness", 24*time.Hour)
	viper.SetDefault("memory.store", "inmemory")
	viper.SetDefault("memory.max_turns", 12)
	viper.SetDefault("memory.ttl", time.Hour)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("EDDIEBOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || path != "" {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		panic(fmt.Errorf("fatal error unmarshalling config: %w", err))
	}
	return &cfg
}
