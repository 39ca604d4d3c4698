package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the matseek API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Auth      AuthConfig      `yaml:"auth"`
	Naver     NaverConfig     `yaml:"naver"`
	LLM       LLMConfig       `yaml:"llm"`
	Recommend RecommendConfig `yaml:"recommend"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int      `yaml:"port"`
	ReadTimeoutSec  int      `yaml:"read_timeout_sec"`
	WriteTimeoutSec int      `yaml:"write_timeout_sec"`
	ShutdownSec     int      `yaml:"shutdown_timeout_sec"`
	CORSOrigins     []string `yaml:"cors_origins"`
}

// NaverConfig holds Naver open API settings.
type NaverConfig struct {
	BaseURL       string `yaml:"base_url"`
	ClientID      string `yaml:"client_id"`
	ClientSecret  string `yaml:"client_secret"`
	SearchDisplay int    `yaml:"search_display"` // venues fetched per local search
	ReviewDisplay int    `yaml:"review_display"` // snippets fetched per blog search
	TimeoutSec    int    `yaml:"timeout_sec"`
}

// LLMConfig holds chat model provider settings.
// An empty api_key disables the model: summaries and translations then
// run permanently in fallback mode.
type LLMConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	RPM        int    `yaml:"rpm"` // 0 = unlimited
	TimeoutSec int    `yaml:"timeout_sec"`
}

// RecommendConfig holds pipeline tuning knobs. The source variants
// disagree on display counts and truncation length, so these are
// configuration rather than constants.
type RecommendConfig struct {
	MaxPlaces               int      `yaml:"max_places"`
	MinContextChars         int      `yaml:"min_context_chars"`
	MaxContextChars         int      `yaml:"max_context_chars"`
	DisableKeywordStage     bool     `yaml:"disable_keyword_stage"`
	DisableTranslationStage bool     `yaml:"disable_translation_stage"`
	ExtraAdKeywords         []string `yaml:"extra_ad_keywords"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		// The per-request pipeline chains several provider calls, so the
		// write timeout must cover the worst-case sequential latency.
		c.HTTP.WriteTimeoutSec = 60
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Naver.BaseURL == "" {
		c.Naver.BaseURL = "https://openapi.naver.com/v1/search"
	}
	if c.Naver.SearchDisplay <= 0 {
		c.Naver.SearchDisplay = 10
	}
	if c.Naver.ReviewDisplay <= 0 {
		c.Naver.ReviewDisplay = 10
	}
	if c.Naver.TimeoutSec <= 0 {
		c.Naver.TimeoutSec = 5
	}
	if c.LLM.TimeoutSec <= 0 {
		c.LLM.TimeoutSec = 30
	}
	if c.Recommend.MaxPlaces <= 0 {
		c.Recommend.MaxPlaces = 3
	}
	if c.Recommend.MinContextChars <= 0 {
		c.Recommend.MinContextChars = 10
	}
	if c.Recommend.MaxContextChars <= 0 {
		c.Recommend.MaxContextChars = 2000
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Naver.ClientID == "" || c.Naver.ClientSecret == "" {
		return fmt.Errorf("naver.client_id and naver.client_secret are required")
	}
	if c.Naver.SearchDisplay > 100 {
		return fmt.Errorf("naver.search_display must be at most 100, got %d", c.Naver.SearchDisplay)
	}
	if c.Naver.ReviewDisplay > 100 {
		return fmt.Errorf("naver.review_display must be at most 100, got %d", c.Naver.ReviewDisplay)
	}
	if c.LLM.APIKey != "" && c.LLM.Model == "" {
		return fmt.Errorf("llm.model is required when llm.api_key is set")
	}
	if c.Recommend.MinContextChars > c.Recommend.MaxContextChars {
		return fmt.Errorf(
			"recommend.min_context_chars (%d) must not exceed recommend.max_context_chars (%d)",
			c.Recommend.MinContextChars, c.Recommend.MaxContextChars,
		)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
