package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for gitamind.
type Config struct {
	Source    SourceConfig    `yaml:"source"`
	Retrieve  RetrieveConfig  `yaml:"retrieve"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	LLM       LLMConfig       `yaml:"llm"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SourceConfig locates the scripture document. Path may be a doublestar glob.
type SourceConfig struct {
	Path string `yaml:"path" validate:"required"`
}

// RetrieveConfig holds retrieval configuration.
type RetrieveConfig struct {
	PassageChars int `yaml:"passage_chars" validate:"gt=0"` // soft cap when joining lines
	TopK         int `yaml:"top_k" validate:"gt=0"`
	Shortlist    int `yaml:"shortlist" validate:"gtefield=TopK"` // lexical candidates handed to the reranker
}

// EmbeddingConfig holds embedding configuration.
type EmbeddingConfig struct {
	Provider  string        `yaml:"provider" validate:"oneof=openai local mock none"`
	Model     string        `yaml:"model"`
	APIKeyEnv string        `yaml:"api_key_env"` // Environment variable for API key
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
}

// APIKey resolves the credential from the environment.
func (e EmbeddingConfig) APIKey() string {
	if e.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(e.APIKeyEnv)
}

// LLMConfig lists reflection providers in the order they are tried.
type LLMConfig struct {
	Providers   []ProviderConfig `yaml:"providers" validate:"dive"`
	Language    string           `yaml:"language"`
	MaxTokens   int              `yaml:"max_tokens" validate:"gte=0"`
	Temperature float64          `yaml:"temperature"`
	Timeout     time.Duration    `yaml:"timeout"`
}

// ProviderConfig configures one language model provider.
type ProviderConfig struct {
	Name      string `yaml:"name" validate:"oneof=openai ollama anthropic"`
	Model     string `yaml:"model" validate:"required"`
	APIKeyEnv string `yaml:"api_key_env,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
}

// APIKey resolves the credential from the environment.
func (p ProviderConfig) APIKey() string {
	if p.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(p.APIKeyEnv)
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr            string        `yaml:"addr" validate:"required"`
	AllowedOrigin   string        `yaml:"allowed_origin"`
	RateLimit       float64       `yaml:"rate_limit"` // requests per second per client, 0 disables
	RateBurst       int           `yaml:"rate_burst"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"` // also bounds the whole provider fallback chain
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Path: filepath.Join("data", "bhagavad-gita.pdf"),
		},
		Retrieve: RetrieveConfig{
			PassageChars: 400,
			TopK:         3,
			Shortlist:    30,
		},
		Embedding: EmbeddingConfig{
			Provider:  "openai",
			Model:     "text-embedding-3-small",
			APIKeyEnv: "OPENAI_API_KEY",
			BaseURL:   "https://api.openai.com/v1",
			Timeout:   30 * time.Second,
		},
		LLM: LLMConfig{
			Providers: []ProviderConfig{
				{Name: "openai", Model: "gpt-4o", APIKeyEnv: "OPENAI_API_KEY"},
				{Name: "ollama", Model: "llama3.2", BaseURL: "http://localhost:11434"},
				{Name: "anthropic", Model: "claude-3-5-sonnet-20241022", APIKeyEnv: "ANTHROPIC_API_KEY"},
			},
			Language:    "Hindi",
			MaxTokens:   800,
			Temperature: 0.7,
			Timeout:     60 * time.Second,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			AllowedOrigin:   "http://localhost:3000",
			RateLimit:       5,
			RateBurst:       10,
			ShutdownTimeout: 10 * time.Second,
			WriteTimeout:    120 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for gitamind.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "gitamind.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".gitamind", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Validate checks field constraints declared in struct tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SourcePath returns the source pattern resolved against dir when it is relative.
func (c *Config) SourcePath(dir string) string {
	if filepath.IsAbs(c.Source.Path) || dir == "" {
		return c.Source.Path
	}
	return filepath.Join(dir, c.Source.Path)
}
