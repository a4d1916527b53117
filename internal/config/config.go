// Package config loads memurbot settings from YAML, .env and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for a config file.
const DefaultPath = "memurbot.yaml"

// Config is the whole application configuration.
type Config struct {
	Knowledge KnowledgeConfig `yaml:"knowledge"`
	Matcher   MatcherConfig   `yaml:"matcher"`
	LLM       LLMConfig       `yaml:"llm"`
	Prompt    PromptConfig    `yaml:"prompt"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// KnowledgeConfig locates the question/answer file.
type KnowledgeConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"` // reload on change
}

// MatcherConfig configures local matching.
type MatcherConfig struct {
	Threshold float64 `yaml:"threshold"`
}

// LLMConfig configures the escalation model.
type LLMConfig struct {
	Provider string `yaml:"provider"` // gemini, ollama
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key,omitempty"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Timeout  string `yaml:"timeout"`
}

// PromptConfig configures the escalation prompt.
type PromptConfig struct {
	Language string `yaml:"language"` // tr, en
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
	File   string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Knowledge: KnowledgeConfig{
			Path: "soru_cevaplar.json",
		},
		Matcher: MatcherConfig{
			Threshold: 0.7,
		},
		LLM: LLMConfig{
			Provider: "gemini",
			Model:    "gemini-2.0-flash",
			Timeout:  "30s",
		},
		Prompt: PromptConfig{
			Language: "tr",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file, then applies .env and
// environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// .env is optional; real environment variables win over it
	_ = godotenv.Load()

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
	if p := os.Getenv("MEMURBOT_PROVIDER"); p != "" {
		c.LLM.Provider = p
	}
	if m := os.Getenv("MEMURBOT_MODEL"); m != "" {
		c.LLM.Model = m
	}
	if host := os.Getenv("OLLAMA_HOST"); host != "" && c.LLM.Provider == "ollama" {
		c.LLM.BaseURL = host
	}
	if path := os.Getenv("MEMURBOT_KNOWLEDGE"); path != "" {
		c.Knowledge.Path = path
	}
}

// GetLLMTimeout returns the LLM timeout as a duration.
func (c *Config) GetLLMTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Matcher.Threshold < 0 || c.Matcher.Threshold > 1 {
		return fmt.Errorf("matcher.threshold must be within [0,1], got %v", c.Matcher.Threshold)
	}
	switch c.LLM.Provider {
	case "gemini", "ollama":
	default:
		return fmt.Errorf("llm.provider must be gemini or ollama, got %q", c.LLM.Provider)
	}
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil {
		return fmt.Errorf("llm.timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("llm.timeout must be positive, got %s", c.LLM.Timeout)
	}
	switch c.Prompt.Language {
	case "tr", "en":
	default:
		return fmt.Errorf("prompt.language must be tr or en, got %q", c.Prompt.Language)
	}
	if c.Knowledge.Path == "" {
		return fmt.Errorf("knowledge.path is required")
	}
	return nil
}
