// Package config assembles the service configuration.
//
// Values are resolved in this order, later sources overriding earlier ones:
//  1. built-in defaults
//  2. the YAML file named by CONFIG_FILE, when set
//  3. environment variables (a .env file in the working directory is loaded first)
//
// Credentials are only ever read from the environment.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	envconfig "genai-summarizer/pkg/config"
)

// Provider names accepted by SUMMARIZER_PROVIDER.
const (
	ProviderAzure  = "azure"
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
	ProviderVertex = "vertex"
	ProviderNone   = "none"
)

// Config is the full service configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Auth       AuthConfig       `yaml:"auth"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Extractor  ExtractorConfig  `yaml:"extractor"`
	Limits     LimitsConfig     `yaml:"limits"`
	LogLevel   string           `yaml:"log_level"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// AllowedOrigins lists CORS origins; "*" allows any origin.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// AuthConfig holds bearer token settings.
type AuthConfig struct {
	JWTSecret string        `yaml:"-"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
	// EphemeralSecret is set when no JWT_SECRET_KEY was supplied and a
	// random one was generated. Tokens will not survive a restart.
	EphemeralSecret bool `yaml:"-"`
}

// SummarizerConfig selects and tunes the language model backend.
type SummarizerConfig struct {
	Provider    string        `yaml:"provider"`
	Temperature float64       `yaml:"temperature"`
	MaxTokens   int           `yaml:"max_tokens"`
	Timeout     time.Duration `yaml:"timeout"`
	// MaxAttempts is the number of calls per summary; 1 disables retry.
	MaxAttempts int          `yaml:"max_attempts"`
	Targets     TierTargets  `yaml:"targets"`
	Azure       AzureConfig  `yaml:"azure"`
	OpenAI      OpenAIConfig `yaml:"openai"`
	Claude      ClaudeConfig `yaml:"claude"`
	Vertex      VertexConfig `yaml:"vertex"`
}

// TierTargets maps each length tier to a target word count.
type TierTargets struct {
	Short  int `yaml:"short"`
	Medium int `yaml:"medium"`
	Long   int `yaml:"long"`
}

type AzureConfig struct {
	APIKey     string `yaml:"-"`
	Endpoint   string `yaml:"endpoint"`
	Deployment string `yaml:"deployment"`
	APIVersion string `yaml:"api_version"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"-"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type ClaudeConfig struct {
	APIKey string `yaml:"-"`
	Model  string `yaml:"model"`
}

type VertexConfig struct {
	ProjectID string `yaml:"project_id"`
	Region    string `yaml:"region"`
	Model     string `yaml:"model"`
}

// ExtractorConfig tunes URL fetching.
type ExtractorConfig struct {
	FetchTimeout   time.Duration `yaml:"fetch_timeout"`
	MaxBodySize    int64         `yaml:"max_body_size"`
	DenyPrivateIPs bool          `yaml:"deny_private_ips"`
	UserAgent      string        `yaml:"user_agent"`
	// Mode is "text" (whole page text) or "readability" (main article only).
	Mode string `yaml:"mode"`
}

// LimitsConfig holds request limits enforced by the pipeline.
type LimitsConfig struct {
	MaxFileSize      int64 `yaml:"max_file_size"`
	MaxBatchSize     int   `yaml:"max_batch_size"`
	BatchConcurrency int   `yaml:"batch_concurrency"`
	ExcerptLength    int   `yaml:"excerpt_length"`
}

// DefaultUserAgent is sent with URL fetches.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8000,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    150 * time.Second,
			IdleTimeout:     120 * time.Second,
			RequestTimeout:  120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			AllowedOrigins:  []string{"*"},
		},
		Auth: AuthConfig{TokenTTL: 24 * time.Hour},
		Summarizer: SummarizerConfig{
			Temperature: 0.5,
			MaxTokens:   500,
			Timeout:     60 * time.Second,
			MaxAttempts: 1,
			Targets:     TierTargets{Short: 50, Medium: 150, Long: 300},
			Azure:       AzureConfig{APIVersion: "2024-02-15-preview"},
			OpenAI:      OpenAIConfig{Model: "gpt-4o-mini"},
			Claude:      ClaudeConfig{Model: "claude-sonnet-4-5-20250929"},
			Vertex:      VertexConfig{Region: "us-central1", Model: "gemini-1.5-flash"},
		},
		Extractor: ExtractorConfig{
			FetchTimeout: 10 * time.Second,
			MaxBodySize:  10 * 1024 * 1024,
			UserAgent:    DefaultUserAgent,
			Mode:         "text",
		},
		Limits: LimitsConfig{
			MaxFileSize:      10 * 1024 * 1024,
			MaxBatchSize:     10,
			BatchConcurrency: 4,
			ExcerptLength:    500,
		},
		LogLevel: "info",
	}
}

// Load reads .env, the optional YAML file and the environment, then validates.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeYAML(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if cfg.Auth.JWTSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, fmt.Errorf("generate jwt secret: %w", err)
		}
		cfg.Auth.JWTSecret = secret
		cfg.Auth.EphemeralSecret = true
		slog.Warn("JWT_SECRET_KEY not set, using an ephemeral secret; issued tokens will not survive a restart")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// mergeYAML overlays values from a YAML file on top of cfg.
func (c *Config) mergeYAML(path string) error {
	// #nosec G304 -- path comes from the operator's CONFIG_FILE, not from requests
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// applyEnv overrides cfg with environment variables. Current values act as defaults.
func (c *Config) applyEnv() {
	c.LogLevel = envconfig.GetEnvString("LOG_LEVEL", c.LogLevel)

	s := &c.Server
	s.Port = envconfig.GetEnvInt("PORT", s.Port)
	s.RequestTimeout = envconfig.GetEnvDuration("REQUEST_TIMEOUT", s.RequestTimeout)
	s.ShutdownTimeout = envconfig.GetEnvDuration("SHUTDOWN_TIMEOUT", s.ShutdownTimeout)
	s.AllowedOrigins = envconfig.GetEnvStringList("CORS_ALLOWED_ORIGINS", s.AllowedOrigins)

	c.Auth.JWTSecret = envconfig.GetEnvString("JWT_SECRET_KEY", c.Auth.JWTSecret)
	if hours := envconfig.GetEnvInt("JWT_EXPIRATION_HOURS", 0); hours > 0 {
		c.Auth.TokenTTL = time.Duration(hours) * time.Hour
	}

	sm := &c.Summarizer
	sm.Provider = strings.ToLower(envconfig.GetEnvString("SUMMARIZER_PROVIDER", sm.Provider))
	sm.Temperature = envconfig.GetEnvFloat("SUMMARIZER_TEMPERATURE", sm.Temperature)
	sm.MaxTokens = envconfig.GetEnvInt("SUMMARIZER_MAX_TOKENS", sm.MaxTokens)
	sm.Timeout = envconfig.GetEnvDuration("SUMMARIZER_TIMEOUT", sm.Timeout)
	sm.MaxAttempts = envconfig.GetEnvInt("SUMMARIZER_MAX_RETRIES", sm.MaxAttempts)
	sm.Targets.Short = envconfig.GetEnvInt("SUMMARY_LENGTH_SHORT", sm.Targets.Short)
	sm.Targets.Medium = envconfig.GetEnvInt("SUMMARY_LENGTH_MEDIUM", sm.Targets.Medium)
	sm.Targets.Long = envconfig.GetEnvInt("SUMMARY_LENGTH_LONG", sm.Targets.Long)

	sm.Azure.APIKey = envconfig.GetEnvString("AZURE_OPENAI_API_KEY", sm.Azure.APIKey)
	sm.Azure.Endpoint = envconfig.GetEnvString("AZURE_OPENAI_ENDPOINT", sm.Azure.Endpoint)
	sm.Azure.Deployment = envconfig.GetEnvString("AZURE_OPENAI_DEPLOYMENT_NAME", sm.Azure.Deployment)
	sm.Azure.APIVersion = envconfig.GetEnvString("AZURE_OPENAI_API_VERSION", sm.Azure.APIVersion)
	sm.OpenAI.APIKey = envconfig.GetEnvString("OPENAI_API_KEY", sm.OpenAI.APIKey)
	sm.OpenAI.Model = envconfig.GetEnvString("OPENAI_MODEL", sm.OpenAI.Model)
	sm.OpenAI.BaseURL = envconfig.GetEnvString("OPENAI_BASE_URL", sm.OpenAI.BaseURL)
	sm.Claude.APIKey = envconfig.GetEnvString("ANTHROPIC_API_KEY", sm.Claude.APIKey)
	sm.Claude.Model = envconfig.GetEnvString("CLAUDE_MODEL", sm.Claude.Model)
	sm.Vertex.ProjectID = envconfig.GetEnvString("VERTEX_PROJECT_ID", sm.Vertex.ProjectID)
	sm.Vertex.Region = envconfig.GetEnvString("VERTEX_REGION", sm.Vertex.Region)
	sm.Vertex.Model = envconfig.GetEnvString("VERTEX_MODEL", sm.Vertex.Model)

	e := &c.Extractor
	e.FetchTimeout = envconfig.GetEnvDuration("URL_FETCH_TIMEOUT", e.FetchTimeout)
	e.MaxBodySize = envconfig.GetEnvInt64("URL_MAX_BODY_SIZE", e.MaxBodySize)
	e.DenyPrivateIPs = envconfig.GetEnvBool("URL_DENY_PRIVATE_IPS", e.DenyPrivateIPs)
	e.UserAgent = envconfig.GetEnvString("URL_USER_AGENT", e.UserAgent)
	e.Mode = strings.ToLower(envconfig.GetEnvString("URL_EXTRACT_MODE", e.Mode))

	l := &c.Limits
	l.MaxFileSize = envconfig.GetEnvInt64("MAX_FILE_SIZE", l.MaxFileSize)
	l.MaxBatchSize = envconfig.GetEnvInt("MAX_BATCH_SIZE", l.MaxBatchSize)
	l.BatchConcurrency = envconfig.GetEnvInt("BATCH_CONCURRENCY", l.BatchConcurrency)
}

// ResolvedProvider returns the configured provider, or detects one from the
// credentials present when Provider is empty or "auto".
func (s *SummarizerConfig) ResolvedProvider() string {
	if s.Provider != "" && s.Provider != "auto" {
		return s.Provider
	}
	switch {
	case s.Azure.APIKey != "" && s.Azure.Endpoint != "":
		return ProviderAzure
	case s.OpenAI.APIKey != "":
		return ProviderOpenAI
	case s.Claude.APIKey != "":
		return ProviderClaude
	case s.Vertex.ProjectID != "":
		return ProviderVertex
	default:
		return ProviderNone
	}
}

// Validate checks configuration correctness.
func (c *Config) Validate() error {
	var errs []error
	add := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		add(fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Server.Port))
	}
	add(wrap("REQUEST_TIMEOUT", envconfig.ValidatePositiveDuration(c.Server.RequestTimeout)))
	add(wrap("SHUTDOWN_TIMEOUT", envconfig.ValidatePositiveDuration(c.Server.ShutdownTimeout)))
	add(wrap("JWT_EXPIRATION_HOURS", envconfig.ValidatePositiveDuration(c.Auth.TokenTTL)))
	if !c.Auth.EphemeralSecret && c.Auth.JWTSecret != "" && len(c.Auth.JWTSecret) < 32 {
		add(errors.New("JWT_SECRET_KEY must be at least 32 characters (256 bits)"))
	}

	add(c.Summarizer.Validate())

	add(wrap("URL_FETCH_TIMEOUT", envconfig.ValidatePositiveDuration(c.Extractor.FetchTimeout)))
	add(envconfig.ValidatePositive("URL_MAX_BODY_SIZE", c.Extractor.MaxBodySize))
	if c.Extractor.Mode != "text" && c.Extractor.Mode != "readability" {
		add(fmt.Errorf("URL_EXTRACT_MODE must be text or readability, got %q", c.Extractor.Mode))
	}

	add(envconfig.ValidatePositive("MAX_FILE_SIZE", c.Limits.MaxFileSize))
	add(envconfig.ValidatePositive("MAX_BATCH_SIZE", c.Limits.MaxBatchSize))
	add(envconfig.ValidatePositive("BATCH_CONCURRENCY", c.Limits.BatchConcurrency))
	add(envconfig.ValidatePositive("excerpt_length", c.Limits.ExcerptLength))

	return errors.Join(errs...)
}

// Validate checks the summarizer settings that do not depend on credentials.
// Missing credentials are not an error: the summarizer then reports itself
// as not configured on every call.
func (s *SummarizerConfig) Validate() error {
	var errs []error
	switch s.ResolvedProvider() {
	case ProviderAzure, ProviderOpenAI, ProviderClaude, ProviderVertex, ProviderNone:
	default:
		errs = append(errs, fmt.Errorf("SUMMARIZER_PROVIDER %q is not supported", s.Provider))
	}
	if s.Temperature < 0 || s.Temperature > 2 {
		errs = append(errs, fmt.Errorf("SUMMARIZER_TEMPERATURE must be between 0 and 2, got %v", s.Temperature))
	}
	errs = append(errs,
		envconfig.ValidatePositive("SUMMARIZER_MAX_TOKENS", s.MaxTokens),
		envconfig.ValidatePositive("SUMMARIZER_MAX_RETRIES", s.MaxAttempts),
		envconfig.ValidatePositive("SUMMARY_LENGTH_SHORT", s.Targets.Short),
		envconfig.ValidatePositive("SUMMARY_LENGTH_MEDIUM", s.Targets.Medium),
		envconfig.ValidatePositive("SUMMARY_LENGTH_LONG", s.Targets.Long),
		wrap("SUMMARIZER_TIMEOUT", envconfig.ValidatePositiveDuration(s.Timeout)),
	)
	return errors.Join(errs...)
}

func wrap(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, err)
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
