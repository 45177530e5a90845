// Package config loads all process configuration from environment
// variables with sensible defaults. The CLI loads a .env file first, so
// every setting below can live there.
//
// LLM configuration:
//   - LLM_API_KEY: API key for the service provider (required)
//   - LLM_API_URL: OpenAI-compatible endpoint (default: https://api.x.ai/v1)
//   - LLM_MODEL: model name (default: grok-4-fast-reasoning)
//   - LLM_MAX_TOKENS: response token cap (default: 0, provider default)
//   - LLM_TEMPERATURE: sampling temperature (default: 0.8)
//   - LLM_TIMEOUT: per-call timeout in seconds (default: 120)
//
// Translation configuration:
//   - TRANSLATE_DIRECTION: "ja-zh", "en-zh" or "auto" (default: auto)
//   - BATCH_SIZE: lines per request (default: 20)
//   - WORKER_COUNT: documents in flight (default: 10)
//   - MAX_RETRIES: transport retries per call (default: 3)
//   - RETRY_BACKOFF: backoff unit in seconds, doubled per attempt (default: 2)
//   - TERM_RELEVANCE_COUNT: glossary subset floor (default: 5)
//   - SOUND_RELEVANCE_COUNT: sound subset floor (default: 3)
//   - CRON_EXPR: schedule for the schedule command (default: 0 0 * * *)
//
// Staging areas:
//   - DOCS_DIR, GLOSSARY_DIR, REQUEST_DIR, RESPONSE_DIR, ERROR_DIR,
//     EXPORT_DIR: the document staging area and the write-only artifact
//     side channels (defaults under ./staging)
//   - LEDGER_PATH: SQLite run ledger (default: data/runs.db)
package config

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/text/language"
)

type Config struct {
	LLM       LLMConfig       `json:"llm"`
	Translate TranslateConfig `json:"translate"`
	Staging   StagingConfig   `json:"staging"`
}

// LLMConfig holds the connection settings for the translation service.
type LLMConfig struct {
	APIKey      string  `json:"api_key"`
	APIURL      string  `json:"api_url"`
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	Timeout     int     `json:"timeout"`
}

// TranslateConfig holds the orchestration scalars.
type TranslateConfig struct {
	Direction           string       `json:"direction"`
	TargetLanguage      language.Tag `json:"target_language"`
	BatchSize           int          `json:"batch_size"`
	WorkerCount         int          `json:"worker_count"`
	MaxRetries          int          `json:"max_retries"`
	RetryBackoffSeconds int          `json:"retry_backoff_seconds"`
	TermRelevanceCount  int          `json:"term_relevance_count"`
	SoundRelevanceCount int          `json:"sound_relevance_count"`
	CronExpr            string       `json:"cron_expr"`
}

// StagingConfig names the staging area and the artifact side channels.
type StagingConfig struct {
	DocsDir     string `json:"docs_dir"`
	GlossaryDir string `json:"glossary_dir"`
	RequestDir  string `json:"request_dir"`
	ResponseDir string `json:"response_dir"`
	ErrorDir    string `json:"error_dir"`
	ExportDir   string `json:"export_dir"`
	LedgerPath  string `json:"ledger_path"`
}

// Option is a function type for adjusting Config after env loading.
type Option func(*Config)

// NewFromEnv creates a Config from environment variables and options.
func NewFromEnv(opts ...Option) (*Config, error) {
	config := &Config{
		LLM: LLMConfig{
			APIKey:      getEnvString("LLM_API_KEY", ""),
			APIURL:      getEnvString("LLM_API_URL", "https://api.x.ai/v1"),
			Model:       getEnvString("LLM_MODEL", "grok-4-fast-reasoning"),
			MaxTokens:   getEnvInt("LLM_MAX_TOKENS", 0),
			Temperature: getEnvFloat("LLM_TEMPERATURE", 0.8),
			Timeout:     getEnvInt("LLM_TIMEOUT", 120),
		},
		Translate: TranslateConfig{
			Direction:           getEnvString("TRANSLATE_DIRECTION", "auto"),
			TargetLanguage:      language.TraditionalChinese,
			BatchSize:           getEnvInt("BATCH_SIZE", 20),
			WorkerCount:         getEnvInt("WORKER_COUNT", 10),
			MaxRetries:          getEnvInt("MAX_RETRIES", 3),
			RetryBackoffSeconds: getEnvInt("RETRY_BACKOFF", 2),
			TermRelevanceCount:  getEnvInt("TERM_RELEVANCE_COUNT", 5),
			SoundRelevanceCount: getEnvInt("SOUND_RELEVANCE_COUNT", 3),
			CronExpr:            getEnvString("CRON_EXPR", "0 0 * * *"),
		},
		Staging: StagingConfig{
			DocsDir:     getEnvString("DOCS_DIR", "staging/docs"),
			GlossaryDir: getEnvString("GLOSSARY_DIR", "staging/glossary"),
			RequestDir:  getEnvString("REQUEST_DIR", "staging/requests"),
			ResponseDir: getEnvString("RESPONSE_DIR", "staging/responses"),
			ErrorDir:    getEnvString("ERROR_DIR", "staging/errors"),
			ExportDir:   getEnvString("EXPORT_DIR", "staging/export"),
			LedgerPath:  getEnvString("LEDGER_PATH", "data/runs.db"),
		},
	}

	for _, opt := range opts {
		opt(config)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// validate checks the orchestration scalars. The LLM settings are
// validated separately when a client is built, so commands that never
// call the service work without an API key.
func (c *Config) validate() error {
	switch c.Translate.Direction {
	case "auto", "ja-zh", "en-zh":
	default:
		return fmt.Errorf("TRANSLATE_DIRECTION must be auto, ja-zh or en-zh, got %q", c.Translate.Direction)
	}
	if c.Translate.BatchSize <= 0 {
		return fmt.Errorf("BATCH_SIZE must be positive")
	}
	if c.Translate.WorkerCount <= 0 {
		return fmt.Errorf("WORKER_COUNT must be positive")
	}
	return nil
}

// getEnvString gets a string value from environment variables with default
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer value from environment variables with default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat gets a float value from environment variables with default
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
