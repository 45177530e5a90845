package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestNewFromEnv_Defaults(t *testing.T) {
	cfg, err := NewFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://api.x.ai/v1", cfg.LLM.APIURL)
	assert.Equal(t, "grok-4-fast-reasoning", cfg.LLM.Model)
	assert.Equal(t, 120, cfg.LLM.Timeout)
	assert.Equal(t, "auto", cfg.Translate.Direction)
	assert.Equal(t, language.TraditionalChinese, cfg.Translate.TargetLanguage)
	assert.Equal(t, 20, cfg.Translate.BatchSize)
	assert.Equal(t, 10, cfg.Translate.WorkerCount)
	assert.Equal(t, 3, cfg.Translate.MaxRetries)
	assert.Equal(t, 5, cfg.Translate.TermRelevanceCount)
	assert.Equal(t, 3, cfg.Translate.SoundRelevanceCount)
	assert.Equal(t, "staging/docs", cfg.Staging.DocsDir)
	assert.Equal(t, "data/runs.db", cfg.Staging.LedgerPath)
}

func TestNewFromEnv_EnvOverrides(t *testing.T) {
	t.Setenv("LLM_MODEL", "other-model")
	t.Setenv("BATCH_SIZE", "5")
	t.Setenv("TRANSLATE_DIRECTION", "en-zh")
	t.Setenv("DOCS_DIR", "/tmp/docs")

	cfg, err := NewFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "other-model", cfg.LLM.Model)
	assert.Equal(t, 5, cfg.Translate.BatchSize)
	assert.Equal(t, "en-zh", cfg.Translate.Direction)
	assert.Equal(t, "/tmp/docs", cfg.Staging.DocsDir)
}

func TestNewFromEnv_MalformedNumberFallsBack(t *testing.T) {
	t.Setenv("BATCH_SIZE", "not-a-number")

	cfg, err := NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Translate.BatchSize)
}

func TestNewFromEnv_Options(t *testing.T) {
	cfg, err := NewFromEnv(func(c *Config) {
		c.Translate.Direction = "ja-zh"
		c.Translate.WorkerCount = 2
	})
	require.NoError(t, err)
	assert.Equal(t, "ja-zh", cfg.Translate.Direction)
	assert.Equal(t, 2, cfg.Translate.WorkerCount)
}

func TestNewFromEnv_RejectsBadValues(t *testing.T) {
	t.Setenv("TRANSLATE_DIRECTION", "fr-zh")
	_, err := NewFromEnv()
	assert.Error(t, err)

	t.Setenv("TRANSLATE_DIRECTION", "auto")
	_, err = NewFromEnv(func(c *Config) { c.Translate.BatchSize = 0 })
	assert.Error(t, err)

	_, err = NewFromEnv(func(c *Config) { c.Translate.WorkerCount = -1 })
	assert.Error(t, err)
}
