package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "https://api.openai.com/v1", cfg.Host)
	assert.Equal(t, "gpt-3.5-turbo", cfg.Model)
	assert.Empty(t, cfg.APIKey)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "https://api.openai.com/v1", cfg.Host)
		assert.Equal(t, "gpt-3.5-turbo", cfg.Model)
	})

	t.Run("with custom host", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:11434/v1"))

		assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	})

	t.Run("with multiple options", func(t *testing.T) {
		cfg := NewConfig(
			WithHost("http://custom:8080/v1"),
			WithAPIKey("sk-test"),
			WithModel("gpt-4o-mini"),
		)

		assert.Equal(t, "http://custom:8080/v1", cfg.Host)
		assert.Equal(t, "sk-test", cfg.APIKey)
		assert.Equal(t, "gpt-4o-mini", cfg.Model)
	})
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		expected string
	}{
		{
			name:     "already has /v1",
			host:     "http://localhost:11434/v1",
			expected: "http://localhost:11434/v1",
		},
		{
			name:     "missing /v1",
			host:     "http://localhost:11434",
			expected: "http://localhost:11434/v1",
		},
		{
			name:     "has trailing slash",
			host:     "http://localhost:11434/",
			expected: "http://localhost:11434/v1",
		},
		{
			name:     "empty host",
			host:     "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Host: tt.host}

			cfg.Normalize()

			assert.Equal(t, tt.expected, cfg.Host)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		cfg := &Config{
			Host:   "http://localhost:11434",
			APIKey: "sk-test",
			Model:  "gpt-3.5-turbo",
		}

		err := cfg.Validate()
		assert.NoError(t, err)

		// Should also normalize
		assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	})

	t.Run("missing host", func(t *testing.T) {
		cfg := &Config{APIKey: "sk-test", Model: "gpt-3.5-turbo"}

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Host")
	})

	t.Run("missing api key", func(t *testing.T) {
		cfg := &Config{Host: "http://localhost:11434/v1", Model: "gpt-3.5-turbo"}

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "APIKey")
	})

	t.Run("missing model", func(t *testing.T) {
		cfg := &Config{Host: "http://localhost:11434/v1", APIKey: "sk-test"}

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Model")
	})
}

func TestAnalysisTypeValid(t *testing.T) {
	assert.True(t, AnalysisSummary.Valid())
	assert.True(t, AnalysisEvents.Valid())
	assert.True(t, AnalysisActionItems.Valid())
	assert.False(t, AnalysisType("sentiment").Valid())
	assert.False(t, AnalysisType("").Valid())
}
