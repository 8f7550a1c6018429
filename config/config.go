// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package config loads schoolbridge configuration from an embedded default,
// an optional YAML file, and environment variables for secrets.
//
// The stop-word and time-indicator vocabularies live here, not in code, so
// they can be tuned per deployment without rebuilding the engine.
package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// AirtableConfig holds record-store connection settings.
// APIKey and BaseID come from AIRTABLE_API_KEY / AIRTABLE_BASE_ID.
type AirtableConfig struct {
	APIKey string `yaml:"api_key,omitempty"`
	BaseID string `yaml:"base_id,omitempty"`
	Table  string `yaml:"table"`
}

// OpenAIConfig holds the AI analysis service settings.
// APIKey comes from OPENAI_API_KEY when not set in the file.
type OpenAIConfig struct {
	Host   string `yaml:"host"`
	Model  string `yaml:"model"`
	APIKey string `yaml:"api_key,omitempty"`
}

// CalendarConfig holds calendar webhook settings.
// WebhookURL comes from N8N_WEBHOOK_URL when not set in the file.
type CalendarConfig struct {
	WebhookURL           string `yaml:"webhook_url,omitempty"`
	DefaultStartTime     string `yaml:"default_start_time"`
	DefaultDurationHours int    `yaml:"default_duration_hours"`
	ReminderDaysBefore   int    `yaml:"reminder_days_before"`
}

// SearchConfig holds the retrieval engine's tunable vocabulary and limits.
type SearchConfig struct {
	DefaultLimit   int      `yaml:"default_limit"`
	MaxLimit       int      `yaml:"max_limit"`
	StopWords      []string `yaml:"stop_words"`
	TimeIndicators []string `yaml:"time_indicators"`
}

type Config struct {
	Airtable AirtableConfig `yaml:"airtable"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
	Calendar CalendarConfig `yaml:"calendar"`
	Search   SearchConfig   `yaml:"search"`
}

// DefaultConfigPath returns the per-user config location.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "schoolbridge", "config.yaml")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads configuration from path, falling back to embedded defaults when
// the file does not exist (writing the defaults out on first run). Secrets
// are resolved from the environment after the file is read.
func Load(path string) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Write defaults to config path on first run. Non-fatal on failure:
		// just use the embedded defaults.
		_ = writeDefaults(path)
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

// applyEnv resolves secrets from the environment. File values win so that
// test fixtures can pin them explicitly.
func (c *Config) applyEnv() {
	if c.Airtable.APIKey == "" {
		c.Airtable.APIKey = os.Getenv("AIRTABLE_API_KEY")
	}
	if c.Airtable.BaseID == "" {
		c.Airtable.BaseID = os.Getenv("AIRTABLE_BASE_ID")
	}
	if c.OpenAI.APIKey == "" {
		c.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.Calendar.WebhookURL == "" {
		c.Calendar.WebhookURL = os.Getenv("N8N_WEBHOOK_URL")
	}
}

func (c *Config) validate() error {
	if c.Airtable.Table == "" {
		return fmt.Errorf("airtable: table is required")
	}
	if c.Search.DefaultLimit <= 0 {
		return fmt.Errorf("search: default_limit must be greater than 0")
	}
	if c.Search.MaxLimit < c.Search.DefaultLimit {
		return fmt.Errorf("search: max_limit %d is below default_limit %d",
			c.Search.MaxLimit, c.Search.DefaultLimit)
	}
	if c.Calendar.DefaultDurationHours <= 0 {
		return fmt.Errorf("calendar: default_duration_hours must be greater than 0")
	}
	if c.Calendar.ReminderDaysBefore < 0 {
		return fmt.Errorf("calendar: reminder_days_before cannot be negative")
	}
	return nil
}

// RequireAirtable checks that the record-store credentials are present.
// Called by commands that actually talk to Airtable, so that offline
// commands (seed, badger-backed serve) work without credentials.
func (c *Config) RequireAirtable() error {
	if c.Airtable.APIKey == "" {
		return fmt.Errorf("AIRTABLE_API_KEY is not set")
	}
	if c.Airtable.BaseID == "" {
		return fmt.Errorf("AIRTABLE_BASE_ID is not set")
	}
	return nil
}

// RequireOpenAI checks that the analysis-service credentials are present.
func (c *Config) RequireOpenAI() error {
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is not set")
	}
	return nil
}

// RequireCalendar checks that the calendar webhook is configured.
func (c *Config) RequireCalendar() error {
	if c.Calendar.WebhookURL == "" {
		return fmt.Errorf("N8N_WEBHOOK_URL is not set")
	}
	return nil
}
