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

// Package schoolbridge wires configuration, storage, search, calendar, and
// AI analysis into one application the commands can share.
package schoolbridge

import (
	"log/slog"

	"github.com/poiesic/schoolbridge/ai"
	"github.com/poiesic/schoolbridge/ai/openai"
	"github.com/poiesic/schoolbridge/calendar"
	"github.com/poiesic/schoolbridge/config"
	"github.com/poiesic/schoolbridge/search"
	"github.com/poiesic/schoolbridge/storage"
	"github.com/poiesic/schoolbridge/storage/airtable"
	"github.com/poiesic/schoolbridge/storage/badgerstore"
	"github.com/poiesic/schoolbridge/tools"
)

// App holds the wired application. Calendar and document tools are optional:
// they are nil when the webhook or AI credentials are absent, and the tool
// registry simply omits them.
type App struct {
	cfg      *config.Config
	repo     storage.AnnouncementRepository
	backend  *badgerstore.Backend
	searcher *search.Searcher
	registry *tools.Registry
	logger   *slog.Logger
}

// AppOption configures an App.
type AppOption func(*appOptions)

type appOptions struct {
	localStorePath string
	logger         *slog.Logger
}

// WithLocalStore backs the app with a badger store at path instead of the
// Airtable API. Offline commands use this to work without credentials.
func WithLocalStore(path string) AppOption {
	return func(o *appOptions) {
		o.localStorePath = path
	}
}

// WithAppLogger sets the logger. A nil logger keeps the default.
func WithAppLogger(logger *slog.Logger) AppOption {
	return func(o *appOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewApp wires an application from configuration.
func NewApp(cfg *config.Config, opts ...AppOption) (*App, error) {
	options := &appOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}

	app := &App{cfg: cfg, logger: options.logger}

	// Announcement repository: local badger store or the Airtable API.
	if options.localStorePath != "" {
		backend, err := badgerstore.OpenBackend(options.localStorePath, false)
		if err != nil {
			return nil, err
		}
		app.backend = backend
		app.repo = badgerstore.NewRepository(backend)
	} else {
		if err := cfg.RequireAirtable(); err != nil {
			return nil, err
		}
		repo, err := airtable.NewRepository(cfg.Airtable.APIKey, cfg.Airtable.BaseID,
			airtable.WithTable(cfg.Airtable.Table),
			airtable.WithLogger(options.logger))
		if err != nil {
			return nil, err
		}
		app.repo = repo
	}

	searcher, err := search.NewSearcher(app.repo,
		search.NewStopWords(cfg.Search.StopWords),
		search.WithLogger(options.logger))
	if err != nil {
		app.Close()
		return nil, err
	}
	app.searcher = searcher

	announcements, err := tools.NewAnnouncementTools(searcher,
		tools.WithLimits(cfg.Search.DefaultLimit, cfg.Search.MaxLimit),
		tools.WithAnnouncementLogger(options.logger))
	if err != nil {
		app.Close()
		return nil, err
	}

	var calendarTools *tools.CalendarTools
	if cfg.Calendar.WebhookURL != "" {
		client, err := calendar.NewClient(cfg.Calendar.WebhookURL, cfg.Search.TimeIndicators,
			calendar.WithEventDefaults(cfg.Calendar.DefaultStartTime, cfg.Calendar.DefaultDurationHours),
			calendar.WithLogger(options.logger))
		if err != nil {
			app.Close()
			return nil, err
		}
		calendarTools, err = tools.NewCalendarTools(client,
			tools.WithReminderDays(cfg.Calendar.ReminderDaysBefore),
			tools.WithCalendarLogger(options.logger))
		if err != nil {
			app.Close()
			return nil, err
		}
	} else {
		options.logger.Info("calendar webhook not configured, calendar tools disabled")
	}

	var documentTools *tools.DocumentTools
	if cfg.OpenAI.APIKey != "" {
		analyzer, err := openai.NewAnalyzer(ai.NewConfig(
			ai.WithHost(cfg.OpenAI.Host),
			ai.WithModel(cfg.OpenAI.Model),
			ai.WithAPIKey(cfg.OpenAI.APIKey)))
		if err != nil {
			app.Close()
			return nil, err
		}
		documentTools, err = tools.NewDocumentTools(analyzer,
			tools.WithDocumentLogger(options.logger))
		if err != nil {
			app.Close()
			return nil, err
		}
	} else {
		options.logger.Info("AI credentials not configured, document tools disabled")
	}

	app.registry = tools.NewRegistry(announcements, calendarTools, documentTools)
	return app, nil
}

// Registry returns the tool registry.
func (a *App) Registry() *tools.Registry {
	return a.registry
}

// Searcher returns the retrieval engine.
func (a *App) Searcher() *search.Searcher {
	return a.searcher
}

// Repository returns the announcement repository.
func (a *App) Repository() storage.AnnouncementRepository {
	return a.repo
}

// Config returns the loaded configuration.
func (a *App) Config() *config.Config {
	return a.cfg
}

func (a *App) Close() error {
	if a.repo != nil {
		if err := a.repo.Close(); err != nil {
			a.logger.Error("error closing announcement repository", "err", err)
		}
	}
	if a.backend != nil {
		if err := a.backend.Close(); err != nil {
			a.logger.Error("error closing backend storage", "err", err)
			return err
		}
	}
	return nil
}
