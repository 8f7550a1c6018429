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

package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/poiesic/schoolbridge/ai"
)

const (
	// Summarization gets a slightly higher temperature than extraction;
	// extraction output must stay close to the source text.
	summaryTemperature    = 0.3
	extractionTemperature = 0.2

	maxParseAttempts = 3
)

// Analyzer implements ai.Analyzer using OpenAI-compatible chat APIs.
type Analyzer struct {
	client llms.Model
	logger *slog.Logger
}

// newAnalyzer is an internal constructor that returns the concrete type.
func newAnalyzer(config *ai.Config) (*Analyzer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		client: client,
		logger: slog.Default().With("component", "openai-analyzer"),
	}, nil
}

// NewAnalyzer creates a new analyzer using the provided configuration.
//
// Returns ai.Analyzer interface to enforce abstraction.
func NewAnalyzer(config *ai.Config) (ai.Analyzer, error) {
	return newAnalyzer(config)
}

// Summarize produces a structured summary of the document.
func (a *Analyzer) Summarize(ctx context.Context, text string) (*ai.Summary, error) {
	var result ai.Summary
	prompt := fmt.Sprintf(summaryPromptTemplate, text)
	if err := a.generateJSON(ctx, summarySystemPrompt, prompt, summaryTemperature, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ExtractEvents extracts parent- and student-relevant events from the document.
func (a *Analyzer) ExtractEvents(ctx context.Context, text string) (*ai.EventReport, error) {
	var result ai.EventReport
	prompt := fmt.Sprintf(eventsPromptTemplate, text)
	if err := a.generateJSON(ctx, eventsSystemPrompt, prompt, extractionTemperature, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ExtractActionItems extracts tasks parents and students need to do.
func (a *Analyzer) ExtractActionItems(ctx context.Context, text string) (*ai.ActionItemReport, error) {
	var result ai.ActionItemReport
	prompt := fmt.Sprintf(actionItemsPromptTemplate, text)
	if err := a.generateJSON(ctx, actionItemsSystemPrompt, prompt, extractionTemperature, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// generateJSON runs one chat completion in JSON mode and unmarshals the
// response into out, retrying on malformed JSON.
func (a *Analyzer) generateJSON(ctx context.Context, systemPrompt, userPrompt string, temperature float64, out any) error {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(userPrompt),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var lastErr error
	for attempt := 0; attempt < maxParseAttempts; attempt++ {
		response, err := a.client.GenerateContent(ctx, content, llms.WithTemperature(temperature), llms.WithJSONMode())
		if err != nil {
			a.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return err
		}

		if len(response.Choices) < 1 {
			a.logger.Debug("no choices returned from model")
			lastErr = fmt.Errorf("no choices returned from model")
			continue
		}

		choice := response.Choices[0]

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(choice.Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), out); err != nil {
			lastErr = err
			a.logger.Warn("error parsing analysis response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		return nil
	}

	a.logger.Error("failed to parse analysis response after retries", "err", lastErr)
	return lastErr
}
