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

// Package ai provides abstractions for AI-powered document analysis.
//
// The package defines the Analyzer interface with three analysis passes over
// announcement and document text: summarization, event extraction, and
// action-item extraction. Each pass returns structured results the tool layer
// renders for callers.
//
// Two implementation sub-packages exist:
//
//   - ai/openai: production implementation using OpenAI-compatible chat APIs
//   - ai/mock: test doubles for unit testing without external dependencies
//
// Production constructors return interface types to enforce abstraction;
// mock constructors return concrete types so tests can inject behavior and
// assert call counts.
package ai
