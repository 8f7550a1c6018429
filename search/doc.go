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


// Package search implements the announcement retrieval engine.
//
// The Searcher type composes three filters into one deterministic pipeline:
//   - Natural-language date resolution bounding the record fetch
//   - Case-insensitive sender substring narrowing
//   - Relevance-ranked text search with stop-word filtering
//
// Relevance scoring is an ordered decision list: an exact phrase match wins
// outright over a stop-word-stripped phrase match, which wins outright over
// accumulated keyword matches. Title occurrences are weighted above
// description and sender occurrences.
//
// The engine is stateless and request-scoped. Collaborator failures and
// unparseable date expressions degrade to smaller result sets; no operation
// in this package returns an error to its caller.
package search
