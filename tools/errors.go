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

package tools

import "errors"

var (
	// ErrSearcherRequired is returned when announcement tools are built
	// without a searcher.
	ErrSearcherRequired = errors.New("searcher is required")

	// ErrCalendarRequired is returned when calendar tools are built without
	// a calendar client.
	ErrCalendarRequired = errors.New("calendar client is required")

	// ErrAnalyzerRequired is returned when document tools are built without
	// an analyzer.
	ErrAnalyzerRequired = errors.New("analyzer is required")
)
