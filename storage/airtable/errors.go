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

package airtable

import "errors"

var (
	// ErrAPIKeyRequired is returned when constructing a repository without
	// an API key.
	ErrAPIKeyRequired = errors.New("airtable api key is required")

	// ErrBaseIDRequired is returned when constructing a repository without
	// a base ID.
	ErrBaseIDRequired = errors.New("airtable base id is required")

	// ErrRequestFailed wraps transport and decoding failures.
	ErrRequestFailed = errors.New("airtable request failed")

	// ErrUnexpectedStatus is returned for non-200 API responses.
	ErrUnexpectedStatus = errors.New("airtable returned unexpected status")
)
