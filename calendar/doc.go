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

// Package calendar creates Google Calendar events through an n8n webhook.
//
// The client decides between all-day and timed events by scanning event text
// for clock times and time-indicator words, and posts a hybrid payload that
// carries both date and datetime bounds so either webhook wiring works.
// Webhook failures come back as unsuccessful results, not errors.
package calendar
