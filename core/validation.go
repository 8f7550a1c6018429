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


package core

import "fmt"

// ValidateAnnouncement validates an Announcement according to domain rules.
//
// Validation is intentionally permissive: records arrive from an external
// store with no schema enforcement, and a record is never rejected solely
// because a field is absent. Only a nil announcement is invalid.
func ValidateAnnouncement(a *Announcement) error {
	if a == nil {
		return fmt.Errorf("%w: announcement is nil", ErrInvalidAnnouncement)
	}
	return nil
}

// ValidateDateRange validates that a DateRange holds its Start <= End invariant.
func ValidateDateRange(r DateRange) error {
	if r.Start.After(r.End) {
		return fmt.Errorf("%w: %s", ErrInvalidDateRange, r)
	}
	return nil
}

// ClampLimit bounds a requested result limit to [1, max].
// Non-positive limits fall back to def; oversized limits clamp to max.
// Limits are never rejected, only adjusted.
func ClampLimit(limit, def, max int) int {
	if limit <= 0 {
		limit = def
	}
	if limit > max {
		limit = max
	}
	if limit < 1 {
		limit = 1
	}
	return limit
}
