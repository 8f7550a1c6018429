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

import (
	"fmt"
	"strings"

	"github.com/poiesic/schoolbridge/core"
)

const (
	descriptionLimit = 200
	displayLayout    = "January 2, 2006"
)

// formatAnnouncements renders announcements as a numbered markdown list.
func formatAnnouncements(announcements []*core.Announcement) string {
	var b strings.Builder
	for i, a := range announcements {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. **Title:** %s\n", i+1, orDefault(a.Title, "No title"))
		fmt.Fprintf(&b, "   **Sent By:** %s\n", orDefault(a.Sender, "Unknown sender"))
		fmt.Fprintf(&b, "   **Sent Time:** %s\n", displayDate(a))
		fmt.Fprintf(&b, "   **Description:** %s\n", truncateRunes(orDefault(a.Description, "No description"), descriptionLimit))
	}
	return b.String()
}

func displayDate(a *core.Announcement) string {
	if a.SentAt == "" {
		return "Unknown date"
	}
	if t, ok := a.SentAtTime(); ok {
		return t.Format(displayLayout)
	}
	return a.SentAt
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// truncateRunes shortens long text at a rune boundary so multi-byte
// characters are never split.
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
