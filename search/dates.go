package search

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/poiesic/schoolbridge/core"
)

// fallbackDays is the window used when a date expression cannot be parsed.
// A nonsensical expression degrades to "last 30 days" rather than failing
// the request.
const fallbackDays = 30

var monthsByName = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "jun": time.June, "jul": time.July,
	"aug": time.August, "sep": time.September, "oct": time.October,
	"nov": time.November, "dec": time.December,
}

var (
	// Years are recognized only in the 2000s; two-digit or 1900s years are
	// not supported.
	yearPattern     = regexp.MustCompile(`20\d{2}`)
	lastDaysPattern = regexp.MustCompile(`last (\d+) days?`)
)

// Layouts accepted for a literal calendar date. Only numeric layouts appear
// here: an expression naming a month is already resolved to the full month
// by the higher-priority month branch.
var literalDateLayouts = []string{
	core.DateLayout,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
}

// ResolveRange maps a free-text date expression to a concrete calendar-date
// range relative to now. It never fails: expressions it cannot interpret
// resolve to the trailing 30-day window.
//
// Recognized forms, first match wins: "today", "yesterday", "this week",
// "last week" (weeks run Monday through Sunday), a month name with optional
// year ("in May", "May 2024"), "last N days", and literal dates.
func ResolveRange(expr string, now time.Time) core.DateRange {
	today := midnight(now)
	lower := strings.ToLower(strings.TrimSpace(expr))

	switch {
	case strings.Contains(lower, "today"):
		return core.DateRange{Start: today, End: today}

	case strings.Contains(lower, "yesterday"):
		yesterday := today.AddDate(0, 0, -1)
		return core.DateRange{Start: yesterday, End: yesterday}

	case strings.Contains(lower, "this week"):
		start := today.AddDate(0, 0, -weekdayFromMonday(today))
		return core.DateRange{Start: start, End: start.AddDate(0, 0, 6)}

	case strings.Contains(lower, "last week"):
		start := today.AddDate(0, 0, -(weekdayFromMonday(today) + 7))
		return core.DateRange{Start: start, End: start.AddDate(0, 0, 6)}
	}

	// Month name, matched on whole tokens so that words embedding a month
	// ("mayor", "marching") do not resolve to that month.
	if month, ok := findMonthToken(lower); ok {
		year := today.Year()
		if m := yearPattern.FindString(expr); m != "" {
			year, _ = strconv.Atoi(m)
		}
		start := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 1, 0).AddDate(0, 0, -1)
		return core.DateRange{Start: start, End: end}
	}

	if m := lastDaysPattern.FindStringSubmatch(lower); m != nil {
		days, _ := strconv.Atoi(m[1])
		return core.DateRange{Start: today.AddDate(0, 0, -days), End: today}
	}

	for _, layout := range literalDateLayouts {
		if parsed, err := time.Parse(layout, strings.TrimSpace(expr)); err == nil {
			day := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, now.Location())
			return core.DateRange{Start: day, End: day}
		}
	}

	return core.DateRange{Start: today.AddDate(0, 0, -fallbackDays), End: today}
}

// findMonthToken scans the expression's letter runs for a month name or
// standard three-letter abbreviation.
func findMonthToken(lower string) (time.Month, bool) {
	tokens := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, token := range tokens {
		if month, ok := monthsByName[token]; ok {
			return month, true
		}
	}
	return 0, false
}

// weekdayFromMonday returns the number of days since Monday (Monday = 0).
func weekdayFromMonday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
