package resolve

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const dateLayout = "2006-01-02"

var (
	isoDateRe   = regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`)
	slashDateRe = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{4})\b`)
	dayMonthRe  = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)?\s+(january|february|march|april|may|june|july|august|september|october|november|december)(?:\s+(\d{4}))?\b`)
	monthDayRe  = regexp.MustCompile(`\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s+(\d{4}))?\b`)
	weekdayRe   = regexp.MustCompile(`\b(next|this|coming)\s+(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
)

var monthsByName = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

var weekdaysByName = map[string]time.Weekday{
	"monday": time.Monday, "tuesday": time.Tuesday, "wednesday": time.Wednesday,
	"thursday": time.Thursday, "friday": time.Friday, "saturday": time.Saturday,
	"sunday": time.Sunday,
}

// ResolveDate finds a date expression in text and normalizes it to
// YYYY-MM-DD. Explicit formats win over relative words; an already
// normalized date passes through unchanged. The boolean reports whether
// anything date-like was found.
func (r *Resolver) ResolveDate(text string) (string, bool) {
	lower := strings.ToLower(text)
	today := r.now()

	if m := isoDateRe.FindStringSubmatch(lower); m != nil {
		if d, ok := calendarDate(m[1], m[2], m[3]); ok {
			return d, true
		}
	}

	// Day-first, matching how users here write 15/08/2026.
	if m := slashDateRe.FindStringSubmatch(lower); m != nil {
		if d, ok := calendarDate(m[3], m[2], m[1]); ok {
			return d, true
		}
	}

	if m := dayMonthRe.FindStringSubmatch(lower); m != nil {
		return monthDate(m[2], m[1], m[3], today), true
	}
	if m := monthDayRe.FindStringSubmatch(lower); m != nil {
		return monthDate(m[1], m[2], m[3], today), true
	}

	if strings.Contains(lower, "day after tomorrow") {
		return today.AddDate(0, 0, 2).Format(dateLayout), true
	}
	if strings.Contains(lower, "tomorrow") {
		return today.AddDate(0, 0, 1).Format(dateLayout), true
	}
	if strings.Contains(lower, "yesterday") {
		return today.AddDate(0, 0, -1).Format(dateLayout), true
	}
	if strings.Contains(lower, "today") || strings.Contains(lower, "tonight") {
		return today.Format(dateLayout), true
	}

	if m := weekdayRe.FindStringSubmatch(lower); m != nil {
		wd := weekdaysByName[m[2]]
		days := (int(wd) - int(today.Weekday()) + 7) % 7
		if days == 0 && m[1] == "next" {
			// "next monday" said on a Monday means a week out.
			days = 7
		}
		return today.AddDate(0, 0, days).Format(dateLayout), true
	}

	if strings.Contains(lower, "next week") {
		return today.AddDate(0, 0, 7).Format(dateLayout), true
	}

	// Last resort: hand the fragment to a permissive parser. Only worth
	// trying on short inputs; a whole sentence will never parse.
	trimmed := strings.TrimSpace(text)
	if len(trimmed) <= 24 {
		if t, err := dateparse.ParseAny(trimmed); err == nil {
			return t.Format(dateLayout), true
		}
	}

	return "", false
}

func monthDate(month, day, year string, today time.Time) string {
	m := monthsByName[month]
	d := atoiSafe(day)
	y := today.Year()
	if year != "" {
		y = atoiSafe(year)
	} else if time.Date(y, m, d, 0, 0, 0, 0, today.Location()).Before(today.AddDate(0, 0, -1)) {
		// A bare "15 august" already behind us means next year.
		y++
	}
	return time.Date(y, m, d, 0, 0, 0, 0, today.Location()).Format(dateLayout)
}

// calendarDate validates the numeric parts as a real calendar date.
func calendarDate(y, m, d string) (string, bool) {
	t, err := time.Parse(dateLayout, fmt.Sprintf("%04d-%02d-%02d", atoiSafe(y), atoiSafe(m), atoiSafe(d)))
	if err != nil {
		return "", false
	}
	return t.Format(dateLayout), true
}

func atoiSafe(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}
