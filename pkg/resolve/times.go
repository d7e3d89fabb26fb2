package resolve

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	clockAmPmRe = regexp.MustCompile(`\b(\d{1,2})(?::(\d{2}))?\s*(am|pm|a\.m\.|p\.m\.)`)
	clock24Re   = regexp.MustCompile(`\b([01]?\d|2[0-3]):([0-5]\d)\b`)
)

// Checked in order; "afternoon" must beat "noon" and "midnight" must
// beat "night".
var dayParts = []struct {
	word  string
	clock string
}{
	{"afternoon", "14:00"},
	{"midnight", "00:00"},
	{"morning", "09:00"},
	{"evening", "18:00"},
	{"tonight", "20:00"},
	{"night", "20:00"},
	{"noon", "12:00"},
}

// ResolveTime finds a time expression in text and normalizes it to
// 24-hour HH:MM. Clock formats win over day-part words.
func (r *Resolver) ResolveTime(text string) (string, bool) {
	lower := strings.ToLower(text)

	if m := clockAmPmRe.FindStringSubmatch(lower); m != nil {
		hour := atoiSafe(m[1])
		minute := 0
		if m[2] != "" {
			minute = atoiSafe(m[2])
		}
		if hour >= 1 && hour <= 12 && minute <= 59 {
			if strings.HasPrefix(m[3], "p") && hour != 12 {
				hour += 12
			}
			if strings.HasPrefix(m[3], "a") && hour == 12 {
				hour = 0
			}
			return fmt.Sprintf("%02d:%02d", hour, minute), true
		}
	}

	if m := clock24Re.FindStringSubmatch(lower); m != nil {
		return fmt.Sprintf("%02d:%02d", atoiSafe(m[1]), atoiSafe(m[2])), true
	}

	for _, part := range dayParts {
		if strings.Contains(lower, part.word) {
			return part.clock, true
		}
	}

	return "", false
}
