package resolve

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// IsEmail reports whether s is a syntactically valid email address.
func IsEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// Words that show up in people clauses but never name a person.
var candidateStopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "with": {},
	"for": {}, "to": {}, "at": {}, "on": {}, "in": {}, "of": {},
	"my": {}, "our": {}, "your": {}, "his": {}, "her": {}, "their": {},
	"i": {}, "me": {}, "we": {}, "us": {}, "you": {}, "he": {},
	"she": {}, "they": {}, "them": {}, "him": {},
	"team": {}, "meeting": {}, "dinner": {}, "lunch": {}, "everyone": {},
	"everybody": {}, "all": {}, "please": {}, "about": {},
	"people": {}, "persons": {}, "guests": {}, "hours": {}, "hour": {},
	"minutes": {},
	"schedule": {}, "book": {}, "reserve": {}, "setup": {}, "set": {},
	"send": {}, "email": {}, "mail": {}, "write": {}, "draft": {},
	"check": {}, "find": {}, "plan": {}, "arrange": {}, "organize": {},
	"invite": {}, "remind": {},
	"monday": {}, "tuesday": {}, "wednesday": {}, "thursday": {},
	"friday": {}, "saturday": {}, "sunday": {},
	"january": {}, "february": {}, "march": {}, "april": {}, "may": {},
	"june": {}, "july": {}, "august": {}, "september": {}, "october": {},
	"november": {}, "december": {},
	"today": {}, "tomorrow": {}, "yesterday": {}, "next": {}, "this": {},
	"week": {}, "morning": {}, "afternoon": {}, "evening": {}, "night": {},
	"tonight": {},
}

// FilterCandidates splits raw name candidates into directory lookups and
// literal email addresses. Tokens that cannot name a person are dropped;
// ones that look like typos of something else come back as warnings.
func FilterCandidates(candidates []string) (names []string, emails []string, warnings []string) {
	seen := make(map[string]struct{})
	for _, raw := range candidates {
		token := strings.Trim(strings.TrimSpace(raw), ".,;:!?")
		if token == "" {
			continue
		}
		if IsEmail(token) {
			emails = append(emails, strings.ToLower(token))
			continue
		}
		lower := strings.ToLower(token)
		allStop := true
		for _, word := range strings.Fields(lower) {
			if _, stop := candidateStopwords[word]; stop {
				continue
			}
			// Bare numbers ("6" in "for 6 people") are counts, not names.
			if isAllDigits(word) {
				continue
			}
			allStop = false
			break
		}
		if allStop {
			continue
		}
		if strings.ContainsAny(token, "0123456789@") {
			warnings = append(warnings, fmt.Sprintf("ignored %q: not a name or email", token))
			continue
		}
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		names = append(names, token)
	}
	return names, emails, warnings
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
