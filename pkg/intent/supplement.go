package intent

import (
	"strings"

	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/resolve"
	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/store"
)

// Supplement fills still-missing fields of a goal from a follow-up
// message. Bare answers like "Priya and Rahul" or "Hyderabad" carry no
// clause markers, so each missing field gets its own targeted read of
// the text. Fields already present are never overwritten.
func (e *Extractor) Supplement(goal *store.Goal, text string) {
	if goal.Date == "" {
		if date, ok := e.resolver.ResolveDate(text); ok {
			goal.Date = date
		}
	}
	if goal.Time == "" {
		if t, ok := e.resolver.ResolveTime(text); ok {
			goal.Time = t
		}
	}

	switch goal.Intent {
	case store.IntentMeeting, store.IntentAvailability, store.IntentDinner:
		if len(goal.People) == 0 {
			e.supplementPeople(goal, text)
		}
	case store.IntentEmail:
		if len(goal.Recipients) == 0 {
			names, emails, warnings := resolve.FilterCandidates(splitList(text))
			goal.Recipients = append(names, emails...)
			goal.AskRecipients = len(goal.Recipients) == 0
			goal.Warnings = append(goal.Warnings, warnings...)
		}
	}

	if goal.Intent == store.IntentDinner && goal.Location == "" {
		goal.Location = e.dinnerLocation(text)
		if goal.Location == "" {
			goal.Location = e.bareLocation(text)
		}
	}
	if goal.Intent == store.IntentMeeting && goal.Location == "" {
		goal.Location = e.physicalLocation(text)
	}
}

func (e *Extractor) supplementPeople(goal *store.Goal, text string) {
	// Try the usual clause scan first, then treat the whole reply as a
	// name list.
	result := e.resolver.ResolvePeople(text)
	if len(result.People) == 0 {
		names, emails, _ := resolve.FilterCandidates(splitList(text))
		for _, name := range names {
			if p, ok := e.resolver.MatchName(name); ok {
				result.People = append(result.People, p)
			}
		}
		for _, email := range emails {
			result.People = append(result.People, store.Person{Name: email, Email: email})
		}
	}
	if len(result.People) > 0 {
		goal.People = result.People
		goal.AskPeople = false
	}
	goal.Warnings = append(goal.Warnings, result.Warnings...)
}

// bareLocation accepts a short reply that is nothing but a place name.
func (e *Extractor) bareLocation(text string) string {
	trimmed := strings.Trim(strings.TrimSpace(text), ".!?")
	if trimmed == "" || len(strings.Fields(trimmed)) > 3 {
		return ""
	}
	if _, isTime := e.resolver.ResolveTime(trimmed); isTime {
		return ""
	}
	if _, isDate := e.resolver.ResolveDate(trimmed); isDate {
		return ""
	}
	if cuisineWord(trimmed) {
		return ""
	}
	return titleCase(trimmed)
}

func splitList(text string) []string {
	cleaned := strings.ReplaceAll(text, " and ", ",")
	cleaned = strings.ReplaceAll(cleaned, " & ", ",")
	var pieces []string
	for _, piece := range strings.Split(cleaned, ",") {
		if piece = strings.TrimSpace(piece); piece != "" {
			pieces = append(pieces, piece)
		}
	}
	return pieces
}
