package intent

import (
	"regexp"

	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/resolve"
	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/store"
)

// Options carry the tunables extraction needs. Zero values fall back to
// sane defaults so tests can pass an empty struct.
type Options struct {
	DefaultDurationMinutes int
	TeamSizeLimit          int
}

type Extractor struct {
	resolver *resolve.Resolver
	opts     Options
}

func NewExtractor(resolver *resolve.Resolver, opts Options) *Extractor {
	if opts.DefaultDurationMinutes <= 0 {
		opts.DefaultDurationMinutes = 60
	}
	if opts.TeamSizeLimit <= 0 {
		opts.TeamSizeLimit = 20
	}
	return &Extractor{resolver: resolver, opts: opts}
}

// Ordered, first match wins. Specific intents sit above generic ones:
// "email the team about the meeting" is an email task, "when can we
// meet" is an availability question, and "schedule a team dinner" is a
// dinner booking even though all three mention meeting words.
var intentPatterns = []struct {
	intent store.Intent
	re     *regexp.Regexp
}{
	{store.IntentEmail, regexp.MustCompile(`(?i)\b(send|write|compose|draft)\b.*\b(email|mail|message)\b`)},
	{store.IntentEmail, regexp.MustCompile(`(?i)\be-?mail\b`)},
	{store.IntentAvailability, regexp.MustCompile(`(?i)\b(availability|available|free)\b`)},
	{store.IntentAvailability, regexp.MustCompile(`(?i)\bwhen\b.*\b(meet|meeting|schedule)\b`)},
	{store.IntentAvailability, regexp.MustCompile(`(?i)\bcheck\b.*\b(schedule|calendar)\b`)},
	{store.IntentDinner, regexp.MustCompile(`(?i)\b(dinner|restaurant|lunch|cuisine|biryani|food)\b`)},
	{store.IntentDinner, regexp.MustCompile(`(?i)\b(book|reserve|find)\b.*\btable\b`)},
	{store.IntentMeeting, regexp.MustCompile(`(?i)\b(meeting|meet|schedule|appointment|call|sync|discussion|standup|catch-?up)\b`)},
}

// Classify maps a query to its intent. Unmatched queries come back as
// IntentUnknown, never as an error.
func (e *Extractor) Classify(query string) store.Intent {
	for _, p := range intentPatterns {
		if p.re.MatchString(query) {
			return p.intent
		}
	}
	return store.IntentUnknown
}

// Extract classifies the query and pulls out every field the intent
// needs. Unrecognized fields stay at their zero value; extraction
// itself never fails.
func (e *Extractor) Extract(query string) *store.Goal {
	goal := &store.Goal{Intent: e.Classify(query), RawQuery: query}
	switch goal.Intent {
	case store.IntentMeeting:
		e.extractMeeting(goal)
	case store.IntentDinner:
		e.extractDinner(goal)
	case store.IntentAvailability:
		e.extractAvailability(goal)
	case store.IntentEmail:
		e.extractEmail(goal)
	}
	return goal
}

func (e *Extractor) extractAvailability(goal *store.Goal) {
	if date, ok := e.resolver.ResolveDate(goal.RawQuery); ok {
		goal.Date = date
	}
	if t, ok := e.resolver.ResolveTime(goal.RawQuery); ok {
		goal.Time = t
	}
	e.attachPeople(goal)
}

func (e *Extractor) attachPeople(goal *store.Goal) {
	result := e.resolver.ResolvePeople(goal.RawQuery)
	goal.People = result.People
	goal.AskPeople = result.AskUser
	goal.Warnings = append(goal.Warnings, result.Warnings...)
}
