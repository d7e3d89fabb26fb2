package intent

import (
	"regexp"
	"strings"

	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/store"
)

var (
	titleAboutRe = regexp.MustCompile(`(?i)\b(?:meeting|call|sync|discussion)\s+(?:about|on|for|regarding)\s+(.+?)(?:\s+(?:with|on|at|from|tomorrow|today|next|this)\b|[.?!]|$)`)

	durationHoursRe   = regexp.MustCompile(`(?i)\b(\d+)\s*(?:hours?|hrs?)(?:\s*(?:and\s+)?(\d+)\s*(?:minutes?|mins?))?\b`)
	durationMinutesRe = regexp.MustCompile(`(?i)\b(\d+)\s*(?:minutes?|mins?)\b`)

	meetingLocationRe = regexp.MustCompile(`(?i)\b(?:in|at)\s+(?:the\s+)?([A-Za-z][A-Za-z0-9\s-]{2,40}?)(?:\s+(?:on|at|with|from|tomorrow|today|next|this)\b|[.?!,]|$)`)
)

// Common meeting kinds recognized even without an "about" phrase.
var meetingKinds = []string{
	"standup", "stand-up", "retrospective", "planning", "review",
	"one-on-one", "interview", "demo", "kickoff", "all-hands",
}

func (e *Extractor) extractMeeting(goal *store.Goal) {
	goal.Title = e.meetingTitle(goal.RawQuery)

	if date, ok := e.resolver.ResolveDate(goal.RawQuery); ok {
		goal.Date = date
	}
	if t, ok := e.resolver.ResolveTime(goal.RawQuery); ok {
		goal.Time = t
	}

	goal.Duration = e.meetingDuration(goal.RawQuery)
	goal.Location = e.physicalLocation(goal.RawQuery)
	e.attachPeople(goal)
}

func (e *Extractor) meetingTitle(query string) string {
	if m := titleAboutRe.FindStringSubmatch(query); m != nil {
		cand := strings.TrimSpace(m[1])
		_, isTime := e.resolver.ResolveTime(cand)
		_, isDate := e.resolver.ResolveDate(cand)
		if !isTime && !isDate && !durationHoursRe.MatchString(cand) && !durationMinutesRe.MatchString(cand) {
			return titleCase(cand)
		}
	}
	lower := strings.ToLower(query)
	for _, kind := range meetingKinds {
		if strings.Contains(lower, kind) {
			return titleCase(kind) + " Meeting"
		}
	}
	return "Team Meeting"
}

func (e *Extractor) meetingDuration(query string) int {
	if m := durationHoursRe.FindStringSubmatch(query); m != nil {
		minutes := atoi(m[1]) * 60
		if m[2] != "" {
			minutes += atoi(m[2])
		}
		return minutes
	}
	if m := durationMinutesRe.FindStringSubmatch(query); m != nil {
		return atoi(m[1])
	}
	return e.opts.DefaultDurationMinutes
}

// physicalLocation pulls an "in X" / "at X" phrase, rejecting spans
// that are really times or dates ("at noon", "in the morning").
func (e *Extractor) physicalLocation(query string) string {
	for _, m := range meetingLocationRe.FindAllStringSubmatch(query, -1) {
		cand := strings.TrimSpace(m[1])
		if cand == "" {
			continue
		}
		if _, isTime := e.resolver.ResolveTime(cand); isTime {
			continue
		}
		if _, isDate := e.resolver.ResolveDate(cand); isDate {
			continue
		}
		return titleCase(cand)
	}
	return ""
}

func titleCase(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	for i, f := range fields {
		fields[i] = strings.ToUpper(f[:1]) + f[1:]
	}
	return strings.Join(fields, " ")
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}
