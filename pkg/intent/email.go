package intent

import (
	"regexp"
	"strings"

	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/resolve"
	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/store"
)

var (
	recipientClauseRe = regexp.MustCompile(`(?i)\b(?:e-?mail|mail|send|write|draft)\s+(?:an?\s+(?:\w+\s+)?(?:e-?mail|mail|message|note)\s+)?(?:to\s+)?(.+?)(?:\s+(?:about|regarding|saying|telling|that)\b|[:.?!]|$)`)
	subjectRe         = regexp.MustCompile(`(?i)\b(?:about|regarding)\s+(.+?)(?:\s+(?:saying|telling|that)\b|[:.?!]|$)`)
	messageVerbRe     = regexp.MustCompile(`(?i)\b(?:saying|telling\s+(?:them|him|her)|that says)\s+(.+)$`)
)

func (e *Extractor) extractEmail(goal *store.Goal) {
	goal.Recipients = e.emailRecipients(goal.RawQuery)
	goal.AskRecipients = len(goal.Recipients) == 0
	goal.Subject = emailSubject(goal.RawQuery)
	goal.Message = emailMessage(goal.RawQuery)

	if date, ok := e.resolver.ResolveDate(goal.RawQuery); ok {
		goal.Date = date
	}
}

// emailRecipients collects names and addresses from the to-clause. The
// returned values are raw; resolution to deliverable addresses happens
// at send time so unknown names can still be asked about.
func (e *Extractor) emailRecipients(query string) []string {
	var raw []string
	if m := recipientClauseRe.FindStringSubmatch(query); m != nil {
		clause := strings.TrimSpace(m[1])
		// A clause opening with a subject marker means the to-part was
		// absent and the lazy capture ran past it.
		lower := strings.ToLower(clause)
		if strings.HasPrefix(lower, "about") || strings.HasPrefix(lower, "regarding") {
			clause = ""
		}
		clause = strings.ReplaceAll(clause, " and ", ",")
		clause = strings.ReplaceAll(clause, " & ", ",")
		for _, piece := range strings.Split(clause, ",") {
			if piece = strings.TrimSpace(piece); piece != "" {
				raw = append(raw, piece)
			}
		}
	}

	names, emails, _ := resolve.FilterCandidates(raw)
	recipients := append(names, emails...)

	// Fall back to directory references anywhere in the query.
	if len(recipients) == 0 {
		result := e.resolver.ResolvePeople(query)
		for _, p := range result.People {
			recipients = append(recipients, p.Name)
		}
	}
	return recipients
}

func emailSubject(query string) string {
	if m := subjectRe.FindStringSubmatch(query); m != nil {
		return titleCase(strings.TrimSpace(m[1]))
	}
	return ""
}

// emailMessage never returns empty: colon body, then a saying-clause,
// then the query itself.
func emailMessage(query string) string {
	if idx := strings.Index(query, ":"); idx >= 0 && idx < len(query)-1 {
		if body := strings.TrimSpace(query[idx+1:]); body != "" {
			return body
		}
	}
	if m := messageVerbRe.FindStringSubmatch(query); m != nil {
		if body := strings.TrimSpace(m[1]); body != "" {
			return body
		}
	}
	return strings.TrimSpace(query)
}
