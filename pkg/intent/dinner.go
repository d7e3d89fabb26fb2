package intent

import (
	"regexp"
	"strings"

	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/store"
)

var (
	dinnerLocationRe = regexp.MustCompile(`(?i)\b(?:in|at|near|around)\s+(?:the\s+)?([A-Za-z][A-Za-z\s-]{2,40}?)(?:\s+(?:on|at|for|with|tomorrow|today|tonight|next|this)\b|[.?!,]|$)`)
	teamSizeRe       = regexp.MustCompile(`(?i)\b(?:for|party of|table for)\s+(\d+)\s*(?:people|persons|guests)\b`)
	teamSizeOfUsRe   = regexp.MustCompile(`(?i)\b(\d+)\s+of\s+us\b`)
)

// Cuisines are checked in two passes: first each cuisine's own name,
// then the generic dish keywords in declared order. That way
// "Hyderabadi biryani" lands on Hyderabadi while a bare "biryani"
// falls back to Indian.
var cuisineTable = []struct {
	name     string
	keywords []string
}{
	{"Hyderabadi", []string{"hyderabadi"}},
	{"Indian", []string{"indian", "biryani", "curry", "tandoori", "dosa"}},
	{"South Indian", []string{"south indian", "idli", "uttapam"}},
	{"Mughlai", []string{"mughlai", "kebab"}},
	{"Italian", []string{"italian", "pizza", "pasta"}},
	{"Chinese", []string{"chinese", "noodles", "dim sum", "dumpling"}},
	{"Japanese", []string{"japanese", "sushi", "ramen"}},
	{"Mexican", []string{"mexican", "taco", "burrito"}},
	{"Thai", []string{"thai"}},
	{"Continental", []string{"continental"}},
}

func (e *Extractor) extractDinner(goal *store.Goal) {
	goal.Location = e.dinnerLocation(goal.RawQuery)
	goal.Cuisine = matchCuisine(goal.RawQuery)

	if date, ok := e.resolver.ResolveDate(goal.RawQuery); ok {
		goal.Date = date
	}
	if t, ok := e.resolver.ResolveTime(goal.RawQuery); ok {
		goal.Time = t
	}

	goal.TeamSize = e.teamSize(goal.RawQuery)
	e.attachPeople(goal)
}

func (e *Extractor) dinnerLocation(query string) string {
	for _, m := range dinnerLocationRe.FindAllStringSubmatch(query, -1) {
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
		if cuisineWord(cand) {
			continue
		}
		return titleCase(cand)
	}
	return ""
}

func matchCuisine(query string) string {
	lower := strings.ToLower(query)
	for _, c := range cuisineTable {
		if strings.Contains(lower, strings.ToLower(c.name)) {
			return c.name
		}
	}
	for _, c := range cuisineTable {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				return c.name
			}
		}
	}
	return ""
}

func cuisineWord(s string) bool {
	lower := strings.ToLower(s)
	for _, c := range cuisineTable {
		if strings.Contains(lower, strings.ToLower(c.name)) {
			return true
		}
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}

func (e *Extractor) teamSize(query string) int {
	size := 0
	if m := teamSizeRe.FindStringSubmatch(query); m != nil {
		size = atoi(m[1])
	} else if m := teamSizeOfUsRe.FindStringSubmatch(query); m != nil {
		size = atoi(m[1])
	}
	if size <= 0 {
		return 0
	}
	if size > e.opts.TeamSizeLimit {
		return e.opts.TeamSizeLimit
	}
	return size
}
