package resolve

import (
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/store"
)

// Directory is the read side of the employee roster.
type Directory interface {
	People() []store.Person
}

// Resolver maps free-text references to directory people, dates and
// times. The clock is injectable so relative dates stay testable.
type Resolver struct {
	dir Directory
	now func() time.Time
}

func New(dir Directory) *Resolver {
	return &Resolver{dir: dir, now: time.Now}
}

func NewWithClock(dir Directory, now func() time.Time) *Resolver {
	return &Resolver{dir: dir, now: now}
}

// PeopleResult never hides a failed lookup: zero matches with real name
// candidates sets AskUser so the caller asks instead of guessing.
type PeopleResult struct {
	People   []store.Person
	AskUser  bool
	Warnings []string
}

var everyoneKeywords = []string{
	"everyone", "everybody", "all employees", "all team", "entire team", "whole team",
}

const (
	fuzzyThreshold      = 80
	fuzzyThresholdShort = 60 // tokens of two characters or fewer
)

var (
	withClauseRe = regexp.MustCompile(`(?i)\b(?:with|including|invite|between|for)\s+(.+?)(?:\s+(?:on|at|in|from|about|regarding|with|for|between|including|tomorrow|today|tonight|next|this)\b|[.?!]|$)`)
	emailTokenRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
)

// ResolvePeople scans text for references to directory people.
// Three passes: full-name containment (longest name wins on overlap),
// exact first-name match on extracted candidates, then fuzzy
// token-sort matching for misspellings.
func (r *Resolver) ResolvePeople(text string) PeopleResult {
	lower := strings.ToLower(text)

	for _, kw := range everyoneKeywords {
		if strings.Contains(lower, kw) {
			return PeopleResult{People: r.dir.People()}
		}
	}

	people := make([]store.Person, len(r.dir.People()))
	copy(people, r.dir.People())
	sort.SliceStable(people, func(i, j int) bool {
		return len(people[i].Name) > len(people[j].Name)
	})

	var matched []store.Person
	seen := make(map[string]struct{})
	type span struct{ start, end int }
	var claimed []span

	add := func(p store.Person) {
		key := strings.ToLower(p.Email)
		if key == "" {
			key = strings.ToLower(p.Name)
		}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		matched = append(matched, p)
	}

	// Pass 1: whole-name containment. A shorter name inside an already
	// claimed span ("Sam" inside "Samantha Lee") is not a match.
	for _, p := range people {
		name := strings.ToLower(strings.TrimSpace(p.Name))
		if name == "" {
			continue
		}
		loc := wordIndex(lower, name)
		if loc < 0 {
			continue
		}
		sp := span{loc, loc + len(name)}
		inside := false
		for _, c := range claimed {
			if sp.start >= c.start && sp.end <= c.end {
				inside = true
				break
			}
		}
		if inside {
			continue
		}
		claimed = append(claimed, sp)
		add(p)
	}

	names, emails, warnings := FilterCandidates(r.extractCandidates(text))

	for _, email := range emails {
		if p, ok := r.personByEmail(email); ok {
			add(p)
		} else {
			add(store.Person{Name: email, Email: email})
		}
	}

	// Passes 2 and 3 on the remaining candidates.
	for _, cand := range names {
		if p, ok := r.MatchName(cand); ok {
			add(p)
		}
	}

	askUser := len(matched) == 0 && (len(names) > 0 || len(emails) > 0)
	return PeopleResult{People: matched, AskUser: askUser, Warnings: warnings}
}

// MatchName resolves one candidate name: exact full name, exact first
// name, then fuzzy token-sort ratio against both.
func (r *Resolver) MatchName(candidate string) (store.Person, bool) {
	cand := strings.ToLower(strings.TrimSpace(candidate))
	if cand == "" {
		return store.Person{}, false
	}

	for _, p := range r.dir.People() {
		if strings.ToLower(p.Name) == cand {
			return p, true
		}
	}
	for _, p := range r.dir.People() {
		if firstName(p.Name) == cand {
			return p, true
		}
	}

	threshold := fuzzyThreshold
	if len(cand) <= 2 {
		threshold = fuzzyThresholdShort
	}
	best := store.Person{}
	bestScore := 0
	for _, p := range r.dir.People() {
		score := fuzzy.TokenSortRatio(cand, strings.ToLower(p.Name))
		if s := fuzzy.TokenSortRatio(cand, firstName(p.Name)); s > score {
			score = s
		}
		if score > bestScore {
			bestScore = score
			best = p
		}
	}
	if bestScore >= threshold {
		return best, true
	}
	return store.Person{}, false
}

// EmailFor turns a name or address into a deliverable address. The
// directory wins; a verbatim address is only trusted when nobody in the
// directory claims it and it parses as an email.
func (r *Resolver) EmailFor(nameOrEmail string) (string, bool) {
	trimmed := strings.TrimSpace(nameOrEmail)
	if p, ok := r.personByEmail(strings.ToLower(trimmed)); ok {
		return p.Email, true
	}
	if p, ok := r.MatchName(trimmed); ok && p.Email != "" {
		return p.Email, true
	}
	if IsEmail(trimmed) {
		return strings.ToLower(trimmed), true
	}
	return "", false
}

func (r *Resolver) personByEmail(email string) (store.Person, bool) {
	for _, p := range r.dir.People() {
		if strings.EqualFold(p.Email, email) {
			return p, true
		}
	}
	return store.Person{}, false
}

// extractCandidates pulls name-like tokens out of people clauses
// (with/for/including phrasing), capitalized word runs anywhere in the
// text, and bare email addresses. The scan resumes right after each
// clause so "for 2 hours with Rahul" still yields the with-clause.
func (r *Resolver) extractCandidates(text string) []string {
	var candidates []string
	rest := text
	for {
		loc := withClauseRe.FindStringSubmatchIndex(rest)
		if loc == nil {
			break
		}
		clause := rest[loc[2]:loc[3]]
		clause = strings.ReplaceAll(clause, " and ", ",")
		clause = strings.ReplaceAll(clause, " & ", ",")
		for _, piece := range strings.Split(clause, ",") {
			if piece = strings.TrimSpace(piece); piece != "" {
				candidates = append(candidates, piece)
			}
		}
		rest = rest[loc[3]:]
	}
	candidates = append(candidates, capitalizedRuns(text)...)
	candidates = append(candidates, emailTokenRe.FindAllString(text, -1)...)
	return candidates
}

// capitalizedRuns collects runs of capitalized words, the way names are
// written mid-sentence. Runs opened by a place preposition are skipped:
// people arrive via with/for/and phrasing, places via in/at/near.
func capitalizedRuns(text string) []string {
	var runs []string
	var run []string
	skipping := false
	prev := ""
	flush := func() {
		if len(run) > 0 {
			runs = append(runs, strings.Join(run, " "))
			run = nil
		}
	}
	for _, w := range strings.Fields(text) {
		word := strings.Trim(w, `.,;:!?()"'`)
		letters := []rune(word)
		if len(letters) > 2 && unicode.IsUpper(letters[0]) {
			if len(run) == 0 && !skipping {
				switch prev {
				case "in", "at", "near", "around":
					skipping = true
				}
			}
			if !skipping {
				run = append(run, word)
			}
			prev = strings.ToLower(word)
			continue
		}
		flush()
		skipping = false
		prev = strings.ToLower(word)
	}
	flush()
	return runs
}

func wordIndex(haystack, needle string) int {
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(needle) + `\b`)
	if err != nil {
		return -1
	}
	loc := re.FindStringIndex(haystack)
	if loc == nil {
		return -1
	}
	return loc[0]
}

func firstName(full string) string {
	fields := strings.Fields(strings.ToLower(full))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
