package resolve

import (
	"testing"

	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/store"
)

type fakeDirectory struct {
	people []store.Person
}

func (f *fakeDirectory) People() []store.Person { return f.people }

func testDirectory() *fakeDirectory {
	return &fakeDirectory{people: []store.Person{
		{Name: "Rahul Sharma", Email: "rahul.sharma@example.com"},
		{Name: "Priya Patel", Email: "priya.patel@example.com"},
		{Name: "Sam Wilson", Email: "sam.wilson@example.com"},
		{Name: "Samantha Lee", Email: "samantha.lee@example.com"},
		{Name: "Arjun Mehta", Email: "arjun.mehta@example.com"},
	}}
}

func TestResolvePeople(t *testing.T) {
	r := NewWithClock(testDirectory(), fixedClock)

	tests := []struct {
		name       string
		input      string
		wantEmails []string
		askUser    bool
	}{
		{
			name:       "full name plus first name",
			input:      "Schedule a meeting with Rahul Sharma and Priya tomorrow",
			wantEmails: []string{"rahul.sharma@example.com", "priya.patel@example.com"},
		},
		{
			name:  "everyone keyword returns whole directory",
			input: "book a dinner for everyone on friday",
			wantEmails: []string{
				"rahul.sharma@example.com", "priya.patel@example.com",
				"sam.wilson@example.com", "samantha.lee@example.com",
				"arjun.mehta@example.com",
			},
		},
		{
			name:       "for phrasing resolves first names",
			input:      "Setup a meeting for Rahul and Priya on August 10, 2025",
			wantEmails: []string{"rahul.sharma@example.com", "priya.patel@example.com"},
		},
		{
			name:       "fuzzy match survives a typo",
			input:      "set up a call with Pria Patel",
			wantEmails: []string{"priya.patel@example.com"},
		},
		{
			name:       "longer name is not shadowed by a prefix",
			input:      "meet with Samantha on monday",
			wantEmails: []string{"samantha.lee@example.com"},
		},
		{
			name:       "short first name stays exact",
			input:      "meet with Sam on monday",
			wantEmails: []string{"sam.wilson@example.com"},
		},
		{
			name:       "literal email is kept verbatim",
			input:      "email contractor@partner.io the update",
			wantEmails: []string{"contractor@partner.io"},
		},
		{
			name:    "unknown name asks the user",
			input:   "schedule a meeting with Bob",
			askUser: true,
		},
		{
			name:  "no people referenced",
			input: "schedule a meeting tomorrow at 3pm",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.ResolvePeople(tt.input)
			if got.AskUser != tt.askUser {
				t.Fatalf("AskUser = %v, want %v", got.AskUser, tt.askUser)
			}
			if len(got.People) != len(tt.wantEmails) {
				t.Fatalf("got %d people, want %d: %+v", len(got.People), len(tt.wantEmails), got.People)
			}
			found := make(map[string]bool)
			for _, p := range got.People {
				found[p.Email] = true
			}
			for _, email := range tt.wantEmails {
				if !found[email] {
					t.Errorf("missing %s in %+v", email, got.People)
				}
			}
		})
	}
}

func TestEmailFor(t *testing.T) {
	r := NewWithClock(testDirectory(), fixedClock)

	tests := []struct {
		name  string
		input string
		want  string
		found bool
	}{
		{"first name", "Rahul", "rahul.sharma@example.com", true},
		{"full name", "Priya Patel", "priya.patel@example.com", true},
		{"directory email key", "sam.wilson@example.com", "sam.wilson@example.com", true},
		{"outside email passes through", "vendor@outside.org", "vendor@outside.org", true},
		{"unknown name fails", "nobody", "", false},
		{"not an email either", "hello world", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := r.EmailFor(tt.input)
			if found != tt.found || got != tt.want {
				t.Errorf("EmailFor(%q) = (%q, %v), want (%q, %v)", tt.input, got, found, tt.want, tt.found)
			}
		})
	}
}

func TestFilterCandidates(t *testing.T) {
	names, emails, warnings := FilterCandidates([]string{
		"Priya", "tomorrow", "the", "dev@team.io", "team5", "Priya", "Monday",
	})

	if len(names) != 1 || names[0] != "Priya" {
		t.Errorf("names = %v, want [Priya]", names)
	}
	if len(emails) != 1 || emails[0] != "dev@team.io" {
		t.Errorf("emails = %v, want [dev@team.io]", emails)
	}
	if len(warnings) != 1 {
		t.Errorf("warnings = %v, want one entry for team5", warnings)
	}
}
