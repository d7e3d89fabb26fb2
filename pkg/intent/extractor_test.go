package intent

import (
	"testing"
	"time"

	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/resolve"
	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/store"
)

type fakeDirectory struct {
	people []store.Person
}

func (f *fakeDirectory) People() []store.Person { return f.people }

// 2025-06-02 is a Monday.
func testExtractor() *Extractor {
	dir := &fakeDirectory{people: []store.Person{
		{Name: "Rahul Sharma", Email: "rahul.sharma@example.com"},
		{Name: "Priya Patel", Email: "priya.patel@example.com"},
		{Name: "Arjun Mehta", Email: "arjun.mehta@example.com"},
	}}
	r := resolve.NewWithClock(dir, func() time.Time {
		return time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	})
	return NewExtractor(r, Options{})
}

func TestClassify(t *testing.T) {
	e := testExtractor()

	tests := []struct {
		query string
		want  store.Intent
	}{
		{"Schedule a meeting with Rahul tomorrow", store.IntentMeeting},
		{"Set up a sync about the release", store.IntentMeeting},
		{"Send an email to the team about the meeting", store.IntentEmail},
		{"Email Priya the launch notes", store.IntentEmail},
		{"When can we meet next week?", store.IntentAvailability},
		{"Is Priya available tomorrow afternoon?", store.IntentAvailability},
		{"Check Rahul's calendar for friday", store.IntentAvailability},
		{"Book a team dinner in Hyderabad", store.IntentDinner},
		{"Reserve a table for 8 people tonight", store.IntentDinner},
		{"what is the weather like", store.IntentUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := e.Classify(tt.query); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestExtractMeeting(t *testing.T) {
	e := testExtractor()
	goal := e.Extract("Schedule a 2 hour meeting about quarterly planning with Rahul Sharma tomorrow at 3pm in Conference Room B")

	if goal.Intent != store.IntentMeeting {
		t.Fatalf("intent = %v", goal.Intent)
	}
	if goal.Title != "Quarterly Planning" {
		t.Errorf("title = %q", goal.Title)
	}
	if goal.Date != "2025-06-03" {
		t.Errorf("date = %q", goal.Date)
	}
	if goal.Time != "15:00" {
		t.Errorf("time = %q", goal.Time)
	}
	if goal.Duration != 120 {
		t.Errorf("duration = %d", goal.Duration)
	}
	if goal.Location != "Conference Room B" {
		t.Errorf("location = %q", goal.Location)
	}
	if len(goal.People) != 1 || goal.People[0].Email != "rahul.sharma@example.com" {
		t.Errorf("people = %+v", goal.People)
	}
}

func TestExtractMeetingDefaults(t *testing.T) {
	e := testExtractor()
	goal := e.Extract("schedule a meeting tomorrow")

	if goal.Title != "Team Meeting" {
		t.Errorf("title = %q, want default", goal.Title)
	}
	if goal.Duration != 60 {
		t.Errorf("duration = %d, want default 60", goal.Duration)
	}
	if goal.Location != "" {
		t.Errorf("location = %q, want empty", goal.Location)
	}
	if goal.AskPeople {
		t.Error("AskPeople should not be set when nobody was referenced")
	}
}

func TestExtractDinner(t *testing.T) {
	e := testExtractor()
	goal := e.Extract("Book a team dinner for 6 people in Hyderabad tomorrow night, we want Hyderabadi biryani")

	if goal.Intent != store.IntentDinner {
		t.Fatalf("intent = %v", goal.Intent)
	}
	if goal.Location != "Hyderabad" {
		t.Errorf("location = %q", goal.Location)
	}
	if goal.Cuisine != "Hyderabadi" {
		t.Errorf("cuisine = %q, want Hyderabadi", goal.Cuisine)
	}
	if goal.TeamSize != 6 {
		t.Errorf("team size = %d", goal.TeamSize)
	}
	if goal.Date != "2025-06-03" {
		t.Errorf("date = %q", goal.Date)
	}
	if goal.Time != "20:00" {
		t.Errorf("time = %q", goal.Time)
	}
}

func TestCuisineFallsBackToGenericKeyword(t *testing.T) {
	e := testExtractor()
	goal := e.Extract("find a biryani dinner in Mumbai")

	if goal.Cuisine != "Indian" {
		t.Errorf("cuisine = %q, want Indian for bare biryani", goal.Cuisine)
	}
	if goal.Location != "Mumbai" {
		t.Errorf("location = %q", goal.Location)
	}
}

func TestExtractEmail(t *testing.T) {
	e := testExtractor()
	goal := e.Extract("Send an email to Priya and Rahul about the offsite: please confirm attendance by friday")

	if goal.Intent != store.IntentEmail {
		t.Fatalf("intent = %v", goal.Intent)
	}
	if len(goal.Recipients) != 2 || goal.Recipients[0] != "Priya" || goal.Recipients[1] != "Rahul" {
		t.Errorf("recipients = %v", goal.Recipients)
	}
	if goal.Subject != "The Offsite" {
		t.Errorf("subject = %q", goal.Subject)
	}
	if goal.Message != "please confirm attendance by friday" {
		t.Errorf("message = %q", goal.Message)
	}
	if goal.AskRecipients {
		t.Error("AskRecipients should be false when recipients were found")
	}
}

func TestExtractEmailDescriptorClause(t *testing.T) {
	e := testExtractor()
	goal := e.Extract("Send a hi email to Bhavya")

	if len(goal.Recipients) != 1 || goal.Recipients[0] != "Bhavya" {
		t.Errorf("recipients = %v, want [Bhavya]", goal.Recipients)
	}
}

func TestExtractEmailWithoutRecipient(t *testing.T) {
	e := testExtractor()
	goal := e.Extract("draft an email about the maintenance window")

	if !goal.AskRecipients {
		t.Error("AskRecipients should be set when nobody was named")
	}
	if goal.Message == "" {
		t.Error("message must never be empty")
	}
}

func TestValidateGoal(t *testing.T) {
	tests := []struct {
		name         string
		goal         *store.Goal
		wantErrs     int
		wantWarnings int
	}{
		{
			name:     "meeting without date",
			goal:     &store.Goal{Intent: store.IntentMeeting, People: []store.Person{{Name: "Rahul"}}},
			wantErrs: 1,
		},
		{
			name:         "meeting without attendees warns",
			goal:         &store.Goal{Intent: store.IntentMeeting, Date: "2025-06-03", Time: "10:00"},
			wantErrs:     0,
			wantWarnings: 1,
		},
		{
			name:     "availability missing everything",
			goal:     &store.Goal{Intent: store.IntentAvailability},
			wantErrs: 2,
		},
		{
			name:     "dinner without location",
			goal:     &store.Goal{Intent: store.IntentDinner},
			wantErrs: 1,
		},
		{
			name:     "unknown intent",
			goal:     &store.Goal{Intent: store.IntentUnknown, RawQuery: "??"},
			wantErrs: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, warnings := ValidateGoal(tt.goal)
			if len(errs) != tt.wantErrs {
				t.Errorf("errs = %v, want %d", errs, tt.wantErrs)
			}
			if len(warnings) != tt.wantWarnings {
				t.Errorf("warnings = %v, want %d", warnings, tt.wantWarnings)
			}
		})
	}
}
