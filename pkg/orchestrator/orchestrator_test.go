package orchestrator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/confirm"
	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/intent"
	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/resolve"
	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/session"
	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/store"
)

const requester = "alice@example.com"

type fakeDirectory struct{ people []store.Person }

func (f *fakeDirectory) People() []store.Person { return f.people }

type fakeAvailability struct {
	slots      []store.TimeSlot
	conflicts  [][]store.Conflict // one entry per Check call, nil past the end
	checkCalls int
	schedules  []store.Schedule
	err        error
}

func (f *fakeAvailability) FindSlots(ctx context.Context, date string, emails []string, durationMinutes int) ([]store.TimeSlot, error) {
	return f.slots, f.err
}

func (f *fakeAvailability) Check(ctx context.Context, date, start, end string, emails []string) ([]store.Conflict, error) {
	call := f.checkCalls
	f.checkCalls++
	if f.err != nil {
		return nil, f.err
	}
	if call < len(f.conflicts) {
		return f.conflicts[call], nil
	}
	return nil, nil
}

func (f *fakeAvailability) Schedules(ctx context.Context, date string, emails []string) ([]store.Schedule, error) {
	return f.schedules, f.err
}

type fakeCalendar struct {
	events []*store.Event
	err    error
}

func (f *fakeCalendar) CreateEvent(ctx context.Context, event *store.Event) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.events = append(f.events, event)
	return "evt_1", nil
}

type fakeNotifier struct {
	sent          []string
	meetingTo     [][]string
	dinnerInvites int
	failFor       map[string]bool
}

func (f *fakeNotifier) Send(ctx context.Context, to, subject, body string) error {
	if f.failFor[to] {
		return errors.New("smtp refused")
	}
	f.sent = append(f.sent, to)
	return nil
}

func (f *fakeNotifier) SendMeetingInvite(ctx context.Context, to []string, event *store.Event) error {
	f.meetingTo = append(f.meetingTo, to)
	return nil
}

func (f *fakeNotifier) SendDinnerInvite(ctx context.Context, to []string, restaurant *store.Restaurant, date, at, organizer string) error {
	f.dinnerInvites++
	return nil
}

type fakePlaces struct {
	restaurants []store.Restaurant
	err         error
}

func (f *fakePlaces) Search(ctx context.Context, location, cuisine string, limit int) ([]store.Restaurant, error) {
	return f.restaurants, f.err
}

func testSlots() []store.TimeSlot {
	return []store.TimeSlot{
		{Date: "2025-06-03", Start: "09:00", End: "10:00"},
		{Date: "2025-06-03", Start: "10:30", End: "11:30"},
		{Date: "2025-06-03", Start: "14:00", End: "15:00"},
	}
}

func newTestOrchestrator(av *fakeAvailability, cal *fakeCalendar, not *fakeNotifier, places *fakePlaces) *Orchestrator {
	dir := &fakeDirectory{people: []store.Person{
		{Name: "Rahul Sharma", Email: "rahul.sharma@example.com"},
		{Name: "Priya Patel", Email: "priya.patel@example.com"},
	}}
	resolver := resolve.NewWithClock(dir, func() time.Time {
		return time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC) // a Monday
	})
	return New(Deps{
		Resolver:     resolver,
		Extractor:    intent.NewExtractor(resolver, intent.Options{}),
		Sessions:     session.NewManager(),
		Ledger:       confirm.NewLedger(),
		Availability: av,
		Calendar:     cal,
		Notifier:     not,
		Places:       places,
	})
}

func TestMeetingEndToEnd(t *testing.T) {
	av := &fakeAvailability{slots: testSlots()}
	cal := &fakeCalendar{}
	not := &fakeNotifier{}
	o := newTestOrchestrator(av, cal, not, &fakePlaces{})
	ctx := context.Background()

	resp := o.SubmitQuery(ctx, requester, "Schedule a meeting with Rahul Sharma tomorrow")
	require.True(t, resp.Success)
	require.Equal(t, store.ActionSelectTimeSlot, resp.NextAction)
	require.Len(t, resp.Options, 3)

	resp = o.SelectOption(ctx, requester, 2)
	require.True(t, resp.Success)
	require.Equal(t, store.ActionClarify, resp.NextAction)
	require.NotEmpty(t, resp.ConfirmationID)

	resp = o.RespondToConfirmation(ctx, requester, "", "yes")
	require.True(t, resp.Success)
	require.Equal(t, store.ActionComplete, resp.NextAction)

	require.Len(t, cal.events, 1)
	require.Equal(t, "2025-06-03", cal.events[0].Date)
	require.Equal(t, "10:30", cal.events[0].Start)
	require.Contains(t, cal.events[0].Attendees, "rahul.sharma@example.com")
	require.Contains(t, cal.events[0].Attendees, requester)
	require.Len(t, not.meetingTo, 1)
}

func TestMeetingForPhrasing(t *testing.T) {
	av := &fakeAvailability{slots: testSlots()}
	cal := &fakeCalendar{}
	o := newTestOrchestrator(av, cal, &fakeNotifier{}, &fakePlaces{})
	ctx := context.Background()

	resp := o.SubmitQuery(ctx, requester, "Setup a meeting for Rahul and Priya on August 10, 2025")
	require.True(t, resp.Success)
	require.Equal(t, store.ActionSelectTimeSlot, resp.NextAction)
	require.Empty(t, resp.MissingFields)

	resp = o.SelectOption(ctx, requester, 1)
	require.NotEmpty(t, resp.ConfirmationID)

	resp = o.RespondToConfirmation(ctx, requester, "", "yes")
	require.Equal(t, store.ActionComplete, resp.NextAction)
	require.Len(t, cal.events, 1)
	require.Contains(t, cal.events[0].Attendees, "rahul.sharma@example.com")
	require.Contains(t, cal.events[0].Attendees, "priya.patel@example.com")
}

func TestMeetingPreferredTimeSkipsSelection(t *testing.T) {
	av := &fakeAvailability{slots: testSlots()}
	cal := &fakeCalendar{}
	o := newTestOrchestrator(av, cal, &fakeNotifier{}, &fakePlaces{})
	ctx := context.Background()

	resp := o.SubmitQuery(ctx, requester, "Schedule a meeting with Rahul Sharma tomorrow at 3pm")
	require.True(t, resp.Success)
	require.Equal(t, store.ActionClarify, resp.NextAction)
	require.NotEmpty(t, resp.ConfirmationID)

	resp = o.RespondToConfirmation(ctx, requester, resp.ConfirmationID, "sure")
	require.Equal(t, store.ActionComplete, resp.NextAction)
	require.Len(t, cal.events, 1)
	require.Equal(t, "15:00", cal.events[0].Start)
	require.Equal(t, "16:00", cal.events[0].End)
}

func TestMeetingReconfirmCatchesFreshConflict(t *testing.T) {
	conflict := store.Conflict{
		Email: "rahul.sharma@example.com",
		Event: store.Event{Title: "1:1", Start: "15:00", End: "15:30"},
	}
	av := &fakeAvailability{
		slots:     testSlots(),
		conflicts: [][]store.Conflict{nil, {conflict}}, // free at first, taken at write time
	}
	cal := &fakeCalendar{}
	o := newTestOrchestrator(av, cal, &fakeNotifier{}, &fakePlaces{})
	ctx := context.Background()

	resp := o.SubmitQuery(ctx, requester, "Schedule a meeting with Rahul Sharma tomorrow at 3pm")
	require.NotEmpty(t, resp.ConfirmationID)

	resp = o.RespondToConfirmation(ctx, requester, resp.ConfirmationID, "yes")
	require.Equal(t, store.ActionSelectTimeSlot, resp.NextAction)
	require.Len(t, resp.Conflicts, 1)
	require.Empty(t, cal.events, "no event may be created over a conflict")

	// The re-offered slots remain selectable.
	resp = o.SelectOption(ctx, requester, 1)
	require.Equal(t, store.ActionClarify, resp.NextAction)
	require.NotEmpty(t, resp.ConfirmationID)
}

func TestMeetingNoSlots(t *testing.T) {
	av := &fakeAvailability{slots: nil}
	o := newTestOrchestrator(av, &fakeCalendar{}, &fakeNotifier{}, &fakePlaces{})

	resp := o.SubmitQuery(context.Background(), requester, "Schedule a meeting with Rahul Sharma tomorrow")
	require.False(t, resp.Success)
	require.Equal(t, store.ActionSuggestAlternatives, resp.NextAction)
	require.Empty(t, resp.Options)
}

func TestMissingFieldsAskedOnce(t *testing.T) {
	av := &fakeAvailability{slots: testSlots()}
	o := newTestOrchestrator(av, &fakeCalendar{}, &fakeNotifier{}, &fakePlaces{})
	ctx := context.Background()

	resp := o.SubmitQuery(ctx, requester, "schedule a meeting")
	require.True(t, resp.Success)
	require.Equal(t, store.ActionInputMissingFields, resp.NextAction)
	require.ElementsMatch(t, []string{"date", "employees"}, resp.MissingFields)

	// The follow-up fills the gaps and the task proceeds.
	resp = o.SubmitQuery(ctx, requester, "tomorrow with Rahul Sharma")
	require.True(t, resp.Success)
	require.Equal(t, store.ActionSelectTimeSlot, resp.NextAction)
}

func TestMissingFieldsSecondRoundFails(t *testing.T) {
	o := newTestOrchestrator(&fakeAvailability{}, &fakeCalendar{}, &fakeNotifier{}, &fakePlaces{})
	ctx := context.Background()

	resp := o.SubmitQuery(ctx, requester, "schedule a meeting")
	require.Equal(t, store.ActionInputMissingFields, resp.NextAction)

	resp = o.SubmitQuery(ctx, requester, "just do it somehow")
	require.False(t, resp.Success)
	require.Equal(t, store.ActionError, resp.NextAction)
}

func TestNewQueryDiscardsPendingConfirmation(t *testing.T) {
	av := &fakeAvailability{slots: testSlots()}
	cal := &fakeCalendar{}
	o := newTestOrchestrator(av, cal, &fakeNotifier{}, &fakePlaces{restaurants: []store.Restaurant{{Name: "Bawarchi"}}})
	ctx := context.Background()

	first := o.SubmitQuery(ctx, requester, "Schedule a meeting with Rahul Sharma tomorrow at 3pm")
	require.NotEmpty(t, first.ConfirmationID)

	second := o.SubmitQuery(ctx, requester, "Book a team dinner in Hyderabad")
	require.Equal(t, store.ActionSelectRestaurant, second.NextAction)

	// The old confirmation is dead; saying yes to it must not book anything.
	resp := o.RespondToConfirmation(ctx, requester, first.ConfirmationID, "yes")
	require.False(t, resp.Success)
	require.Empty(t, cal.events)
}

func TestDinnerEndToEnd(t *testing.T) {
	places := &fakePlaces{restaurants: []store.Restaurant{
		{Name: "Bawarchi", Address: "RTC X Roads", Rating: 4.4},
		{Name: "Shah Ghouse", Address: "Tolichowki", Rating: 4.2},
	}}
	cal := &fakeCalendar{}
	not := &fakeNotifier{}
	o := newTestOrchestrator(&fakeAvailability{}, cal, not, places)
	ctx := context.Background()

	resp := o.SubmitQuery(ctx, requester, "Book a team dinner in Hyderabad tomorrow")
	require.True(t, resp.Success)
	require.Equal(t, store.ActionSelectRestaurant, resp.NextAction)
	require.Len(t, resp.Options, 2)

	resp = o.SelectOption(ctx, requester, 2)
	require.NotEmpty(t, resp.ConfirmationID)

	resp = o.RespondToConfirmation(ctx, requester, "", "ok")
	require.True(t, resp.Success)
	require.Equal(t, store.ActionComplete, resp.NextAction)
	require.Contains(t, resp.Message, "Shah Ghouse")
	require.Contains(t, resp.Message, "no invites were sent")
	require.Zero(t, not.dinnerInvites)
	require.Len(t, cal.events, 1, "a dated dinner lands on the calendar")
}

func TestDinnerNoResults(t *testing.T) {
	o := newTestOrchestrator(&fakeAvailability{}, &fakeCalendar{}, &fakeNotifier{}, &fakePlaces{})

	resp := o.SubmitQuery(context.Background(), requester, "Book a team dinner in Hyderabad")
	require.False(t, resp.Success)
	require.Equal(t, store.ActionSuggestAlternatives, resp.NextAction)
}

func TestAvailabilityDisplaysSchedules(t *testing.T) {
	av := &fakeAvailability{schedules: []store.Schedule{
		{Email: "rahul.sharma@example.com", Name: "Rahul Sharma", Date: "2025-06-03", Events: []store.Event{}},
	}}
	o := newTestOrchestrator(av, &fakeCalendar{}, &fakeNotifier{}, &fakePlaces{})

	resp := o.SubmitQuery(context.Background(), requester, "Is Rahul Sharma available tomorrow?")
	require.True(t, resp.Success)
	require.Equal(t, store.ActionDisplaySchedules, resp.NextAction)
	require.Len(t, resp.Schedules, 1)
	require.Contains(t, resp.Message, "free all day")
}

func TestAvailabilityNoAddressesFails(t *testing.T) {
	dir := &fakeDirectory{people: []store.Person{
		{Name: "Dev Anand", Email: ""},
	}}
	resolver := resolve.NewWithClock(dir, func() time.Time {
		return time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	})
	sessions := session.NewManager()
	o := New(Deps{
		Resolver:     resolver,
		Extractor:    intent.NewExtractor(resolver, intent.Options{}),
		Sessions:     sessions,
		Ledger:       confirm.NewLedger(),
		Availability: &fakeAvailability{},
		Calendar:     &fakeCalendar{},
		Notifier:     &fakeNotifier{},
		Places:       &fakePlaces{},
	})

	resp := o.SubmitQuery(context.Background(), requester, "Is Dev available tomorrow?")
	require.False(t, resp.Success)
	require.Equal(t, store.ActionError, resp.NextAction)

	sess := sessions.Get(requester)
	require.Equal(t, store.StateFailed, sess.State)
}

func TestEmailSendsDirectly(t *testing.T) {
	not := &fakeNotifier{}
	o := newTestOrchestrator(&fakeAvailability{}, &fakeCalendar{}, not, &fakePlaces{})

	resp := o.SubmitQuery(context.Background(), requester,
		"Send an email to Priya about the offsite: please confirm attendance")
	require.True(t, resp.Success)
	require.Equal(t, store.ActionComplete, resp.NextAction)
	require.Equal(t, []string{"priya.patel@example.com"}, not.sent)
}

func TestEmailPartialFailure(t *testing.T) {
	not := &fakeNotifier{failFor: map[string]bool{"rahul.sharma@example.com": true}}
	o := newTestOrchestrator(&fakeAvailability{}, &fakeCalendar{}, not, &fakePlaces{})

	resp := o.SubmitQuery(context.Background(), requester,
		"Send an email to Priya and Rahul about the offsite: see the deck")
	require.True(t, resp.Success)
	require.Equal(t, store.ActionComplete, resp.NextAction)
	require.Contains(t, resp.Message, "1 of 2")
	require.Contains(t, resp.Message, "rahul.sharma@example.com")
}

func TestEmailUnknownRecipientAsksToClarify(t *testing.T) {
	not := &fakeNotifier{}
	o := newTestOrchestrator(&fakeAvailability{}, &fakeCalendar{}, not, &fakePlaces{})

	resp := o.SubmitQuery(context.Background(), requester, "Send a hi email to Bhavya")
	require.True(t, resp.Success)
	require.Equal(t, store.ActionClarify, resp.NextAction)
	require.Contains(t, resp.Message, "Bhavya")
	require.Empty(t, not.sent)
}

func TestUnknownQueryAsksToRephrase(t *testing.T) {
	o := newTestOrchestrator(&fakeAvailability{}, &fakeCalendar{}, &fakeNotifier{}, &fakePlaces{})

	resp := o.SubmitQuery(context.Background(), requester, "what is the weather like")
	require.False(t, resp.Success)
	require.Equal(t, store.ActionClarify, resp.NextAction)
}

func TestSelectWithoutOptions(t *testing.T) {
	o := newTestOrchestrator(&fakeAvailability{}, &fakeCalendar{}, &fakeNotifier{}, &fakePlaces{})

	resp := o.SelectOption(context.Background(), requester, 1)
	require.False(t, resp.Success)
	require.Equal(t, store.ActionError, resp.NextAction)
}
