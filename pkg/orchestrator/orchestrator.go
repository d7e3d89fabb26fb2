package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/confirm"
	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/intent"
	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/plan"
	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/resolve"
	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/session"
	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/store"
)

// Availability is the calendar read side.
type Availability interface {
	FindSlots(ctx context.Context, date string, emails []string, durationMinutes int) ([]store.TimeSlot, error)
	Check(ctx context.Context, date, start, end string, emails []string) ([]store.Conflict, error)
	Schedules(ctx context.Context, date string, emails []string) ([]store.Schedule, error)
}

// CalendarWriter creates events. Reads and writes are split so the
// availability flow can never accidentally write.
type CalendarWriter interface {
	CreateEvent(ctx context.Context, event *store.Event) (string, error)
}

type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
	SendMeetingInvite(ctx context.Context, to []string, event *store.Event) error
	SendDinnerInvite(ctx context.Context, to []string, restaurant *store.Restaurant, date, at, organizer string) error
}

type PlaceSearch interface {
	Search(ctx context.Context, location, cuisine string, limit int) ([]store.Restaurant, error)
}

// ContentGenerator drafts email bodies. Optional; a nil generator means
// the built-in template is used.
type ContentGenerator interface {
	Draft(ctx context.Context, subject, message, sender, recipient string) (string, error)
}

// Logger matches the application logger without importing it, keeping
// this package free of internal dependencies.
type Logger interface {
	Debug(module, message string, details map[string]interface{})
	Info(module, message string, details map[string]interface{})
	Warn(module, message string, details map[string]interface{})
	Error(module, message string, details map[string]interface{})
}

type Config struct {
	SlotLimit       int
	RestaurantLimit int
	CallTimeout     time.Duration
}

type Deps struct {
	Resolver     *resolve.Resolver
	Extractor    *intent.Extractor
	Sessions     session.IManager
	Ledger       confirm.ILedger
	Availability Availability
	Calendar     CalendarWriter
	Notifier     Notifier
	Places       PlaceSearch
	Generator    ContentGenerator
	Log          Logger
	Config       Config
}

// Orchestrator drives a query from text to side effect through the
// parse, plan, select and confirm states. All answers flow through
// store.Response; it never panics on collaborator failure.
type Orchestrator struct {
	resolver     *resolve.Resolver
	extractor    *intent.Extractor
	sessions     session.IManager
	ledger       confirm.ILedger
	availability Availability
	calendar     CalendarWriter
	notifier     Notifier
	places       PlaceSearch
	generator    ContentGenerator
	log          Logger
	cfg          Config
}

func New(deps Deps) *Orchestrator {
	cfg := deps.Config
	if cfg.SlotLimit <= 0 {
		cfg.SlotLimit = 5
	}
	if cfg.RestaurantLimit <= 0 {
		cfg.RestaurantLimit = 5
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = 10 * time.Second
	}
	log := deps.Log
	if log == nil {
		log = noopLogger{}
	}
	return &Orchestrator{
		resolver:     deps.Resolver,
		extractor:    deps.Extractor,
		sessions:     deps.Sessions,
		ledger:       deps.Ledger,
		availability: deps.Availability,
		calendar:     deps.Calendar,
		notifier:     deps.Notifier,
		places:       deps.Places,
		generator:    deps.Generator,
		log:          log,
		cfg:          cfg,
	}
}

// SubmitQuery starts or advances a task. A requester answering a
// missing-field prompt is merged into the pending goal; anything else
// replaces whatever was in flight, cancelling a stale confirmation.
func (o *Orchestrator) SubmitQuery(ctx context.Context, requester, query string) *store.Response {
	requester = strings.ToLower(strings.TrimSpace(requester))
	query = strings.TrimSpace(query)
	if requester == "" || query == "" {
		return errorResponse("requester and query are both required")
	}

	prev := o.sessions.Get(requester)
	if prev.State == store.StateAwaitingClarification && prev.Goal != nil {
		o.extractor.Supplement(prev.Goal, query)
		return o.dispatch(ctx, prev)
	}
	if prev.State == store.StateAwaitingConfirmation && prev.ConfirmationID != "" {
		o.ledger.Cancel(requester, prev.ConfirmationID)
		o.log.Info("orchestrator", "stale confirmation cancelled by new query", map[string]interface{}{
			"requester":       requester,
			"confirmation_id": prev.ConfirmationID,
		})
	}

	sess := o.sessions.Reset(requester)
	goal := o.extractor.Extract(query)
	o.log.Info("orchestrator", "query parsed", map[string]interface{}{
		"requester": requester,
		"intent":    string(goal.Intent),
	})

	if goal.Intent == store.IntentUnknown {
		return &store.Response{
			Success:    false,
			NextAction: store.ActionClarify,
			Message:    "I couldn't work out what you need. Try asking me to schedule a meeting, book a team dinner, check availability, or send an email.",
		}
	}

	_, warnings := intent.ValidateGoal(goal)
	goal.Warnings = append(goal.Warnings, warnings...)
	sess.Goal = goal
	sess.Transition(store.StateParsed)
	return o.dispatch(ctx, sess)
}

// dispatch plans the goal and routes it. Invalid plans ask for the gaps
// exactly once; a second round with the fields still missing fails the
// task instead of looping.
func (o *Orchestrator) dispatch(ctx context.Context, sess *store.Session) *store.Response {
	goal := sess.Goal
	p := plan.Build(goal)
	sess.ActionType = p.ActionType

	if !p.Valid {
		if sess.AskedMissing {
			sess.Transition(store.StateFailed)
			o.sessions.Save(sess)
			return errorResponse(fmt.Sprintf(
				"I still don't have %s, so I'm dropping this request. Start over with the full details.",
				strings.Join(p.Missing, " and ")))
		}
		sess.AskedMissing = true
		sess.Transition(store.StateAwaitingClarification)
		o.sessions.Save(sess)
		return &store.Response{
			Success:       true,
			NextAction:    store.ActionInputMissingFields,
			MissingFields: p.Missing,
			Message:       askFor(goal, p.Missing),
			Warnings:      goal.Warnings,
		}
	}

	sess.Transition(store.StatePlanned)
	o.sessions.Save(sess)

	switch goal.Intent {
	case store.IntentMeeting:
		return o.handleMeeting(ctx, sess)
	case store.IntentDinner:
		return o.handleDinner(ctx, sess)
	case store.IntentAvailability:
		return o.handleAvailability(ctx, sess)
	case store.IntentEmail:
		return o.handleEmail(ctx, sess)
	default:
		return errorResponse("unsupported intent")
	}
}

// SelectOption merges the picked option into the goal and opens a
// confirmation. Indexes are 1-based, as presented.
func (o *Orchestrator) SelectOption(ctx context.Context, requester string, index int) *store.Response {
	requester = strings.ToLower(strings.TrimSpace(requester))
	sess := o.sessions.Get(requester)
	if sess.State != store.StateAwaitingSelection || len(sess.Options) == 0 {
		return errorResponse("there is nothing to select right now; submit a query first")
	}

	var chosen *store.Option
	for i := range sess.Options {
		if sess.Options[i].Index == index {
			chosen = &sess.Options[i]
			break
		}
	}
	if chosen == nil {
		return errorResponse(fmt.Sprintf("pick a number between 1 and %d", len(sess.Options)))
	}

	switch {
	case chosen.Slot != nil:
		sess.Goal.Date = chosen.Slot.Date
		sess.Goal.Time = chosen.Slot.Start
	case chosen.Restaurant != nil:
		sess.Goal.Restaurant = chosen.Restaurant
	}

	return o.openConfirmation(sess, chosen.Label)
}

// RespondToConfirmation applies a yes/no answer to the pending
// confirmation and, on yes, executes the side effect.
func (o *Orchestrator) RespondToConfirmation(ctx context.Context, requester, confirmationID, reply string) *store.Response {
	requester = strings.ToLower(strings.TrimSpace(requester))
	sess := o.sessions.Get(requester)
	if confirmationID == "" {
		confirmationID = sess.ConfirmationID
	}

	status, err := o.ledger.Process(requester, confirmationID, reply)
	switch {
	case err == confirm.ErrNotFound:
		return errorResponse("no pending confirmation found; it may have expired")
	case err == confirm.ErrAlreadyProcessed:
		return errorResponse(fmt.Sprintf("that confirmation was already %s", status))
	case err != nil:
		return errorResponse("could not process the confirmation")
	}

	switch status {
	case confirm.StatusPending:
		return &store.Response{
			Success:        true,
			NextAction:     store.ActionClarify,
			ConfirmationID: confirmationID,
			Message:        "Please answer yes or no.",
		}
	case confirm.StatusCancelled:
		o.sessions.Reset(requester)
		return &store.Response{
			Success:    true,
			NextAction: store.ActionComplete,
			Message:    "Okay, cancelled. Nothing was booked or sent.",
		}
	}
	return o.executeConfirmed(ctx, sess)
}

// ConfirmAction is the one-shot yes for callers that skip the free-text
// reply.
func (o *Orchestrator) ConfirmAction(ctx context.Context, requester, confirmationID string) *store.Response {
	return o.RespondToConfirmation(ctx, requester, confirmationID, "yes")
}

func (o *Orchestrator) executeConfirmed(ctx context.Context, sess *store.Session) *store.Response {
	switch sess.ActionType {
	case plan.ActionMeetingScheduling:
		return o.executeMeeting(ctx, sess)
	case plan.ActionRestaurantBooking:
		return o.executeDinner(ctx, sess)
	default:
		return errorResponse("nothing to execute for this confirmation")
	}
}

func (o *Orchestrator) openConfirmation(sess *store.Session, label string) *store.Response {
	req := o.ledger.Create(sess.Requester, sess.ActionType, sess.Goal)
	sess.ConfirmationID = req.ID
	sess.Options = nil
	sess.Transition(store.StateAwaitingConfirmation)
	o.sessions.Save(sess)
	return &store.Response{
		Success:        true,
		NextAction:     store.ActionClarify,
		ConfirmationID: req.ID,
		Message:        fmt.Sprintf("You picked %s. Shall I go ahead? (yes/no)", label),
	}
}

// Status reports what the assistant can do, for the health endpoint.
func (o *Orchestrator) Status() map[string]interface{} {
	return map[string]interface{}{
		"capabilities": []string{
			"meeting_scheduling", "restaurant_booking", "availability_check", "send_email",
		},
		"ai_drafting": o.generator != nil,
	}
}

func (o *Orchestrator) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, o.cfg.CallTimeout)
}

func errorResponse(message string) *store.Response {
	return &store.Response{Success: false, NextAction: store.ActionError, Message: message}
}

func askFor(goal *store.Goal, missing []string) string {
	var asks []string
	for _, field := range missing {
		switch field {
		case "date":
			asks = append(asks, "which date works")
		case "employees":
			if goal.AskPeople {
				asks = append(asks, "who should be included (I couldn't match those names to the directory)")
			} else {
				asks = append(asks, "who should be included")
			}
		case "location":
			asks = append(asks, "which area to search in")
		case "recipients":
			asks = append(asks, "who the email should go to")
		case "message":
			asks = append(asks, "what the email should say")
		default:
			asks = append(asks, "the "+field)
		}
	}
	return "Before I continue, tell me " + strings.Join(asks, ", and ") + "."
}

// attendeeEmails collects deliverable addresses; the requester is
// always on their own meeting.
func attendeeEmails(goal *store.Goal, requester string) []string {
	seen := map[string]struct{}{requester: {}}
	emails := []string{requester}
	for _, p := range goal.People {
		email := strings.ToLower(p.Email)
		if email == "" {
			continue
		}
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}
		emails = append(emails, email)
	}
	return emails
}

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
