package orchestrator

import (
	"context"
	"fmt"

	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/store"
)

const defaultDinnerTime = "20:00"

func (o *Orchestrator) handleDinner(ctx context.Context, sess *store.Session) *store.Response {
	goal := sess.Goal

	cctx, cancel := o.callCtx(ctx)
	defer cancel()

	restaurants, err := o.places.Search(cctx, goal.Location, goal.Cuisine, o.cfg.RestaurantLimit)
	if err != nil {
		return o.collaboratorError(sess, "restaurant search", err)
	}
	if len(restaurants) == 0 {
		sess.Transition(store.StateFailed)
		o.sessions.Save(sess)
		what := "restaurants"
		if goal.Cuisine != "" {
			what = goal.Cuisine + " restaurants"
		}
		return &store.Response{
			Success:    false,
			NextAction: store.ActionSuggestAlternatives,
			Message:    fmt.Sprintf("No %s found in %s. Try a different cuisine or a wider area.", what, goal.Location),
		}
	}

	options := make([]store.Option, 0, len(restaurants))
	for i := range restaurants {
		r := restaurants[i]
		label := r.Name
		if r.Rating > 0 {
			label = fmt.Sprintf("%s (rated %.1f)", r.Name, r.Rating)
		}
		if r.Address != "" {
			label += " — " + r.Address
		}
		options = append(options, store.Option{Index: i + 1, Label: label, Restaurant: &r})
	}
	sess.Options = options
	sess.Transition(store.StateAwaitingSelection)
	o.sessions.Save(sess)

	return &store.Response{
		Success:    true,
		NextAction: store.ActionSelectRestaurant,
		Options:    options,
		Message:    fmt.Sprintf("Found %d places in %s. Pick one.", len(options), goal.Location),
		Warnings:   goal.Warnings,
	}
}

// executeDinner runs after a yes. A dinner with a date also lands on
// calendars; invites only go to attendees who resolved to an address,
// and zero such attendees is still a success.
func (o *Orchestrator) executeDinner(ctx context.Context, sess *store.Session) *store.Response {
	goal := sess.Goal
	if goal.Restaurant == nil {
		return errorResponse("no restaurant was selected")
	}

	cctx, cancel := o.callCtx(ctx)
	defer cancel()

	dinnerTime := goal.Time
	if dinnerTime == "" {
		dinnerTime = defaultDinnerTime
	}

	eventNote := ""
	if goal.Date != "" {
		event := &store.Event{
			Title:     "Team Dinner at " + goal.Restaurant.Name,
			Date:      goal.Date,
			Start:     dinnerTime,
			End:       addMinutes(dinnerTime, 120),
			Location:  goal.Restaurant.Address,
			Organizer: sess.Requester,
			Attendees: attendeeEmails(goal, sess.Requester),
		}
		if _, err := o.calendar.CreateEvent(cctx, event); err != nil {
			o.log.Error("orchestrator", "dinner event creation failed", map[string]interface{}{"error": err.Error()})
			eventNote = " The calendar entry could not be created, though."
		}
	}

	var to []string
	for _, p := range goal.People {
		if p.Email != "" {
			to = append(to, p.Email)
		}
	}

	sess.ConfirmationID = ""
	sess.Transition(store.StateCompleted)
	o.sessions.Save(sess)

	if len(to) == 0 {
		return &store.Response{
			Success:    true,
			NextAction: store.ActionComplete,
			Message:    fmt.Sprintf("%s it is. No attendee addresses were given, so no invites were sent.%s", goal.Restaurant.Name, eventNote),
		}
	}

	if err := o.notifier.SendDinnerInvite(cctx, to, goal.Restaurant, goal.Date, dinnerTime, sess.Requester); err != nil {
		o.log.Error("orchestrator", "dinner invite failed", map[string]interface{}{"error": err.Error()})
		return &store.Response{
			Success:    true,
			NextAction: store.ActionComplete,
			Message:    fmt.Sprintf("%s it is, but the invites could not be sent.%s", goal.Restaurant.Name, eventNote),
		}
	}
	return &store.Response{
		Success:    true,
		NextAction: store.ActionComplete,
		Message:    fmt.Sprintf("%s it is. Invites went out to %d people.%s", goal.Restaurant.Name, len(to), eventNote),
	}
}
