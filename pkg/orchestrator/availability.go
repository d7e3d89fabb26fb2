package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/store"
)

// handleAvailability is a pure read: it reports calendars and finishes
// in one turn, no confirmation involved.
func (o *Orchestrator) handleAvailability(ctx context.Context, sess *store.Session) *store.Response {
	goal := sess.Goal

	var emails []string
	for _, p := range goal.People {
		if p.Email != "" {
			emails = append(emails, p.Email)
		}
	}
	if len(emails) == 0 {
		sess.Transition(store.StateFailed)
		o.sessions.Save(sess)
		return errorResponse("none of the named people have a directory address")
	}

	cctx, cancel := o.callCtx(ctx)
	defer cancel()

	schedules, err := o.availability.Schedules(cctx, goal.Date, emails)
	if err != nil {
		return o.collaboratorError(sess, "calendar", err)
	}

	sess.Transition(store.StateCompleted)
	o.sessions.Save(sess)

	var parts []string
	for _, s := range schedules {
		who := s.Name
		if who == "" {
			who = s.Email
		}
		switch len(s.Events) {
		case 0:
			parts = append(parts, who+" is free all day")
		case 1:
			parts = append(parts, fmt.Sprintf("%s has 1 event (%s-%s)", who, s.Events[0].Start, s.Events[0].End))
		default:
			parts = append(parts, fmt.Sprintf("%s has %d events", who, len(s.Events)))
		}
	}

	return &store.Response{
		Success:    true,
		NextAction: store.ActionDisplaySchedules,
		Schedules:  schedules,
		Message:    fmt.Sprintf("On %s: %s.", goal.Date, strings.Join(parts, "; ")),
		Warnings:   goal.Warnings,
	}
}
