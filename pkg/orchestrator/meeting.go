package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/store"
)

func (o *Orchestrator) handleMeeting(ctx context.Context, sess *store.Session) *store.Response {
	goal := sess.Goal
	emails := attendeeEmails(goal, sess.Requester)

	cctx, cancel := o.callCtx(ctx)
	defer cancel()

	if goal.Time != "" {
		end := addMinutes(goal.Time, goal.Duration)
		conflicts, err := o.availability.Check(cctx, goal.Date, goal.Time, end, emails)
		if err != nil {
			return o.collaboratorError(sess, "calendar", err)
		}
		if len(conflicts) == 0 {
			label := fmt.Sprintf("%q on %s at %s", goal.Title, goal.Date, goal.Time)
			return o.openConfirmation(sess, label)
		}

		slots, err := o.availability.FindSlots(cctx, goal.Date, emails, goal.Duration)
		if err != nil {
			return o.collaboratorError(sess, "calendar", err)
		}
		if len(slots) == 0 {
			return o.noSlots(sess, conflicts)
		}
		resp := o.offerSlots(sess, slots)
		resp.Conflicts = conflicts
		resp.Message = fmt.Sprintf("%s is taken on %s. %s", goal.Time, goal.Date, resp.Message)
		return resp
	}

	slots, err := o.availability.FindSlots(cctx, goal.Date, emails, goal.Duration)
	if err != nil {
		return o.collaboratorError(sess, "calendar", err)
	}
	if len(slots) == 0 {
		return o.noSlots(sess, nil)
	}
	return o.offerSlots(sess, slots)
}

// executeMeeting runs after a yes. The slot is re-checked right before
// the write; a conflict that appeared in the meantime re-opens
// selection instead of failing the task.
func (o *Orchestrator) executeMeeting(ctx context.Context, sess *store.Session) *store.Response {
	goal := sess.Goal
	emails := attendeeEmails(goal, sess.Requester)
	end := addMinutes(goal.Time, goal.Duration)

	cctx, cancel := o.callCtx(ctx)
	defer cancel()

	conflicts, err := o.availability.Check(cctx, goal.Date, goal.Time, end, emails)
	if err != nil {
		return o.collaboratorError(sess, "calendar", err)
	}
	if len(conflicts) > 0 {
		o.log.Warn("orchestrator", "slot taken between confirmation and write", map[string]interface{}{
			"requester": sess.Requester,
			"date":      goal.Date,
			"time":      goal.Time,
		})
		slots, err := o.availability.FindSlots(cctx, goal.Date, emails, goal.Duration)
		if err != nil {
			return o.collaboratorError(sess, "calendar", err)
		}
		if len(slots) == 0 {
			return o.noSlots(sess, conflicts)
		}
		resp := o.offerSlots(sess, slots)
		resp.Conflicts = conflicts
		resp.Message = "That slot was taken while you were confirming. " + resp.Message
		return resp
	}

	event := &store.Event{
		Title:     goal.Title,
		Date:      goal.Date,
		Start:     goal.Time,
		End:       end,
		Location:  goal.Location,
		Organizer: sess.Requester,
		Attendees: emails,
	}
	id, err := o.calendar.CreateEvent(cctx, event)
	if err != nil {
		sess.Transition(store.StateFailed)
		o.sessions.Save(sess)
		o.log.Error("orchestrator", "event creation failed", map[string]interface{}{"error": err.Error()})
		return errorResponse("the calendar rejected the event; nothing was booked")
	}
	event.ID = id

	sess.ConfirmationID = ""
	sess.Transition(store.StateCompleted)
	o.sessions.Save(sess)

	if err := o.notifier.SendMeetingInvite(cctx, emails, event); err != nil {
		o.log.Error("orchestrator", "invite sending failed", map[string]interface{}{"error": err.Error()})
		return &store.Response{
			Success:    true,
			NextAction: store.ActionComplete,
			Message: fmt.Sprintf("%q is booked for %s at %s, but sending the invites failed. Attendees will see it on their calendars.",
				goal.Title, goal.Date, goal.Time),
		}
	}
	return &store.Response{
		Success:    true,
		NextAction: store.ActionComplete,
		Message: fmt.Sprintf("%q is booked for %s at %s. Invites went out to %d people.",
			goal.Title, goal.Date, goal.Time, len(emails)),
	}
}

func (o *Orchestrator) offerSlots(sess *store.Session, slots []store.TimeSlot) *store.Response {
	if len(slots) > o.cfg.SlotLimit {
		slots = slots[:o.cfg.SlotLimit]
	}
	options := make([]store.Option, 0, len(slots))
	for i := range slots {
		slot := slots[i]
		options = append(options, store.Option{
			Index: i + 1,
			Label: fmt.Sprintf("%s %s-%s", slot.Date, slot.Start, slot.End),
			Slot:  &slot,
		})
	}
	sess.Options = options
	sess.Transition(store.StateAwaitingSelection)
	o.sessions.Save(sess)
	return &store.Response{
		Success:    true,
		NextAction: store.ActionSelectTimeSlot,
		Options:    options,
		Message:    fmt.Sprintf("Everyone is free at %d times on %s. Pick one.", len(options), sess.Goal.Date),
		Warnings:   sess.Goal.Warnings,
	}
}

func (o *Orchestrator) noSlots(sess *store.Session, conflicts []store.Conflict) *store.Response {
	sess.Transition(store.StateFailed)
	o.sessions.Save(sess)
	return &store.Response{
		Success:    false,
		NextAction: store.ActionSuggestAlternatives,
		Conflicts:  conflicts,
		Message:    fmt.Sprintf("No shared free time on %s within working hours. Try another date or a shorter meeting.", sess.Goal.Date),
	}
}

func (o *Orchestrator) collaboratorError(sess *store.Session, which string, err error) *store.Response {
	o.log.Error("orchestrator", which+" call failed", map[string]interface{}{
		"requester": sess.Requester,
		"error":     err.Error(),
	})
	return errorResponse("the " + which + " service is unavailable right now; try again in a moment")
}

func addMinutes(clock string, minutes int) string {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return clock
	}
	return t.Add(time.Duration(minutes) * time.Minute).Format("15:04")
}
