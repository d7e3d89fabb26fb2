package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/store"
)

// handleEmail sends directly once every recipient resolves to an
// address. Unknown names get one clarification round; each recipient is
// sent to individually so one bounce never blocks the rest.
func (o *Orchestrator) handleEmail(ctx context.Context, sess *store.Session) *store.Response {
	goal := sess.Goal

	var to []string
	var unresolved []string
	seen := make(map[string]struct{})
	for _, recipient := range goal.Recipients {
		email, ok := o.resolver.EmailFor(recipient)
		if !ok {
			unresolved = append(unresolved, recipient)
			continue
		}
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}
		to = append(to, email)
	}

	if len(unresolved) > 0 {
		if sess.AskedMissing {
			sess.Transition(store.StateFailed)
			o.sessions.Save(sess)
			return errorResponse(fmt.Sprintf("I still can't find %s in the directory; dropping this request.",
				strings.Join(unresolved, ", ")))
		}
		goal.Recipients = nil
		goal.AskRecipients = true
		sess.AskedMissing = true
		sess.Transition(store.StateAwaitingClarification)
		o.sessions.Save(sess)
		return &store.Response{
			Success:    true,
			NextAction: store.ActionClarify,
			Message: fmt.Sprintf("I couldn't match %s to anyone in the directory. Give me directory names or full addresses.",
				strings.Join(unresolved, ", ")),
		}
	}

	sender := senderName(sess.Requester)
	subject := goal.Subject
	if subject == "" {
		subject = "Message from " + sender
	}

	cctx, cancel := o.callCtx(ctx)
	defer cancel()

	var failed []string
	sent := 0
	for _, addr := range to {
		body := o.draftBody(cctx, subject, goal.Message, sender, addr)
		if err := o.notifier.Send(cctx, addr, subject, body); err != nil {
			o.log.Error("orchestrator", "send failed", map[string]interface{}{"to": addr, "error": err.Error()})
			failed = append(failed, addr)
			continue
		}
		sent++
	}

	sess.Transition(store.StateCompleted)
	o.sessions.Save(sess)

	switch {
	case sent == 0:
		sess.Transition(store.StateFailed)
		o.sessions.Save(sess)
		return errorResponse("none of the emails could be sent; check the mail settings and try again")
	case len(failed) > 0:
		return &store.Response{
			Success:    true,
			NextAction: store.ActionComplete,
			Message:    fmt.Sprintf("Sent to %d of %d recipients; delivery failed for %s.", sent, len(to), strings.Join(failed, ", ")),
		}
	default:
		return &store.Response{
			Success:    true,
			NextAction: store.ActionComplete,
			Message:    fmt.Sprintf("Email sent to %d recipient(s).", sent),
		}
	}
}

// draftBody asks the generator when one is wired and quietly falls back
// to the plain template on any failure.
func (o *Orchestrator) draftBody(ctx context.Context, subject, message, sender, recipient string) string {
	if o.generator != nil {
		body, err := o.generator.Draft(ctx, subject, message, sender, recipient)
		if err == nil && strings.TrimSpace(body) != "" {
			return body
		}
		if err != nil {
			o.log.Warn("orchestrator", "draft generation failed, using template", map[string]interface{}{"error": err.Error()})
		}
	}
	greeting := recipient
	if p, ok := o.resolver.MatchName(localPart(recipient)); ok {
		greeting = p.Name
	} else if lp := localPart(recipient); lp != "" {
		greeting = titleWords(lp)
	}
	return fmt.Sprintf("Hi %s,\n\n%s\n\nBest regards,\n%s", greeting, message, sender)
}

func senderName(requester string) string {
	if lp := localPart(requester); lp != "" {
		return titleWords(lp)
	}
	return requester
}

func localPart(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return ""
	}
	part := email[:at]
	part = strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(part)
	return part
}

func titleWords(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	for i, f := range fields {
		fields[i] = strings.ToUpper(f[:1]) + f[1:]
	}
	return strings.Join(fields, " ")
}
