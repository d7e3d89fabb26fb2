package mailer

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/store"
)

// IEmailService implements the orchestrator's Notifier over SMTP.
type IEmailService interface {
	Send(ctx context.Context, to, subject, body string) error
	SendMeetingInvite(ctx context.Context, to []string, event *store.Event) error
	SendDinnerInvite(ctx context.Context, to []string, restaurant *store.Restaurant, date, at, organizer string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)
	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

func (s *emailService) Send(ctx context.Context, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.senderEmail, s.senderName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send to %s: %w", to, err)
	}
	return nil
}

func (s *emailService) SendMeetingInvite(ctx context.Context, to []string, event *store.Event) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.senderEmail, s.senderName))
	m.SetHeader("To", to...)
	m.SetHeader("Subject", fmt.Sprintf("Invitation: %s on %s", event.Title, event.Date))

	location := event.Location
	if location == "" {
		location = "to be decided"
	}
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>%s</h2>
			<p><b>When:</b> %s, %s &ndash; %s</p>
			<p><b>Where:</b> %s</p>
			<p><b>Organizer:</b> %s</p>
			<p><b>Attendees:</b> %s</p>
			<p>This invitation was sent by the Work-Life Assistant on the organizer's behalf.</p>
		</div>
	`, event.Title, event.Date, event.Start, event.End, location, event.Organizer,
		strings.Join(event.Attendees, ", "))

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("meeting invite: %w", err)
	}
	return nil
}

func (s *emailService) SendDinnerInvite(ctx context.Context, to []string, restaurant *store.Restaurant, date, at, organizer string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.senderEmail, s.senderName))
	m.SetHeader("To", to...)
	m.SetHeader("Subject", fmt.Sprintf("Team dinner at %s", restaurant.Name))

	when := "date to be decided"
	if date != "" {
		when = fmt.Sprintf("%s at %s", date, at)
	}
	details := restaurant.Address
	if restaurant.Phone != "" {
		details += " &middot; " + restaurant.Phone
	}
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Team Dinner!</h2>
			<p>%s is organizing a team dinner.</p>
			<p><b>Venue:</b> %s</p>
			<p><b>Details:</b> %s</p>
			<p><b>When:</b> %s</p>
			<p>Reply to %s with questions.</p>
		</div>
	`, organizer, restaurant.Name, details, when, organizer)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("dinner invite: %w", err)
	}
	return nil
}
