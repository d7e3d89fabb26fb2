package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Maverick7728/Proactive-Work-Life-Assistant/internal/config"
	"github.com/Maverick7728/Proactive-Work-Life-Assistant/internal/pkg/logger"
	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/store"
)

// ICalendarService is both the read and write side of the local
// calendar store: slot search, conflict checks, schedule reads and
// event creation. Events live in one JSON file keyed by attendee.
type ICalendarService interface {
	FindSlots(ctx context.Context, date string, emails []string, durationMinutes int) ([]store.TimeSlot, error)
	Check(ctx context.Context, date, start, end string, emails []string) ([]store.Conflict, error)
	Schedules(ctx context.Context, date string, emails []string) ([]store.Schedule, error)
	CreateEvent(ctx context.Context, event *store.Event) (string, error)
}

type calendarService struct {
	mu        sync.RWMutex
	path      string
	events    map[string][]store.Event // keyed by lowercase attendee email
	workStart int                      // minutes from midnight
	workEnd   int
	buffer    int
	step      int
	directory IDirectoryService
	log       logger.ILogger
}

func NewCalendarService(dataDir string, cfg config.AssistantConfig, directory IDirectoryService, log logger.ILogger) (ICalendarService, error) {
	s := &calendarService{
		path:      filepath.Join(dataDir, "calendar.json"),
		events:    make(map[string][]store.Event),
		workStart: clockToMinutes(cfg.WorkStart, 9*60),
		workEnd:   clockToMinutes(cfg.WorkEnd, 18*60),
		buffer:    cfg.BufferMinutes,
		step:      cfg.SlotStepMinutes,
		directory: directory,
		log:       log,
	}
	if s.step <= 0 {
		s.step = 30
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// FindSlots walks the working day in fixed steps and keeps every
// window where all attendees are clear, buffer included.
func (s *calendarService) FindSlots(ctx context.Context, date string, emails []string, durationMinutes int) ([]store.TimeSlot, error) {
	if durationMinutes <= 0 {
		durationMinutes = 60
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var slots []store.TimeSlot
	for start := s.workStart; start+durationMinutes <= s.workEnd; start += s.step {
		end := start + durationMinutes
		if len(s.conflictsLocked(date, minutesToClock(start), minutesToClock(end), emails)) == 0 {
			slots = append(slots, store.TimeSlot{
				Date:  date,
				Start: minutesToClock(start),
				End:   minutesToClock(end),
			})
		}
	}
	return slots, nil
}

func (s *calendarService) Check(ctx context.Context, date, start, end string, emails []string) ([]store.Conflict, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conflictsLocked(date, start, end, emails), nil
}

func (s *calendarService) Schedules(ctx context.Context, date string, emails []string) ([]store.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	schedules := make([]store.Schedule, 0, len(emails))
	for _, email := range emails {
		email = strings.ToLower(email)
		var events []store.Event
		for _, ev := range s.events[email] {
			if ev.Date == date {
				events = append(events, ev)
			}
		}
		sort.Slice(events, func(i, j int) bool { return events[i].Start < events[j].Start })

		name := ""
		if s.directory != nil {
			if p, found := s.directory.FindByEmail(email); found {
				name = p.Name
			}
		}
		schedules = append(schedules, store.Schedule{
			Email:  email,
			Name:   name,
			Date:   date,
			Events: events,
		})
	}
	return schedules, nil
}

func (s *calendarService) CreateEvent(ctx context.Context, event *store.Event) (string, error) {
	if event.Date == "" || event.Start == "" || event.End == "" {
		return "", fmt.Errorf("event needs a date, start and end")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ev := *event
	ev.ID = uuid.NewString()

	seen := make(map[string]struct{})
	for _, attendee := range ev.Attendees {
		email := strings.ToLower(attendee)
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}
		s.events[email] = append(s.events[email], ev)
	}
	if _, organizerIncluded := seen[strings.ToLower(ev.Organizer)]; !organizerIncluded && ev.Organizer != "" {
		s.events[strings.ToLower(ev.Organizer)] = append(s.events[strings.ToLower(ev.Organizer)], ev)
	}

	if err := s.persistLocked(); err != nil {
		return "", err
	}
	s.log.Info("calendar", "event created", map[string]interface{}{
		"id": ev.ID, "date": ev.Date, "start": ev.Start, "attendees": len(ev.Attendees),
	})
	return ev.ID, nil
}

// conflictsLocked reports every event that overlaps the window once the
// buffer is applied on both sides. Callers hold at least a read lock.
func (s *calendarService) conflictsLocked(date, start, end string, emails []string) []store.Conflict {
	rawStart := clockToMinutes(start, -1)
	rawEnd := clockToMinutes(end, -1)
	if rawStart < 0 || rawEnd < 0 {
		return nil
	}
	winStart := rawStart - s.buffer
	winEnd := rawEnd + s.buffer

	var conflicts []store.Conflict
	seen := make(map[string]struct{})
	for _, email := range emails {
		email = strings.ToLower(email)
		for _, ev := range s.events[email] {
			if ev.Date != date {
				continue
			}
			evStart := clockToMinutes(ev.Start, -1)
			evEnd := clockToMinutes(ev.End, -1)
			if evStart < winEnd && winStart < evEnd {
				key := email + "/" + ev.ID
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				conflicts = append(conflicts, store.Conflict{Email: email, Event: ev})
			}
		}
	}
	return conflicts
}

func (s *calendarService) load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(raw, &s.events)
}

func (s *calendarService) persistLocked() error {
	raw, err := json.MarshalIndent(s.events, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o644)
}

func clockToMinutes(clock string, fallback int) int {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return fallback
	}
	var h, m int
	if _, err := fmt.Sscanf(clock, "%d:%d", &h, &m); err != nil {
		return fallback
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return fallback
	}
	return h*60 + m
}

func minutesToClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
