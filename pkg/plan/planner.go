package plan

import (
	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/store"
)

// Action types executed after confirmation.
const (
	ActionMeetingScheduling = "meeting_scheduling"
	ActionRestaurantBooking = "restaurant_booking"
	ActionAvailabilityCheck = "availability_check"
	ActionSendEmail         = "send_email"
)

// Plan is the validated execution recipe for one goal. Steps are
// descriptive only; Required drives the missing-field loop.
type Plan struct {
	Intent     store.Intent `json:"intent"`
	ActionType string       `json:"action_type"`
	Steps      []string     `json:"steps"`
	Required   []string     `json:"required_fields"`
	Optional   []string     `json:"optional_fields"`
	Valid      bool         `json:"valid"`
	Missing    []string     `json:"missing_fields,omitempty"`
}

type template struct {
	actionType string
	steps      []string
	required   []string
	optional   []string
}

var templates = map[store.Intent]template{
	store.IntentMeeting: {
		actionType: ActionMeetingScheduling,
		steps: []string{
			"look up attendee calendars",
			"find open slots on the requested date",
			"offer slots and wait for a pick",
			"confirm, create the event and send invites",
		},
		required: []string{"date", "employees"},
		optional: []string{"time", "duration", "location", "title"},
	},
	store.IntentDinner: {
		actionType: ActionRestaurantBooking,
		steps: []string{
			"search restaurants near the location",
			"rank and offer the results",
			"confirm the pick and send invites",
		},
		required: []string{"location"},
		optional: []string{"cuisine", "date", "time", "team_size", "employees"},
	},
	store.IntentAvailability: {
		actionType: ActionAvailabilityCheck,
		steps: []string{
			"look up calendars for the requested date",
			"report busy and free windows",
		},
		required: []string{"date", "employees"},
		optional: []string{"time"},
	},
	store.IntentEmail: {
		actionType: ActionSendEmail,
		steps: []string{
			"resolve recipient addresses",
			"draft the body",
			"send one message per recipient",
		},
		required: []string{"recipients", "message"},
		optional: []string{"subject", "date"},
	},
}

// Build turns a goal into a plan. An unknown intent or missing required
// fields produce an invalid plan carrying the exact gaps; Build itself
// never fails.
func Build(goal *store.Goal) *Plan {
	tpl, ok := templates[goal.Intent]
	if !ok {
		return &Plan{Intent: goal.Intent, Valid: false, Missing: []string{"intent"}}
	}

	p := &Plan{
		Intent:     goal.Intent,
		ActionType: tpl.actionType,
		Steps:      tpl.steps,
		Required:   tpl.required,
		Optional:   tpl.optional,
	}
	for _, field := range tpl.required {
		if !fieldPresent(goal, field) {
			p.Missing = append(p.Missing, field)
		}
	}
	p.Valid = len(p.Missing) == 0
	return p
}

func fieldPresent(goal *store.Goal, field string) bool {
	switch field {
	case "date":
		return goal.Date != ""
	case "time":
		return goal.Time != ""
	case "location":
		return goal.Location != ""
	case "employees":
		return len(goal.People) > 0
	case "recipients":
		return len(goal.Recipients) > 0
	case "message":
		return goal.Message != ""
	case "subject":
		return goal.Subject != ""
	default:
		return false
	}
}
