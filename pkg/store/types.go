package store

// Intent is the task category recognized from a user query.
type Intent string

const (
	IntentMeeting      Intent = "meeting"
	IntentDinner       Intent = "dinner"
	IntentAvailability Intent = "availability"
	IntentEmail        Intent = "email"
	IntentUnknown      Intent = "unknown"
)

// Next-action values the caller switches on. These are the only values
// Response.NextAction may carry.
const (
	ActionClarify             = "clarify"
	ActionInputMissingFields  = "input_missing_fields"
	ActionSelectTimeSlot      = "select_time_slot"
	ActionSelectRestaurant    = "select_restaurant"
	ActionDisplaySchedules    = "display_schedules"
	ActionComplete            = "complete"
	ActionError               = "error"
	ActionSuggestAlternatives = "suggest_alternatives"
)

type Person struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department,omitempty"`
	Title      string `json:"title,omitempty"`
}

// Goal is the structured form of a query. Fields not relevant to the
// intent stay at their zero value.
type Goal struct {
	Intent   Intent   `json:"intent"`
	RawQuery string   `json:"raw_query"`
	Title    string   `json:"title,omitempty"`
	Date     string   `json:"date,omitempty"` // YYYY-MM-DD
	Time     string   `json:"time,omitempty"` // HH:MM
	Duration int      `json:"duration,omitempty"`
	Location string   `json:"location,omitempty"`
	Cuisine  string   `json:"cuisine,omitempty"`
	TeamSize int      `json:"team_size,omitempty"`
	People   []Person `json:"people,omitempty"`

	// AskPeople is set when people were clearly referenced but nobody in
	// the directory matched. The orchestrator must ask, never guess.
	AskPeople bool `json:"ask_people,omitempty"`

	// Restaurant is filled once the user picks one of the offered options.
	Restaurant *Restaurant `json:"restaurant,omitempty"`

	Recipients    []string `json:"recipients,omitempty"`
	AskRecipients bool     `json:"ask_recipients,omitempty"`
	Subject       string   `json:"subject,omitempty"`
	Message       string   `json:"message,omitempty"`

	Warnings []string `json:"warnings,omitempty"`
}

type TimeSlot struct {
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type Restaurant struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Rating  float64 `json:"rating,omitempty"`
	Phone   string  `json:"phone,omitempty"`
	Hours   string  `json:"hours,omitempty"`
	Cuisine string  `json:"cuisine,omitempty"`
	Source  string  `json:"source,omitempty"`
}

// Option is one selectable choice presented to the user. Exactly one of
// Slot or Restaurant is set.
type Option struct {
	Index      int         `json:"index"`
	Label      string      `json:"label"`
	Slot       *TimeSlot   `json:"slot,omitempty"`
	Restaurant *Restaurant `json:"restaurant,omitempty"`
}

type Event struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Location    string   `json:"location,omitempty"`
	Organizer   string   `json:"organizer"`
	Attendees   []string `json:"attendees"`
	Description string   `json:"description,omitempty"`
}

// Schedule is one person's calendar for a single day.
type Schedule struct {
	Email  string  `json:"email"`
	Name   string  `json:"name,omitempty"`
	Date   string  `json:"date"`
	Events []Event `json:"events"`
}

type Conflict struct {
	Email string `json:"email"`
	Event Event  `json:"event"`
}

// Response is the single surface the orchestrator answers through.
type Response struct {
	Success        bool       `json:"success"`
	Message        string     `json:"message"`
	NextAction     string     `json:"next_action"`
	Options        []Option   `json:"options,omitempty"`
	MissingFields  []string   `json:"missing_fields,omitempty"`
	Schedules      []Schedule `json:"schedules,omitempty"`
	Conflicts      []Conflict `json:"conflicts,omitempty"`
	ConfirmationID string     `json:"confirmation_id,omitempty"`
	Warnings       []string   `json:"warnings,omitempty"`
}
