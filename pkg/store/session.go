package store

import "time"

// SessionState tracks where a requester's task stands.
type SessionState string

const (
	StateIdle                  SessionState = "idle"
	StateParsed                SessionState = "parsed"
	StatePlanned               SessionState = "planned"
	StateAwaitingSelection     SessionState = "awaiting_selection"
	StateAwaitingClarification SessionState = "awaiting_clarification"
	StateAwaitingConfirmation  SessionState = "awaiting_confirmation"
	StateCompleted             SessionState = "completed"
	StateFailed                SessionState = "failed"
)

// Session is the per-requester conversation state. One active task per
// requester; a fresh query replaces whatever was pending.
type Session struct {
	Requester      string       `json:"requester"`
	State          SessionState `json:"state"`
	Goal           *Goal        `json:"goal,omitempty"`
	ActionType     string       `json:"action_type,omitempty"`
	Options        []Option     `json:"options,omitempty"`
	ConfirmationID string       `json:"confirmation_id,omitempty"`

	// AskedMissing guards the missing-field loop: one round of asking,
	// then the task fails instead of looping.
	AskedMissing bool `json:"asked_missing,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSession(requester string) *Session {
	now := time.Now()
	return &Session{
		Requester: requester,
		State:     StateIdle,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Session) Transition(state SessionState) {
	s.State = state
	s.UpdatedAt = time.Now()
}
