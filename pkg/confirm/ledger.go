package confirm

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/store"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

var (
	ErrNotFound         = errors.New("confirmation not found")
	ErrAlreadyProcessed = errors.New("confirmation already processed")
)

// Request is one pending side effect waiting for a yes or no.
type Request struct {
	ID         string      `json:"id"`
	Requester  string      `json:"requester"`
	ActionType string      `json:"action_type"`
	Goal       *store.Goal `json:"goal"`
	Status     Status      `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
}

// ILedger tracks confirmations per requester. Entries are keyed by
// requester and id together, so one user can never answer another's
// prompt. Pending moves to exactly one terminal status; a processed id
// can never trigger the side effect again.
type ILedger interface {
	Create(requester, actionType string, goal *store.Goal) *Request
	Get(requester, id string) (*Request, bool)
	Process(requester, id, reply string) (Status, error)
	Cancel(requester, id string)
}

type ledger struct {
	entries *cache.Cache
	counter uint64
}

func NewLedger() ILedger {
	return &ledger{
		entries: cache.New(30*time.Minute, 10*time.Minute),
	}
}

var yesWords = map[string]struct{}{
	"yes": {}, "y": {}, "confirm": {}, "ok": {}, "okay": {},
	"proceed": {}, "sure": {}, "yep": {}, "yeah": {}, "go": {},
}

var noWords = map[string]struct{}{
	"no": {}, "n": {}, "cancel": {}, "abort": {}, "stop": {},
	"nope": {}, "dont": {}, "don't": {},
}

func (l *ledger) Create(requester, actionType string, goal *store.Goal) *Request {
	req := &Request{
		ID:         fmt.Sprintf("conf_%d", atomic.AddUint64(&l.counter, 1)),
		Requester:  requester,
		ActionType: actionType,
		Goal:       goal,
		Status:     StatusPending,
		CreatedAt:  time.Now(),
	}
	l.entries.Set(l.key(requester, req.ID), req, cache.DefaultExpiration)
	return req
}

func (l *ledger) Get(requester, id string) (*Request, bool) {
	val, found := l.entries.Get(l.key(requester, id))
	if !found {
		return nil, false
	}
	return val.(*Request), true
}

// Process interprets the reply. Negation wins over agreement so
// "no, don't confirm" cancels; a reply with neither stays pending and
// the caller should re-ask.
func (l *ledger) Process(requester, id, reply string) (Status, error) {
	req, found := l.Get(requester, id)
	if !found {
		return "", ErrNotFound
	}
	if req.Status != StatusPending {
		return req.Status, ErrAlreadyProcessed
	}

	answer := answerOf(reply)
	if answer == StatusPending {
		return StatusPending, nil
	}

	req.Status = answer
	// Terminal entries only need to survive long enough to answer a
	// duplicate submit.
	l.entries.Set(l.key(requester, id), req, 5*time.Minute)
	return answer, nil
}

func (l *ledger) Cancel(requester, id string) {
	if req, found := l.Get(requester, id); found && req.Status == StatusPending {
		req.Status = StatusCancelled
		l.entries.Set(l.key(requester, id), req, 5*time.Minute)
	}
}

func (l *ledger) key(requester, id string) string {
	return strings.ToLower(requester) + "/" + id
}

func answerOf(reply string) Status {
	for _, raw := range strings.Fields(strings.ToLower(reply)) {
		word := strings.Trim(raw, ".,!?")
		if _, isNo := noWords[word]; isNo {
			return StatusCancelled
		}
	}
	for _, raw := range strings.Fields(strings.ToLower(reply)) {
		word := strings.Trim(raw, ".,!?")
		if _, isYes := yesWords[word]; isYes {
			return StatusConfirmed
		}
	}
	return StatusPending
}
