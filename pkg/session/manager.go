package session

import (
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/store"
)

// IManager hands out per-requester sessions. Sessions idle out after an
// hour; an expired session is indistinguishable from a fresh one.
type IManager interface {
	Get(requester string) *store.Session
	Save(session *store.Session)
	Reset(requester string) *store.Session
	Delete(requester string)
}

type manager struct {
	sessions *cache.Cache
}

func NewManager() IManager {
	return &manager{
		sessions: cache.New(1*time.Hour, 10*time.Minute),
	}
}

func (m *manager) Get(requester string) *store.Session {
	if val, found := m.sessions.Get(requester); found {
		return val.(*store.Session)
	}
	session := store.NewSession(requester)
	m.sessions.Set(requester, session, cache.DefaultExpiration)
	return session
}

func (m *manager) Save(session *store.Session) {
	session.UpdatedAt = time.Now()
	m.sessions.Set(session.Requester, session, cache.DefaultExpiration)
}

// Reset discards whatever task was in flight and returns a clean session.
func (m *manager) Reset(requester string) *store.Session {
	session := store.NewSession(requester)
	m.sessions.Set(requester, session, cache.DefaultExpiration)
	return session
}

func (m *manager) Delete(requester string) {
	m.sessions.Delete(requester)
}
