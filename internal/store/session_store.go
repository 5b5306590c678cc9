package store

import (
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

// Session is the server-side record behind one session cookie. UserID is
// zero while the session is anonymous. SessionKey is a snapshot of the
// bound user's per-user secret taken at login; when the user's key is
// rotated the snapshot no longer matches and every session holding it
// dies.
type Session struct {
	SessionID  string
	UserID     int64
	SessionKey string
	CreatedAt  time.Time
	LastSeen   time.Time
}

func (s *Session) Anonymous() bool {
	return s.UserID == 0
}

// SessionStore keeps sessions in process memory with a sliding
// inactivity window. An expired session behaves exactly like an absent
// one.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	expires  time.Duration
}

func NewSessionStore(expires time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		expires:  expires,
	}
}

func (ss *SessionStore) Create() Session {
	now := time.Now().UTC()
	s := &Session{
		SessionID: uuid.NewString(),
		CreatedAt: now,
		LastSeen:  now,
	}
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.sessions[s.SessionID] = s
	return *s
}

// Get returns a snapshot of the session and slides its inactivity
// window. Expired sessions are dropped and reported as absent.
func (ss *SessionStore) Get(sessionID string) (Session, bool) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	s, ok := ss.sessions[sessionID]
	if !ok {
		return Session{}, false
	}
	now := time.Now().UTC()
	if now.Sub(s.LastSeen) > ss.expires {
		delete(ss.sessions, sessionID)
		return Session{}, false
	}
	s.LastSeen = now
	return *s, true
}

// Login binds a user to the session. Calling it again for the same user
// is a no-op beyond refreshing the key snapshot.
func (ss *SessionStore) Login(sessionID string, userID int64, sessionKey string) bool {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	s, ok := ss.sessions[sessionID]
	if !ok {
		return false
	}
	s.UserID = userID
	s.SessionKey = sessionKey
	return true
}

// Logout clears the user binding. The session identifier stays valid
// for future logins.
func (ss *SessionStore) Logout(sessionID string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if s, ok := ss.sessions[sessionID]; ok {
		s.UserID = 0
		s.SessionKey = ""
	}
}

func (ss *SessionStore) RemoveExpired() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	now := time.Now().UTC()
	removed := 0
	for id, s := range ss.sessions {
		if now.Sub(s.LastSeen) > ss.expires {
			delete(ss.sessions, id)
			removed++
		}
	}
	return removed
}

func (ss *SessionStore) ScheduleDailyCleanUp(s gocron.Scheduler) {
	if _, err := s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 0, 0))),
		gocron.NewTask(func() {
			if n := ss.RemoveExpired(); n > 0 {
				log.Printf("removed %d expired sessions", n)
			}
		}),
	); err != nil {
		log.Fatal(err)
	}
}
