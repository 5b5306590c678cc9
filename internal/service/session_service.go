package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/haapio/accounts/internal/store"
)

type PrincipalReader interface {
	ReadUserByID(ctx context.Context, userID int64) (*store.User, error)
}

// SessionService binds verified principals to server-tracked sessions.
// Session validity rests on two independent checks: the cookie
// signature (verified at the transport edge before the id ever reaches
// this service) and the per-user session key match in CurrentUser.
type SessionService struct {
	sessions *store.SessionStore
	users    PrincipalReader
}

func NewSessionService(sessions *store.SessionStore, users PrincipalReader) *SessionService {
	return &SessionService{sessions: sessions, users: users}
}

// EnsureSession returns the session for the id, creating a fresh
// anonymous one when the id is absent or expired.
func (s *SessionService) EnsureSession(sessionID string) store.Session {
	if sessionID != "" {
		if session, ok := s.sessions.Get(sessionID); ok {
			return session
		}
	}
	return s.sessions.Create()
}

// Login promotes the session to authenticated. Idempotent for the same
// user: a second call just refreshes the session key snapshot.
func (s *SessionService) Login(sessionID string, u *store.User) error {
	if !s.sessions.Login(sessionID, u.UserID, u.SessionKey) {
		return NewInternal(errors.New("login on absent session"))
	}
	return nil
}

// Logout demotes the session to anonymous. The session identifier stays
// alive for future logins.
func (s *SessionService) Logout(sessionID string) {
	s.sessions.Logout(sessionID)
}

// CurrentUser rehydrates the principal bound to the session. It returns
// nil for anonymous sessions, for bound users that no longer exist, and
// for sessions whose key snapshot no longer matches the user's current
// session key (the rotate-to-kill-sessions lever); in the latter two
// cases the session is demoted on the spot.
func (s *SessionService) CurrentUser(ctx context.Context, sessionID string) (*store.User, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok || session.Anonymous() {
		return nil, nil
	}
	u, err := s.users.ReadUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.sessions.Logout(sessionID)
			return nil, nil
		}
		return nil, wrapStoreError(err)
	}
	if u.SessionKey != session.SessionKey {
		s.sessions.Logout(sessionID)
		return nil, nil
	}
	return u.Sanitized(), nil
}
