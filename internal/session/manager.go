package session

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// Manager binds sessions to a browser cookie.
type Manager struct {
	Store      Store
	CookieName string
	TTL        time.Duration
	Secure     bool
	TargetYear int
}

// Load returns the session named by the request cookie.
func (m *Manager) Load(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(m.CookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrSessionNotFound
	}
	return m.Store.Get(r.Context(), cookie.Value)
}

// LoadOrCreate returns the request's session, starting a fresh one (and
// setting its cookie) when there is none.
func (m *Manager) LoadOrCreate(w http.ResponseWriter, r *http.Request) (*Session, error) {
	s, err := m.Load(r)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, ErrSessionNotFound) {
		return nil, err
	}

	s = NewSession(m.TargetYear)
	if err := m.Issue(w, r, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Issue stores s and points the browser cookie at it.
func (m *Manager) Issue(w http.ResponseWriter, r *http.Request, s *Session) error {
	if err := m.Store.Save(r.Context(), s); err != nil {
		return err
	}
	m.setCookie(w, s.ID, int(m.TTL.Seconds()))
	return nil
}

func (m *Manager) Save(ctx context.Context, s *Session) error {
	return m.Store.Save(ctx, s)
}

// End resets the session, forgets it and expires the cookie.
func (m *Manager) End(w http.ResponseWriter, r *http.Request, s *Session) error {
	s.Reset()
	m.setCookie(w, "", -1)
	return m.Store.Delete(r.Context(), s.ID)
}

func (m *Manager) setCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
