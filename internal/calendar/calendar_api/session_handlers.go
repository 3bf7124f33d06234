package calendar_api

import (
	"errors"
	"net/http"

	"family-calendar/internal/auth"
	"family-calendar/internal/session"
	"family-calendar/internal/web"
)

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(web.IndexHTML); err != nil {
		h.Logger.Warn("HTTP", "failed to write index page: "+err.Error())
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login answers every failure with the same message; the reason is only
// logged.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, http.StatusBadRequest, msgInvalidBody, err)
		return
	}

	passed, err := h.Gate.Check(req.Password)
	switch {
	case errors.Is(err, auth.ErrNotConfigured):
		h.Logger.LogSecurity("LOGIN_FAILED", "no password configured")
	case err != nil:
		h.Logger.LogSecurity("LOGIN_FAILED", "password check error: "+err.Error())
	case !passed:
		h.Logger.LogSecurity("LOGIN_FAILED", "wrong password from "+r.RemoteAddr)
	}
	if err != nil || !passed {
		h.fail(w, http.StatusUnauthorized, msgWrongPass, nil)
		return
	}

	// A fresh id on every login; the old session is dropped.
	if old, err := h.Sessions.Load(r); err == nil {
		if err := h.Sessions.Store.Delete(r.Context(), old.ID); err != nil {
			h.Logger.Warn("SESSION", "failed to drop previous session: "+err.Error())
		}
	}
	s := session.NewSession(h.Options.TargetYear)
	s.Login()
	if err := h.Sessions.Issue(w, r, s); err != nil {
		h.fail(w, http.StatusInternalServerError, msgServerError, err)
		return
	}

	h.Logger.LogSecurity("LOGIN", "session started")
	ok(w, http.StatusOK, "Angemeldet.", map[string]interface{}{
		"authenticated": true,
		"draft":         s.Draft,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	s, err := h.Sessions.Load(r)
	if err != nil && !errors.Is(err, session.ErrSessionNotFound) {
		h.fail(w, http.StatusInternalServerError, msgServerError, err)
		return
	}
	if s == nil {
		s = session.NewSession(h.Options.TargetYear)
	}
	if err := h.Sessions.End(w, r, s); err != nil {
		h.fail(w, http.StatusInternalServerError, msgServerError, err)
		return
	}
	ok(w, http.StatusOK, "Abgemeldet.", nil)
}

func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	ok(w, http.StatusOK, "Entwurf", auth.Session(r).Draft)
}

func (h *Handler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	s := auth.Session(r)

	var draft session.Draft
	if err := decodeJSON(r, &draft); err != nil {
		h.fail(w, http.StatusBadRequest, msgInvalidBody, err)
		return
	}
	s.Draft = draft
	if err := h.Sessions.Save(r.Context(), s); err != nil {
		h.fail(w, http.StatusInternalServerError, msgServerError, err)
		return
	}
	ok(w, http.StatusOK, "Entwurf gespeichert.", s.Draft)
}

func (h *Handler) ClearDraft(w http.ResponseWriter, r *http.Request) {
	s := auth.Session(r)
	s.ClearDraft()
	if err := h.Sessions.Save(r.Context(), s); err != nil {
		h.fail(w, http.StatusInternalServerError, msgServerError, err)
		return
	}
	ok(w, http.StatusOK, "Entwurf zurückgesetzt.", s.Draft)
}
