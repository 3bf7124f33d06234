package calendar_api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"family-calendar/internal/auth"
	"family-calendar/internal/calendar/display"
	"family-calendar/internal/calendar/service"
	"family-calendar/internal/session"
	"family-calendar/internal/utils"

	"github.com/go-chi/chi/v5"
)

const (
	maxUpcomingDays = 366
	msgBadDays      = "Ungültige Anzahl Tage."
)

// CreateEvent saves the submitted form. The form is kept in the session
// draft so a rejected submission can be corrected.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	s := auth.Session(r)

	var form session.Draft
	if err := decodeJSON(r, &form); err != nil {
		h.fail(w, http.StatusBadRequest, msgInvalidBody, err)
		return
	}

	loc := h.Options.Location
	event, err := h.Events.AddEvent(r.Context(), service.EventInput{
		Title: form.Title,
		Owner: form.Owner,
		Start: form.StartDate.At(form.StartTime, loc),
		End:   form.EndDate.At(form.EndTime, loc),
		Notes: form.Notes,
	})

	var verr *service.ValidationError
	if errors.As(err, &verr) {
		s.Draft = form
		if saveErr := h.Sessions.Save(r.Context(), s); saveErr != nil {
			h.Logger.Warn("SESSION", "failed to keep rejected draft: "+saveErr.Error())
		}
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse(verr.Message, verr.Field))
		return
	}
	if err != nil {
		h.fail(w, http.StatusInternalServerError, msgServerError, err)
		return
	}

	s.ClearDraft()
	if err := h.Sessions.Save(r.Context(), s); err != nil {
		h.Logger.Warn("SESSION", "failed to clear draft: "+err.Error())
	}
	ok(w, http.StatusCreated, "Termin gespeichert.", event)
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Events.ListEvents(r.Context())
	if err != nil {
		h.fail(w, http.StatusInternalServerError, msgServerError, err)
		return
	}
	ok(w, http.StatusOK, "Termine", events)
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "eventId"), 10, 64)
	if err != nil {
		h.fail(w, http.StatusBadRequest, "Ungültige Termin-ID.", err)
		return
	}

	err = h.Events.DeleteEvent(r.Context(), id)
	if errors.Is(err, service.ErrEventNotFound) {
		h.fail(w, http.StatusNotFound, "Termin nicht gefunden.", err)
		return
	}
	if err != nil {
		h.fail(w, http.StatusInternalServerError, msgServerError, err)
		return
	}
	ok(w, http.StatusOK, "Termin gelöscht.", map[string]int64{"id": id})
}

func (h *Handler) ListSpecialDays(w http.ResponseWriter, r *http.Request) {
	days, err := h.Events.ListSpecialDays(r.Context())
	if err != nil {
		h.fail(w, http.StatusInternalServerError, msgServerError, err)
		return
	}
	ok(w, http.StatusOK, "Ferien und Feiertage", days)
}

type calendarResponse struct {
	Items   []display.Item        `json:"items"`
	Options display.WidgetOptions `json:"options"`
}

// Calendar returns the widget items for every event and special day.
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	events, err := h.Events.ListEvents(r.Context())
	if err != nil {
		h.fail(w, http.StatusInternalServerError, msgServerError, err)
		return
	}
	specials, err := h.Events.ListSpecialDays(r.Context())
	if err != nil {
		h.fail(w, http.StatusInternalServerError, msgServerError, err)
		return
	}

	ok(w, http.StatusOK, "Kalender", calendarResponse{
		Items:   display.Build(events, specials, h.Options.Location),
		Options: display.Options(h.Options.TargetYear),
	})
}

func (h *Handler) upcomingDays(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return h.Options.UpcomingDays, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 1 || n > maxUpcomingDays {
		return 0, fmt.Errorf("days out of range: %d", n)
	}
	return n, nil
}

func (h *Handler) Upcoming(w http.ResponseWriter, r *http.Request) {
	days, err := h.upcomingDays(r)
	if err != nil {
		h.fail(w, http.StatusBadRequest, msgBadDays, err)
		return
	}

	rows, err := h.Events.Upcoming(r.Context(), h.now(), days)
	if err != nil {
		h.fail(w, http.StatusInternalServerError, msgServerError, err)
		return
	}
	ok(w, http.StatusOK, "Nächste "+strconv.Itoa(days)+" Tage", rows)
}
