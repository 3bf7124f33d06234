package calendar_api

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"family-calendar/internal/qr"
)

func (h *Handler) writeICS(w http.ResponseWriter, r *http.Request) {
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

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=familienkalender_%d.ics", h.Options.TargetYear))
	if err := h.Exporter.Write(w, events, specials); err != nil {
		h.Logger.Error("ICS", "failed to write calendar: "+err.Error())
	}
}

func (h *Handler) ExportICS(w http.ResponseWriter, r *http.Request) {
	h.writeICS(w, r)
}

// Feed serves the subscription for calendar apps, which cannot log in. It
// only exists when a feed token is configured.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if h.Options.FeedToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(h.Options.FeedToken)) != 1 {
		http.NotFound(w, r)
		return
	}
	h.writeICS(w, r)
}

// SubscriptionQR renders the feed link so a phone can subscribe by scanning.
func (h *Handler) SubscriptionQR(w http.ResponseWriter, r *http.Request) {
	if h.Options.FeedToken == "" {
		h.fail(w, http.StatusNotFound, "Kein Kalender-Abo konfiguriert.", nil)
		return
	}
	link, err := qr.SubscriptionURL(h.Options.PublicBaseURL, feedPath, h.Options.FeedToken)
	if err != nil {
		h.fail(w, http.StatusInternalServerError, msgServerError, err)
		return
	}
	png, err := h.QR.PNG(link)
	if err != nil {
		h.fail(w, http.StatusInternalServerError, msgServerError, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(png)
}
