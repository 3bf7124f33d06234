package calendar_api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"family-calendar/internal/printout"
	"family-calendar/internal/qr"
)

// UpcomingPDF renders the "next days" table as a printable A4 page. The
// subscription QR code is added when a feed is configured.
func (h *Handler) UpcomingPDF(w http.ResponseWriter, r *http.Request) {
	days, err := h.upcomingDays(r)
	if err != nil {
		h.fail(w, http.StatusBadRequest, msgBadDays, err)
		return
	}

	now := h.now()
	rows, err := h.Events.Upcoming(r.Context(), now, days)
	if err != nil {
		h.fail(w, http.StatusInternalServerError, msgServerError, err)
		return
	}

	var code []byte
	if h.Options.FeedToken != "" {
		if link, err := qr.SubscriptionURL(h.Options.PublicBaseURL, feedPath, h.Options.FeedToken); err == nil {
			code, _ = h.QR.PNG(link)
		}
	}

	pdf, err := h.Printout.Generate(rows, now, days, code)
	if errors.Is(err, printout.ErrFontUnavailable) {
		h.Logger.Warn("PRINT", err.Error())
		h.fail(w, http.StatusServiceUnavailable, "Drucken nicht verfügbar.", nil)
		return
	}
	if err != nil {
		h.fail(w, http.StatusInternalServerError, msgServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=naechste_%d_tage.pdf", days))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.Write(pdf)
}
