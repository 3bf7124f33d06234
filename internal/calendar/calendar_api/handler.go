package calendar_api

import (
	"encoding/json"
	"net/http"
	"time"

	"family-calendar/internal/auth"
	"family-calendar/internal/calendar/service"
	"family-calendar/internal/ical"
	"family-calendar/internal/intake"
	"family-calendar/internal/intake/ocr"
	"family-calendar/internal/logger"
	"family-calendar/internal/printout"
	"family-calendar/internal/qr"
	"family-calendar/internal/session"
	"family-calendar/internal/sse"
	"family-calendar/internal/utils"

	"github.com/go-chi/chi/v5"
)

const (
	feedPath       = "/feed/calendar.ics"
	msgWrongPass   = "Falsches Passwort."
	msgInvalidBody = "Ungültige Anfrage."
	msgServerError = "Interner Fehler."
)

// Options carries the per-deployment settings the handlers need.
type Options struct {
	TargetYear     int
	UpcomingDays   int
	Location       *time.Location
	PublicBaseURL  string
	FeedToken      string
	MaxUploadBytes int64
	PrintFont      string
}

type Handler struct {
	Events     *service.EventService
	Sessions   *session.Manager
	Gate       *auth.Gate
	Normalizer *intake.Normalizer
	OCR        ocr.Extractor
	Exporter   *ical.Exporter
	QR         *qr.Generator
	Printout   *printout.Generator
	Changes    *sse.ChangeEmitter
	Logger     *logger.Logger
	Options    Options
	Now        func() time.Time
}

func NewHandler(
	events *service.EventService,
	sessions *session.Manager,
	gate *auth.Gate,
	extractor ocr.Extractor,
	changes *sse.ChangeEmitter,
	log *logger.Logger,
	opts Options,
) *Handler {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Handler{
		Events:     events,
		Sessions:   sessions,
		Gate:       gate,
		Normalizer: intake.NewNormalizer(opts.TargetYear, opts.Location),
		OCR:        extractor,
		Exporter:   ical.NewExporter("Familienkalender", opts.Location),
		QR:         qr.NewGenerator(),
		Printout:   printout.NewGenerator(opts.PrintFont),
		Changes:    changes,
		Logger:     log,
		Options:    opts,
		Now:        time.Now,
	}
}

// RegisterRoutes mounts the page, the public login and feed endpoints and the
// session-protected API.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Index)
	r.Post("/api/login", h.Login)
	r.Post("/api/logout", h.Logout)
	r.Get(feedPath, h.Feed)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSession(h.Sessions))

		r.Route("/api", func(r chi.Router) {
			r.Get("/session/draft", h.GetDraft)
			r.Put("/session/draft", h.UpdateDraft)
			r.Delete("/session/draft", h.ClearDraft)

			r.Route("/events", func(r chi.Router) {
				r.Get("/", h.ListEvents)
				r.Post("/", h.CreateEvent)
				r.Get("/stream", h.StreamChanges)
				r.Delete("/{eventId}", h.DeleteEvent)
			})

			r.Get("/special-days", h.ListSpecialDays)
			r.Get("/calendar", h.Calendar)
			r.Get("/calendar.ics", h.ExportICS)
			r.Get("/calendar/qr.png", h.SubscriptionQR)
			r.Get("/upcoming", h.Upcoming)
			r.Get("/upcoming.pdf", h.UpcomingPDF)

			r.Post("/intake", h.Intake)
			r.Post("/intake/ocr", h.IntakeOCR)
		})
	})
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now().In(h.Options.Location)
	}
	return time.Now().In(h.Options.Location)
}

func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func (h *Handler) fail(w http.ResponseWriter, status int, message string, err error) {
	detail := ""
	if err != nil {
		detail = err.Error()
		if status >= http.StatusInternalServerError {
			h.Logger.Error("HTTP", message+": "+detail)
			detail = ""
		}
	}
	utils.WriteJSON(w, status, utils.ErrorResponse(message, detail))
}

func ok(w http.ResponseWriter, status int, message string, data interface{}) {
	utils.WriteJSON(w, status, utils.SuccessResponse(message, data))
}
