package calendar_api

import (
	"net/http"
	"strconv"

	"family-calendar/internal/auth"
	"family-calendar/internal/intake/ocr"
	"family-calendar/internal/models"
	"family-calendar/internal/session"
)

const (
	imageField = "image"
	msgOCRFail = "Texterkennung fehlgeschlagen. Bitte erneut fotografieren oder manuell eingeben."
)

type intakeRequest struct {
	Text   string `json:"text"`
	Source string `json:"source,omitempty"` // speech | text
	Apply  bool   `json:"apply"`
}

type intakeResponse struct {
	Text       string            `json:"text"`
	Suggestion models.Suggestion `json:"suggestion"`
	Applied    bool              `json:"applied"`
	Draft      *session.Draft    `json:"draft,omitempty"`
	Warning    string            `json:"warning,omitempty"`
}

// Intake turns a transcript or typed text into a form suggestion.
func (h *Handler) Intake(w http.ResponseWriter, r *http.Request) {
	var req intakeRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, http.StatusBadRequest, msgInvalidBody, err)
		return
	}

	source := req.Source
	if source == "" {
		source = "text"
	}
	h.Logger.Debug("INTAKE", "suggestion requested from "+source)

	h.respondSuggestion(w, r, req.Text, req.Apply, "")
}

// IntakeOCR reads an uploaded photo. A recognition failure still answers 200
// with a warning and the default suggestion.
func (h *Handler) IntakeOCR(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.Options.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.Options.MaxUploadBytes); err != nil {
		h.fail(w, http.StatusBadRequest, "Bild fehlt oder ist zu groß.", err)
		return
	}
	file, _, err := r.FormFile(imageField)
	if err != nil {
		h.fail(w, http.StatusBadRequest, "Bild fehlt oder ist zu groß.", err)
		return
	}
	defer file.Close()

	apply, _ := strconv.ParseBool(r.FormValue("apply"))

	text, err := h.OCR.Extract(r.Context(), file)
	if err != nil {
		if !ocr.IsExtractionFailure(err) {
			h.fail(w, http.StatusInternalServerError, msgServerError, err)
			return
		}
		h.Logger.Warn("OCR", err.Error())
		h.respondSuggestion(w, r, "", false, msgOCRFail)
		return
	}

	h.respondSuggestion(w, r, text, apply, "")
}

func (h *Handler) respondSuggestion(w http.ResponseWriter, r *http.Request, text string, apply bool, warning string) {
	sug := h.Normalizer.Suggest(text)
	resp := intakeResponse{Text: text, Suggestion: sug, Warning: warning}

	if apply {
		s := auth.Session(r)
		s.ApplySuggestion(sug)
		if err := h.Sessions.Save(r.Context(), s); err != nil {
			h.fail(w, http.StatusInternalServerError, msgServerError, err)
			return
		}
		resp.Applied = true
		resp.Draft = &s.Draft
	}

	ok(w, http.StatusOK, "Vorschlag", resp)
}
