package calendar_api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// StreamChanges pushes created/deleted notifications so open pages can
// refresh without polling.
func (h *Handler) StreamChanges(w http.ResponseWriter, r *http.Request) {
	flusher, canFlush := w.(http.Flusher)
	if h.Changes == nil || !canFlush {
		h.fail(w, http.StatusNotImplemented, "Live-Aktualisierung nicht verfügbar.", nil)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	// the stream outlives the server's write timeout
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	ctx := r.Context()
	changes := h.Changes.Subscribe(ctx)

	fmt.Fprint(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()
	h.Logger.Debug("SSE", "Client connected to change stream")

	for {
		select {
		case change, ok := <-changes:
			if !ok {
				return
			}
			jsonData, err := json.Marshal(change)
			if err != nil {
				h.Logger.Error("SSE", fmt.Sprintf("Failed to serialize change: %v", err))
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", change.Type, jsonData)
			flusher.Flush()

		case <-ctx.Done():
			h.Logger.Debug("SSE", "Client disconnected from change stream")
			return
		}
	}
}
