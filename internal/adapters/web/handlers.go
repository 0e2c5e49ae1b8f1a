package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"invoice-generator/internal/app"
)

const (
	jsonBodyLimit  = 1 << 20  // 1 MB
	audioBodyLimit = 25 << 20 // upload cap of the transcription endpoint
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc    app.ApplicationService
	router chi.Router
}

// NewHandler creates and wires the chi router with all routes. metrics may be nil,
// in which case /metrics is not served.
func NewHandler(svc app.ApplicationService, allowedOrigins []string, metrics http.Handler) http.Handler {
	h := &Handler{svc: svc}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(log.Logger))
	r.Use(Recoverer(log.Logger))
	r.Use(CORS(allowedOrigins))

	r.Get("/api/health", h.health)
	if metrics != nil {
		r.Handle("/metrics", metrics)
	}

	// Multipart upload: body limit is set to the audio cap inside the group.
	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(audioBodyLimit))
		r.Post("/api/assist/audio", h.assistAudio)
	})

	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(jsonBodyLimit))

		// ── Templates ────────────────────────────────────────────────────────
		r.Get("/api/templates", h.listTemplates)
		r.Get("/api/templates/lint", h.lintTemplates)
		r.Get("/api/templates/{id}", h.getTemplate)

		// ── Documents ────────────────────────────────────────────────────────
		r.Post("/api/documents/calculate", h.calculate)
		r.Post("/api/documents/preview", h.preview)
		r.Post("/api/documents/generate", h.generate)
		r.Get("/api/words", h.amountInWords)

		// ── File history ─────────────────────────────────────────────────────
		r.Get("/api/files", h.listFiles)
		r.Get("/api/files/{id}", h.downloadFile)
		r.Patch("/api/files/{id}", h.renameFile)
		r.Delete("/api/files/{id}", h.deleteFile)

		// ── AI assistant ─────────────────────────────────────────────────────
		r.Post("/api/assist/text", h.assistText)
	})

	h.router = r
	return r
}

// health reports service status and how many templates are loaded.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	templates := 0
	if res, err := h.svc.ListTemplates(r.Context()); err == nil {
		templates = len(res.Templates)
	}

	type response struct {
		Status    string `json:"status"`
		Templates int    `json:"templates"`
	}

	writeJSON(w, response{Status: "ok", Templates: templates})
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
