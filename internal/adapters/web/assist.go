package web

import (
	"errors"
	"net/http"
	"strings"

	"invoice-generator/internal/app"
)

func (h *Handler) assistText(w http.ResponseWriter, r *http.Request) {
	var req app.AssistRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.DraftFromText(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

// assistAudio accepts a multipart form with a "file" voice note and a
// "templateId" field.
func (h *Handler) assistAudio(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(audioBodyLimit); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "audio file too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return
		}
		writeError(w, r, "invalid multipart form: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, "missing audio file", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	defer file.Close()

	res, err := h.svc.DraftFromAudio(r.Context(), app.AudioAssistRequest{
		TemplateID: strings.TrimSpace(r.FormValue("templateId")),
		Audio:      file,
		Filename:   header.Filename,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}
