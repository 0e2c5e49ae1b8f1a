package web

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"invoice-generator/internal/app"
	"invoice-generator/internal/export"
)

func (h *Handler) listFiles(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ListFiles(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

// downloadFile streams a generated file as an attachment.
func (h *Handler) downloadFile(w http.ResponseWriter, r *http.Request) {
	file, rc, err := h.svc.OpenFile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", export.Format(file.Format).ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": filepath.Base(file.FilePath),
	}))
	if _, err := io.Copy(w, rc); err != nil {
		log.Warn().Err(err).Str("file", file.FilePath).Msg("download interrupted")
	}
}

func (h *Handler) renameFile(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	file, err := h.svc.RenameFile(r.Context(), app.RenameFileRequest{ID: chi.URLParam(r, "id"), Name: body.Name})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, file)
}

func (h *Handler) deleteFile(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteFile(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
