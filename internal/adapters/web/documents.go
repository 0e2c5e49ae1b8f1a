package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"invoice-generator/internal/app"
)

func (h *Handler) listTemplates(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ListTemplates(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

func (h *Handler) getTemplate(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.GetTemplate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

func (h *Handler) lintTemplates(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.LintTemplates(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

// calculate returns the recomputed form state. Validation problems are reported in
// the body, not as an error status, so a client can recompute on every keystroke.
func (h *Handler) calculate(w http.ResponseWriter, r *http.Request) {
	var req app.DocumentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.Calculate(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

// preview returns the rendered HTML as JSON, or as a bare HTML page when the
// client asks for text/html via ?format=html.
func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	var req app.DocumentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.Preview(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if r.URL.Query().Get("format") == "html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(res.HTML))
		return
	}
	writeJSON(w, res)
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	var req app.GenerateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.Generate(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, res)
}

func (h *Handler) amountInWords(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.AmountInWords(r.Context(), r.URL.Query().Get("amount"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}
