package httpserver

import (
	"crypto/sha1"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"giata_content/internal/app"
	"giata_content/internal/domain"
)

type Handlers struct{ Q *app.QueryService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/views", h.listViews)
	s.mux.Get("/v1/views/{view}", h.getView)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func (h *Handlers) listViews(w http.ResponseWriter, r *http.Request) {
	etag, body := calcETagAndBody(h.Q.Views())
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write views body")
	}
}

func (h *Handlers) getView(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "view")
	sort := r.URL.Query().Get("sort")

	ds, err := h.Q.Dataset(r.Context(), name, sort)
	switch {
	case errors.Is(err, domain.ErrUnknownView):
		writeProblem(w, http.StatusNotFound, "Not Found", "unknown view "+name)
		return
	case errors.Is(err, domain.ErrBadSort):
		writeProblem(w, http.StatusBadRequest, "Invalid sort", "sort must name a column of the view")
		return
	case err != nil:
		writeProblem(w, http.StatusInternalServerError, "Query failed", "")
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		writeCSV(w, name, ds)
		return
	}

	etag, body := calcETagAndBody(ds)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write view body")
	}
}

func writeCSV(w http.ResponseWriter, name string, ds domain.Dataset) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	if err := cw.Write(ds.Columns); err != nil {
		log.Error().Err(err).Msg("failed to write CSV header")
		return
	}
	for _, row := range ds.Rows {
		if err := cw.Write(row); err != nil {
			log.Error().Err(err).Msg("failed to write CSV row")
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		log.Error().Err(err).Msg("failed to flush CSV")
	}
}
