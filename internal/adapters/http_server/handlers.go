// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"travel_ideas/internal/app"
	"travel_ideas/internal/domain"
)

// DaysRange is the trip length the form allows; the estimators do not check it.
type DaysRange struct{ Min, Max, Default int }

type Handlers struct {
	Explore *app.ExploreService
	Compare *app.CompareService
	Days    DaysRange
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type optionsResponse struct {
	Origin  string        `json:"origin"`
	Months  []string      `json:"months"`
	Tags    []string      `json:"tags"`
	Tiers   []domain.Tier `json:"tiers"`
	MinDays int           `json:"min_days"`
	MaxDays int           `json:"max_days"`
	Days    int           `json:"default_days"`
}

type addCompareRequest struct {
	CountryISO2 string `json:"country_iso2"`
	Name        string `json:"name"`
	Days        *int   `json:"days"`
	Tier        string `json:"cost_level"`
	Month       string `json:"month"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/regions", h.regions)
	s.mux.Get("/v1/options", h.options)
	s.mux.Get("/v1/explore", h.explore)
	s.mux.Post("/v1/sessions", h.newSession)
	s.mux.Route("/v1/sessions/{sid}/compare", func(r chi.Router) {
		r.Get("/", h.listCompare)
		r.Post("/", h.addCompare)
		r.Delete("/", h.clearCompare)
		r.Get("/view", h.viewCompare)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps the domain error taxonomy onto problem responses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
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

// writeJSON answers GETs with a weak ETag and honors If-None-Match.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	if r.Method == http.MethodGet && etag != "" {
		if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
			w.Header().Set("ETag", etag)
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", etag)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

func (h *Handlers) regions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.Explore.Regions())
}

func (h *Handlers) options(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, optionsResponse{
		Origin:  h.Explore.Origin(),
		Months:  h.Explore.Months(),
		Tags:    h.Explore.Tags(),
		Tiers:   domain.Tiers,
		MinDays: h.Days.Min,
		MaxDays: h.Days.Max,
		Days:    h.Days.Default,
	})
}

func (h *Handlers) explore(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	days, err := h.parseDays(qs.Get("days"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid days", err.Error())
		return
	}
	q := domain.ExploreQuery{
		CountryISO2: qs.Get("country"),
		Tags:        splitTags(qs["tags"]),
		Month:       normalizeMonth(qs.Get("month")),
		Days:        days,
		Tier:        domain.Tier(strings.ToLower(strings.TrimSpace(qs.Get("tier")))),
	}
	res, err := h.Explore.Explore(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *Handlers) newSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusCreated, map[string]string{"session_id": h.Compare.NewSession()})
}

func (h *Handlers) listCompare(w http.ResponseWriter, r *http.Request) {
	items, err := h.Compare.List(r.Context(), chi.URLParam(r, "sid"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, items)
}

func (h *Handlers) viewCompare(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Compare.View(r.Context(), chi.URLParam(r, "sid"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, entries)
}

func (h *Handlers) addCompare(w http.ResponseWriter, r *http.Request) {
	var req addCompareRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "body must be a JSON object")
		return
	}
	days := h.Days.Default
	if req.Days != nil {
		days = *req.Days
	}
	if err := h.checkDays(days); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid days", err.Error())
		return
	}
	item, err := h.Compare.Add(r.Context(), chi.URLParam(r, "sid"), domain.CompareItem{
		CountryISO2: req.CountryISO2,
		SpotName:    req.Name,
		Days:        days,
		CostTier:    domain.Tier(strings.ToLower(strings.TrimSpace(req.Tier))),
		Month:       normalizeMonth(req.Month),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, item)
}

func (h *Handlers) clearCompare(w http.ResponseWriter, r *http.Request) {
	if err := h.Compare.Clear(r.Context(), chi.URLParam(r, "sid")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) parseDays(s string) (int, error) {
	if s == "" {
		return h.Days.Default, nil
	}
	d, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("days must be an integer between %d and %d", h.Days.Min, h.Days.Max)
	}
	return d, h.checkDays(d)
}

func (h *Handlers) checkDays(d int) error {
	if d < h.Days.Min || d > h.Days.Max {
		return fmt.Errorf("days must be an integer between %d and %d", h.Days.Min, h.Days.Max)
	}
	return nil
}

// splitTags accepts repeated ?tags= params, comma-separated values, or both.
func splitTags(raw []string) []string {
	var out []string
	for _, v := range raw {
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				out = append(out, t)
			}
		}
	}
	return out
}

func normalizeMonth(m string) string {
	m = strings.TrimSpace(m)
	if strings.EqualFold(m, "any") {
		return ""
	}
	return m
}
