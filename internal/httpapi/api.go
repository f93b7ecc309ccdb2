// Package httpapi exposes the voice-resolution results over HTTP.
//
// The surface is read-mostly JSON:
//
//   - GET  /v1/voices                — every voice in the current catalog
//   - GET  /v1/voices/{language}     — resolved voices for one configured language
//   - GET  /v1/resolution            — the full per-language resolution mapping
//   - GET  /v1/selections/{profile}  — a stored selection and its current acceptability
//   - PUT  /v1/selections/{profile}  — validate and persist a voice selection
//
// Selection routes are only registered when a selection store is configured.
// Errors are JSON objects with a single "error" field.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/0x0all/brojko/internal/observe"
	"github.com/0x0all/brojko/internal/selection"
	"github.com/0x0all/brojko/internal/suggest"
	"github.com/0x0all/brojko/pkg/voice"
)

// SelectionStore is the persistence surface the API needs for selections.
// Implemented by [selection.Store].
type SelectionStore interface {
	Save(ctx context.Context, profileID, language string, id voice.Identity) error
	Load(ctx context.Context, profileID string) (selection.Selection, error)
}

// Option is a functional option for configuring a [Server].
type Option func(*Server)

// WithSelectionStore enables the selection endpoints backed by store.
func WithSelectionStore(store SelectionStore) Option {
	return func(s *Server) {
		s.store = store
	}
}

// WithMetrics sets the metrics instance. Default: [observe.DefaultMetrics].
func WithMetrics(m *observe.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithReadyChecks registers additional readiness checkers for /readyz.
func WithReadyChecks(checkers ...Checker) Option {
	return func(s *Server) {
		s.checkers = append(s.checkers, checkers...)
	}
}

// Server serves the resolution of one catalog snapshot. It is read-only after
// construction and safe for concurrent use; a re-enumerated platform means a
// new Server wired to the new catalog.
type Server struct {
	catalog   *voice.Catalog
	grouped   voice.VoicesByLanguage
	store     SelectionStore
	suggester *suggest.Suggester
	metrics   *observe.Metrics
	checkers  []Checker
}

// New creates a Server for the given catalog and its resolved grouping.
func New(catalog *voice.Catalog, grouped voice.VoicesByLanguage, opts ...Option) *Server {
	s := &Server{
		catalog:   catalog,
		grouped:   grouped,
		suggester: suggest.New(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.metrics == nil {
		s.metrics = observe.DefaultMetrics()
	}
	return s
}

// Register adds all routes to mux. The v1 routes are wrapped in the observe
// middleware; health probes are served bare.
func (s *Server) Register(mux *http.ServeMux) {
	wrap := observe.Middleware(s.metrics)

	mux.Handle("GET /v1/voices", wrap(http.HandlerFunc(s.handleListVoices)))
	mux.Handle("GET /v1/voices/{language}", wrap(http.HandlerFunc(s.handleLanguageVoices)))
	mux.Handle("GET /v1/resolution", wrap(http.HandlerFunc(s.handleResolution)))
	if s.store != nil {
		mux.Handle("GET /v1/selections/{profile}", wrap(http.HandlerFunc(s.handleGetSelection)))
		mux.Handle("PUT /v1/selections/{profile}", wrap(http.HandlerFunc(s.handlePutSelection)))
	}
	s.registerHealth(mux)
}

// ---- Wire types ----

// voiceJSON is the wire form of a voice identity.
type voiceJSON struct {
	Language string `json:"language"`
	Name     string `json:"name"`
	Key      string `json:"key"`
}

func toVoiceJSON(id voice.Identity) voiceJSON {
	return voiceJSON{Language: id.Language(), Name: id.Name(), Key: id.Key()}
}

func toVoiceList(ids []voice.Identity) []voiceJSON {
	out := make([]voiceJSON, len(ids))
	for i, id := range ids {
		out[i] = toVoiceJSON(id)
	}
	return out
}

// selectionRequest is the PUT /v1/selections/{profile} body.
type selectionRequest struct {
	Language string `json:"language"`
	Key      string `json:"key"`
}

// selectionResponse is returned by both selection endpoints.
type selectionResponse struct {
	Profile    string     `json:"profile"`
	Language   string     `json:"language"`
	Voice      voiceJSON  `json:"voice"`
	Acceptable bool       `json:"acceptable"`
	Suggestion *voiceJSON `json:"suggestion,omitempty"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// ---- Handlers ----

func (s *Server) handleListVoices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toVoiceList(s.catalog.Identities()))
}

func (s *Server) handleLanguageVoices(w http.ResponseWriter, r *http.Request) {
	language := r.PathValue("language")
	voices, ok := s.grouped[language]
	if !ok {
		writeError(w, http.StatusNotFound, "language not configured: "+language)
		return
	}
	writeJSON(w, http.StatusOK, toVoiceList(voices))
}

func (s *Server) handleResolution(w http.ResponseWriter, r *http.Request) {
	out := make(map[string][]voiceJSON, len(s.grouped))
	for language, voices := range s.grouped {
		out[language] = toVoiceList(voices)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetSelection(w http.ResponseWriter, r *http.Request) {
	profile := r.PathValue("profile")

	sel, err := s.store.Load(r.Context(), profile)
	if errors.Is(err, selection.ErrNotFound) {
		writeError(w, http.StatusNotFound, "no selection stored for profile "+profile)
		return
	}
	if err != nil {
		observe.Logger(r.Context()).Error("load selection", "profile", profile, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to load selection")
		return
	}

	resp := selectionResponse{
		Profile:    profile,
		Language:   sel.Language,
		Voice:      toVoiceJSON(sel.Voice),
		Acceptable: s.grouped.IsAcceptable(sel.Voice, sel.Language),
		UpdatedAt:  &sel.UpdatedAt,
	}
	if !resp.Acceptable {
		if alt, ok := s.suggester.Closest(sel.Voice.Name(), s.grouped[sel.Language]); ok {
			v := toVoiceJSON(alt)
			resp.Suggestion = &v
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePutSelection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	profile := r.PathValue("profile")

	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	id, err := voice.ParseKey(req.Key)
	if err != nil {
		s.metrics.RecordSelectionCheck(ctx, "malformed")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !s.grouped.IsAcceptable(id, req.Language) {
		s.metrics.RecordSelectionCheck(ctx, "rejected")
		resp := selectionResponse{
			Profile:  profile,
			Language: req.Language,
			Voice:    toVoiceJSON(id),
		}
		if alt, ok := s.suggester.Closest(id.Name(), s.grouped[req.Language]); ok {
			v := toVoiceJSON(alt)
			resp.Suggestion = &v
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	if err := s.store.Save(ctx, profile, req.Language, id); err != nil {
		observe.Logger(ctx).Error("save selection", "profile", profile, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to persist selection")
		return
	}

	s.metrics.RecordSelectionCheck(ctx, "acceptable")
	writeJSON(w, http.StatusOK, selectionResponse{
		Profile:    profile,
		Language:   req.Language,
		Voice:      toVoiceJSON(id),
		Acceptable: true,
	})
}

// ---- JSON helpers ----

// writeJSON encodes v as JSON and writes it with the given status code. On
// encoding failure it falls back to a plain 500 response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "err", err)
		http.Error(w, `{"error":"encoding failure"}`, http.StatusInternalServerError)
	}
}

// writeError writes a JSON error object with the given status code.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
