package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/campaignguide"
	"github.com/aretw0/campaignguide/internal/logging"
	"github.com/aretw0/campaignguide/pkg/domain"
	"github.com/go-chi/chi/v5"
)

// Engine defines the campaign guide operations served over HTTP.
// *campaignguide.Engine implements it.
type Engine interface {
	Content() domain.Content
	Process(ctx context.Context, campaignID string) (*domain.ProcessedCampaign, error)
	Next(ctx context.Context, campaignID string) (domain.UnprocessedScenario, bool, error)
	Record(ctx context.Context, campaignID string, decisions ...campaignguide.Decision) (*domain.ProcessedCampaign, error)
	Undo(ctx context.Context, campaignID, scenarioID string) (*domain.ProcessedCampaign, error)
	Reset(ctx context.Context, campaignID string) error
	Graph(ctx context.Context, campaignID string) (string, error)
}

// Server holds the engine and the live trace subscriptions.
type Server struct {
	Engine  Engine
	Streams *StreamManager
	Logger  *slog.Logger
}

// Option configures the HTTP handler.
type Option func(*Server)

// WithLogger sets the logger of the handler (default: discard).
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	server := &Server{
		Engine: engine,
		Logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(server)
	}
	server.Streams = NewStreamManager(server.Logger)

	r := chi.NewRouter()
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/scenarios", server.ListScenarios)
	r.Get("/graph", server.GetGraph)
	r.Route("/campaigns/{campaignID}", func(r chi.Router) {
		r.Get("/", server.GetTrace)
		r.Delete("/", server.ResetCampaign)
		r.Get("/next", server.GetNext)
		r.Get("/graph", server.GetGraph)
		r.Get("/events", server.SubscribeEvents)
		r.Post("/decisions", server.RecordDecisions)
		r.Post("/undo", server.UndoScenario)
	})
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// TraceResponse is the JSON shape of a processed campaign.
type TraceResponse struct {
	CampaignID string         `json:"campaign_id"`
	Playable   string         `json:"playable,omitempty"`
	Scenarios  []ScenarioView `json:"scenarios"`
}

// ScenarioView is one trace entry with the display name resolved.
type ScenarioView struct {
	domain.ProcessedScenario
	Name string `json:"name,omitempty"`
}

// ScenarioSummary is one authored scenario of the campaign.
type ScenarioSummary struct {
	ID     string              `json:"id"`
	Name   string              `json:"name"`
	Type   domain.ScenarioType `json:"type,omitempty"`
	Side   bool                `json:"side,omitempty"`
	Main   string              `json:"main_scenario_id,omitempty"`
	XPCost int                 `json:"xp_cost,omitempty"`
}

// DecisionsRequest is the body of POST /campaigns/{id}/decisions.
type DecisionsRequest struct {
	Decisions []campaignguide.Decision `json:"decisions"`
}

// UndoRequest is the body of POST /campaigns/{id}/undo.
type UndoRequest struct {
	Scenario string `json:"scenario"`
}

// NextResponse is the body of GET /campaigns/{id}/next.
type NextResponse struct {
	Done     bool   `json:"done"`
	Scenario string `json:"scenario,omitempty"`
	Name     string `json:"name,omitempty"`
	Side     bool   `json:"side,omitempty"`
}

// GetTrace handles the GET /campaigns/{id} request.
func (s *Server) GetTrace(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "campaignID")
	trace, err := s.Engine.Process(r.Context(), id)
	if err != nil {
		s.fail(w, "Process", err)
		return
	}
	s.writeJSON(w, http.StatusOK, NewTraceResponse(id, trace))
}

// GetNext handles the GET /campaigns/{id}/next request.
func (s *Server) GetNext(w http.ResponseWriter, r *http.Request) {
	next, ok, err := s.Engine.Next(r.Context(), chi.URLParam(r, "campaignID"))
	if err != nil {
		s.fail(w, "Next", err)
		return
	}
	if !ok {
		s.writeJSON(w, http.StatusOK, NextResponse{Done: true})
		return
	}
	s.writeJSON(w, http.StatusOK, NextResponse{
		Scenario: next.ID.EncodedScenarioID,
		Name:     scenarioName(next.Scenario),
		Side:     next.Side,
	})
}

// RecordDecisions handles the POST /campaigns/{id}/decisions request.
func (s *Server) RecordDecisions(w http.ResponseWriter, r *http.Request) {
	var body DecisionsRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("RecordDecisions: Invalid request body", "err", err)
		return
	}
	if len(body.Decisions) == 0 {
		http.Error(w, "No decisions", http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "campaignID")
	trace, err := s.Engine.Record(r.Context(), id, body.Decisions...)
	if err != nil {
		s.fail(w, "Record", err)
		return
	}
	resp := NewTraceResponse(id, trace)
	s.broadcast(id, resp)
	s.writeJSON(w, http.StatusOK, resp)
}

// UndoScenario handles the POST /campaigns/{id}/undo request.
func (s *Server) UndoScenario(w http.ResponseWriter, r *http.Request) {
	var body UndoRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Scenario == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("UndoScenario: Invalid request body", "err", err)
		return
	}

	id := chi.URLParam(r, "campaignID")
	trace, err := s.Engine.Undo(r.Context(), id, body.Scenario)
	if err != nil {
		s.fail(w, "Undo", err)
		return
	}
	resp := NewTraceResponse(id, trace)
	s.broadcast(id, resp)
	s.writeJSON(w, http.StatusOK, resp)
}

// ResetCampaign handles the DELETE /campaigns/{id} request.
func (s *Server) ResetCampaign(w http.ResponseWriter, r *http.Request) {
	if err := s.Engine.Reset(r.Context(), chi.URLParam(r, "campaignID")); err != nil {
		s.fail(w, "Reset", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetGraph handles the GET /graph and GET /campaigns/{id}/graph requests.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	diagram, err := s.Engine.Graph(r.Context(), chi.URLParam(r, "campaignID"))
	if err != nil {
		s.fail(w, "Graph", err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, diagram)
}

// ListScenarios handles the GET /scenarios request.
func (s *Server) ListScenarios(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, Scenarios(s.Engine.Content()))
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	campaign := s.Engine.Content().Campaign.Campaign
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "campaignguide-http",
		"version":     strings.TrimSpace(campaignguide.Version),
		"campaign_id": campaign.ID,
		"campaign":    campaign.Name,
	})
}

// NewTraceResponse flattens a processed campaign for transport.
func NewTraceResponse(campaignID string, trace *domain.ProcessedCampaign) TraceResponse {
	resp := TraceResponse{CampaignID: campaignID, Scenarios: make([]ScenarioView, 0, len(trace.Scenarios))}
	for _, s := range trace.Scenarios {
		resp.Scenarios = append(resp.Scenarios, ScenarioView{ProcessedScenario: s, Name: scenarioName(s.Scenario)})
	}
	if p, ok := trace.Playable(); ok {
		resp.Playable = p.ID.EncodedScenarioID
	}
	return resp
}

// Scenarios lists the main scenarios in play order followed by the side scenarios.
func Scenarios(content domain.Content) []ScenarioSummary {
	var out []ScenarioSummary
	for _, s := range content.Campaign.Scenarios {
		out = append(out, ScenarioSummary{ID: s.ID, Name: scenarioName(&s), Type: s.Type, XPCost: s.XPCost})
	}
	for _, s := range content.SideCampaign.Scenarios {
		out = append(out, ScenarioSummary{ID: s.ID, Name: scenarioName(&s), Type: s.Type, Side: true, Main: s.MainScenarioID, XPCost: s.XPCost})
	}
	return out
}

func scenarioName(s *domain.Scenario) string {
	if s == nil {
		return ""
	}
	if s.FullName != "" {
		return s.FullName
	}
	if s.ScenarioName != "" {
		return s.ScenarioName
	}
	return s.ID
}

func (s *Server) broadcast(campaignID string, resp TraceResponse) {
	payload, err := json.Marshal(resp)
	if err != nil {
		s.Logger.Error("trace encode failed", "campaign_id", campaignID, "err", err)
		return
	}
	s.Streams.Broadcast(campaignID, string(payload))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "err", err)
	}
}

// fail maps engine errors to status codes.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	var malformed *domain.MalformedScenarioIDError
	switch {
	case errors.Is(err, campaignguide.ErrInvalidDecision), errors.As(err, &malformed):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrCampaignNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrCampaignUpdateRequired), errors.Is(err, domain.ErrUndoRejected):
		status = http.StatusConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		s.Logger.Error(op+" failed", "err", err)
	} else {
		s.Logger.Warn(op+" rejected", "err", err, "status", status)
	}
	http.Error(w, fmt.Sprintf("%s error: %v", op, err), status)
}
