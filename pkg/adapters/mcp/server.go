package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/campaignguide"
	"github.com/aretw0/campaignguide/internal/logging"
	"github.com/aretw0/campaignguide/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ScenariosURI is the resource listing the authored scenarios.
const ScenariosURI = "campaign://scenarios"

// Engine defines the campaign guide operations exposed as MCP tools.
// *campaignguide.Engine implements it.
type Engine interface {
	Content() domain.Content
	Process(ctx context.Context, campaignID string) (*domain.ProcessedCampaign, error)
	ProcessStandalone(ctx context.Context, campaignID, scenarioID string) (*domain.ProcessedCampaign, error)
	Next(ctx context.Context, campaignID string) (domain.UnprocessedScenario, bool, error)
	Record(ctx context.Context, campaignID string, decisions ...campaignguide.Decision) (*domain.ProcessedCampaign, error)
	Undo(ctx context.Context, campaignID, scenarioID string) (*domain.ProcessedCampaign, error)
	Graph(ctx context.Context, campaignID string) (string, error)
}

// TraceResult is the structured output of the walk tools.
type TraceResult struct {
	CampaignID string        `json:"campaign_id" jsonschema_description:"The campaign instance that was walked"`
	Playable   string        `json:"playable,omitempty" jsonschema_description:"Encoded id of the scenario the players may start next"`
	Scenarios  []ScenarioRow `json:"scenarios" jsonschema_description:"Every scenario of the execution trace in walk order"`
}

// ScenarioRow is one entry of a TraceResult.
type ScenarioRow struct {
	ID          string        `json:"id"`
	Name        string        `json:"name,omitempty"`
	Status      domain.Status `json:"status"`
	Side        bool          `json:"side,omitempty"`
	CanUndo     bool          `json:"can_undo,omitempty"`
	PendingStep string        `json:"pending_step,omitempty" jsonschema_description:"Step waiting for a decision when the scenario is started"`
}

// NextResult is the structured output of next_scenario.
type NextResult struct {
	Done     bool   `json:"done" jsonschema_description:"True when the campaign has no next scenario"`
	Scenario string `json:"scenario,omitempty"`
	Name     string `json:"name,omitempty"`
	Side     bool   `json:"side,omitempty"`
}

// ProcessArgs are the arguments of process_campaign.
type ProcessArgs struct {
	CampaignID string `json:"campaign_id"`
	Standalone string `json:"standalone_scenario,omitempty"`
}

// NextArgs are the arguments of next_scenario.
type NextArgs struct {
	CampaignID string `json:"campaign_id"`
}

// RecordArgs are the arguments of record_decision.
type RecordArgs struct {
	CampaignID string `json:"campaign_id"`
	Decision   string `json:"decision"`
}

// UndoArgs are the arguments of undo_scenario.
type UndoArgs struct {
	CampaignID string `json:"campaign_id"`
	Scenario   string `json:"scenario"`
}

// Server wraps the campaign guide Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the MCP server.
type Option func(*Server)

// WithLogger sets the logger of the server (default: discard).
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, opts ...Option) *Server {
	s := &Server{
		engine: engine,
		logger: logging.NewNop(),
		mcpServer: server.NewMCPServer("campaignguide-mcp", strings.TrimSpace(campaignguide.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP SSE transport on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	baseURL := "http://" + addr
	if strings.HasPrefix(addr, ":") {
		baseURL = "http://localhost" + addr
	}
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("process_campaign",
		mcp.WithDescription("Walk a campaign instance and return the status of every scenario."),
		mcp.WithString("campaign_id", mcp.Required(), mcp.Description("The campaign instance to walk")),
		mcp.WithString("standalone_scenario", mcp.Description("Walk only this scenario, played outside its campaign (optional)")),
		mcp.WithOutputSchema[TraceResult](),
	), mcp.NewStructuredToolHandler(s.handleProcess))

	s.mcpServer.AddTool(mcp.NewTool("next_scenario",
		mcp.WithDescription("Return the scenario that follows the campaign log of an instance."),
		mcp.WithString("campaign_id", mcp.Required(), mcp.Description("The campaign instance")),
		mcp.WithOutputSchema[NextResult](),
	), mcp.NewStructuredToolHandler(s.handleNext))

	s.mcpServer.AddTool(mcp.NewTool("record_decision",
		mcp.WithDescription("Record one player decision and return the new trace."),
		mcp.WithString("campaign_id", mcp.Required(), mcp.Description("The campaign instance")),
		mcp.WithString("decision", mcp.Required(), mcp.Description(`JSON decision, e.g. {"type":"choice","scenario":"a","step":"$play_scenario","number":0}`)),
		mcp.WithOutputSchema[TraceResult](),
	), mcp.NewStructuredToolHandler(s.handleRecord))

	s.mcpServer.AddTool(mcp.NewTool("undo_scenario",
		mcp.WithDescription("Remove the newest decision of the campaign and return the new trace. Only the scenario marked can_undo is accepted."),
		mcp.WithString("campaign_id", mcp.Required(), mcp.Description("The campaign instance")),
		mcp.WithString("scenario", mcp.Required(), mcp.Description("Encoded scenario id")),
		mcp.WithOutputSchema[TraceResult](),
	), mcp.NewStructuredToolHandler(s.handleUndo))

	s.mcpServer.AddTool(mcp.NewTool("campaign_graph",
		mcp.WithDescription("Render the campaign as a Mermaid flowchart, painted with the statuses of an instance when given."),
		mcp.WithString("campaign_id", mcp.Description("The campaign instance (optional)")),
	), s.handleGraph)
}

func (s *Server) handleProcess(ctx context.Context, request mcp.CallToolRequest, args ProcessArgs) (TraceResult, error) {
	if args.CampaignID == "" {
		return TraceResult{}, errors.New("campaign_id is required")
	}
	var (
		trace *domain.ProcessedCampaign
		err   error
	)
	if args.Standalone != "" {
		trace, err = s.engine.ProcessStandalone(ctx, args.CampaignID, args.Standalone)
	} else {
		trace, err = s.engine.Process(ctx, args.CampaignID)
	}
	if err != nil {
		return TraceResult{}, fmt.Errorf("process failed: %w", err)
	}
	return NewTraceResult(args.CampaignID, trace), nil
}

func (s *Server) handleNext(ctx context.Context, request mcp.CallToolRequest, args NextArgs) (NextResult, error) {
	if args.CampaignID == "" {
		return NextResult{}, errors.New("campaign_id is required")
	}
	next, ok, err := s.engine.Next(ctx, args.CampaignID)
	if err != nil {
		return NextResult{}, fmt.Errorf("next failed: %w", err)
	}
	if !ok {
		return NextResult{Done: true}, nil
	}
	return NextResult{
		Scenario: next.ID.EncodedScenarioID,
		Name:     scenarioName(next.Scenario),
		Side:     next.Side,
	}, nil
}

func (s *Server) handleRecord(ctx context.Context, request mcp.CallToolRequest, args RecordArgs) (TraceResult, error) {
	if args.CampaignID == "" {
		return TraceResult{}, errors.New("campaign_id is required")
	}
	var decision campaignguide.Decision
	if err := json.Unmarshal([]byte(args.Decision), &decision); err != nil {
		s.logger.Warn("MCP record_decision: decision rejected", "err", err, "size", len(args.Decision))
		return TraceResult{}, fmt.Errorf("decision is not valid JSON: %w", err)
	}
	trace, err := s.engine.Record(ctx, args.CampaignID, decision)
	if err != nil {
		return TraceResult{}, fmt.Errorf("record failed: %w", err)
	}
	return NewTraceResult(args.CampaignID, trace), nil
}

func (s *Server) handleUndo(ctx context.Context, request mcp.CallToolRequest, args UndoArgs) (TraceResult, error) {
	if args.CampaignID == "" || args.Scenario == "" {
		return TraceResult{}, errors.New("campaign_id and scenario are required")
	}
	trace, err := s.engine.Undo(ctx, args.CampaignID, args.Scenario)
	if err != nil {
		return TraceResult{}, fmt.Errorf("undo failed: %w", err)
	}
	return NewTraceResult(args.CampaignID, trace), nil
}

func (s *Server) handleGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	diagram, err := s.engine.Graph(ctx, request.GetString("campaign_id", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("graph failed: %v", err)), nil
	}
	return mcp.NewToolResultText(diagram), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(ScenariosURI, "Campaign Scenarios",
		mcp.WithResourceDescription("Main scenarios in play order followed by the side scenarios"),
		mcp.WithMIMEType("application/json"),
	), s.readScenarios)
}

func (s *Server) readScenarios(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	payload, err := json.Marshal(Scenarios(s.engine.Content()))
	if err != nil {
		return nil, fmt.Errorf("failed to encode scenarios: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      ScenariosURI,
			MIMEType: "application/json",
			Text:     string(payload),
		},
	}, nil
}

// ScenarioEntry is one element of the campaign://scenarios resource.
type ScenarioEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Side bool   `json:"side,omitempty"`
	Main string `json:"main_scenario_id,omitempty"`
}

// Scenarios lists the main scenarios in play order followed by the side scenarios.
func Scenarios(content domain.Content) []ScenarioEntry {
	var out []ScenarioEntry
	for _, s := range content.Campaign.Scenarios {
		out = append(out, ScenarioEntry{ID: s.ID, Name: scenarioName(&s)})
	}
	for _, s := range content.SideCampaign.Scenarios {
		out = append(out, ScenarioEntry{ID: s.ID, Name: scenarioName(&s), Side: true, Main: s.MainScenarioID})
	}
	return out
}

// NewTraceResult flattens a processed campaign into tool output.
func NewTraceResult(campaignID string, trace *domain.ProcessedCampaign) TraceResult {
	out := TraceResult{CampaignID: campaignID, Scenarios: make([]ScenarioRow, 0, len(trace.Scenarios))}
	for _, s := range trace.Scenarios {
		row := ScenarioRow{
			ID:      s.ID.EncodedScenarioID,
			Name:    scenarioName(s.Scenario),
			Status:  s.Status,
			Side:    s.Side,
			CanUndo: s.CanUndo,
		}
		if s.Status == domain.StatusStarted && len(s.Steps) > 0 {
			if last := s.Steps[len(s.Steps)-1]; last.Pending {
				row.PendingStep = last.ID
			}
		}
		out.Scenarios = append(out.Scenarios, row)
	}
	if p, ok := trace.Playable(); ok {
		out.Playable = p.ID.EncodedScenarioID
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
