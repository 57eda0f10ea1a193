package campaignguide

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aretw0/campaignguide/internal/compiler"
	"github.com/aretw0/campaignguide/internal/logging"
	"github.com/aretw0/campaignguide/internal/presentation/graph"
	"github.com/aretw0/campaignguide/internal/runtime"
	"github.com/aretw0/campaignguide/internal/validator"
	"github.com/aretw0/campaignguide/pkg/adapters/file"
	"github.com/aretw0/campaignguide/pkg/adapters/memory"
	"github.com/aretw0/campaignguide/pkg/domain"
	"github.com/aretw0/campaignguide/pkg/logbook"
	"github.com/aretw0/campaignguide/pkg/ports"
	"github.com/aretw0/campaignguide/pkg/session"
)

// Engine is the high-level entry point for the campaign guide library.
// It wraps the internal runtime and keeps the player decisions of any
// number of campaign instances in a ports.Store.
type Engine struct {
	guide    *runtime.Guide
	content  domain.Content
	sessions *session.Manager

	source      ports.ContentSource
	contentSet  bool
	store       ports.Store
	sessionOpts []session.Option
	executor    ports.StepExecutor
	logs        ports.LogFactory
	hooks       domain.WalkHooks
	logger      *slog.Logger
	locale      string
	validate    bool

	mu     sync.Mutex
	traces map[string]*domain.ProcessedCampaign

	Name string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithSource reads campaign documents from src instead of the directory.
func WithSource(src ports.ContentSource) Option {
	return func(e *Engine) {
		e.source = src
	}
}

// WithContent uses already built content; no documents are read.
func WithContent(content domain.Content) Option {
	return func(e *Engine) {
		e.content = content
		e.contentSet = true
	}
}

// WithStore persists decisions in store (default: in memory).
func WithStore(store ports.Store) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLocker serializes decision writes across replicas.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.sessionOpts = append(e.sessionOpts, session.WithLocker(locker))
	}
}

// WithSessionOptions forwards options to the session manager.
func WithSessionOptions(opts ...session.Option) Option {
	return func(e *Engine) {
		e.sessionOpts = append(e.sessionOpts, opts...)
	}
}

// WithExecutor replaces the reference step executor and log factory.
func WithExecutor(executor ports.StepExecutor, logs ports.LogFactory) Option {
	return func(e *Engine) {
		e.executor = executor
		e.logs = logs
	}
}

// WithHooks registers walk observability hooks.
func WithHooks(hooks domain.WalkHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLocale sets the BCP 47 tag used to collate surfaced rules (default "en").
func WithLocale(lang string) Option {
	return func(e *Engine) {
		e.locale = lang
	}
}

// WithoutValidation skips schema and graph validation of the content.
func WithoutValidation() Option {
	return func(e *Engine) {
		e.validate = false
	}
}

// New compiles the campaign found in dir and initializes an Engine.
// If WithSource or WithContent is provided, dir is only used as a label.
func New(dir string, opts ...Option) (*Engine, error) {
	eng := &Engine{
		locale:   "en",
		validate: true,
		traces:   make(map[string]*domain.ProcessedCampaign),
	}
	for _, opt := range opts {
		opt(eng)
	}

	if !eng.contentSet {
		if eng.source == nil {
			if dir == "" {
				return nil, fmt.Errorf("dir is required when no source or content is provided")
			}
			absPath, err := filepath.Abs(dir)
			if err != nil {
				return nil, fmt.Errorf("invalid path: %w", err)
			}
			eng.source = file.NewLoader(absPath)
		}
		if eng.validate {
			if err := validator.ValidateCampaign(eng.source); err != nil {
				return nil, fmt.Errorf("invalid campaign: %w", err)
			}
		}
		content, err := compiler.Compile(eng.source)
		if err != nil {
			return nil, fmt.Errorf("failed to compile campaign: %w", err)
		}
		eng.content = content
	} else if eng.validate {
		if err := validator.ValidateContent(eng.content); err != nil {
			return nil, fmt.Errorf("invalid campaign: %w", err)
		}
	}

	eng.Name = eng.content.Campaign.Campaign.ID
	if eng.Name == "" && dir != "" {
		eng.Name = filepath.Base(dir)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	eng.logger = eng.logger.With("campaign", eng.Name)

	if eng.executor == nil {
		eng.executor = logbook.NewExecutor()
	}
	if eng.logs == nil {
		eng.logs = logbook.Factory{}
	}
	if eng.store == nil {
		eng.store = memory.NewStore()
	}

	eng.sessions = session.NewManager(eng.store, append([]session.Option{session.WithLogger(eng.logger)}, eng.sessionOpts...)...)
	eng.guide = runtime.NewGuide(eng.content, eng.executor, eng.logs,
		runtime.WithLogger(eng.logger),
		runtime.WithHooks(eng.hooks),
	)
	return eng, nil
}

// Guide returns the campaign guide for lookups that need no decisions.
func (e *Engine) Guide() *runtime.Guide {
	return e.guide
}

// Content returns the compiled campaign content.
func (e *Engine) Content() domain.Content {
	return e.content
}

// Sessions returns the manager that owns the stored decisions.
func (e *Engine) Sessions() *session.Manager {
	return e.sessions
}

// Locale returns the collation locale of surfaced rules.
func (e *Engine) Locale() string {
	return e.locale
}

// Decisions loads the decisions of a campaign instance. An unknown id yields
// an empty decision set that is not persisted.
func (e *Engine) Decisions(ctx context.Context, campaignID string) (*memory.Decisions, error) {
	decisions, err := e.sessions.Load(ctx, campaignID)
	if errors.Is(err, domain.ErrCampaignNotFound) {
		return memory.NewDecisions(campaignID), nil
	}
	return decisions, err
}

// Process walks the campaign instance and returns its execution trace.
// The trace of the previous walk is reused for scenarios whose decisions
// did not change.
func (e *Engine) Process(ctx context.Context, campaignID string) (*domain.ProcessedCampaign, error) {
	return e.process(ctx, campaignID, "")
}

// ProcessStandalone walks a single scenario played outside its campaign.
func (e *Engine) ProcessStandalone(ctx context.Context, campaignID, scenarioID string) (*domain.ProcessedCampaign, error) {
	if scenarioID == "" {
		return nil, fmt.Errorf("standalone walk requires a scenario id")
	}
	return e.process(ctx, campaignID, scenarioID)
}

func (e *Engine) process(ctx context.Context, campaignID, standaloneID string) (*domain.ProcessedCampaign, error) {
	decisions, err := e.Decisions(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	key := traceKey(campaignID, standaloneID)

	e.mu.Lock()
	previous := e.traces[key]
	e.mu.Unlock()

	trace, err := e.guide.ProcessAllScenarios(ctx, decisions, standaloneID, previous, e.locale)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.traces[key] = trace
	e.mu.Unlock()
	return trace, nil
}

func traceKey(campaignID, standaloneID string) string {
	return campaignID + "\x00" + standaloneID
}

// previous returns the last campaign trace walked for campaignID, if any.
func (e *Engine) previous(campaignID string) *domain.ProcessedCampaign {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.traces[traceKey(campaignID, "")]
}

// Next returns the scenario the player should play next: the one in
// progress, else the playable one, else whatever follows the walked log.
// The boolean is false at the end of the campaign.
func (e *Engine) Next(ctx context.Context, campaignID string) (domain.UnprocessedScenario, bool, error) {
	trace, err := e.Process(ctx, campaignID)
	if err != nil {
		return domain.UnprocessedScenario{}, false, err
	}
	if slot, ok := trace.InProgress(); ok {
		return domain.UnprocessedScenario{ID: slot.ID, Scenario: slot.Scenario, Side: slot.Side}, true, nil
	}
	decisions, err := e.Decisions(ctx, campaignID)
	if err != nil {
		return domain.UnprocessedScenario{}, false, err
	}
	return e.guide.NextScenario(decisions, trace.CampaignLog, false)
}

// Record appends decisions to the campaign instance, persists them and
// returns the new trace. Nothing is written if any decision is invalid.
func (e *Engine) Record(ctx context.Context, campaignID string, decisions ...Decision) (*domain.ProcessedCampaign, error) {
	_, err := e.sessions.Update(ctx, campaignID, func(d *memory.Decisions) error {
		for _, decision := range decisions {
			if err := decision.Apply(d); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.logger.Debug("decisions recorded", "campaign_id", campaignID, "count", len(decisions))
	return e.Process(ctx, campaignID)
}

// Undo removes the newest decision of the campaign and returns the new
// trace. scenarioID must name the single trace entry that can be undone;
// any other id is an *domain.UndoRejectedError and nothing changes.
func (e *Engine) Undo(ctx context.Context, campaignID, scenarioID string) (*domain.ProcessedCampaign, error) {
	if _, err := domain.ParseScenarioID(scenarioID); err != nil {
		return nil, err
	}
	_, err := e.sessions.Update(ctx, campaignID, func(d *memory.Decisions) error {
		trace, err := e.guide.ProcessAllScenarios(ctx, d, "", e.previous(campaignID), e.locale)
		if err != nil {
			return err
		}
		last, ok := trace.Undoable()
		if !ok || last.ID.EncodedScenarioID != scenarioID {
			return &domain.UndoRejectedError{ScenarioID: scenarioID, Undoable: last.ID.EncodedScenarioID}
		}
		d.Undo(scenarioID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.logger.Debug("decision undone", "campaign_id", campaignID, "scenario_id", scenarioID)
	return e.Process(ctx, campaignID)
}

// Reset deletes every decision of the campaign instance.
func (e *Engine) Reset(ctx context.Context, campaignID string) error {
	e.mu.Lock()
	for key := range e.traces {
		if strings.HasPrefix(key, campaignID+"\x00") {
			delete(e.traces, key)
		}
	}
	e.mu.Unlock()
	return e.sessions.Delete(ctx, campaignID)
}

// Graph renders the campaign as a Mermaid flowchart. With a campaign id the
// scenarios are painted with the statuses of its trace.
func (e *Engine) Graph(ctx context.Context, campaignID string) (string, error) {
	if campaignID == "" {
		return graph.GenerateMermaid(e.content, nil), nil
	}
	trace, err := e.Process(ctx, campaignID)
	if err != nil {
		return "", err
	}
	return graph.GenerateMermaid(e.content, graph.OverlayFromTrace(trace)), nil
}
