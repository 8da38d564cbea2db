package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"

	"github.com/germanamz/modai/pkg/collector"
	"github.com/germanamz/modai/pkg/editor"
	"github.com/germanamz/modai/pkg/prompt"
	"github.com/germanamz/modai/pkg/review"
)

// User-facing notices.
const (
	NoticeRoleApplied   = "Changes applied!"
	NoticeCustomApplied = "Modai: changes applied!"
	NoticeDiscarded     = "Changes discarded"
	NoticeEmptyDocument = "Document is empty."
	NoticeFailed        = "Modai: error processing text."
	NoticeUnknownRole   = "Modai: unknown role"
)

// CustomCommandID is the ID of the custom-instructions command.
const CustomCommandID = "modai-custom"

// ErrEmptyInput is reported when the captured text is blank.
var ErrEmptyInput = errors.New("engine: empty input")

// UnknownRoleError is returned when a role name is not configured.
type UnknownRoleError struct {
	Name       string
	Suggestion string // Closest configured role, if any.
}

func (e *UnknownRoleError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("engine: unknown role %q (did you mean %q?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("engine: unknown role %q", e.Name)
}

// Workspace gives access to the document commands act on.
type Workspace interface {
	// ActiveEditor returns the focused document, or false when there is none.
	ActiveEditor() (editor.Editor, bool)
}

// Frontend is the interactive surface of the host. Collect, Review and
// ShowResponse block until the user is done with them.
type Frontend interface {
	// Collect asks for custom instructions. It returns false when the user
	// cancelled.
	Collect(ctx context.Context, suggestions []collector.Suggestion) (collector.Submission, bool, error)
	// Review shows a proposed edit and returns the user's decision.
	Review(ctx context.Context, p *review.Proposal) (review.Decision, error)
	// ShowResponse displays an answer read-only.
	ShowResponse(ctx context.Context, model, text string) error
	// Notify shows a short transient message.
	Notify(msg string)
	// Status shows a message until the returned function is called.
	Status(msg string) (dismiss func())
}

// Host bundles the collaborators an Engine drives.
type Host struct {
	Workspace Workspace
	Frontend  Frontend
}

// Outcome is how an invocation ended.
type Outcome int

const (
	NoOp Outcome = iota
	Applied
	Discarded
	Answered
	Cancelled
	Failed
)

func (o Outcome) String() string {
	switch o {
	case NoOp:
		return "no-op"
	case Applied:
		return "applied"
	case Discarded:
		return "discarded"
	case Answered:
		return "answered"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result reports the end of one command invocation. Err carries the cause for
// Failed outcomes and ErrEmptyInput for blank documents.
type Result struct {
	Outcome      Outcome
	Err          error
	InvocationID string
}

// Command is a named zero-argument trigger for the host to register.
type Command struct {
	ID   string
	Name string
	Run  func(ctx context.Context) Result
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithResolver replaces Resolve, e.g. to point at fakes.
func WithResolver(r ResolverFunc) Option {
	return func(e *Engine) { e.resolve = r }
}

// WithEventBus publishes events on bus instead of a private one.
func WithEventBus(bus *EventBus) Option {
	return func(e *Engine) { e.events = bus }
}

// Engine runs transformations. Invocations are independent: nothing prevents
// two of them from overlapping on the same document, and the one that
// finishes last writes last.
type Engine struct {
	cfg     Config
	host    Host
	logger  *slog.Logger
	events  *EventBus
	resolve ResolverFunc
}

// New creates an Engine from a validated copy of cfg.
func New(cfg Config, host Host, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if host.Workspace == nil || host.Frontend == nil {
		return nil, errors.New("engine: host needs a workspace and a frontend")
	}

	e := &Engine{
		cfg:     cfg,
		host:    host,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		events:  NewEventBus(),
		resolve: Resolve,
	}
	for _, o := range opts {
		o(e)
	}

	return e, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// Events returns the bus lifecycle events are published on.
func (e *Engine) Events() *EventBus { return e.events }

// Commands returns one command per role followed by the custom-instructions
// command.
func (e *Engine) Commands() []Command {
	cmds := make([]Command, 0, len(e.cfg.Roles)+1)
	for _, r := range e.cfg.Roles {
		name := r.Name
		cmds = append(cmds, Command{
			ID:   RoleCommandID(name),
			Name: "use " + name,
			Run:  func(ctx context.Context) Result { return e.RunRole(ctx, name) },
		})
	}
	cmds = append(cmds, Command{
		ID:   CustomCommandID,
		Name: "Use custom instructions",
		Run:  e.RunCustom,
	})
	return cmds
}

// Command looks up a command by ID.
func (e *Engine) Command(id string) (Command, bool) {
	for _, c := range e.Commands() {
		if c.ID == id {
			return c, true
		}
	}
	return Command{}, false
}

// RoleCommandID returns the command ID for a role: "modai-" followed by the
// lower-cased name with spaces turned into hyphens.
func RoleCommandID(role string) string {
	return "modai-" + strings.ReplaceAll(strings.ToLower(strings.TrimSpace(role)), " ", "-")
}

// invocation carries per-call state through a run.
type invocation struct {
	id      string
	command string
	log     *slog.Logger
}

func (e *Engine) begin(command string, attrs ...any) *invocation {
	inv := &invocation{id: uuid.NewString(), command: command}
	inv.log = e.logger.With(append([]any{"invocation", inv.id, "command", command}, attrs...)...)
	inv.log.Info("invocation start", "model", e.cfg.Model)
	e.publish(inv, EventInvocationStart, nil)
	return inv
}

func (e *Engine) end(inv *invocation, res Result) Result {
	res.InvocationID = inv.id
	inv.log.Info("invocation end", "outcome", res.Outcome.String())
	e.publish(inv, EventInvocationEnd, res)
	return res
}

func (e *Engine) publish(inv *invocation, kind EventKind, data any) {
	e.events.Publish(Event{
		Kind:         kind,
		InvocationID: inv.id,
		Command:      inv.command,
		Timestamp:    time.Now(),
		Data:         data,
	})
}

// RunRole applies the instructions of roleName to the selection, or to the
// whole document when nothing is selected. A blank document is a silent no-op.
func (e *Engine) RunRole(ctx context.Context, roleName string) Result {
	inv := e.begin(RoleCommandID(roleName), "role", roleName)

	role, ok := e.cfg.Role(roleName)
	if !ok {
		err := &UnknownRoleError{Name: roleName, Suggestion: suggestRole(roleName, e.cfg.RoleNames())}
		inv.log.Warn("unknown role", "error", err)
		e.host.Frontend.Notify(NoticeUnknownRole)
		e.publish(inv, EventFailed, err)
		return e.end(inv, Result{Outcome: Failed, Err: err})
	}

	ed, ok := e.host.Workspace.ActiveEditor()
	if !ok {
		inv.log.Debug("no active editor")
		return e.end(inv, Result{Outcome: NoOp})
	}

	capture := editor.CaptureFrom(ed)
	if capture.Empty() {
		inv.log.Debug("nothing to process")
		return e.end(inv, Result{Outcome: NoOp, Err: ErrEmptyInput})
	}

	text, err := e.dispatch(ctx, inv, role.Instructions, capture)
	if err != nil {
		return e.end(inv, e.fail(ctx, inv, err))
	}

	return e.end(inv, e.review(ctx, inv, ed, capture, text, NoticeRoleApplied))
}

// RunCustom captures the document, collects instructions from the user and
// either reviews the answer as an edit or shows it read-only.
func (e *Engine) RunCustom(ctx context.Context) Result {
	inv := e.begin(CustomCommandID)

	ed, ok := e.host.Workspace.ActiveEditor()
	if !ok {
		inv.log.Debug("no active editor")
		return e.end(inv, Result{Outcome: NoOp})
	}

	capture := editor.CaptureFrom(ed)
	if capture.Empty() {
		e.host.Frontend.Notify(NoticeEmptyDocument)
		return e.end(inv, Result{Outcome: NoOp, Err: ErrEmptyInput})
	}

	sub, ok, err := e.host.Frontend.Collect(ctx, e.suggestions())
	if err != nil {
		return e.end(inv, e.fail(ctx, inv, fmt.Errorf("engine: collect instructions: %w", err)))
	}
	if !ok || strings.TrimSpace(sub.Instructions) == "" {
		inv.log.Debug("instructions cancelled")
		return e.end(inv, Result{Outcome: Cancelled})
	}
	inv.log.Debug("instructions collected", "intent", sub.Intent.String())

	text, err := e.dispatch(ctx, inv, sub.Instructions, capture)
	if err != nil {
		return e.end(inv, e.fail(ctx, inv, err))
	}

	if sub.Intent == collector.Ask {
		if err := e.host.Frontend.ShowResponse(ctx, e.cfg.Model, text); err != nil {
			return e.end(inv, e.fail(ctx, inv, fmt.Errorf("engine: show response: %w", err)))
		}
		e.publish(inv, EventAnswered, text)
		return e.end(inv, Result{Outcome: Answered})
	}

	return e.end(inv, e.review(ctx, inv, ed, capture, text, NoticeCustomApplied))
}

// Query composes instructions and text into one message and sends it to the
// configured model.
func (e *Engine) Query(ctx context.Context, instructions, text string) (string, error) {
	caller, fam, err := e.resolve(e.cfg.Model, e.cfg.Credentials())
	if err != nil {
		return "", err
	}

	e.logger.Debug("query", "model", e.cfg.Model, "family", string(fam), "bytes", len(text))

	out, err := caller.Call(ctx, prompt.Compose(instructions, text), e.cfg.Model, e.cfg.Temperature)
	if err != nil {
		return "", fmt.Errorf("engine: query %s: %w", e.cfg.Model, err)
	}

	return out, nil
}

// dispatch shows the thinking status for the duration of the model call.
func (e *Engine) dispatch(ctx context.Context, inv *invocation, instructions string, c editor.Capture) (string, error) {
	dismiss := e.host.Frontend.Status(fmt.Sprintf("Modai: %s thinking...", e.cfg.Model))
	defer dismiss()

	inv.log.Debug("dispatch", "range", c.Range.String(), "selection", c.HasSelection)
	e.publish(inv, EventDispatch, c.Range)

	return e.Query(ctx, instructions, c.Text)
}

// review applies the answer to the range captured before dispatch. Edits made
// to the document while the call was pending are not reconciled.
func (e *Engine) review(ctx context.Context, inv *invocation, ed editor.Editor, c editor.Capture, text, appliedNotice string) Result {
	p := review.New(c.Text, text, c.Range)
	stats := p.Stats()
	inv.log.Debug("diff ready", "added", stats.Added, "removed", stats.Removed)
	e.publish(inv, EventDiffReady, stats)

	decision, err := e.host.Frontend.Review(ctx, p)
	if err != nil {
		return e.fail(ctx, inv, fmt.Errorf("engine: review: %w", err))
	}

	changed, err := p.Apply(decision, ed)
	if err != nil {
		return e.fail(ctx, inv, fmt.Errorf("engine: apply: %w", err))
	}
	if !changed {
		e.host.Frontend.Notify(NoticeDiscarded)
		e.publish(inv, EventDiscarded, nil)
		return Result{Outcome: Discarded}
	}

	e.host.Frontend.Notify(appliedNotice)
	e.publish(inv, EventApplied, c.Range)
	return Result{Outcome: Applied}
}

// fail logs err and shows the generic failure notice. A cancelled ctx ends
// the invocation quietly.
func (e *Engine) fail(ctx context.Context, inv *invocation, err error) Result {
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		inv.log.Info("invocation cancelled", "error", err)
		return Result{Outcome: Cancelled, Err: err}
	}

	inv.log.Error("invocation failed", "model", e.cfg.Model, "error", err)
	e.host.Frontend.Notify(NoticeFailed)
	e.publish(inv, EventFailed, err)
	return Result{Outcome: Failed, Err: err}
}

func (e *Engine) suggestions() []collector.Suggestion {
	out := make([]collector.Suggestion, len(e.cfg.Roles))
	for i, r := range e.cfg.Roles {
		out[i] = collector.Suggestion{Label: r.Name, Instructions: r.Instructions}
	}
	return out
}

// suggestRole returns the configured role that best matches name.
func suggestRole(name string, roles []string) string {
	if name == "" || len(roles) == 0 {
		return ""
	}
	matches := fuzzy.Find(name, roles)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}
