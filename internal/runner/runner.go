package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/petasbytes/companion/internal/intent"
	"github.com/petasbytes/companion/internal/observability"
	"github.com/petasbytes/companion/internal/provider"
	"github.com/petasbytes/companion/internal/session"
	"github.com/petasbytes/companion/internal/telemetry"
	"github.com/petasbytes/companion/memory"
)

// ErrEmptyInput is returned for blank submissions; nothing is recorded.
var ErrEmptyInput = errors.New("runner: empty input")

// Source says where a reply came from.
type Source string

const (
	SourceLocal Source = "local"
	SourceModel Source = "model"
)

// Result describes one completed submission.
type Result struct {
	TurnID  string
	Reply   string
	Source  Source
	Outcome intent.Outcome
	// Greeted is true when a greeting was added ahead of the user's turn.
	Greeted bool
}

type Runner struct {
	session *session.Session
	doc     *memory.Document
	router  *intent.Router
	gateway provider.Gateway
	store   *memory.Store
	now     func() time.Time
	log     *slog.Logger
}

type Option func(*Runner)

// WithClock sets the time source used to pick greetings.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.log = l }
}

func WithRouter(rt *intent.Router) Option {
	return func(r *Runner) { r.router = rt }
}

// WithDocument seeds the in-memory document.
func WithDocument(doc *memory.Document) Option {
	return func(r *Runner) { r.doc = doc.Clone() }
}

func New(gw provider.Gateway, store *memory.Store, opts ...Option) *Runner {
	r := &Runner{
		session: session.New(),
		doc:     memory.NewDocument(),
		router:  intent.NewRouter(),
		gateway: gw,
		store:   store,
		now:     time.Now,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// EnsureGreeting appends a greeting when the session has no turns and
// reports whether it did.
func (r *Runner) EnsureGreeting() bool {
	if !r.session.Empty() {
		return false
	}
	r.session.Append(session.AssistantTurn(session.Greeting(r.now())))
	return true
}

// Submit processes one user utterance.
func (r *Runner) Submit(ctx context.Context, text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyInput
	}

	turnID := telemetry.NewTurnID()
	ctx = telemetry.WithTurnID(ctx, turnID)
	log := observability.WithTurn(ctx, r.log)
	res := Result{TurnID: turnID}

	res.Greeted = r.EnsureGreeting()
	prior := r.session.Turns()
	r.session.Append(session.UserTurn(text))
	telemetry.EmitLocalFeatures(ctx, text)

	out := r.router.Route(text, r.doc)
	res.Outcome = out
	telemetry.Emit("intent_routed", map[string]any{
		"turn_id": turnID,
		"outcome": out.Kind.String(),
		"rules":   out.Rules,
	})
	log.Debug("intent routed", "outcome", out.Kind.String(), "rules", out.Rules)

	if out.Replied() {
		r.session.Append(session.AssistantTurn(out.Reply))
		res.Reply = out.Reply
		res.Source = SourceLocal
		return res, nil
	}

	reply, err := r.gateway.Reply(ctx, prior, text)
	if err != nil {
		log.Warn("model reply failed", "kind", provider.KindOf(err), "err", err)
		return res, err
	}
	r.session.Append(session.AssistantTurn(reply))
	res.Reply = reply
	res.Source = SourceModel
	return res, nil
}

// SaveMemory writes the in-memory document, replacing any saved copy.
func (r *Runner) SaveMemory() error {
	if err := r.store.Save(r.doc); err != nil {
		return err
	}
	_, hasLunch := r.doc.Lunch()
	telemetry.Emit("memory_saved", map[string]any{
		"path":      r.store.Path(),
		"reminders": len(r.doc.Reminders),
		"has_lunch": hasLunch,
	})
	r.log.Debug("memory saved", "path", r.store.Path(), "reminders", len(r.doc.Reminders))
	return nil
}

// LoadMemory replaces the in-memory document with the saved one. On any
// error the current document is kept; memory.ErrNotFound means there was
// nothing to load.
func (r *Runner) LoadMemory() error {
	doc, err := r.store.Load()
	status := "ok"
	switch {
	case errors.Is(err, memory.ErrNotFound):
		status = "not_found"
	case errors.Is(err, memory.ErrMalformed):
		status = "malformed"
	case err != nil:
		status = "error"
	}
	telemetry.Emit("memory_loaded", map[string]any{
		"path":   r.store.Path(),
		"status": status,
	})
	if err != nil {
		if status != "not_found" {
			r.log.Warn("memory load failed", "path", r.store.Path(), "err", err)
		}
		return fmt.Errorf("load %s: %w", r.store.Path(), err)
	}
	r.doc = doc
	r.log.Debug("memory loaded", "path", r.store.Path(), "reminders", len(doc.Reminders))
	return nil
}

// Reminders returns the listing shown by the reminders action.
func (r *Runner) Reminders() string {
	return intent.FormatReminders(r.doc.Reminders)
}

// Document returns a copy of the in-memory document.
func (r *Runner) Document() *memory.Document {
	return r.doc.Clone()
}

// ClearHistory drops every turn. The next submission greets again.
func (r *Runner) ClearHistory() {
	r.session.Clear()
}

func (r *Runner) Turns() []session.Turn {
	return r.session.Turns()
}

// Transcript renders the conversation as "Role: text" lines.
func (r *Runner) Transcript() string {
	return r.session.Transcript()
}
