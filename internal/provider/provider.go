package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/petasbytes/companion/internal/config"
	"github.com/petasbytes/companion/internal/session"
	"github.com/petasbytes/companion/internal/telemetry"
	"github.com/petasbytes/companion/internal/windowing"
)

// Gateway produces the assistant's reply to user given the prior history.
type Gateway interface {
	Reply(ctx context.Context, history []session.Turn, user string) (string, error)
}

// ErrMissingCredential is fatal at startup: no key for the selected provider.
var ErrMissingCredential = errors.New("provider: missing API key")

type options struct {
	httpClient *http.Client
	baseURL    string
}

type Option func(*options)

// WithHTTPClient routes provider traffic through c.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithBaseURL points the backend at a different API endpoint.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// New builds the gateway selected by cfg.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (Gateway, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: export %s before running", ErrMissingCredential, config.CredentialEnv(cfg.Provider))
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	settings := Settings{
		Model:         cfg.Model,
		MaxTokens:     cfg.MaxTokens,
		HistoryBudget: cfg.HistoryBudget,
	}
	switch cfg.Provider {
	case config.ProviderAnthropic:
		return NewAnthropic(NewAnthropicClient(cfg.APIKey, o), settings), nil
	case config.ProviderGemini:
		client, err := NewGeminiClient(ctx, cfg.APIKey, o)
		if err != nil {
			return nil, err
		}
		return NewGemini(client, settings), nil
	default:
		return nil, fmt.Errorf("provider: unsupported provider %q", cfg.Provider)
	}
}

// Settings are the request knobs shared by all backends.
type Settings struct {
	Model         string
	MaxTokens     int
	HistoryBudget int
}

// prepareTurns appends the new user turn to history, trims it to the budget
// and drops leading assistant turns: both APIs expect the user to speak first.
func prepareTurns(ctx context.Context, backend string, s Settings, history []session.Turn, user string) ([]session.Turn, error) {
	turns := make([]session.Turn, 0, len(history)+1)
	turns = append(turns, history...)
	turns = append(turns, session.UserTurn(user))

	window, stats := windowing.PrepareSendWindow(turns, s.HistoryBudget, windowing.HeuristicCounter{})

	turnID, _ := telemetry.TurnIDFromContext(ctx)
	telemetry.Emit("window_prepared", map[string]any{
		"turn_id":            turnID,
		"provider":           backend,
		"model":              s.Model,
		"budget":             stats.Budget,
		"total_estimated":    stats.Total,
		"included_turns":     stats.IncludedTurns,
		"skipped_turns":      stats.SkippedTurns,
		"over_budget_newest": stats.OverBudgetNewest,
	})

	if stats.OverBudgetNewest {
		return nil, &Error{
			Kind:    ErrOverBudget,
			Message: "That message is too long for me to read in one go. Could you say it in fewer words?",
		}
	}

	for len(window) > 0 && window[0].Role != session.RoleUser {
		window = window[1:]
	}
	return window, nil
}

func emitReply(ctx context.Context, backend, model string, start time.Time, reply string, err error) {
	turnID, _ := telemetry.TurnIDFromContext(ctx)
	fields := map[string]any{
		"turn_id":     turnID,
		"provider":    backend,
		"model":       model,
		"duration_ms": time.Since(start).Milliseconds(),
		"reply_runes": len([]rune(reply)),
		"error":       nil,
	}
	if err != nil {
		fields["error"] = KindOf(err)
	}
	telemetry.Emit("model_reply", fields)
}
