package provider

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/petasbytes/companion/internal/session"
)

const backendAnthropic = "anthropic"

// NewAnthropicClient returns a client for apiKey. SDK retries are disabled;
// a failed turn is retried by the user sending another message.
func NewAnthropicClient(apiKey string, o options) *anthropic.Client {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if o.httpClient != nil {
		opts = append(opts, option.WithHTTPClient(o.httpClient))
	}
	if o.baseURL != "" {
		opts = append(opts, option.WithBaseURL(o.baseURL))
	}
	c := anthropic.NewClient(opts...)
	return &c
}

type Anthropic struct {
	client   *anthropic.Client
	settings Settings
}

func NewAnthropic(client *anthropic.Client, s Settings) *Anthropic {
	return &Anthropic{client: client, settings: s}
}

func (a *Anthropic) Reply(ctx context.Context, history []session.Turn, user string) (string, error) {
	start := time.Now()
	reply, err := a.reply(ctx, history, user)
	emitReply(ctx, backendAnthropic, a.settings.Model, start, reply, err)
	return reply, err
}

func (a *Anthropic) reply(ctx context.Context, history []session.Turn, user string) (string, error) {
	turns, err := prepareTurns(ctx, backendAnthropic, a.settings, history, user)
	if err != nil {
		return "", err
	}

	msgs := make([]anthropic.MessageParam, 0, len(turns))
	for _, t := range turns {
		if t.Role == session.RoleAssistant {
			msgs = append(msgs, anthropic.NewAssistantMessage(anthropic.NewTextBlock(t.Text)))
		} else {
			msgs = append(msgs, anthropic.NewUserMessage(anthropic.NewTextBlock(t.Text)))
		}
	}

	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.settings.Model),
		MaxTokens: int64(a.settings.MaxTokens),
		System:    []anthropic.TextBlockParam{{Text: SystemPrompt}},
		Messages:  msgs,
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", classifyHTTP(apiErr.StatusCode, apiErr.RawJSON(), err)
		}
		return "", classifyTransport(err)
	}

	if msg.StopReason == anthropic.StopReasonRefusal {
		return "", newError(ErrPolicy, 0, "stop_reason=refusal", nil)
	}

	var parts []string
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok && strings.TrimSpace(tb.Text) != "" {
			parts = append(parts, tb.Text)
		}
	}
	if len(parts) == 0 {
		return "", newError(ErrEmptyReply, 0, "stop_reason="+string(msg.StopReason), nil)
	}
	return strings.Join(parts, "\n"), nil
}
